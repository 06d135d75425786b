package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/leo-otica/otica-erp/internal/audit"
	"github.com/leo-otica/otica-erp/internal/config"
	"github.com/leo-otica/otica-erp/internal/handlers"
	infraRepo "github.com/leo-otica/otica-erp/internal/infra/repository"
	"github.com/leo-otica/otica-erp/internal/middleware"
	"github.com/leo-otica/otica-erp/internal/models"
	"github.com/leo-otica/otica-erp/internal/notify"
	ucOrder "github.com/leo-otica/otica-erp/internal/usecase/order"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, notifier *notify.Notifier, auditDispatcher *audit.Dispatcher) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	orderRepo := infraRepo.NewOrderGormRepository(db)

	// ======================================================
	// USE CASES — SERVICE ORDERS
	// ======================================================
	createSaleUC := ucOrder.NewCreateSale(orderRepo, auditDispatcher)
	createOrderUC := ucOrder.NewCreateOrder(orderRepo, auditDispatcher)
	updateOrderUC := ucOrder.NewUpdateOrder(orderRepo, auditDispatcher)
	advanceOrderUC := ucOrder.NewAdvanceOrder(orderRepo, auditDispatcher)
	deleteOrderUC := ucOrder.NewDeleteOrder(orderRepo, auditDispatcher)
	listOrdersUC := ucOrder.NewListOrders(orderRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	shopHandler := handlers.NewShopHandler(db)

	clientHandler := handlers.NewClientHandler(db, notifier)
	productHandler := handlers.NewProductHandler(db, notifier)
	transactionHandler := handlers.NewTransactionHandler(db, notifier)
	employeeHandler := handlers.NewEmployeeHandler(db)

	orderHandler := handlers.NewOrderHandler(
		createSaleUC,
		createOrderUC,
		updateOrderUC,
		advanceOrderUC,
		deleteOrderUC,
		listOrdersUC,
		notifier,
	)

	financialHandler := handlers.NewFinancialHandler(db)
	dashboardHandler := handlers.NewDashboardHandler(db)
	recallHandler := handlers.NewRecallHandler(db)
	eventsHandler := handlers.NewEventsHandler(notifier)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/me/shop", shopHandler.GetMeShop)
			secured.PATCH("/me/shop", shopHandler.UpdateMeShop)

			// ------------------------------
			// CLIENTES (CRM)
			// ------------------------------
			secured.GET("/me/clients", clientHandler.List)
			secured.POST("/me/clients", clientHandler.Create)
			secured.PATCH("/me/clients/:id", clientHandler.Update)
			secured.PATCH("/me/clients/:id/visit", clientHandler.RegisterVisit)
			secured.DELETE("/me/clients/:id", clientHandler.Delete)

			secured.GET("/me/recall", recallHandler.List)

			// ------------------------------
			// ESTOQUE
			// ------------------------------
			secured.GET("/me/products", productHandler.List)
			secured.POST("/me/products", productHandler.Create)
			secured.PATCH("/me/products/:id", productHandler.Update)
			secured.DELETE("/me/products/:id", productHandler.Delete)

			// ------------------------------
			// ORDENS DE SERVIÇO
			// ------------------------------
			secured.POST("/me/sales", orderHandler.CreateSale)
			secured.GET("/me/orders", orderHandler.List)
			secured.POST("/me/orders", orderHandler.Create)
			secured.PATCH("/me/orders/:id", orderHandler.Update)
			secured.PATCH("/me/orders/:id/advance", orderHandler.Advance)
			secured.DELETE("/me/orders/:id", orderHandler.Delete)

			// ------------------------------
			// CAIXA / FINANCEIRO
			// ------------------------------
			secured.GET("/me/transactions", transactionHandler.List)
			secured.POST("/me/transactions", transactionHandler.Create)
			secured.PATCH("/me/transactions/:id", transactionHandler.Update)
			secured.DELETE("/me/transactions/:id", transactionHandler.Delete)
			secured.GET("/me/transactions/export", transactionHandler.Export)

			secured.GET("/me/financial/summary", financialHandler.Summary)
			secured.GET("/me/dashboard", dashboardHandler.Get)

			// ------------------------------
			// FUNCIONÁRIOS (só admin)
			// ------------------------------
			employees := secured.Group("/me/employees")
			employees.Use(middleware.RequireRole(models.RoleAdmin))
			{
				employees.GET("", employeeHandler.List)
				employees.POST("", employeeHandler.Create)
				employees.PATCH("/:id", employeeHandler.Update)
				employees.DELETE("/:id", employeeHandler.Delete)
			}

			secured.GET("/me/events", eventsHandler.Stream)
			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}
