package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/leo-otica/otica-erp/internal/audit"
	"github.com/leo-otica/otica-erp/internal/config"
	dbpkg "github.com/leo-otica/otica-erp/internal/db"
	"github.com/leo-otica/otica-erp/internal/middleware"
	"github.com/leo-otica/otica-erp/internal/notify"
	"github.com/leo-otica/otica-erp/internal/recall"
	"github.com/leo-otica/otica-erp/internal/routes"
)

func main() {

	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment")
	}

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	notifier := notify.New(cfg.RedisAddr)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	recallScheduler := recall.NewScheduler(db, auditDispatcher)
	recallScheduler.Start()
	defer recallScheduler.Stop()

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, notifier, auditDispatcher)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
