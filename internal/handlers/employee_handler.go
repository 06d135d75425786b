package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/leo-otica/otica-erp/internal/httperr"
	"github.com/leo-otica/otica-erp/internal/httpresp"
	"github.com/leo-otica/otica-erp/internal/middleware"
	"github.com/leo-otica/otica-erp/internal/models"
	"github.com/leo-otica/otica-erp/internal/validators"
)

// EmployeeHandler gerencia os usuários da loja. Rotas sob RequireRole(admin).
type EmployeeHandler struct {
	db *gorm.DB
}

func NewEmployeeHandler(db *gorm.DB) *EmployeeHandler {
	return &EmployeeHandler{db: db}
}

// --------- Requests ---------

type CreateEmployeeRequest struct {
	Name     string `json:"name" binding:"required"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"omitempty,oneof=admin employee"`
}

type UpdateEmployeeRequest struct {
	Name     *string `json:"name,omitempty"`
	Password *string `json:"password,omitempty" binding:"omitempty,min=6"`
	Role     *string `json:"role,omitempty" binding:"omitempty,oneof=admin employee"`
}

// ======================================================
// LIST
// ======================================================
func (h *EmployeeHandler) List(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextShopID).(uint)

	var users []models.User
	if err := h.db.
		Where("shop_id = ?", shopID).
		Order("created_at ASC").
		Find(&users).Error; err != nil {

		httperr.Internal(c, "failed_to_list_employees", "Erro ao listar funcionários.")
		return
	}

	httpresp.List(c, users)
}

// ======================================================
// CREATE
// ======================================================
func (h *EmployeeHandler) Create(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextShopID).(uint)

	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	username := strings.ToLower(strings.TrimSpace(req.Username))
	if !validators.IsValidUsername(username) {
		httperr.BadRequest(c, "invalid_username", "Usuário inválido (minúsculas, dígitos, ponto e underscore).")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Erro ao processar a senha.")
		return
	}

	role := req.Role
	if role == "" {
		role = models.RoleEmployee
	}

	user := models.User{
		ShopID:       shopID,
		Name:         req.Name,
		Username:     username,
		PasswordHash: string(hashed),
		Role:         role,
	}

	if err := h.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			httperr.Conflict(c, "username_already_exists", "Já existe um usuário com esse nome.")
			return
		}
		httperr.Internal(c, "failed_to_create_employee", "Erro ao cadastrar funcionário.")
		return
	}

	c.JSON(http.StatusCreated, user)
}

// ======================================================
// UPDATE
// ======================================================
func (h *EmployeeHandler) Update(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextShopID).(uint)
	id := c.Param("id")

	var user models.User
	if err := h.db.
		Where("id = ? AND shop_id = ?", id, shopID).
		First(&user).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "employee_not_found", "Funcionário não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_employee", "Erro ao buscar funcionário.")
		return
	}

	var req UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			httperr.Internal(c, "failed_to_hash_password", "Erro ao processar a senha.")
			return
		}
		user.PasswordHash = string(hashed)
	}
	if req.Role != nil {
		user.Role = *req.Role
	}

	if err := h.db.Save(&user).Error; err != nil {
		httperr.Internal(c, "failed_to_update_employee", "Erro ao atualizar funcionário.")
		return
	}

	c.JSON(http.StatusOK, user)
}

// ======================================================
// DELETE
// ======================================================
func (h *EmployeeHandler) Delete(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextShopID).(uint)
	currentID := c.MustGet(middleware.ContextUserID).(uint)
	id := c.Param("id")

	var user models.User
	if err := h.db.
		Where("id = ? AND shop_id = ?", id, shopID).
		First(&user).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "employee_not_found", "Funcionário não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_employee", "Erro ao buscar funcionário.")
		return
	}

	if user.ID == currentID {
		httperr.BadRequest(c, "cannot_delete_self", "Você não pode excluir o próprio usuário.")
		return
	}

	if err := h.db.Delete(&user).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_employee", "Erro ao excluir funcionário.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": user.ID})
}
