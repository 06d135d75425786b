package handlers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leo-otica/otica-erp/internal/config"
	"github.com/leo-otica/otica-erp/internal/handlers"
	"github.com/leo-otica/otica-erp/internal/models"
)

func TestRegisterCreatesShopAndAdmin(t *testing.T) {
	db := newTestDB(t)
	h := handlers.NewAuthHandler(db, &config.Config{JWTSecret: "segredo-de-teste"})

	r := gin.New()
	r.POST("/api/auth/register", h.Register)

	w := performJSON(t, r, http.MethodPost, "/api/auth/register", gin.H{
		"shop_name": "Ótica Central",
		"name":      "Léo",
		"username":  "leo",
		"password":  "segredo1",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "token")

	var user models.User
	require.NoError(t, db.First(&user).Error)
	assert.Equal(t, models.RoleAdmin, user.Role)
	assert.NotZero(t, user.ShopID)
}

// registro com usuário duplicado não pode deixar loja órfã: loja e admin
// nascem na mesma transação
func TestRegisterDuplicateUsernameLeavesNoOrphanShop(t *testing.T) {
	db := newTestDB(t)
	h := handlers.NewAuthHandler(db, &config.Config{JWTSecret: "segredo-de-teste"})

	r := gin.New()
	r.POST("/api/auth/register", h.Register)

	w := performJSON(t, r, http.MethodPost, "/api/auth/register", gin.H{
		"shop_name": "Ótica Central",
		"name":      "Léo",
		"username":  "leo",
		"password":  "segredo1",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = performJSON(t, r, http.MethodPost, "/api/auth/register", gin.H{
		"shop_name": "Ótica Nova",
		"name":      "Outro Léo",
		"username":  "leo",
		"password":  "segredo2",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "username_already_exists")

	var shops int64
	db.Model(&models.Shop{}).Count(&shops)
	assert.Equal(t, int64(1), shops)

	var users int64
	db.Model(&models.User{}).Count(&users)
	assert.Equal(t, int64(1), users)
}
