package handlers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leo-otica/otica-erp/internal/handlers"
	"github.com/leo-otica/otica-erp/internal/models"
)

func TestCreateEmployeeDuplicateUsernameConflict(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&models.Shop{Name: "Ótica Central"}).Error)

	h := handlers.NewEmployeeHandler(db)

	r := gin.New()
	r.POST("/api/me/employees", authAs(1, 1, models.RoleAdmin), h.Create)

	w := performJSON(t, r, http.MethodPost, "/api/me/employees", gin.H{
		"name":     "Maria Souza",
		"username": "maria.souza",
		"password": "segredo1",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = performJSON(t, r, http.MethodPost, "/api/me/employees", gin.H{
		"name":     "Outra Maria",
		"username": "maria.souza",
		"password": "segredo2",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "username_already_exists")

	var count int64
	db.Model(&models.User{}).Count(&count)
	assert.Equal(t, int64(1), count)

	var kept models.User
	require.NoError(t, db.First(&kept).Error)
	assert.Equal(t, "Maria Souza", kept.Name)
}
