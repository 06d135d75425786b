package handlers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/leo-otica/otica-erp/internal/handlers"
	"github.com/leo-otica/otica-erp/internal/models"
)

func productRouter(t *testing.T, db *gorm.DB, shopID uint) *gin.Engine {
	t.Helper()

	h := handlers.NewProductHandler(db, nil)

	r := gin.New()
	r.POST("/api/me/products", authAs(shopID, 1, models.RoleAdmin), h.Create)
	r.PATCH("/api/me/products/:id", authAs(shopID, 1, models.RoleAdmin), h.Update)
	return r
}

func TestCreateProductDuplicateSKUConflict(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&models.Shop{Name: "Ótica Central"}).Error)

	r := productRouter(t, db, 1)

	w := performJSON(t, r, http.MethodPost, "/api/me/products", gin.H{
		"name":  "Armação Aviador",
		"sku":   "ARM-001",
		"type":  models.ProductTypeFrame,
		"price": "450.00",
		"stock": 5,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = performJSON(t, r, http.MethodPost, "/api/me/products", gin.H{
		"name": "Outra Armação",
		"sku":  "ARM-001",
		"type": models.ProductTypeFrame,
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "sku_already_exists")

	// a segunda tentativa não pode ter gravado nada
	var count int64
	db.Model(&models.Product{}).Count(&count)
	assert.Equal(t, int64(1), count)

	var kept models.Product
	require.NoError(t, db.First(&kept).Error)
	assert.Equal(t, "Armação Aviador", kept.Name)
}

func TestUpdateProductToExistingSKUConflict(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&models.Shop{Name: "Ótica Central"}).Error)
	require.NoError(t, db.Create(&models.Product{
		ShopID: 1, Name: "Armação Aviador", SKU: "ARM-001", Type: models.ProductTypeFrame,
	}).Error)
	require.NoError(t, db.Create(&models.Product{
		ShopID: 1, Name: "Lente AR 1.67", SKU: "LEN-001", Type: models.ProductTypeLens,
	}).Error)

	r := productRouter(t, db, 1)

	w := performJSON(t, r, http.MethodPatch, "/api/me/products/2", gin.H{
		"sku": "ARM-001",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "sku_already_exists")

	var lens models.Product
	require.NoError(t, db.First(&lens, 2).Error)
	assert.Equal(t, "LEN-001", lens.SKU)
}

// o índice único é composto (loja, sku): o mesmo SKU em lojas diferentes
// não conflita
func TestSameSKUAllowedAcrossShops(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&models.Shop{Name: "Ótica Central"}).Error)
	require.NoError(t, db.Create(&models.Shop{Name: "Ótica Nova"}).Error)

	body := gin.H{
		"name": "Armação Aviador",
		"sku":  "ARM-001",
		"type": models.ProductTypeFrame,
	}

	w := performJSON(t, productRouter(t, db, 1), http.MethodPost, "/api/me/products", body)
	require.Equal(t, http.StatusCreated, w.Code)

	w = performJSON(t, productRouter(t, db, 2), http.MethodPost, "/api/me/products", body)
	assert.Equal(t, http.StatusCreated, w.Code)

	var count int64
	db.Model(&models.Product{}).Count(&count)
	assert.Equal(t, int64(2), count)
}
