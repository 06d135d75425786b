package httpresp

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListResponse é o envelope padrão das listagens da loja: a coleção em
// data e o total já contado.
type ListResponse[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
}

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// List embrulha clientes, produtos, O.S., lançamentos e funcionários no
// envelope padrão. Respostas compostas (painel, recall) têm formato próprio.
func List[T any](c *gin.Context, data []T) {
	c.JSON(http.StatusOK, ListResponse[T]{
		Data:  data,
		Total: len(data),
	})
}
