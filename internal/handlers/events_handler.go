package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/leo-otica/otica-erp/internal/httperr"
	"github.com/leo-otica/otica-erp/internal/middleware"
	"github.com/leo-otica/otica-erp/internal/notify"
)

type EventsHandler struct {
	notify *notify.Notifier
}

func NewEventsHandler(notifier *notify.Notifier) *EventsHandler {
	return &EventsHandler{notify: notifier}
}

// Stream entrega por SSE o nome da coleção que mudou ("clients",
// "products", ...). O front-end refaz o fetch da coleção inteira; não há
// diff nem garantia de entrega.
func (h *EventsHandler) Stream(c *gin.Context) {
	if !h.notify.Enabled() {
		httperr.NotFound(c, "events_disabled", "Feed de mudanças desabilitado (REDIS_ADDR vazio).")
		return
	}

	shopID := c.MustGet(middleware.ContextShopID).(uint)

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.WriteHeader(http.StatusOK)
	c.Writer.Flush()

	ctx := c.Request.Context()
	changes, cancel := h.notify.Subscribe(ctx, shopID)
	defer cancel()

	c.Stream(func(w io.Writer) bool {
		select {
		case collection, ok := <-changes:
			if !ok {
				return false
			}
			c.SSEvent("change", collection)
			return true
		case <-ctx.Done():
			return false
		}
	})
}
