package handlers

import (
	"net/http"
	"time"

	response "payment_relay/internal/adapter/http/dto/response"

	"github.com/gin-gonic/gin"
)

const banner = "Whish payment relay is running"

type HealthHandler struct {
	now func() time.Time
}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{now: time.Now}
}

// Health godoc
// @Summary  Liveness probe
// @Tags     health
// @Produce  json
// @Success  200  {object}  response.HealthResponse
// @Router   /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, response.HealthResponse{OK: true, Time: h.now().UTC()})
}

func (h *HealthHandler) Banner(c *gin.Context) {
	c.String(http.StatusOK, banner)
}
