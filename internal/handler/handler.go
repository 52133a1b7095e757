package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/YashMagare365/mess-management-backend/internal/database"
	"github.com/YashMagare365/mess-management-backend/internal/service"
)

type Handler struct {
	orders      service.OrderService
	provisioner service.ProvisioningService
	health      database.Service
	log         *zap.Logger
}

func New(orders service.OrderService, provisioning service.ProvisioningService, health database.Service, log *zap.Logger) *Handler {
	return &Handler{
		orders:      orders,
		provisioner: provisioning,
		health:      health,
		log:         log,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/", h.live)
	r.GET("/health", h.healthCheck)
	r.POST("/create-order", h.createOrder)
	r.POST("/signup", h.signup)
}

func (h *Handler) live(c *gin.Context) {
	c.String(http.StatusOK, "Hello World!")
}

func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, h.health.Health())
}
