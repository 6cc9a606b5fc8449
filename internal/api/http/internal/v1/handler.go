package v1

import (
	"net/http"

	"github.com/manara-transit/backend/internal/config"
	"github.com/manara-transit/backend/internal/service"
	"github.com/manara-transit/backend/pkg/auth"

	"github.com/gin-gonic/gin"
)

// @title Manara API
// @version 1.0
// @description Commuter backend: accounts, OTP verification, profiles, trips and routes.

// @BasePath /api/v1

// @securityDefinitions.apikey UserAuth
// @in header
// @name Authorization

type Handler struct {
	services     *service.Services
	tokenManager auth.TokenManager
	config       *config.Config
}

func NewHandler(services *service.Services, tokenManager auth.TokenManager, config *config.Config) *Handler {
	return &Handler{
		services:     services,
		tokenManager: tokenManager,
		config:       config,
	}
}

func (h *Handler) Init(api *gin.RouterGroup) {
	v1 := api.Group("v1")

	v1.GET("/", h.home)

	h.initAuthRoutes(v1)
	h.initProfileRoutes(v1)
	h.initTripRoutes(v1)
	h.initRouteRoutes(v1)
}

// @Summary Home
// @Tags Home
// @Produce plain
// @Success 200 {string} string
// @Router / [get]
func (h *Handler) home(c *gin.Context) {
	c.String(http.StatusOK, "Welcome to the API Home Page!")
}
