package auth

import (
	"supplyhr/internal/domain"
	"supplyhr/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	auth := r.Group("/auth")
	{
		auth.GET("/me", middleware.AuthMiddleware(), middleware.RateLimitByUser(2, 5), handler.Me)
		auth.POST("/login", middleware.RateLimitByIP(0.08, 5), handler.Login)
		auth.POST("/refresh", middleware.RateLimitByIP(0.5, 5), handler.RefreshToken)
		// Accounts are provisioned by admins, not self-service.
		auth.POST("/register",
			middleware.AuthMiddleware(),
			middleware.RoleMiddleware(domain.RoleAdmin),
			middleware.RateLimitByUser(0.1, 1),
			handler.Register,
		)
	}
}
