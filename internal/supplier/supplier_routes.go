package supplier

import (
	"supplyhr/internal/middleware"
	"supplyhr/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	suppliers := r.Group("/suppliers")
	suppliers.Use(middleware.AuthMiddleware())
	{
		suppliers.GET("",
			middleware.RBACAuthorize(rbacService, "supplier", "read"),
			handler.GetAll,
		)
		suppliers.GET("/:id",
			middleware.RBACAuthorize(rbacService, "supplier", "read"),
			handler.GetById,
		)
		suppliers.POST("",
			middleware.RBACAuthorize(rbacService, "supplier", "create"),
			handler.Create,
		)
		suppliers.PUT("/:id",
			middleware.RBACAuthorize(rbacService, "supplier", "update"),
			handler.Update,
		)
		suppliers.DELETE("/:id",
			middleware.RBACAuthorize(rbacService, "supplier", "delete"),
			handler.Delete,
		)
	}
}
