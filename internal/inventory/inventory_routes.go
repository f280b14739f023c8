package inventory

import (
	"supplyhr/internal/middleware"
	"supplyhr/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	items := r.Group("/inventory")
	items.Use(middleware.AuthMiddleware())
	{
		items.GET("",
			middleware.RBACAuthorize(rbacService, "inventory", "read"),
			handler.GetAll,
		)
		items.GET("/:id",
			middleware.RBACAuthorize(rbacService, "inventory", "read"),
			handler.GetById,
		)
		items.POST("",
			middleware.RBACAuthorize(rbacService, "inventory", "create"),
			handler.Create,
		)
		items.PUT("/:id",
			middleware.RBACAuthorize(rbacService, "inventory", "update"),
			handler.Update,
		)
		items.POST("/:id/adjust",
			middleware.RBACAuthorize(rbacService, "inventory", "adjust"),
			handler.AdjustStock,
		)
		items.DELETE("/:id",
			middleware.RBACAuthorize(rbacService, "inventory", "delete"),
			handler.Delete,
		)
	}
}
