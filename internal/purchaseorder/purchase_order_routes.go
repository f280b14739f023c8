package purchaseorder

import (
	"supplyhr/internal/middleware"
	"supplyhr/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service, redisClient *redis.Client) {
	orders := r.Group("/purchase-orders")
	orders.Use(middleware.AuthMiddleware())
	{
		orders.GET("",
			middleware.RBACAuthorize(rbacService, "purchase_order", "read"),
			handler.GetAll,
		)
		orders.GET("/:id",
			middleware.RBACAuthorize(rbacService, "purchase_order", "read"),
			handler.GetById,
		)
		orders.POST("",
			middleware.RBACAuthorize(rbacService, "purchase_order", "create"),
			middleware.ExtractUserID(),
			middleware.Idempotency(redisClient),
			handler.Create,
		)
		orders.PUT("/:id",
			middleware.RBACAuthorize(rbacService, "purchase_order", "update"),
			handler.Update,
		)
		orders.POST("/:id/submit",
			middleware.RBACAuthorize(rbacService, "purchase_order", "update"),
			handler.Submit,
		)
		orders.POST("/:id/approve",
			middleware.RBACAuthorize(rbacService, "purchase_order", "approve"),
			handler.Approve,
		)
		orders.POST("/:id/reject",
			middleware.RBACAuthorize(rbacService, "purchase_order", "approve"),
			handler.Reject,
		)
		orders.POST("/:id/receive",
			middleware.RBACAuthorize(rbacService, "purchase_order", "fulfill"),
			handler.Receive,
		)
		orders.POST("/:id/cancel",
			middleware.RBACAuthorize(rbacService, "purchase_order", "update"),
			handler.Cancel,
		)
		orders.DELETE("/:id",
			middleware.RBACAuthorize(rbacService, "purchase_order", "delete"),
			handler.Delete,
		)
	}
}
