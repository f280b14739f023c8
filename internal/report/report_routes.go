package report

import (
	"supplyhr/internal/middleware"
	"supplyhr/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	reports := r.Group("/reports")
	reports.Use(middleware.AuthMiddleware())
	{
		reports.GET("/attendance",
			middleware.RBACAuthorize(rbacService, "report", "read"),
			handler.AttendanceReport,
		)
	}
}
