package app

import (
	"database/sql"

	"supplyhr/internal/attendance"
	"supplyhr/internal/audit"
	"supplyhr/internal/auth"
	"supplyhr/internal/employee"
	"supplyhr/internal/inventory"
	"supplyhr/internal/messaging/kafka"
	"supplyhr/internal/middleware"
	"supplyhr/internal/purchaseorder"
	"supplyhr/internal/rbac"
	"supplyhr/internal/report"
	"supplyhr/internal/shared/counter"
	"supplyhr/internal/supplier"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	logger := zap.L()

	// --- Repositories ---
	attendanceRepo := attendance.NewRepository(gormDB)
	auditRepo := audit.NewRepository(gormDB)
	authRepo := auth.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	inventoryRepo := inventory.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	purchaseOrderRepo := purchaseorder.NewRepository(gormDB)
	supplierRepo := supplier.NewRepository(gormDB)

	// --- RBAC Core ---
	rbacService, err := rbac.NewService()
	if err != nil {
		return err
	}

	// --- Services ---
	loc, err := attendanceLocation()
	if err != nil {
		return err
	}

	// The employee repository doubles as the badge directory for
	// attendance and the name resolver for reports.
	attendanceService := attendance.NewServiceWithOutbox(db, attendanceRepo, employeeRepo, attendance.NewSystemClock(loc), outboxRepo)
	auditService := audit.NewService(auditRepo)
	authService := auth.NewService(authRepo, employeeRepo)
	employeeService := employee.NewServiceWithOutbox(db, employeeRepo, counterRepo, outboxRepo, rdb)
	inventoryService := inventory.NewService(db, inventoryRepo)
	// Receiving a purchase order books its lines straight into stock.
	purchaseOrderService := purchaseorder.NewServiceWithOutbox(db, purchaseOrderRepo, counterRepo, outboxRepo, inventoryRepo)
	reportService := report.NewService(attendanceRepo, employeeRepo)
	supplierService := supplier.NewService(db, supplierRepo)

	// --- Handlers ---
	attendanceHandler := attendance.NewHandler(attendanceService)
	auditHandler := audit.NewHandler(auditService)
	authHandler := auth.NewHandler(authService)
	employeeHandler := employee.NewHandler(employeeService)
	inventoryHandler := inventory.NewHandler(inventoryService)
	purchaseOrderHandler := purchaseorder.NewHandlerWithRedis(purchaseOrderService, rdb)
	reportHandler := report.NewHandler(reportService)
	supplierHandler := supplier.NewHandler(supplierService)

	// --- Routes Registration ---
	// Request id and scoped logger are installed group-wide so every
	// service log line and outbox event carries them.
	api := router.Group("/api/v1")
	api.Use(middleware.ContextLogger(logger))
	{
		attendance.RegisterRoutes(api, attendanceHandler, rbacService)
		audit.RegisterRoutes(api, auditHandler, rbacService)
		auth.RegisterRoutes(api, authHandler)
		employee.RegisterRoutes(api, employeeHandler, rbacService)
		inventory.RegisterRoutes(api, inventoryHandler, rbacService)
		purchaseorder.RegisterRoutes(api, purchaseOrderHandler, rbacService, rdb)
		report.RegisterRoutes(api, reportHandler, rbacService)
		supplier.RegisterRoutes(api, supplierHandler, rbacService)
	}

	return nil
}
