package app

import (
	"database/sql"
	"os"
	"path/filepath"

	"campus-hr/internal/attendance"
	"campus-hr/internal/auth"
	"campus-hr/internal/config"
	"campus-hr/internal/employee"
	"campus-hr/internal/messaging/kafka"
	"campus-hr/internal/middleware"
	"campus-hr/internal/payroll"
	"campus-hr/internal/rbac"
	"campus-hr/internal/rbac/infra"
	"campus-hr/internal/request"
	"campus-hr/internal/schedule"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	engine config.Engine,
) error {
	// --- Repositories ---
	employeeRepo := employee.NewRepository(gormDB)
	scheduleRepo := schedule.NewRepository(gormDB)
	attendanceRepo := attendance.NewRepository(gormDB)
	payrollRepo := payroll.NewRepository(gormDB)
	requestRepo := request.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	modelPath := os.Getenv("RBAC_MODEL_PATH")
	if modelPath == "" {
		modelPath = filepath.Join("config", "rbac", "model.conf")
	}
	policyPath := os.Getenv("RBAC_POLICY_PATH")
	if policyPath == "" {
		policyPath = filepath.Join("config", "rbac", "policy.csv")
	}
	enforcer, err := infra.NewEnforcer(modelPath, policyPath)
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(enforcer)

	// --- Services ---
	authService := auth.NewService(employeeRepo)
	employeeService := employee.NewService(db, employeeRepo)
	scheduleService := schedule.NewService(db, scheduleRepo, engine.StoreTimeout)
	attendanceService := attendance.NewService(db, attendanceRepo, scheduleRepo, engine.GraceMinutes, engine.StoreTimeout)
	payrollService := payroll.NewService(db, payrollRepo, employeeRepo, attendanceService, outboxRepo, engine)
	requestService := request.NewService(db, requestRepo, employeeRepo, outboxRepo, engine)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	employeeHandler := employee.NewHandler(employeeService)
	scheduleHandler := schedule.NewHandler(scheduleService)
	attendanceHandler := attendance.NewHandler(attendanceService)
	payrollHandler := payroll.NewHandlerWithRedis(payrollService, rdb)
	requestHandler := request.NewHandler(requestService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	api.Use(middleware.Idempotency(rdb))
	{
		auth.RegisterRoutes(api, authHandler)
		employee.RegisterRoutes(api, employeeHandler, rbacService)
		schedule.RegisterRoutes(api, scheduleHandler, rbacService)
		attendance.RegisterRoutes(api, attendanceHandler, rbacService)
		payroll.RegisterRoutes(api, payrollHandler, rbacService)
		request.RegisterRoutes(api, requestHandler, rbacService)
	}

	return nil
}
