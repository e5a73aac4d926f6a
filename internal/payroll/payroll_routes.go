package payroll

import (
	"campus-hr/internal/middleware"
	"campus-hr/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
) {
	payrolls := r.Group("/payrolls")
	payrolls.Use(middleware.AuthMiddleware())
	{
		payrolls.POST("/recompute", middleware.RBACAuthorize(rbacService, "payroll", "write"), handler.Recompute)
		payrolls.GET("/:id", middleware.RBACAuthorize(rbacService, "payroll", "read"), handler.GetByID)
		payrolls.GET("/person/:personId", middleware.RBACAuthorize(rbacService, "payroll", "read"), handler.GetByPerson)
		payrolls.GET("/person/:personId/summary", middleware.RBACAuthorize(rbacService, "payroll", "read"), handler.Summary)
		payrolls.POST("/:id/finalize", middleware.RBACAuthorize(rbacService, "payroll", "finalize"), handler.Finalize)
		payrolls.POST("/:id/mark-paid", middleware.RBACAuthorize(rbacService, "payroll", "finalize"), handler.MarkPaid)
	}
}
