package request

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
	requests := r.Group("/requests")
	requests.Use(middleware.AuthMiddleware())
	{
		requests.POST("", middleware.RBACAuthorize(rbacService, "request", "create"), handler.Create)
		requests.GET("", middleware.RBACAuthorize(rbacService, "request", "list"), handler.List)
		requests.GET("/mine", middleware.RBACAuthorize(rbacService, "request", "create"), handler.ListMine)
		requests.GET("/:id", middleware.RBACAuthorize(rbacService, "request", "read"), handler.GetByID)
		requests.GET("/:id/audit", middleware.RBACAuthorize(rbacService, "request", "read"), handler.GetAuditTrail)
		requests.POST("/:id/approve", middleware.RBACAuthorize(rbacService, "request", "approve"), handler.Approve)
		requests.POST("/:id/reject", middleware.RBACAuthorize(rbacService, "request", "approve"), handler.Reject)
		requests.POST("/:id/guard-approve", middleware.RBACAuthorize(rbacService, "request", "gate"), handler.GuardApprove)
		requests.POST("/:id/guard-unapprove", middleware.RBACAuthorize(rbacService, "request", "gate"), handler.GuardUnapprove)
		requests.POST("/:id/cancel", middleware.RBACAuthorize(rbacService, "request", "create"), handler.Cancel)
	}
}
