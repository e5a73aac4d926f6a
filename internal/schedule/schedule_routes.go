package schedule

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
	schedules := r.Group("/schedules")
	schedules.Use(middleware.AuthMiddleware())
	{
		schedules.GET("/person/:personId", middleware.RBACAuthorize(rbacService, "schedule", "read"), handler.GetAllByPerson)
		schedules.POST("", middleware.RBACAuthorize(rbacService, "schedule", "create"), handler.Create)
		schedules.PUT("/:id", middleware.RBACAuthorize(rbacService, "schedule", "update"), handler.Update)
		schedules.DELETE("/:id", middleware.RBACAuthorize(rbacService, "schedule", "update"), handler.Delete)
	}
}
