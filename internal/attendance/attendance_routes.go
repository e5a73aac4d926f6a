package attendance

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
	attendances := r.Group("/attendances")
	attendances.Use(middleware.AuthMiddleware())
	{
		attendances.POST("/check-in", middleware.RBACAuthorize(rbacService, "attendance", "record"), handler.CheckIn)
		attendances.POST("/check-out", middleware.RBACAuthorize(rbacService, "attendance", "record"), handler.CheckOut)
		attendances.GET("/person/:personId/events", middleware.RBACAuthorize(rbacService, "attendance", "read"), handler.GetEvents)
		attendances.GET("/person/:personId/resolved", middleware.RBACAuthorize(rbacService, "attendance", "read"), handler.ResolveDay)
		attendances.GET("/person/:personId/resolved-range", middleware.RBACAuthorize(rbacService, "attendance", "read"), handler.ResolveRange)
	}
}
