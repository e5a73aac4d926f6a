package employee

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
	persons := r.Group("/persons")
	persons.Use(middleware.AuthMiddleware())
	{
		persons.GET("", middleware.RBACAuthorize(rbacService, "person", "read"), handler.GetAll)
		persons.GET("/:id", middleware.RBACAuthorize(rbacService, "person", "read"), handler.GetByID)
		persons.POST("", middleware.RBACAuthorize(rbacService, "person", "create"), handler.Create)
	}
}
