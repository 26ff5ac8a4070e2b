package personnel

import (
	"tireops/internal/middleware"
	"tireops/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	group := r.Group("/personnel")
	group.Use(middleware.AuthMiddleware())
	{
		group.GET("", middleware.RBACAuthorize(rbacService, "personnel", "read"), h.GetAll)
		group.GET("/options", middleware.RBACAuthorize(rbacService, "personnel", "read"), h.GetOptions)
		group.GET("/:id", middleware.RBACAuthorize(rbacService, "personnel", "read"), h.GetById)
		group.POST("", middleware.RBACAuthorize(rbacService, "personnel", "manage"), h.Create)
		group.PUT("/:id", middleware.RBACAuthorize(rbacService, "personnel", "manage"), h.Update)
		group.DELETE("/:id", middleware.RBACAuthorize(rbacService, "personnel", "manage"), h.Delete)
	}
}
