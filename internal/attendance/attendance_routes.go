package attendance

import (
	"tireops/internal/middleware"
	"tireops/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	group := r.Group("/attendance")
	group.Use(middleware.AuthMiddleware())
	{
		group.GET("/live", middleware.RBACAuthorize(rbacService, "attendance", "read"), h.GetTodayLive)
		group.GET("/issues", middleware.RBACAuthorize(rbacService, "attendance", "read"), h.GetIssues)

		group.POST("/writeups", middleware.RBACAuthorize(rbacService, "writeup", "create"), h.CreateWriteUp)
		group.GET("/writeups/:personnelId", middleware.RBACAuthorize(rbacService, "attendance", "read"), h.GetWriteUps)
	}
}
