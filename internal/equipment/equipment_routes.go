package equipment

import (
	"tireops/internal/middleware"
	"tireops/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	h *Handler,
	rbacService rbac.Service,
	rdb ...*redis.Client,
) {
	var redisClient *redis.Client
	if len(rdb) > 0 {
		redisClient = rdb[0]
	}

	group := r.Group("/equipment")
	group.Use(middleware.AuthMiddleware())
	{
		group.GET("", middleware.RBACAuthorize(rbacService, "equipment", "read"), h.GetAll)
		group.GET("/:id", middleware.RBACAuthorize(rbacService, "equipment", "read"), h.GetById)
		group.GET("/:id/history", middleware.RBACAuthorize(rbacService, "equipment", "read"), h.GetHistory)
		group.GET("/:id/agreements", middleware.RBACAuthorize(rbacService, "equipment", "read"), h.GetAgreements)

		group.POST("", middleware.RBACAuthorize(rbacService, "equipment", "create"), h.Create)
		if redisClient != nil {
			group.POST(
				"/:id/assign",
				middleware.ExtractUserID(),
				middleware.Idempotency(redisClient),
				middleware.RBACAuthorize(rbacService, "equipment", "assign"),
				h.Assign,
			)
		} else {
			group.POST("/:id/assign", middleware.RBACAuthorize(rbacService, "equipment", "assign"), h.Assign)
		}
		group.POST("/:id/return", middleware.RBACAuthorize(rbacService, "equipment", "return"), h.Return)
		group.POST("/:id/reassign", middleware.RBACAuthorize(rbacService, "equipment", "reassign"), h.Reassign)
		group.POST("/:id/retire", middleware.RBACAuthorize(rbacService, "equipment", "retire"), h.Retire)
		group.PUT("/:id/status", middleware.RBACAuthorize(rbacService, "equipment", "manage"), h.UpdateStatus)

		group.DELETE("/:id", middleware.RBACAuthorize(rbacService, "equipment", "delete"), h.Delete)
	}
}
