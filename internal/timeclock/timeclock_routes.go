package timeclock

import (
	"tireops/internal/middleware"
	"tireops/internal/rbac"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	h *Handler,
	rbacService rbac.Service,
	logger *zap.Logger,
) {
	group := r.Group("/timeclock")
	group.Use(middleware.AuthMiddleware())
	group.Use(middleware.ExtractUserID())
	group.Use(middleware.ContextLogger(logger))
	{
		// Punch dibatasi per user, satu orang tidak perlu punch berkali-kali per detik
		group.POST("/punch",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "timeclock", "punch"),
			h.Punch,
		)

		group.GET("/summary", middleware.RBACAuthorize(rbacService, "timeclock", "read"), h.GetDailySummary)
		group.GET("/active", middleware.RBACAuthorize(rbacService, "timeclock", "read"), h.GetActiveClocks)

		group.POST("/entries", middleware.RBACAuthorize(rbacService, "timeclock", "manage"), h.AddMissedEntry)
		group.PUT("/entries/:id", middleware.RBACAuthorize(rbacService, "timeclock", "manage"), h.EditEntry)
		group.DELETE("/entries/:id", middleware.RBACAuthorize(rbacService, "timeclock", "manage"), h.DeleteEntry)
		group.POST("/force-clock-out", middleware.RBACAuthorize(rbacService, "timeclock", "manage"), h.ForceClockOut)

		group.POST("/corrections", middleware.RBACAuthorize(rbacService, "correction", "create"), h.SubmitCorrection)
		group.GET("/corrections/pending", middleware.RBACAuthorize(rbacService, "correction", "review"), h.GetPendingCorrections)
		group.POST("/corrections/:id/review", middleware.RBACAuthorize(rbacService, "correction", "review"), h.ReviewCorrection)
	}
}
