package app

import (
	"database/sql"
	"os"
	"strconv"

	"tireops/internal/attendance"
	"tireops/internal/auth"
	"tireops/internal/equipment"
	"tireops/internal/history"
	"tireops/internal/messaging/kafka"
	"tireops/internal/personnel"
	"tireops/internal/rbac"
	"tireops/internal/rbac/infra"
	"tireops/internal/shared/counter"
	"tireops/internal/timeclock"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	attendanceRepo := attendance.NewRepository(gormDB)
	authRepo := auth.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	equipmentRepo := equipment.NewRepository(gormDB)
	historyRepo := history.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	personnelRepo := personnel.NewRepository(gormDB)
	timeclockRepo := timeclock.NewRepository(gormDB)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService, err := rbac.NewService(enforcer)
	if err != nil {
		return err
	}

	// --- Services ---
	authService := auth.NewService(authRepo)
	personnelService := personnel.NewService(db, personnelRepo, counterRepo, rdb)
	equipmentService := equipment.NewServiceWithOutbox(db, equipmentRepo, historyRepo, personnelRepo, outboxRepo)
	timeclockService := timeclock.NewService(db, timeclockRepo, personnelRepo, rdb)
	attendanceService := attendance.NewServiceWithOutbox(db, attendanceRepo, personnelRepo, timeclockRepo, outboxRepo, attendanceConfigFromEnv())

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	personnelHandler := personnel.NewHandler(personnelService)
	equipmentHandler := equipment.NewHandler(equipmentService)
	timeclockHandler := timeclock.NewHandler(timeclockService)
	attendanceHandler := attendance.NewHandler(attendanceService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		personnel.RegisterRoutes(api, personnelHandler, rbacService)
		equipment.RegisterRoutes(api, equipmentHandler, rbacService, rdb)
		timeclock.RegisterRoutes(api, timeclockHandler, rbacService, zap.L().Named("timeclock"))
		attendance.RegisterRoutes(api, attendanceHandler, rbacService)
	}

	return nil
}

// attendanceConfigFromEnv membaca threshold keterlambatan dari environment,
// fallback ke default saat kosong atau tidak valid.
func attendanceConfigFromEnv() attendance.Config {
	cfg := attendance.DefaultConfig()
	cfg.GraceMinutes = envMinutes("ATTENDANCE_GRACE_MINUTES", cfg.GraceMinutes)
	cfg.LateBufferMinutes = envMinutes("ATTENDANCE_LATE_BUFFER_MINUTES", cfg.LateBufferMinutes)
	cfg.NoShowCutoffMinutes = envMinutes("ATTENDANCE_NO_SHOW_CUTOFF_MINUTES", cfg.NoShowCutoffMinutes)
	return cfg
}

func envMinutes(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return fallback
	}
	return v
}
