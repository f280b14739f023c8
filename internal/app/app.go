package app

import (
	"os"
	"time"

	"supplyhr/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// attendanceLocation is the zone the 08:30 cutoff and the "today" boundary
// live in. The absence scan must use the same zone as the service clock or
// the two disagree about which day is over.
func attendanceLocation() (*time.Location, error) {
	if tz := os.Getenv("ATTENDANCE_TZ"); tz != "" {
		return time.LoadLocation(tz)
	}
	return time.UTC, nil
}

// previousScanDay is the most recent calendar day in loc that has fully
// ended, the day the absence scan targets.
func previousScanDay(now time.Time, loc *time.Location) time.Time {
	return now.In(loc).AddDate(0, 0, -1)
}

func BuildApp(router *gin.Engine) error {
	logger := zap.L().Named("app")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}
	logger.Info("database connection established")

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}
	logger.Info("redis connection established")

	return registerModules(router, sqlDB, gormDB, redisClient)
}
