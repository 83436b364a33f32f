package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/wewg24/rlc-bingo-manager-v2/internal/infra"
	"github.com/wewg24/rlc-bingo-manager-v2/internal/worker"
)

// Health returns a JSON health check response.
// Checks DB and Redis connectivity and reports the program-service breaker
// state and the depth of the parked-reports queue; never exposes credentials
// or internals.
func Health(db *gorm.DB, rdb *redis.Client, programCB *infra.CircuitBreaker) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		dbStatus := "connected"
		sqlDB, err := db.DB()
		if err != nil || sqlDB.PingContext(ctx) != nil {
			dbStatus = "error"
		}

		redisStatus := "connected"
		if rdb.Ping(ctx).Err() != nil {
			redisStatus = "error"
		}

		// -1 when redis is unreachable; a non-zero depth means reports are
		// parked and waiting on a manual retry.
		reportsDLQ := int64(-1)
		if n, err := worker.DLQLength(ctx, rdb, worker.QueueReport); err == nil {
			reportsDLQ = n
		}

		status := http.StatusOK
		if dbStatus != "connected" || redisStatus != "connected" {
			status = http.StatusServiceUnavailable
		}

		c.JSON(status, gin.H{
			"ok":              status == http.StatusOK,
			"db":              dbStatus,
			"redis":           redisStatus,
			"program_service": programCB.State().String(),
			"reports_dlq":     reportsDLQ,
		})
	}
}
