package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gemura/gemura-backend/internal/platform/cache"
)

// healthzHandler reports liveness plus the state of the backing services.
// A degraded cache does not fail the check; an unreachable database does.
func healthzHandler(pool *pgxpool.Pool, c *cache.Cache) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		checkCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
		defer cancel()

		overall := "up"
		status := http.StatusOK
		dbStatus := "ok"
		if err := pool.Ping(checkCtx); err != nil {
			overall = "down"
			status = http.StatusServiceUnavailable
			dbStatus = "unreachable"
		}

		cacheStatus := "ok"
		if !c.IsHealthy() {
			cacheStatus = "degraded"
		}

		ctx.JSON(status, gin.H{
			"status":   overall,
			"database": dbStatus,
			"cache":    cacheStatus,
		})
	}
}
