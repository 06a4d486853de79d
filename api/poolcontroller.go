package api

import (
	"context"
	"net/http"

	"newsdesk/feed"

	"github.com/gin-gonic/gin"
)

// RegisterPoolRoutes registers source-pool endpoints.
func RegisterPoolRoutes(r *gin.Engine, pool *feed.Pool) {
	g := r.Group("/api/pool")
	g.GET("", handlePoolSnapshot(pool))
	g.POST("/refresh", handlePoolRefresh(pool))
}

func handlePoolSnapshot(pool *feed.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		items := pool.Snapshot()
		c.JSON(http.StatusOK, gin.H{
			"window": pool.Window(),
			"total":  pool.Size(),
			"count":  len(items),
			"items":  items,
		})
	}
}

// handlePoolRefresh triggers an out-of-band refresh. It runs asynchronously
// and returns 202 Accepted immediately.
func handlePoolRefresh(pool *feed.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		go pool.Refresh(context.Background())
		c.JSON(http.StatusAccepted, gin.H{"status": "refresh started"})
	}
}
