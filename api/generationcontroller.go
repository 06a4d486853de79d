package api

import (
	"net/http"

	"newsdesk/feed"
	"newsdesk/scheduler"
	"newsdesk/types"

	"github.com/gin-gonic/gin"
)

// RegisterGenerationRoutes registers the operator controls for the
// auto-generation loop.
func RegisterGenerationRoutes(r *gin.Engine, sched *scheduler.Scheduler, pool *feed.Pool) {
	g := r.Group("/api/generation")
	g.POST("/start", handleStart(sched))
	g.POST("/stop", handleStop(sched))
	g.GET("/status", handleStatus(sched, pool))
	g.GET("/logs", handleLogs(sched))
	g.PUT("/window", handleSetWindow(pool))
}

func handleStart(sched *scheduler.Scheduler) gin.HandlerFunc {
	return func(c *gin.Context) {
		sched.Start()
		c.JSON(http.StatusOK, gin.H{"status": "started"})
	}
}

func handleStop(sched *scheduler.Scheduler) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Stop waits for the loop to exit; run it off the request path
		// so the response is immediate.
		go sched.Stop()
		c.JSON(http.StatusAccepted, gin.H{"status": "stopping"})
	}
}

func handleStatus(sched *scheduler.Scheduler, pool *feed.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := sched.Status()
		status.Window = pool.Window()
		c.JSON(http.StatusOK, status)
	}
}

func handleLogs(sched *scheduler.Scheduler) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"logs": sched.Log().Entries()})
	}
}

// SetWindowRequest selects the pool's recency window.
type SetWindowRequest struct {
	Window string `json:"window" binding:"required"`
}

func handleSetWindow(pool *feed.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SetWindowRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		window, err := types.ParseWindow(req.Window)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		pool.SetWindow(window)
		c.JSON(http.StatusOK, gin.H{"window": window})
	}
}
