package api

import (
	"newsdesk/feed"
	"newsdesk/scheduler"

	"github.com/gin-gonic/gin"
)

// NewRouter constructs a Gin engine with registered routes.
func NewRouter(sched *scheduler.Scheduler, pool *feed.Pool) *gin.Engine {
	r := gin.New()
	// Minimal middleware: recovery; logger optional to reduce verbosity
	r.Use(gin.Recovery())

	// Register resource routers
	RegisterGenerationRoutes(r, sched, pool)
	RegisterPoolRoutes(r, pool)
	RegisterHealthRoutes(r)
	return r
}
