package routes

import (
	"hoteltriggers/handlers"
	"hoteltriggers/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the trigger ingress and health endpoints.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.Health)

	events := r.Group("/events")
	{
		events.Use(middleware.RateLimitMiddleware(hb.MaxRequestsPerMin))
		events.POST("", hb.HandleEvent)
	}
}
