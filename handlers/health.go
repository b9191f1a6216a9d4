package handlers

import (
	"net/http"

	"hoteltriggers/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler serves the latest dependency health snapshot.
func HealthHandler(status func() utils.HealthStatus) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := status()
		code := http.StatusOK
		if !s.Healthy {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, s)
	}
}
