package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	HandleEvent gin.HandlerFunc
	Health      gin.HandlerFunc

	MaxRequestsPerMin int
}
