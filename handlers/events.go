package handlers

import (
	"context"
	"net/http"
	"time"

	"hoteltriggers/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Dispatcher runs the triggers bound to a change event.
type Dispatcher interface {
	Dispatch(ctx context.Context, evt models.ChangeEvent) error
}

// EventHandler receives document change events pushed by the trigger platform.
type EventHandler struct {
	dispatcher Dispatcher
	timeout    time.Duration
}

func NewEventHandler(d Dispatcher, timeout time.Duration) *EventHandler {
	return &EventHandler{dispatcher: d, timeout: timeout}
}

// HandleEvent answers 200 when every trigger completed (no-ops included),
// 400 for envelopes that can never be processed and 500 so the platform retries.
func (h *EventHandler) HandleEvent(c *gin.Context) {
	logger := getLogger(c)

	var env models.TriggerEnvelope
	if err := c.ShouldBindJSON(&env); err != nil {
		logger.Warn("invalid event envelope", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event envelope", "details": err.Error()})
		return
	}

	evt, err := env.ChangeEvent()
	if err != nil {
		logger.Warn("undecodable change event", zap.String("eventId", env.Context.EventID), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "undecodable change event", "details": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	if err := h.dispatcher.Dispatch(ctx, evt); err != nil {
		logger.Error("event handling failed",
			zap.String("eventId", evt.ID),
			zap.String("path", evt.Path),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "event handling failed", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
