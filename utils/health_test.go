package utils_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"hoteltriggers/utils"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestHealthMonitor_Check(t *testing.T) {
	h := utils.NewHealthMonitor(time.Minute, zap.NewNop())
	assert.True(t, h.Status().Healthy, "healthy until first check")

	h.Add("mongo", func(context.Context) error { return nil })
	h.Add("redis", func(context.Context) error { return errors.New("connection refused") })

	s := h.Check(context.Background())
	assert.False(t, s.Healthy)
	assert.Equal(t, map[string]bool{"mongo": true, "redis": false}, s.Checks)
	assert.Equal(t, s, h.Status())
}

func TestNewLogger(t *testing.T) {
	l, err := utils.NewLogger(true, "warn")
	assert.NoError(t, err)
	assert.False(t, l.Core().Enabled(zap.InfoLevel))

	l, err = utils.NewLogger(false, "")
	assert.NoError(t, err)
	assert.True(t, l.Core().Enabled(zap.DebugLevel))

	l, err = utils.NewLogger(true, "")
	assert.NoError(t, err)
	assert.False(t, l.Core().Enabled(zap.DebugLevel))

	_, err = utils.NewLogger(false, "loud")
	assert.Error(t, err)
}
