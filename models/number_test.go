package models_test

import (
	"math"
	"testing"

	"hoteltriggers/models"

	"github.com/stretchr/testify/assert"
)

func TestDecodeNumber(t *testing.T) {
	tests := []struct {
		in    any
		want  models.OptionalFloat
		valid bool
	}{
		{in: int64(100), want: models.Float(100), valid: true},
		{in: 49.5, want: models.Float(49.5), valid: true},
		{in: int32(7), want: models.Float(7), valid: true},
		{in: uint8(3), want: models.Float(3), valid: true},
		{in: float32(2.5), want: models.Float(2.5), valid: true},
		{in: 0, want: models.Float(0), valid: false},
		{in: -10, want: models.Float(-10), valid: false},
		{in: "100", want: models.OptionalFloat{}, valid: false},
		{in: true, want: models.OptionalFloat{}, valid: false},
		{in: nil, want: models.OptionalFloat{}, valid: false},
		{in: map[string]any{"v": 1}, want: models.OptionalFloat{}, valid: false},
	}
	for _, tt := range tests {
		got := models.DecodeNumber(tt.in)
		assert.Equal(t, tt.want, got, "%#v", tt.in)
		assert.Equal(t, tt.valid, models.IsValidPrice(got), "%#v", tt.in)
	}

	assert.False(t, models.IsValidPrice(models.Float(math.NaN())))
	assert.True(t, models.IsValidPrice(models.Float(math.Inf(1))))
}

func TestMinValidPrice(t *testing.T) {
	rooms := []models.Room{
		{ID: "a", PricePerNight: models.DecodeNumber(100)},
		{ID: "b", PricePerNight: models.DecodeNumber(50)},
		{ID: "c", PricePerNight: models.DecodeNumber(-10)},
		{ID: "d", PricePerNight: models.DecodeNumber("bad")},
		{ID: "e", PricePerNight: models.DecodeNumber(nil)},
	}
	assert.Equal(t, 50.0, models.MinValidPrice(rooms))
	assert.Equal(t, 0.0, models.MinValidPrice(nil))
	assert.Equal(t, 0.0, models.MinValidPrice(rooms[2:]))
}
