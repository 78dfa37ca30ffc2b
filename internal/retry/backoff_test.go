package retry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExponentialBackoff_Defaults(t *testing.T) {
	b := NewExponentialBackoff(3, WithJitter(0))

	assert.Equal(t, 3, b.MaxAttempts())
	assert.Equal(t, 100*time.Millisecond, b.NextDelay(0))
	assert.Equal(t, 200*time.Millisecond, b.NextDelay(1))
}

func TestExponentialBackoff_NextDelay(t *testing.T) {
	b := NewExponentialBackoff(10,
		WithInitialDelay(50*time.Millisecond),
		WithMultiplier(3),
		WithMaxDelay(time.Second),
		WithJitter(0),
	)

	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{0, 50 * time.Millisecond},
		{1, 150 * time.Millisecond},
		{2, 450 * time.Millisecond},
		{3, time.Second},
		{20, time.Second},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, b.NextDelay(tt.attempt), "attempt %d", tt.attempt)
	}
}

func TestExponentialBackoff_Jitter(t *testing.T) {
	tests := []struct {
		name   string
		random float64
		want   time.Duration
	}{
		{"lowest", 0.0, 90 * time.Millisecond},
		{"middle", 0.5, 100 * time.Millisecond},
		{"high", 0.75, 105 * time.Millisecond},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewExponentialBackoff(1,
				WithInitialDelay(100*time.Millisecond),
				WithJitter(0.1),
				WithRandom(func() float64 { return tt.random }),
			)
			assert.InDelta(t, float64(tt.want), float64(b.NextDelay(0)), float64(time.Microsecond))
		})
	}
}
