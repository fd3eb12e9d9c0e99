package clock_test

import (
	"testing"
	"time"

	"github.com/ramanasai/moodpulse/internal/clock"
	"github.com/stretchr/testify/assert"
)

func TestDefaultClock(t *testing.T) {
	assert.WithinDuration(t, time.Now(), clock.DefaultClock{}.Now(), time.Second)
}

func TestTestClock(t *testing.T) {
	point := time.Date(2024, 1, 5, 23, 30, 0, 0, time.UTC)
	c := clock.NewTestClockAt(point)
	assert.Equal(t, point, c.Now())
	assert.Equal(t, point, c.Now())

	assert.Equal(t, point.Add(time.Hour), c.FastForward(time.Hour))
	assert.Equal(t, point.Add(time.Hour), c.Now())
}
