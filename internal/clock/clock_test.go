package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestManual(t *testing.T) {
	c := NewManual(1000)
	assert.Equal(t, 1000.0, c.Now())

	c.Advance(16)
	assert.Equal(t, 1016.0, c.Now())

	c.Advance(-50)
	assert.Equal(t, 1016.0, c.Now())

	c.Set(900)
	assert.Equal(t, 1016.0, c.Now(), "clock never runs backwards")

	c.Set(5000)
	assert.Equal(t, 5000.0, c.Now())
}

func TestMonotonic(t *testing.T) {
	c := NewMonotonic()
	first := c.Now()
	time.Sleep(2 * time.Millisecond)
	second := c.Now()

	assert.GreaterOrEqual(t, first, 0.0)
	assert.Greater(t, second, first)
}
