package physics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	assert.Equal(t, 5.0, Distance(0, 0, 3, 4))
	assert.Equal(t, 25.0, DistanceSquared(0, 0, 3, 4))
}

func TestWithinIsStrict(t *testing.T) {
	assert.True(t, Within(19.9, 0, 0, 0, 20))
	assert.False(t, Within(20, 0, 0, 0, 20))
}

func TestHeading(t *testing.T) {
	x, y := Heading(0)
	assert.InDelta(t, 0, x, 1e-9)
	assert.InDelta(t, -1, y, 1e-9)

	x, y = Heading(90)
	assert.InDelta(t, 1, x, 1e-9)
	assert.InDelta(t, 0, y, 1e-9)
}

func TestDirectionZeroVector(t *testing.T) {
	ux, uy, d := Direction(0, 0)
	assert.Zero(t, ux)
	assert.Zero(t, uy)
	assert.Zero(t, d)
	assert.False(t, math.IsNaN(ux))

	ux, uy, d = Direction(0, 10)
	assert.Equal(t, 0.0, ux)
	assert.Equal(t, 1.0, uy)
	assert.Equal(t, 10.0, d)
}

func TestBearingMatchesHeading(t *testing.T) {
	for _, v := range [][2]float64{{1, 0}, {0, 1}, {-1, 0}, {0, -1}, {3, -4}} {
		hx, hy := Heading(Bearing(v[0], v[1]))
		ux, uy, _ := Direction(v[0], v[1])
		assert.InDelta(t, ux, hx, 1e-9)
		assert.InDelta(t, uy, hy, 1e-9)
	}
}

func TestSignAndClamp(t *testing.T) {
	assert.Equal(t, 1.0, Sign(4))
	assert.Equal(t, -1.0, Sign(-0.1))
	assert.Equal(t, 0.0, Sign(0))
	assert.Equal(t, 100.0, Clamp(120, 0, 100))
	assert.Equal(t, 0.0, Clamp(-3, 0, 100))
}

func TestSpatialHashQueryAround(t *testing.T) {
	h := NewSpatialHash(40)
	h.Insert(0, 0, 0)
	h.Insert(-30, 10, 1)
	h.Insert(500, 500, 2)

	var found []int
	h.QueryAround(5, 5, func(idx int) bool {
		found = append(found, idx)
		return false
	})
	assert.ElementsMatch(t, []int{0, 1}, found)

	h.Clear()
	found = found[:0]
	h.QueryAround(5, 5, func(idx int) bool {
		found = append(found, idx)
		return false
	})
	assert.Empty(t, found)
}

func TestSpatialHashFirstMatchPrefersLowestIndex(t *testing.T) {
	h := NewSpatialHash(40)
	h.Insert(10, 0, 3)
	h.Insert(-10, 0, 1)
	h.Insert(0, 10, 2)

	assert.Equal(t, 1, h.FirstMatch(0, 0, func(int) bool { return true }))
	assert.Equal(t, 2, h.FirstMatch(0, 0, func(idx int) bool { return idx != 1 }))
	assert.Equal(t, -1, h.FirstMatch(0, 0, func(int) bool { return false }))
}
