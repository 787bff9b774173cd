package starfield

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/voidfighter/internal/config"
)

type constRand float64

func (r constRand) Float64() float64 { return float64(r) }

func denseConfig() config.StarsConfig {
	cfg := config.Default().Stars
	cfg.Density = 1
	cfg.FlickerChance = 0
	return cfg
}

func TestVisibleIsDeterministic(t *testing.T) {
	a := New(config.Default().Stars).Visible(120, -40, 720, 480, nil, nil)
	b := New(config.Default().Stars).Visible(120, -40, 720, 480, nil, nil)
	assert.Equal(t, a, b)
}

func TestVisibleStaysInsideWindow(t *testing.T) {
	stars := New(denseConfig()).Visible(-333, 512, 200, 100, nil, nil)
	require.NotEmpty(t, stars)
	for _, s := range stars {
		assert.GreaterOrEqual(t, s.X, 0.0)
		assert.Less(t, s.X, 200.0)
		assert.GreaterOrEqual(t, s.Y, 0.0)
		assert.Less(t, s.Y, 100.0)
		assert.Greater(t, s.Brightness, 0.0)
	}
}

func TestVisibleEmptyWhenDisabled(t *testing.T) {
	cfg := denseConfig()
	cfg.Density = 0
	assert.Empty(t, New(cfg).Visible(0, 0, 720, 480, nil, nil))

	cfg = denseConfig()
	cfg.Spacing = 0
	assert.Empty(t, New(cfg).Visible(0, 0, 720, 480, nil, nil))
}

func TestVisibleParallax(t *testing.T) {
	cfg := denseConfig()
	cfg.MinParallax = 0.5
	cfg.MaxParallax = 0.5
	f := New(cfg)

	before := f.Visible(0, 0, 400, 400, nil, nil)
	after := f.Visible(20, 0, 400, 400, nil, nil)

	// Moving the camera 20 units right shifts every star 10 units left.
	var checked int
	for _, s := range before {
		if s.X < 50 {
			continue
		}
		found := false
		for _, m := range after {
			if m.Layer == s.Layer && m.Y == s.Y && abs(m.X-(s.X-10)) < 1e-9 {
				found = true
				break
			}
		}
		assert.True(t, found, "star at %.2f,%.2f", s.X, s.Y)
		checked++
	}
	assert.Positive(t, checked)
}

func TestFlickerDimsStars(t *testing.T) {
	cfg := denseConfig()
	cfg.FlickerChance = 1
	f := New(cfg)

	steady := f.Visible(0, 0, 100, 100, nil, nil)
	dimmed := f.Visible(0, 0, 100, 100, constRand(0), nil)
	require.Equal(t, len(steady), len(dimmed))
	for i := range steady {
		assert.InDelta(t, steady[i].Brightness/2, dimmed[i].Brightness, 1e-9)
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
