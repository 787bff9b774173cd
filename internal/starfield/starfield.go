// Package starfield generates the scrolling parallax background behind the play view.
//
// Stars are not stored. Each layer is an infinite grid of candidate cells and a
// Perlin noise sample decides whether a cell holds a star and where inside the
// cell it sits, so the same camera position always yields the same sky.
package starfield

import (
	"math"

	"github.com/aquilax/go-perlin"

	"github.com/tomz197/voidfighter/internal/config"
)

const (
	layerCount = 3

	// Perlin parameters: smoothing, frequency and octaves.
	noiseAlpha  = 2.0
	noiseBeta   = 2.0
	noiseOctave = int32(3)
)

// Rand is the randomness used for flicker. A nil Rand disables flicker.
type Rand interface {
	Float64() float64
}

// Star is a star projected into view coordinates.
type Star struct {
	X, Y       float64
	Brightness float64 // 0..1, nearer layers are brighter
	Layer      int
}

// Field is a deterministic starfield.
type Field struct {
	cfg      config.StarsConfig
	noise    *perlin.Perlin
	parallax [layerCount]float64
}

// New creates a starfield from the given tuning.
func New(cfg config.StarsConfig) *Field {
	f := &Field{
		cfg:   cfg,
		noise: perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOctave, cfg.Seed),
	}
	for l := range f.parallax {
		f.parallax[l] = cfg.MinParallax + (cfg.MaxParallax-cfg.MinParallax)*float64(l)/float64(layerCount-1)
	}
	return f
}

// sample returns a value in [0, 1) for a grid cell. The channel separates
// independent samples of the same cell.
func (f *Field) sample(col, row, layer, channel int) float64 {
	x := float64(col)*0.37 + float64(layer)*17.13 + float64(channel)*5.71 + 0.13
	y := float64(row)*0.41 + float64(layer)*3.29 + float64(channel)*11.07 + 0.29
	v := math.Abs(f.noise.Noise2D(x, y)) * 1000
	return v - math.Floor(v)
}

// Visible appends the stars inside a viewW x viewH window centred on the camera
// (world coordinates) to dst and returns it. Star positions are relative to the
// window's top-left corner.
func (f *Field) Visible(camX, camY, viewW, viewH float64, rng Rand, dst []Star) []Star {
	spacing := f.cfg.Spacing
	if spacing <= 0 || f.cfg.Density <= 0 {
		return dst
	}

	for layer, p := range f.parallax {
		left := camX*p - viewW/2
		top := camY*p - viewH/2
		brightness := 0.4 + 0.6*float64(layer)/float64(layerCount-1)

		firstCol := int(math.Floor(left / spacing))
		lastCol := int(math.Floor((left + viewW) / spacing))
		firstRow := int(math.Floor(top / spacing))
		lastRow := int(math.Floor((top + viewH) / spacing))

		for row := firstRow; row <= lastRow; row++ {
			for col := firstCol; col <= lastCol; col++ {
				if f.sample(col, row, layer, 0) >= f.cfg.Density {
					continue
				}
				sx := (float64(col)+f.sample(col, row, layer, 1))*spacing - left
				sy := (float64(row)+f.sample(col, row, layer, 2))*spacing - top
				if sx < 0 || sx >= viewW || sy < 0 || sy >= viewH {
					continue
				}

				b := brightness
				if rng != nil && rng.Float64() < f.cfg.FlickerChance {
					b *= 0.5
				}
				dst = append(dst, Star{X: sx, Y: sy, Brightness: b, Layer: layer})
			}
		}
	}
	return dst
}
