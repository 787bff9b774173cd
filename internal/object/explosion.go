package object

import "math"

// Explosion burst sizes and timings, in ticks.
const (
	ParticleCount = 20
	DebrisCount   = 8
	DebrisLife    = 120
)

// Particle is a glowing spark flung from an explosion.
type Particle struct {
	X, Y     float64
	VX, VY   float64
	Life     float64
	MaxLife  float64
	Rotation float64
}

// Opacity fades linearly over the particle's life.
func (p Particle) Opacity() float64 {
	if p.MaxLife <= 0 {
		return 0
	}
	return p.Life / p.MaxLife
}

// Debris is a tumbling hull fragment, only produced when the player dies.
type Debris struct {
	X, Y          float64
	VX, VY        float64
	Rotation      float64
	RotationSpeed float64
	Life          float64
	Size          float64
}

// Opacity fades linearly over the fixed debris lifetime.
func (d Debris) Opacity() float64 {
	return d.Life / DebrisLife
}

// Explosion is a burst of particles and, for the player, debris.
type Explosion struct {
	X, Y      float64
	IsPlayer  bool
	Particles []Particle
	Debris    []Debris
}

// NewExplosion bursts at (x, y). Player explosions add hull debris.
func NewExplosion(x, y float64, isPlayer bool, rng Rand) *Explosion {
	e := &Explosion{
		X:         x,
		Y:         y,
		IsPlayer:  isPlayer,
		Particles: make([]Particle, 0, ParticleCount),
	}

	for i := 0; i < ParticleCount; i++ {
		angle := rng.Float64() * 2 * math.Pi
		speed := 2 + rng.Float64()*3
		life := 60 + rng.Float64()*20
		e.Particles = append(e.Particles, Particle{
			X:        x,
			Y:        y,
			VX:       math.Cos(angle) * speed,
			VY:       math.Sin(angle) * speed,
			Life:     life,
			MaxLife:  life,
			Rotation: rng.Float64() * 360,
		})
	}

	if isPlayer {
		e.Debris = make([]Debris, 0, DebrisCount)
		for i := 0; i < DebrisCount; i++ {
			angle := rng.Float64() * 2 * math.Pi
			speed := 1 + rng.Float64()*2
			e.Debris = append(e.Debris, Debris{
				X:             x,
				Y:             y,
				VX:            math.Cos(angle) * speed,
				VY:            math.Sin(angle) * speed,
				Rotation:      rng.Float64() * 360,
				RotationSpeed: (rng.Float64() - 0.5) * 10,
				Life:          DebrisLife,
				Size:          5 + rng.Float64()*10,
			})
		}
	}

	return e
}

// Update ages every element by one tick, pruning the dead ones.
// Returns whether anything is still visible.
func (e *Explosion) Update() bool {
	particles := e.Particles[:0]
	for _, p := range e.Particles {
		p.Life--
		if p.Life <= 0 {
			continue
		}
		p.X += p.VX
		p.Y += p.VY
		p.Rotation += 10
		particles = append(particles, p)
	}
	e.Particles = particles

	debris := e.Debris[:0]
	for _, d := range e.Debris {
		d.Life--
		if d.Life <= 0 {
			continue
		}
		d.X += d.VX
		d.Y += d.VY
		d.Rotation += d.RotationSpeed
		debris = append(debris, d)
	}
	e.Debris = debris

	return e.Active()
}

// Active reports whether any particle or debris remains.
func (e *Explosion) Active() bool {
	return len(e.Particles) > 0 || len(e.Debris) > 0
}
