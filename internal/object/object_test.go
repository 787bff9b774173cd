package object

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedRand always returns the same value.
type fixedRand float64

func (f fixedRand) Float64() float64 { return float64(f) }

func TestBodyIntegrate(t *testing.T) {
	b := Body{X: 1, Y: 2, VX: 3, VY: -4}
	b.Integrate()
	x, y := b.Position()
	assert.Equal(t, 4.0, x)
	assert.Equal(t, -2.0, y)
}

func TestProjectileHeading(t *testing.T) {
	p := NewProjectile(10, 10, 90, 15, 1, OwnerPlayer)
	assert.InDelta(t, 15, p.VX, 1e-9)
	assert.InDelta(t, 0, p.VY, 1e-9)
	assert.Equal(t, ProjectileLife, p.Life)
	assert.Equal(t, 1, p.Weapon)

	p.Advance()
	assert.InDelta(t, 25, p.X, 1e-9)
	assert.Equal(t, ProjectileLife-1, p.Life)
}

func TestProjectileLifeOneExpiresAfterOneTick(t *testing.T) {
	p := NewProjectile(0, 0, 0, 8, 0, OwnerEnemy)
	p.Life = 1
	assert.False(t, p.IsDestroyed())

	p.Advance()
	assert.True(t, p.Expired())
	assert.True(t, p.IsDestroyed())
}

func TestProjectileMarkDestroyed(t *testing.T) {
	p := NewProjectile(0, 0, 0, 8, 0, OwnerEnemy)
	p.MarkDestroyed()
	assert.True(t, p.IsDestroyed())
	assert.False(t, p.Expired())
}

func TestNewExplosionCounts(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	small := NewExplosion(5, 5, false, rng)
	assert.Len(t, small.Particles, ParticleCount)
	assert.Empty(t, small.Debris)

	large := NewExplosion(5, 5, true, rng)
	assert.Len(t, large.Particles, ParticleCount)
	assert.Len(t, large.Debris, DebrisCount)

	for _, p := range large.Particles {
		assert.GreaterOrEqual(t, p.Life, 60.0)
		assert.Less(t, p.Life, 80.0)
		assert.Equal(t, p.Life, p.MaxLife)
		assert.Equal(t, 1.0, p.Opacity())
	}
	for _, d := range large.Debris {
		assert.Equal(t, float64(DebrisLife), d.Life)
		assert.GreaterOrEqual(t, d.Size, 5.0)
		assert.Less(t, d.Size, 15.0)
		assert.GreaterOrEqual(t, d.RotationSpeed, -5.0)
		assert.Less(t, d.RotationSpeed, 5.0)
	}
}

func TestExplosionUpdateMovesAndFades(t *testing.T) {
	e := NewExplosion(0, 0, false, fixedRand(0))
	p0 := e.Particles[0]
	require.Equal(t, 60.0, p0.Life)

	assert.True(t, e.Update())
	p := e.Particles[0]
	assert.Equal(t, 59.0, p.Life)
	assert.InDelta(t, 59.0/60.0, p.Opacity(), 1e-9)
	assert.Equal(t, p0.Rotation+10, p.Rotation)
	assert.InDelta(t, p0.VX, p.X, 1e-9)
}

func TestExplosionEndsOnLastParticleTick(t *testing.T) {
	e := NewExplosion(0, 0, false, fixedRand(0))

	for i := 0; i < 59; i++ {
		require.True(t, e.Update(), "tick %d", i)
	}
	assert.False(t, e.Update())
	assert.Empty(t, e.Particles)
}

func TestPlayerExplosionOutlivesParticles(t *testing.T) {
	e := NewExplosion(0, 0, true, fixedRand(0.5))

	for i := 0; i < 80; i++ {
		e.Update()
	}
	assert.Empty(t, e.Particles)
	require.Len(t, e.Debris, DebrisCount)
	assert.InDelta(t, 40.0/120.0, e.Debris[0].Opacity(), 1e-9)

	for i := 0; i < 39; i++ {
		require.True(t, e.Update())
	}
	assert.False(t, e.Update())
}
