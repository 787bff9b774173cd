package weapon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/voidfighter/internal/config"
)

type dummy struct {
	x, y   float64
	health float64
	hits   int
}

func (d *dummy) Position() (float64, float64) { return d.x, d.y }
func (d *dummy) Alive() bool                  { return d.health > 0 }
func (d *dummy) TakeDamage(_, damage float64) bool {
	d.hits++
	d.health -= damage
	return d.health <= 0
}

func newTestSystem() *System {
	return NewSystem(Definitions(config.Default().Weapons))
}

func TestFireRespectsCooldown(t *testing.T) {
	s := newTestSystem()

	assert.Equal(t, Fired, s.Fire(1000, 0, 0, 0))
	assert.Equal(t, FireCooling, s.Fire(1100, 0, 0, 0))
	assert.Len(t, s.Projectiles(), 1)
	assert.Equal(t, 99, s.Current().Ammo)

	assert.Equal(t, Fired, s.Fire(1200, 0, 0, 0))
	assert.Len(t, s.Projectiles(), 2)
}

func TestFireVelocityAndIndex(t *testing.T) {
	s := newTestSystem()
	s.Switch()
	require.Equal(t, Fired, s.Fire(1000, 5, 5, 90))

	p := s.Projectiles()[0]
	assert.InDelta(t, 10, p.VX, 1e-9)
	assert.InDelta(t, 0, p.VY, 1e-9)
	assert.Equal(t, 1, p.Weapon)
	assert.Equal(t, 5.0, p.X)
}

func TestFireEmptyBeforeCooldown(t *testing.T) {
	defs := Definitions(config.Default().Weapons)
	defs[0].Ammo = 1
	s := NewSystem(defs)

	assert.Equal(t, Fired, s.Fire(1000, 0, 0, 0))
	assert.Equal(t, FireEmpty, s.Fire(1050, 0, 0, 0))
	assert.Equal(t, FireEmpty, s.Fire(5000, 0, 0, 0))
	assert.Len(t, s.Projectiles(), 1)
	assert.Equal(t, 0, s.Current().Ammo)
}

func TestSwitchCyclesWithoutResets(t *testing.T) {
	s := newTestSystem()
	require.Equal(t, Fired, s.Fire(1000, 0, 0, 0))

	assert.Equal(t, 1, s.Switch())
	assert.Equal(t, "Ion Cannon", s.Current().Name)
	assert.Equal(t, FireCooling, s.Fire(1100, 0, 0, 0), "cooldown clock is shared")

	assert.Equal(t, 0, s.Switch())
	assert.Equal(t, 99, s.Current().Ammo)
}

func TestNewSystemCopiesTable(t *testing.T) {
	defs := Definitions(config.Default().Weapons)
	s := NewSystem(defs)
	require.Equal(t, Fired, s.Fire(1000, 0, 0, 0))

	assert.Equal(t, 100, defs[0].Ammo)
	assert.Equal(t, 99, s.Definitions()[0].Ammo)
}

func TestUpdateHitsFirstTargetInOrder(t *testing.T) {
	s := newTestSystem()
	a := &dummy{x: 0, y: -20, health: 50}
	b := &dummy{x: 1, y: -20, health: 50}

	require.Equal(t, Fired, s.Fire(1000, 0, 0, 0))
	hits := s.Update(1016, []Target{a, b})

	require.Len(t, hits, 1)
	assert.Equal(t, 0, hits[0].Target)
	assert.Equal(t, 10.0, hits[0].Damage)
	assert.Equal(t, 2.0, hits[0].Scale)
	assert.False(t, hits[0].Killed)
	assert.Equal(t, 1, a.hits)
	assert.Equal(t, 0, b.hits)
	assert.Empty(t, s.Projectiles())
}

func TestUpdateLaterIndexWinsWhenEarlierIsOutOfRange(t *testing.T) {
	s := newTestSystem()
	far := &dummy{x: 300, y: 300, health: 50}
	near := &dummy{x: 0, y: -15, health: 50}

	require.Equal(t, Fired, s.Fire(1000, 0, 0, 0))
	hits := s.Update(1016, []Target{far, near})

	require.Len(t, hits, 1)
	assert.Equal(t, 1, hits[0].Target)
}

func TestUpdateSkipsDeadTargetsWithinPass(t *testing.T) {
	s := newTestSystem()
	s.Switch()
	a := &dummy{x: 0, y: -10, health: 20}
	b := &dummy{x: 0, y: -10, health: 50}

	require.Equal(t, Fired, s.Fire(1000, 0, 0, 0))
	require.Equal(t, Fired, s.Fire(1600, 0, 0, 0))
	hits := s.Update(1616, []Target{a, b})

	require.Len(t, hits, 2)
	assert.True(t, hits[0].Killed)
	assert.Equal(t, 0, hits[0].Target)
	assert.Equal(t, 1, hits[1].Target)
	assert.Equal(t, 30.0, b.health)
}

func TestUpdateMissTravels(t *testing.T) {
	s := newTestSystem()
	require.Equal(t, Fired, s.Fire(1000, 0, 0, 0))

	hits := s.Update(1016, nil)
	assert.Empty(t, hits)
	require.Len(t, s.Projectiles(), 1)
	assert.InDelta(t, -15, s.Projectiles()[0].Y, 1e-9)
}

func TestUpdateHitTestBeforeLifeCheck(t *testing.T) {
	s := newTestSystem()
	require.Equal(t, Fired, s.Fire(1000, 0, 0, 0))
	s.Projectiles()[0].Life = 1
	target := &dummy{x: 0, y: -15, health: 50}

	hits := s.Update(1016, []Target{target})
	assert.Len(t, hits, 1)
	assert.Equal(t, 1, target.hits)
}

func TestUpdateExpiresAtZeroLife(t *testing.T) {
	s := newTestSystem()
	require.Equal(t, Fired, s.Fire(1000, 0, 0, 0))
	s.Projectiles()[0].Life = 1

	s.Update(1016, nil)
	assert.Empty(t, s.Projectiles())
}

func TestFireResultString(t *testing.T) {
	assert.Equal(t, "fired", Fired.String())
	assert.Equal(t, "empty", FireEmpty.String())
	assert.Equal(t, "cooling", FireCooling.String())
}
