package ship

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/voidfighter/internal/ai"
	"github.com/tomz197/voidfighter/internal/config"
	"github.com/tomz197/voidfighter/internal/object"
	"github.com/tomz197/voidfighter/internal/weapon"
)

type collector struct {
	spawned []*object.Projectile
}

func (c *collector) Spawn(p *object.Projectile) { c.spawned = append(c.spawned, p) }

func newPlayer() *Player {
	return NewPlayer(config.Default(), 0, 0)
}

func TestNewPlayerFullStats(t *testing.T) {
	p := newPlayer()
	assert.Equal(t, 100.0, p.Health)
	assert.Equal(t, 100.0, p.Shield)
	assert.False(t, p.Disabled)
	assert.Equal(t, "Phase Cannon", p.Weapon.Current().Name)
}

func TestPlayerThrustAndFriction(t *testing.T) {
	p := newPlayer()
	p.Update(object.UpdateContext{Now: 1000, Input: object.Input{Up: true}})

	assert.InDelta(t, 0, p.VX, 1e-9)
	assert.InDelta(t, -0.2*0.98, p.VY, 1e-9)
	assert.InDelta(t, -0.2*0.98, p.Y, 1e-9)

	p.Update(object.UpdateContext{Now: 1016})
	assert.InDelta(t, -0.2*0.98*0.98, p.VY, 1e-9)
}

func TestPlayerReverseThrustIsHalf(t *testing.T) {
	p := newPlayer()
	p.Update(object.UpdateContext{Input: object.Input{Down: true}})
	assert.InDelta(t, 0.1*0.98, p.VY, 1e-9)
}

func TestPlayerRotationEases(t *testing.T) {
	p := newPlayer()
	p.Update(object.UpdateContext{Input: object.Input{Right: true}})
	assert.Equal(t, 5.0, p.TargetRotation)
	assert.InDelta(t, 0.5, p.Rotation, 1e-9)

	p.Update(object.UpdateContext{})
	assert.InDelta(t, 0.95, p.Rotation, 1e-9)

	p.Update(object.UpdateContext{Input: object.Input{Left: true}})
	assert.Equal(t, 0.0, p.TargetRotation)
}

func TestPlayerTriggers(t *testing.T) {
	p := newPlayer()
	p.Update(object.UpdateContext{Now: 1000, Input: object.Input{Fire: true}})
	assert.True(t, p.TriggerPulled)
	assert.Equal(t, weapon.Fired, p.TriggerResult)
	assert.Len(t, p.Weapon.Projectiles(), 1)

	p.Update(object.UpdateContext{Now: 1016, Input: object.Input{SwitchWeapon: true}})
	assert.True(t, p.WeaponSwitched)
	assert.False(t, p.TriggerPulled)
	assert.Equal(t, "Ion Cannon", p.Weapon.Current().Name)
}

func TestPlayerShieldAbsorbsFirst(t *testing.T) {
	p := newPlayer()
	p.Shield = 5

	died := p.TakeDamage(2000, 20)

	assert.False(t, died)
	assert.Equal(t, 0.0, p.Shield)
	assert.Equal(t, 85.0, p.Health)
	assert.Equal(t, 2000.0, p.LastDamageTime)
}

func TestPlayerShieldOnlyHit(t *testing.T) {
	p := newPlayer()
	p.TakeDamage(2000, 10)
	assert.Equal(t, 90.0, p.Shield)
	assert.Equal(t, 100.0, p.Health)
}

func TestPlayerDeath(t *testing.T) {
	p := newPlayer()
	p.Shield = 0
	p.Health = 10

	assert.True(t, p.TakeDamage(3000, 50))
	assert.Equal(t, 0.0, p.Health)
	assert.True(t, p.Disabled)

	assert.False(t, p.TakeDamage(3100, 50), "disabled ship ignores damage")
}

func TestPlayerDisabledSkipsUpdate(t *testing.T) {
	p := newPlayer()
	p.VX = 3
	p.Die()

	held := p.Input
	p.Update(object.UpdateContext{Now: 1000, Input: object.Input{Up: true, Fire: true}})

	assert.Equal(t, 0.0, p.X)
	assert.Empty(t, p.Weapon.Projectiles())
	assert.False(t, p.TriggerPulled)
	assert.Equal(t, held, p.Input)
}

func TestPlayerShieldRegen(t *testing.T) {
	p := newPlayer()
	p.Shield = 0
	p.LastDamageTime = 0
	p.LastShieldRegenTime = 0

	p.Update(object.UpdateContext{Now: 5000})
	assert.Equal(t, 0.0, p.Shield, "delay must be strictly exceeded")

	p.Update(object.UpdateContext{Now: 5001})
	assert.Equal(t, 10.0, p.Shield)

	p.Update(object.UpdateContext{Now: 5500})
	assert.Equal(t, 10.0, p.Shield, "one regen per interval")

	p.Update(object.UpdateContext{Now: 6002})
	assert.Equal(t, 20.0, p.Shield)
}

func TestPlayerShieldRegenClamps(t *testing.T) {
	p := newPlayer()
	p.Shield = 95

	p.Update(object.UpdateContext{Now: 10000})
	assert.Equal(t, 100.0, p.Shield)
}

func TestPlayerShieldRegenWaitsAfterDamage(t *testing.T) {
	p := newPlayer()
	p.Shield = 0
	p.TakeDamage(10000, 1)

	p.Update(object.UpdateContext{Now: 14000})
	assert.Equal(t, 0.0, p.Shield)

	p.Update(object.UpdateContext{Now: 15001})
	assert.Equal(t, 10.0, p.Shield)
}

func TestSpawnEnemyDistance(t *testing.T) {
	cfg := config.Default().Enemy
	rng := rand.New(rand.NewSource(3))

	for i := 0; i < 100; i++ {
		e := SpawnEnemy(cfg, 100, -50, rng)
		d := math.Hypot(e.X-100, e.Y+50)
		assert.GreaterOrEqual(t, d, cfg.MinDistance-1e-9)
		assert.Less(t, d, cfg.MaxDistance)
		assert.Equal(t, EnemyHealth, e.Health)
		assert.Equal(t, 0.0, e.Rotation)
		assert.NotEmpty(t, e.ID)
	}
}

func TestEnemyUpdateChasesThenMoves(t *testing.T) {
	e := NewEnemy(config.Default().Enemy, 0, 500)
	spawner := &collector{}

	e.Update(object.UpdateContext{Now: 5000, Spawner: spawner})

	assert.Equal(t, ai.Chase, e.AI.State())
	assert.InDelta(t, 497, e.Y, 1e-9)
	assert.Empty(t, spawner.spawned)
}

func TestEnemyFiresFromCurrentRotation(t *testing.T) {
	e := NewEnemy(config.Default().Enemy, 0, 400)
	spawner := &collector{}

	e.Update(object.UpdateContext{Now: 2000, Spawner: spawner})

	require.Len(t, spawner.spawned, 1)
	shot := spawner.spawned[0]
	assert.Equal(t, object.OwnerEnemy, shot.Owner)
	assert.Equal(t, 0.0, shot.X)
	assert.Equal(t, 400.0, shot.Y)
	assert.InDelta(t, 8, math.Hypot(shot.VX, shot.VY), 1e-9)
	assert.Equal(t, e.Rotation, shot.Rotation)
	assert.Equal(t, 2000.0, e.LastFireTime)

	e.Update(object.UpdateContext{Now: 3000, Spawner: spawner})
	assert.Len(t, spawner.spawned, 1, "fire rate limits the second shot")
}

func TestEnemyTakeDamage(t *testing.T) {
	e := NewEnemy(config.Default().Enemy, 0, 0)

	assert.False(t, e.TakeDamage(0, 20))
	assert.True(t, e.Alive())
	assert.False(t, e.TakeDamage(0, 20))
	assert.True(t, e.TakeDamage(0, 10))
	assert.False(t, e.Alive())
}
