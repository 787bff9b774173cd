package ship

import (
	"math"

	"github.com/google/uuid"

	"github.com/tomz197/voidfighter/internal/ai"
	"github.com/tomz197/voidfighter/internal/config"
	"github.com/tomz197/voidfighter/internal/object"
)

// Enemy tuning that is not part of the game config.
const (
	EnemyHealth          = 50.0
	EnemyProjectileSpeed = 8.0
)

// Enemy is an AI-controlled hostile ship.
type Enemy struct {
	object.Body

	ID           string
	Health       float64
	LastFireTime float64
	AI           *ai.Controller
}

// NewEnemy creates an enemy at (x, y).
func NewEnemy(cfg config.EnemyConfig, x, y float64) *Enemy {
	return &Enemy{
		Body:   object.Body{X: x, Y: y},
		ID:     uuid.NewString(),
		Health: EnemyHealth,
		AI:     ai.NewController(cfg),
	}
}

// SpawnEnemy places an enemy at a random bearing, between MinDistance
// (inclusive) and MaxDistance (exclusive) away from (px, py).
func SpawnEnemy(cfg config.EnemyConfig, px, py float64, rng object.Rand) *Enemy {
	angle := rng.Float64() * 2 * math.Pi
	dist := cfg.MinDistance + rng.Float64()*(cfg.MaxDistance-cfg.MinDistance)
	return NewEnemy(cfg, px+math.Cos(angle)*dist, py+math.Sin(angle)*dist)
}

// Update runs the AI, fires through the spawner when a shot is due, then moves.
func (e *Enemy) Update(ctx object.UpdateContext) {
	dec := e.AI.Update(&e.Body, ctx.TargetX, ctx.TargetY, ctx.Now, e.LastFireTime)
	if dec.Fire {
		if ctx.Spawner != nil {
			ctx.Spawner.Spawn(object.NewProjectile(e.X, e.Y, e.Rotation, EnemyProjectileSpeed, 0, object.OwnerEnemy))
		}
		e.LastFireTime = ctx.Now
	}
	e.Integrate()
}

// TakeDamage subtracts damage and reports whether the enemy is destroyed.
func (e *Enemy) TakeDamage(_, damage float64) bool {
	e.Health -= damage
	return e.Health <= 0
}

// Alive reports whether the enemy still has health.
func (e *Enemy) Alive() bool {
	return e.Health > 0
}
