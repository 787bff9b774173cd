// Package ai steers enemy ships through a distance-banded
// CHASE / ATTACK / RETREAT behavior.
package ai

import (
	"math"

	"github.com/tomz197/voidfighter/internal/config"
	"github.com/tomz197/voidfighter/internal/object"
	"github.com/tomz197/voidfighter/internal/physics"
)

// State is the behavior an enemy runs this tick.
type State uint8

const (
	Chase State = iota
	Attack
	Retreat
)

func (s State) String() string {
	switch s {
	case Chase:
		return "CHASE"
	case Attack:
		return "ATTACK"
	case Retreat:
		return "RETREAT"
	default:
		return "UNKNOWN"
	}
}

// Fires reports whether the state tries to shoot.
func (s State) Fires() bool {
	return s == Attack || s == Retreat
}

// speedFactor scales the enemy speed along the line to the target.
// Negative values back away.
func (s State) speedFactor() float64 {
	switch s {
	case Chase:
		return 1
	case Attack:
		return 0.5
	case Retreat:
		return -0.3
	default:
		return 0
	}
}

// Decide picks the state for a target at distance d. It is re-evaluated every
// tick with no memory, so the bands are inclusive at their lower edge:
// 1.2R exactly attacks and 0.8R exactly retreats.
func Decide(d, attackRange float64) State {
	switch {
	case d > attackRange*1.2:
		return Chase
	case d > attackRange*0.8:
		return Attack
	default:
		return Retreat
	}
}

// Decision is what the controller wants the ship to do this tick.
type Decision struct {
	State State
	Fire  bool
}

// Controller drives one enemy.
type Controller struct {
	cfg   config.EnemyConfig
	state State
}

// NewController creates a controller in the CHASE state.
func NewController(cfg config.EnemyConfig) *Controller {
	return &Controller{cfg: cfg, state: Chase}
}

// State returns the state chosen by the last Update.
func (c *Controller) State() State {
	return c.state
}

// Update turns body toward the target by at most RotationSpeed degrees, sets its
// velocity for the chosen state and reports whether a shot is due.
// Position is left to the caller.
func (c *Controller) Update(body *object.Body, targetX, targetY, now, lastFire float64) Decision {
	dx := targetX - body.X
	dy := targetY - body.Y
	ux, uy, dist := physics.Direction(dx, dy)

	// Coincident ships have no bearing to steer toward.
	if dist > 0 {
		diff := physics.Bearing(dx, dy) - body.Rotation
		body.Rotation += physics.Sign(diff) * math.Min(math.Abs(diff), c.cfg.RotationSpeed)
	}

	c.state = Decide(dist, c.cfg.AttackRange)
	speed := c.cfg.Speed * c.state.speedFactor()
	body.VX = ux * speed
	body.VY = uy * speed

	return Decision{
		State: c.state,
		Fire:  c.state.Fires() && now-lastFire > c.cfg.FireRate,
	}
}
