// Package object holds the shared kinematic body and the short-lived
// entities (projectiles, explosions) the world simulates each tick.
package object

import "github.com/tomz197/voidfighter/internal/input"

// Input is an alias for the input package's Input type.
type Input = input.Input

// Rand is the random source entities draw from. *math/rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// Spawner allows entities to emit projectiles during update.
// Spawned projectiles join the world after the current pass.
type Spawner interface {
	Spawn(p *Projectile)
}

// UpdateContext provides all the information a ship needs during update.
type UpdateContext struct {
	Now     float64 // ms on the session clock
	Input   Input
	TargetX float64 // player position, for AI
	TargetY float64
	Spawner Spawner
}

// Body is the kinematic state shared by every ship.
// Rotation is in degrees, 0 facing up the screen, positive clockwise.
type Body struct {
	X, Y     float64
	Rotation float64
	VX, VY   float64
}

// Position returns the body's world position.
func (b *Body) Position() (float64, float64) {
	return b.X, b.Y
}

// Integrate moves the body by one tick of velocity.
func (b *Body) Integrate() {
	b.X += b.VX
	b.Y += b.VY
}
