// Package world owns every simulated entity and advances them in a fixed order each tick.
package world

import (
	"github.com/tomz197/voidfighter/internal/clock"
	"github.com/tomz197/voidfighter/internal/config"
	"github.com/tomz197/voidfighter/internal/input"
	"github.com/tomz197/voidfighter/internal/object"
	"github.com/tomz197/voidfighter/internal/ship"
	"github.com/tomz197/voidfighter/internal/weapon"
)

// Enemy fire resolution against the player.
const (
	EnemyHitRadius = 25.0
	EnemyHitDamage = 10.0
)

// World is the single-threaded simulation of one player's battle.
// Only the goroutine that calls Tick may touch it.
type World struct {
	cfg   *config.Game
	clock clock.Clock
	rng   object.Rand

	Frame            uint64
	Player           *ship.Player
	Enemies          []*ship.Enemy
	EnemyProjectiles []*object.Projectile
	Explosions       []*object.Explosion

	toSpawn  []*object.Projectile // enemy shots queued during the enemy pass
	targets  []weapon.Target      // reusable view of Enemies for the weapon pass
	events   []Event
	gameOver bool
}

// New creates a world with the player at the origin and cfg.Enemy.Count enemies around it.
func New(cfg *config.Game, clk clock.Clock, rng object.Rand) *World {
	w := &World{
		cfg:    cfg,
		clock:  clk,
		rng:    rng,
		Player: ship.NewPlayer(cfg, 0, 0),
	}
	for i := 0; i < cfg.Enemy.Count; i++ {
		w.Enemies = append(w.Enemies, ship.SpawnEnemy(cfg.Enemy, w.Player.X, w.Player.Y, rng))
	}
	return w
}

// Spawn queues an enemy projectile. Implements object.Spawner.
func (w *World) Spawn(p *object.Projectile) {
	w.toSpawn = append(w.toSpawn, p)
}

// flushSpawned adds queued projectiles and clears the queue.
func (w *World) flushSpawned() {
	w.EnemyProjectiles = append(w.EnemyProjectiles, w.toSpawn...)
	clear(w.toSpawn)
	w.toSpawn = w.toSpawn[:0]
}

// Tick advances the simulation by one frame using the given input snapshot.
// The returned events are valid until the next call.
func (w *World) Tick(in input.Input) []Event {
	now := w.clock.Now()
	w.Frame++
	w.events = w.events[:0]

	ctx := object.UpdateContext{Now: now, Input: in, Spawner: w}

	w.Player.Update(ctx)
	w.emitTrigger()

	ctx.Input = input.Input{}
	ctx.TargetX, ctx.TargetY = w.Player.Position()
	for _, e := range w.Enemies {
		e.Update(ctx)
	}
	w.flushSpawned()

	w.advanceEnemyProjectiles()
	w.updatePlayerWeapon(now)
	w.removeDestroyedEnemies()
	w.resolveEnemyFire(now)
	w.ageExplosions()

	return w.events
}

// Events returns the events raised by the last Tick.
func (w *World) Events() []Event {
	return w.events
}

// GameOver reports whether the player ship has been destroyed.
func (w *World) GameOver() bool {
	return w.gameOver
}

// Now reads the world clock.
func (w *World) Now() float64 {
	return w.clock.Now()
}

func (w *World) emit(ev Event) {
	ev.Frame = w.Frame
	w.events = append(w.events, ev)
}

func (w *World) emitTrigger() {
	p := w.Player
	name := p.Weapon.Current().Name
	if p.WeaponSwitched {
		w.emit(Event{Type: EventWeaponSwitched, X: p.X, Y: p.Y, Weapon: name})
	}
	if !p.TriggerPulled {
		return
	}
	switch p.TriggerResult {
	case weapon.Fired:
		w.emit(Event{Type: EventFired, X: p.X, Y: p.Y, Weapon: name})
	case weapon.FireEmpty:
		w.emit(Event{Type: EventNoAmmo, X: p.X, Y: p.Y, Weapon: name})
	}
}

func (w *World) advanceEnemyProjectiles() {
	kept := w.EnemyProjectiles[:0]
	for _, p := range w.EnemyProjectiles {
		p.Advance()
		if !p.Expired() {
			kept = append(kept, p)
		}
	}
	clear(w.EnemyProjectiles[len(kept):])
	w.EnemyProjectiles = kept
}
