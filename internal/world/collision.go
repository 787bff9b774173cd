package world

import (
	"github.com/tomz197/voidfighter/internal/object"
	"github.com/tomz197/voidfighter/internal/physics"
)

// updatePlayerWeapon runs the player's projectile pass against the current enemies.
// Enemies killed here stay in the slice until removeDestroyedEnemies.
func (w *World) updatePlayerWeapon(now float64) {
	w.targets = w.targets[:0]
	for _, e := range w.Enemies {
		w.targets = append(w.targets, e)
	}
	defer clear(w.targets)

	hits := w.Player.Weapon.Update(now, w.targets)
	if len(hits) == 0 {
		return
	}

	defs := w.Player.Weapon.Definitions()
	for _, hit := range hits {
		name := ""
		if hit.Weapon >= 0 && hit.Weapon < len(defs) {
			name = defs[hit.Weapon].Name
		}
		w.emit(Event{
			Type:    EventHit,
			X:       hit.X,
			Y:       hit.Y,
			Weapon:  name,
			Damage:  hit.Damage,
			Scale:   hit.Scale,
			EnemyID: w.Enemies[hit.Target].ID,
		})
	}
}

// removeDestroyedEnemies compacts the enemy slice after the hit pass.
// Each removed enemy leaves a small explosion. Enemies are not replaced.
func (w *World) removeDestroyedEnemies() {
	kept := w.Enemies[:0]
	for _, e := range w.Enemies {
		if e.Alive() {
			kept = append(kept, e)
			continue
		}
		w.Explosions = append(w.Explosions, object.NewExplosion(e.X, e.Y, false, w.rng))
		w.emit(Event{Type: EventEnemyDestroyed, X: e.X, Y: e.Y, EnemyID: e.ID})
	}
	clear(w.Enemies[len(kept):])
	w.Enemies = kept
}

// resolveEnemyFire applies enemy projectiles that reached the player.
// Once the player is disabled, shots pass through the wreck.
func (w *World) resolveEnemyFire(now float64) {
	p := w.Player
	if p.Disabled {
		return
	}

	kept := w.EnemyProjectiles[:0]
	for _, proj := range w.EnemyProjectiles {
		if p.Disabled || !physics.Within(proj.X, proj.Y, p.X, p.Y, EnemyHitRadius) {
			kept = append(kept, proj)
			continue
		}

		proj.MarkDestroyed()
		died := p.TakeDamage(now, EnemyHitDamage)
		w.emit(Event{Type: EventPlayerHit, X: proj.X, Y: proj.Y, Damage: EnemyHitDamage})
		if died {
			w.playerDestroyed()
		}
	}
	clear(w.EnemyProjectiles[len(kept):])
	w.EnemyProjectiles = kept
}

func (w *World) playerDestroyed() {
	p := w.Player
	w.Explosions = append(w.Explosions, object.NewExplosion(p.X, p.Y, true, w.rng))
	w.gameOver = true
	w.emit(Event{Type: EventGameOver, X: p.X, Y: p.Y})
}

// ageExplosions advances every explosion and drops the finished ones.
func (w *World) ageExplosions() {
	kept := w.Explosions[:0]
	for _, e := range w.Explosions {
		if e.Update() {
			kept = append(kept, e)
		}
	}
	clear(w.Explosions[len(kept):])
	w.Explosions = kept
}
