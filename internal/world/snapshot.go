package world

import "github.com/tomz197/voidfighter/internal/object"

// Snapshot is an immutable copy of the world for renderers.
// It shares no memory with the live simulation.
type Snapshot struct {
	Frame       uint64            `msgpack:"frame"`
	Time        float64           `msgpack:"time"`
	GameOver    bool              `msgpack:"gameOver"`
	Player      PlayerState       `msgpack:"player"`
	Enemies     []EnemyState      `msgpack:"enemies"`
	Projectiles []ProjectileState `msgpack:"projectiles"`
	Explosions  []ExplosionState  `msgpack:"explosions"`
}

// PlayerState is the HUD-relevant view of the player ship.
type PlayerState struct {
	X         float64       `msgpack:"x"`
	Y         float64       `msgpack:"y"`
	VX        float64       `msgpack:"vx"`
	VY        float64       `msgpack:"vy"`
	Rotation  float64       `msgpack:"rotation"`
	Health    float64       `msgpack:"health"`
	MaxHealth float64       `msgpack:"maxHealth"`
	Shield    float64       `msgpack:"shield"`
	MaxShield float64       `msgpack:"maxShield"`
	Disabled  bool          `msgpack:"disabled"`
	Weapon    int           `msgpack:"weapon"`
	Weapons   []WeaponState `msgpack:"weapons"`
}

// CurrentWeapon returns the selected weapon, or a zero value if the table is empty.
func (p PlayerState) CurrentWeapon() WeaponState {
	if p.Weapon < 0 || p.Weapon >= len(p.Weapons) {
		return WeaponState{}
	}
	return p.Weapons[p.Weapon]
}

// WeaponState is one row of the weapon table as shown to the player.
type WeaponState struct {
	Name    string `msgpack:"name"`
	Ammo    int    `msgpack:"ammo"`
	MaxAmmo int    `msgpack:"maxAmmo"`
}

// EnemyState is a rendered enemy.
type EnemyState struct {
	ID       string  `msgpack:"id"`
	X        float64 `msgpack:"x"`
	Y        float64 `msgpack:"y"`
	Rotation float64 `msgpack:"rotation"`
	Health   float64 `msgpack:"health"`
	State    string  `msgpack:"state"`
}

// ProjectileState is a rendered projectile from either side.
type ProjectileState struct {
	X        float64      `msgpack:"x"`
	Y        float64      `msgpack:"y"`
	Rotation float64      `msgpack:"rotation"`
	Owner    object.Owner `msgpack:"owner"`
	Weapon   int          `msgpack:"weapon"`
}

// ExplosionState is a rendered explosion.
type ExplosionState struct {
	IsPlayer  bool            `msgpack:"isPlayer"`
	Particles []ParticleState `msgpack:"particles"`
	Debris    []DebrisState   `msgpack:"debris"`
}

// ParticleState is a spark with its current opacity.
type ParticleState struct {
	X       float64 `msgpack:"x"`
	Y       float64 `msgpack:"y"`
	Opacity float64 `msgpack:"opacity"`
}

// DebrisState is a hull fragment with its current opacity.
type DebrisState struct {
	X        float64 `msgpack:"x"`
	Y        float64 `msgpack:"y"`
	Rotation float64 `msgpack:"rotation"`
	Size     float64 `msgpack:"size"`
	Opacity  float64 `msgpack:"opacity"`
}

// Snapshot copies the current state.
func (w *World) Snapshot() *Snapshot {
	p := w.Player
	defs := p.Weapon.Definitions()
	weapons := make([]WeaponState, len(defs))
	for i, d := range defs {
		weapons[i] = WeaponState{Name: d.Name, Ammo: d.Ammo, MaxAmmo: d.MaxAmmo}
	}

	snap := &Snapshot{
		Frame:    w.Frame,
		Time:     w.clock.Now(),
		GameOver: w.gameOver,
		Player: PlayerState{
			X:         p.X,
			Y:         p.Y,
			VX:        p.VX,
			VY:        p.VY,
			Rotation:  p.Rotation,
			Health:    p.Health,
			MaxHealth: p.MaxHealth,
			Shield:    p.Shield,
			MaxShield: p.MaxShield,
			Disabled:  p.Disabled,
			Weapon:    p.Weapon.CurrentIndex(),
			Weapons:   weapons,
		},
		Enemies:     make([]EnemyState, 0, len(w.Enemies)),
		Projectiles: make([]ProjectileState, 0, len(w.EnemyProjectiles)+len(p.Weapon.Projectiles())),
		Explosions:  make([]ExplosionState, 0, len(w.Explosions)),
	}

	for _, e := range w.Enemies {
		snap.Enemies = append(snap.Enemies, EnemyState{
			ID:       e.ID,
			X:        e.X,
			Y:        e.Y,
			Rotation: e.Rotation,
			Health:   e.Health,
			State:    e.AI.State().String(),
		})
	}

	for _, pr := range p.Weapon.Projectiles() {
		snap.Projectiles = append(snap.Projectiles, projectileState(pr))
	}
	for _, pr := range w.EnemyProjectiles {
		snap.Projectiles = append(snap.Projectiles, projectileState(pr))
	}

	for _, e := range w.Explosions {
		es := ExplosionState{
			IsPlayer:  e.IsPlayer,
			Particles: make([]ParticleState, len(e.Particles)),
			Debris:    make([]DebrisState, len(e.Debris)),
		}
		for i, pt := range e.Particles {
			es.Particles[i] = ParticleState{X: pt.X, Y: pt.Y, Opacity: pt.Opacity()}
		}
		for i, d := range e.Debris {
			es.Debris[i] = DebrisState{X: d.X, Y: d.Y, Rotation: d.Rotation, Size: d.Size, Opacity: d.Opacity()}
		}
		snap.Explosions = append(snap.Explosions, es)
	}

	return snap
}

func projectileState(p *object.Projectile) ProjectileState {
	return ProjectileState{X: p.X, Y: p.Y, Rotation: p.Rotation, Owner: p.Owner, Weapon: p.Weapon}
}
