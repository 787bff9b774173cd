// Package weapon implements the player's weapon table, firing and
// the per-tick projectile pass with its hit test.
package weapon

import (
	"github.com/tomz197/voidfighter/internal/config"
	"github.com/tomz197/voidfighter/internal/object"
	"github.com/tomz197/voidfighter/internal/physics"
)

// HitRadius is the distance under which a player projectile strikes a target.
const HitRadius = 20.0

// hitCellSize must be >= HitRadius for the 3x3 query to see every candidate.
const hitCellSize = 2 * HitRadius

// Definition is one row of the weapon table.
// Ammo is consumed in place; cooldown is in milliseconds.
type Definition struct {
	Name     string
	Speed    float64
	Damage   float64
	Cooldown float64
	Ammo     int
	MaxAmmo  int
}

// Definitions converts configured weapons into a fresh table.
func Definitions(cfg []config.WeaponConfig) []Definition {
	defs := make([]Definition, len(cfg))
	for i, c := range cfg {
		maxAmmo := c.MaxAmmo
		if maxAmmo == 0 {
			maxAmmo = c.Ammo
		}
		defs[i] = Definition{
			Name:     c.Name,
			Speed:    c.Speed,
			Damage:   c.Damage,
			Cooldown: c.Cooldown,
			Ammo:     c.Ammo,
			MaxAmmo:  maxAmmo,
		}
	}
	return defs
}

// FireResult is the outcome of a trigger pull.
type FireResult int

const (
	Fired       FireResult = iota // a projectile left the muzzle
	FireEmpty                     // no ammo; surfaced to the player
	FireCooling                   // still cooling down; silently ignored
)

func (r FireResult) String() string {
	switch r {
	case Fired:
		return "fired"
	case FireEmpty:
		return "empty"
	case FireCooling:
		return "cooling"
	default:
		return "unknown"
	}
}

// Target is anything a player projectile can strike.
type Target interface {
	Position() (x, y float64)
	Alive() bool
	// TakeDamage applies damage and reports whether it was fatal.
	TakeDamage(now, damage float64) bool
}

// Hit describes one projectile impact resolved during Update.
type Hit struct {
	Target int // index into the targets passed to Update
	X, Y   float64
	Weapon int
	Damage float64
	Killed bool
	Scale  float64 // flash scale for the impact effect
}

// System owns the weapon table, the selected weapon and the player's live projectiles.
type System struct {
	defs         []Definition
	current      int
	lastFireTime float64

	projectiles []*object.Projectile
	grid        *physics.SpatialHash
	hits        []Hit
}

// NewSystem copies defs into a new weapon system. defs must not be empty.
func NewSystem(defs []Definition) *System {
	table := make([]Definition, len(defs))
	copy(table, defs)
	return &System{
		defs: table,
		grid: physics.NewSpatialHash(hitCellSize),
	}
}

// Fire spawns a projectile from (x, y) along rotation if the current weapon allows it.
// The ammo check comes before the cooldown check.
func (s *System) Fire(now, x, y, rotation float64) FireResult {
	def := &s.defs[s.current]
	if def.Ammo <= 0 {
		return FireEmpty
	}
	if now-s.lastFireTime < def.Cooldown {
		return FireCooling
	}

	def.Ammo--
	s.projectiles = append(s.projectiles,
		object.NewProjectile(x, y, rotation, def.Speed, s.current, object.OwnerPlayer))
	s.lastFireTime = now
	return Fired
}

// Switch selects the next weapon, wrapping around. Ammo and cooldown carry over.
func (s *System) Switch() int {
	s.current = (s.current + 1) % len(s.defs)
	return s.current
}

// Current returns a copy of the selected weapon.
func (s *System) Current() Definition {
	return s.defs[s.current]
}

// CurrentIndex returns the selected weapon's position in the table.
func (s *System) CurrentIndex() int {
	return s.current
}

// Definitions returns a copy of the table with current ammo counts.
func (s *System) Definitions() []Definition {
	out := make([]Definition, len(s.defs))
	copy(out, s.defs)
	return out
}

// Projectiles returns the live projectiles. The slice is owned by the system.
func (s *System) Projectiles() []*object.Projectile {
	return s.projectiles
}

// Update advances every projectile one tick and resolves hits against targets.
// The hit test runs before the life check, so a projectile on its last tick
// can still connect. The first alive target in collection order absorbs the hit.
// The returned slice is reused by the next call.
func (s *System) Update(now float64, targets []Target) []Hit {
	s.hits = s.hits[:0]

	s.grid.Clear()
	for i, t := range targets {
		if t.Alive() {
			x, y := t.Position()
			s.grid.Insert(x, y, i)
		}
	}

	kept := s.projectiles[:0]
	for _, p := range s.projectiles {
		p.Advance()

		if idx := s.hitTest(p, targets); idx >= 0 {
			damage := s.damageOf(p)
			killed := targets[idx].TakeDamage(now, damage)
			s.hits = append(s.hits, Hit{
				Target: idx,
				X:      p.X,
				Y:      p.Y,
				Weapon: p.Weapon,
				Damage: damage,
				Killed: killed,
				Scale:  1 + damage/10,
			})
			p.MarkDestroyed()
			continue
		}

		if p.Expired() {
			continue
		}
		kept = append(kept, p)
	}
	clear(s.projectiles[len(kept):])
	s.projectiles = kept

	return s.hits
}

func (s *System) hitTest(p *object.Projectile, targets []Target) int {
	return s.grid.FirstMatch(p.X, p.Y, func(idx int) bool {
		t := targets[idx]
		if !t.Alive() {
			return false
		}
		tx, ty := t.Position()
		return physics.Within(p.X, p.Y, tx, ty, HitRadius)
	})
}

func (s *System) damageOf(p *object.Projectile) float64 {
	if p.Weapon < 0 || p.Weapon >= len(s.defs) {
		return 0
	}
	return s.defs[p.Weapon].Damage
}
