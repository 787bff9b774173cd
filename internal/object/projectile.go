package object

import "github.com/tomz197/voidfighter/internal/physics"

// ProjectileLife is the number of ticks a projectile lives before expiring.
const ProjectileLife = 1000

// Owner identifies which side fired a projectile.
type Owner uint8

const (
	OwnerPlayer Owner = iota
	OwnerEnemy
)

// Projectile is a shot travelling in a straight line.
type Projectile struct {
	X, Y      float64
	VX, VY    float64
	Rotation  float64 // degrees, inherited from the shooter
	Weapon    int     // index into the shooter's weapon table (player shots only)
	Life      int     // ticks remaining
	Owner     Owner
	destroyed bool
}

// NewProjectile creates a projectile at (x, y) heading along rotation at speed.
func NewProjectile(x, y, rotation, speed float64, weapon int, owner Owner) *Projectile {
	hx, hy := physics.Heading(rotation)
	return &Projectile{
		X:        x,
		Y:        y,
		VX:       hx * speed,
		VY:       hy * speed,
		Rotation: rotation,
		Weapon:   weapon,
		Life:     ProjectileLife,
		Owner:    owner,
	}
}

// Advance moves the projectile one tick and burns one tick of life.
func (p *Projectile) Advance() {
	p.X += p.VX
	p.Y += p.VY
	p.Life--
}

// Expired reports whether the projectile has run out of life.
func (p *Projectile) Expired() bool {
	return p.Life <= 0
}

// MarkDestroyed marks the projectile for removal.
func (p *Projectile) MarkDestroyed() {
	p.destroyed = true
}

// IsDestroyed returns true if the projectile hit something or expired.
func (p *Projectile) IsDestroyed() bool {
	return p.destroyed || p.Expired()
}
