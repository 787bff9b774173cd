package ship

import (
	"math"

	"github.com/tomz197/voidfighter/internal/config"
	"github.com/tomz197/voidfighter/internal/object"
	"github.com/tomz197/voidfighter/internal/physics"
	"github.com/tomz197/voidfighter/internal/weapon"
)

// rotationEase is the fraction of the remaining turn applied each tick.
const rotationEase = 0.1

// reverseThrust scales acceleration when braking.
const reverseThrust = 0.5

// Player is the ship flown by the connected user.
type Player struct {
	object.Body

	Health    float64
	Shield    float64
	MaxHealth float64
	MaxShield float64

	TargetRotation float64
	Input          object.Input
	Weapon         *weapon.System

	LastDamageTime      float64
	LastShieldRegenTime float64
	Disabled            bool

	// Trigger outcome of the latest Update, read by the world to raise events.
	TriggerPulled  bool
	TriggerResult  weapon.FireResult
	WeaponSwitched bool

	handling config.PlayerConfig
	shield   config.ShieldConfig
}

// NewPlayer creates a ship at (x, y) with full health, full shield and a fresh weapon table.
func NewPlayer(cfg *config.Game, x, y float64) *Player {
	return &Player{
		Body:      object.Body{X: x, Y: y},
		Health:    cfg.PlayerMaxHealth,
		Shield:    cfg.PlayerMaxShield,
		MaxHealth: cfg.PlayerMaxHealth,
		MaxShield: cfg.PlayerMaxShield,
		Weapon:    weapon.NewSystem(weapon.Definitions(cfg.Weapons)),
		handling:  cfg.Player,
		shield:    cfg.Shield,
	}
}

// Update applies steering, thrust, friction, weapon triggers and shield regeneration.
// A disabled ship does nothing.
func (p *Player) Update(ctx object.UpdateContext) {
	p.TriggerPulled = false
	p.WeaponSwitched = false

	if p.Disabled {
		return
	}
	p.Input = ctx.Input

	in := ctx.Input
	if in.Left {
		p.TargetRotation -= p.handling.RotationSpeed
	}
	if in.Right {
		p.TargetRotation += p.handling.RotationSpeed
	}
	p.Rotation += (p.TargetRotation - p.Rotation) * rotationEase

	hx, hy := physics.Heading(p.Rotation)
	if in.Up {
		p.VX += hx * p.handling.Acceleration
		p.VY += hy * p.handling.Acceleration
	}
	if in.Down {
		p.VX -= hx * p.handling.Acceleration * reverseThrust
		p.VY -= hy * p.handling.Acceleration * reverseThrust
	}

	p.VX *= p.handling.Friction
	p.VY *= p.handling.Friction
	p.Integrate()

	if in.SwitchWeapon {
		p.Weapon.Switch()
		p.WeaponSwitched = true
	}
	if in.Fire {
		p.TriggerPulled = true
		p.TriggerResult = p.Weapon.Fire(ctx.Now, p.X, p.Y, p.Rotation)
	}

	p.regenShield(ctx.Now)
}

func (p *Player) regenShield(now float64) {
	if p.Shield >= p.MaxShield {
		return
	}
	if now-p.LastDamageTime <= p.shield.RegenDelay || now-p.LastShieldRegenTime <= p.shield.RegenInterval {
		return
	}
	p.Shield = math.Min(p.MaxShield, p.Shield+p.shield.RegenRate)
	p.LastShieldRegenTime = now
}

// TakeDamage drains the shield first and spills the rest into health.
// Returns true when the hit destroys the ship. A disabled ship ignores damage.
func (p *Player) TakeDamage(now, damage float64) bool {
	if p.Disabled {
		return false
	}
	p.LastDamageTime = now

	if p.Shield >= damage {
		p.Shield -= damage
		return false
	}
	damage -= p.Shield
	p.Shield = 0

	p.Health = math.Max(0, p.Health-damage)
	if p.Health <= 0 {
		p.Die()
		return true
	}
	return false
}

// Die disables the ship for the rest of the session. It only flips the
// flag: the world owns the large explosion and the game-over event, and
// emits them when TakeDamage reports the kill.
func (p *Player) Die() {
	p.Disabled = true
}
