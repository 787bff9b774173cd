// Package ship implements the player and enemy ships. Both share
// object.Body and the Ship capability set.
package ship

import (
	"github.com/tomz197/voidfighter/internal/object"
	"github.com/tomz197/voidfighter/internal/weapon"
)

// Ship is what the world needs from any ship variant.
type Ship interface {
	Update(ctx object.UpdateContext)
	// TakeDamage applies damage at time now and reports whether it was fatal.
	TakeDamage(now, damage float64) bool
	Position() (x, y float64)
}

var (
	_ Ship          = (*Player)(nil)
	_ Ship          = (*Enemy)(nil)
	_ weapon.Target = (*Enemy)(nil)
)
