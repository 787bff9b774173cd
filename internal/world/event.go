package world

// EventType identifies something that happened during a tick.
type EventType uint8

const (
	EventFired          EventType = iota // player weapon fired
	EventNoAmmo                          // trigger pulled on an empty weapon
	EventWeaponSwitched                  // player cycled weapons
	EventHit                             // player projectile struck an enemy
	EventEnemyDestroyed                  // enemy removed from the world
	EventPlayerHit                       // enemy projectile struck the player
	EventGameOver                        // player ship destroyed; terminal
)

func (t EventType) String() string {
	switch t {
	case EventFired:
		return "fired"
	case EventNoAmmo:
		return "no_ammo"
	case EventWeaponSwitched:
		return "weapon_switched"
	case EventHit:
		return "hit"
	case EventEnemyDestroyed:
		return "enemy_destroyed"
	case EventPlayerHit:
		return "player_hit"
	case EventGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Event is a notification raised by the world for presentation sinks.
// Fields irrelevant to the type are left zero.
type Event struct {
	Type    EventType `msgpack:"type"`
	Frame   uint64    `msgpack:"frame"`
	X       float64   `msgpack:"x"`
	Y       float64   `msgpack:"y"`
	Weapon  string    `msgpack:"weapon,omitempty"`
	Damage  float64   `msgpack:"damage,omitempty"`
	Scale   float64   `msgpack:"scale,omitempty"` // hit flash scale
	EnemyID string    `msgpack:"enemyId,omitempty"`
}
