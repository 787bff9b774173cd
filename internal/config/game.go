package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure returned from Validate and Load.
var ErrInvalid = errors.New("invalid game config")

// Game is the gameplay tuning shared by every session.
// All times are milliseconds on the session clock.
type Game struct {
	Enemy           EnemyConfig    `yaml:"enemy"`
	Shield          ShieldConfig   `yaml:"shield"`
	Player          PlayerConfig   `yaml:"player"`
	PlayerMaxHealth float64        `yaml:"player_max_health"`
	PlayerMaxShield float64        `yaml:"player_max_shield"`
	Weapons         []WeaponConfig `yaml:"weapons"`
	Stars           StarsConfig    `yaml:"stars"`
}

// EnemyConfig controls enemy spawning and AI.
type EnemyConfig struct {
	Count         int     `yaml:"count"`
	MinDistance   float64 `yaml:"min_distance"`
	MaxDistance   float64 `yaml:"max_distance"`
	Speed         float64 `yaml:"speed"`
	RotationSpeed float64 `yaml:"rotation_speed"` // degrees per tick
	AttackRange   float64 `yaml:"attack_range"`
	FireRate      float64 `yaml:"fire_rate"` // ms between shots
}

// ShieldConfig controls player shield regeneration.
type ShieldConfig struct {
	RegenDelay    float64 `yaml:"regen_delay"`
	RegenRate     float64 `yaml:"regen_rate"`
	RegenInterval float64 `yaml:"regen_interval"`
}

// PlayerConfig holds the player ship handling.
type PlayerConfig struct {
	RotationSpeed float64 `yaml:"rotation_speed"` // degrees per tick
	Acceleration  float64 `yaml:"acceleration"`
	Friction      float64 `yaml:"friction"`
}

// WeaponConfig describes one entry of the player's weapon table.
type WeaponConfig struct {
	Name     string  `yaml:"name"`
	Speed    float64 `yaml:"speed"`
	Damage   float64 `yaml:"damage"`
	Cooldown float64 `yaml:"cooldown"`
	Ammo     int     `yaml:"ammo"`
	MaxAmmo  int     `yaml:"max_ammo"`
}

// StarsConfig tunes the cosmetic starfield drawn behind the terminal view.
type StarsConfig struct {
	Density       float64 `yaml:"density"` // fraction of grid cells holding a star
	Spacing       float64 `yaml:"spacing"` // world units between candidate stars
	MinParallax   float64 `yaml:"min_parallax"`
	MaxParallax   float64 `yaml:"max_parallax"`
	FlickerChance float64 `yaml:"flicker_chance"`
	Seed          int64   `yaml:"seed"`
}

// Default returns the stock tuning.
func Default() *Game {
	return &Game{
		Enemy: EnemyConfig{
			Count:         3,
			MinDistance:   300,
			MaxDistance:   800,
			Speed:         3,
			RotationSpeed: 3,
			AttackRange:   400,
			FireRate:      1500,
		},
		Shield: ShieldConfig{
			RegenDelay:    5000,
			RegenRate:     10,
			RegenInterval: 1000,
		},
		Player: PlayerConfig{
			RotationSpeed: 5,
			Acceleration:  0.2,
			Friction:      0.98,
		},
		PlayerMaxHealth: 100,
		PlayerMaxShield: 100,
		Weapons: []WeaponConfig{
			{Name: "Phase Cannon", Speed: 15, Damage: 10, Cooldown: 200, Ammo: 100, MaxAmmo: 100},
			{Name: "Ion Cannon", Speed: 10, Damage: 20, Cooldown: 500, Ammo: 50, MaxAmmo: 50},
		},
		Stars: StarsConfig{
			Density:       0.08,
			Spacing:       24,
			MinParallax:   0.1,
			MaxParallax:   0.6,
			FlickerChance: 0.05,
			Seed:          1,
		},
	}
}

// Load reads a YAML tuning file on top of Default.
// An empty path falls back to GAME_CONFIG; if that is unset too the defaults are returned.
func Load(path string) (*Game, error) {
	cfg := Default()
	if path == "" {
		path = GetEnv("GAME_CONFIG", "")
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read game config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse game config %s: %w", path, err)
	}

	for i := range cfg.Weapons {
		if cfg.Weapons[i].MaxAmmo == 0 {
			cfg.Weapons[i].MaxAmmo = cfg.Weapons[i].Ammo
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first inconsistent setting.
func (g *Game) Validate() error {
	if len(g.Weapons) == 0 {
		return fmt.Errorf("%w: weapon table is empty", ErrInvalid)
	}
	for i, w := range g.Weapons {
		if w.Speed <= 0 {
			return fmt.Errorf("%w: weapon %d (%s) speed must be positive", ErrInvalid, i, w.Name)
		}
		if w.Cooldown < 0 {
			return fmt.Errorf("%w: weapon %d (%s) cooldown is negative", ErrInvalid, i, w.Name)
		}
		if w.Ammo < 0 || w.Ammo > w.MaxAmmo {
			return fmt.Errorf("%w: weapon %d (%s) ammo must be within [0, %d]", ErrInvalid, i, w.Name, w.MaxAmmo)
		}
	}
	if g.Enemy.Count < 0 {
		return fmt.Errorf("%w: enemy count is negative", ErrInvalid)
	}
	if g.Enemy.MinDistance < 0 || g.Enemy.MinDistance > g.Enemy.MaxDistance {
		return fmt.Errorf("%w: enemy spawn distance [%g, %g) is empty", ErrInvalid, g.Enemy.MinDistance, g.Enemy.MaxDistance)
	}
	if g.PlayerMaxHealth <= 0 || g.PlayerMaxShield < 0 {
		return fmt.Errorf("%w: player maxima must be positive", ErrInvalid)
	}
	if g.Player.Friction <= 0 || g.Player.Friction > 1 {
		return fmt.Errorf("%w: player friction %g outside (0, 1]", ErrInvalid, g.Player.Friction)
	}
	return nil
}
