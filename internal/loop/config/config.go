// Package config centralizes the presentation and pacing constants of the game loop.
// Gameplay tuning lives in internal/config and can be overridden from YAML.
package config

import "time"

// View resolution - the visible viewport in world units.
// Actual rendering scales to fit terminal size.
const (
	ViewWidth  = 720 // Logical viewport width
	ViewHeight = 480 // Logical viewport height (in sub-pixels)
)

// Maximum terminal area used for rendering. Larger terminals get a centered,
// bordered play area.
const (
	MaxTermWidth  = 180
	MaxTermHeight = 60
)

// Radar
const (
	RadarRange = 1200.0 // World units from the player covered by the radar edge
	RadarCols  = 15
	RadarRows  = 7
)

// HUD timing
const (
	WarningDisplaySeconds = 1.0 // "OUT OF AMMO" stays up this long
	HitFlashFrames        = 6   // Frames an impact marker stays visible
	RestartDelaySeconds   = 1.5 // Game over screen ignores input this long
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
)

// Server tick rate
const (
	ServerTickRate = 60
	ServerTickTime = time.Second / ServerTickRate
)
