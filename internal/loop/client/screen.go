package client

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/tomz197/voidfighter/internal/draw"
	"github.com/tomz197/voidfighter/internal/loop/config"
	"github.com/tomz197/voidfighter/internal/object"
	"github.com/tomz197/voidfighter/internal/physics"
	"github.com/tomz197/voidfighter/internal/world"
)

const (
	playerNose  = 14.0
	playerTail  = 9.0
	playerWing  = 8.0
	enemyNose   = 11.0
	enemyTail   = 8.0
	enemyWing   = 7.0
	shotLength  = 8.0
	barWidth    = 12
	starDimming = 0.7
)

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	// On game state or inactivity transitions, do a full terminal clear
	// so UI elements from the previous state don't persist on screen.
	stateChanged := c.state.GameState != c.state.prevGameState
	inactiveChanged := c.state.isInactive != c.state.wasInactive
	if stateChanged || inactiveChanged {
		c.frame.Reset()
		c.state.prevGameState = c.state.GameState
		c.state.wasInactive = c.state.isInactive
	}

	c.canvas.Clear()

	var snap *world.Snapshot
	if c.session != nil {
		snap = c.session.GetSnapshot()
	}

	if snap != nil && c.state.GameState != GameStateStart {
		c.drawWorld(snap)
	} else {
		// Title screen drifts through the backdrop.
		c.drawStars(Camera{X: float64(time.Now().UnixMilli()) / 25})
	}

	// Changed cells, plus the border when the terminal exceeds max render resolution
	c.frame.Canvas()

	// Draw UI overlay
	c.drawUI(snap)

	c.state.fps.tick(c.state.delta)
	return c.frame.Flush()
}

// toView converts world coordinates to logical canvas coordinates around the camera.
func (c *Client) toView(x, y float64) (float64, float64) {
	return x - c.state.Camera.X + config.ViewWidth/2, y - c.state.Camera.Y + config.ViewHeight/2
}

func (c *Client) drawStars(cam Camera) {
	if c.stars == nil {
		return
	}
	c.state.stars = c.stars.Visible(cam.X, cam.Y, config.ViewWidth, config.ViewHeight, c.rng, c.state.stars[:0])
	for _, s := range c.state.stars {
		c.canvas.SetShade(s.X, s.Y, s.Brightness*starDimming)
	}
}

// drawWorld draws every entity of the snapshot, back to front.
func (c *Client) drawWorld(snap *world.Snapshot) {
	c.drawStars(c.state.Camera)

	for _, e := range snap.Explosions {
		for _, p := range e.Particles {
			x, y := c.toView(p.X, p.Y)
			c.canvas.SetShade(x, y, p.Opacity)
		}
		for _, d := range e.Debris {
			x, y := c.toView(d.X, d.Y)
			hx, hy := physics.Heading(d.Rotation)
			half := d.Size / 2
			c.canvas.DrawShadedLine(
				draw.Point{X: x - hx*half, Y: y - hy*half},
				draw.Point{X: x + hx*half, Y: y + hy*half},
				d.Opacity,
			)
		}
	}

	for _, p := range snap.Projectiles {
		x, y := c.toView(p.X, p.Y)
		if p.Owner == object.OwnerEnemy {
			c.canvas.SetFloat(x, y)
			c.canvas.SetShade(x+1, y, 0.4)
			c.canvas.SetShade(x-1, y, 0.4)
			continue
		}
		hx, hy := physics.Heading(p.Rotation)
		c.canvas.DrawLine(draw.Point{X: x, Y: y}, draw.Point{X: x - hx*shotLength, Y: y - hy*shotLength})
	}

	for _, e := range snap.Enemies {
		x, y := c.toView(e.X, e.Y)
		c.canvas.DrawPolygon(c.shipPoints(x, y, e.Rotation, enemyNose, enemyTail, enemyWing), false)
	}

	if !snap.Player.Disabled {
		x, y := c.toView(snap.Player.X, snap.Player.Y)
		c.canvas.DrawPolygon(c.shipPoints(x, y, snap.Player.Rotation, playerNose, playerTail, playerWing), true)
	}

	for _, f := range c.state.flashes {
		c.drawFlash(f)
	}
}

// shipPoints returns a triangle pointing along rotation, centred on (x, y).
func (c *Client) shipPoints(x, y, rotation, nose, tail, wing float64) []draw.Point {
	hx, hy := physics.Heading(rotation)
	// Right-hand perpendicular of the heading.
	rx, ry := -hy, hx
	pts := c.canvas.BorrowPoints(3)
	pts[0] = draw.Point{X: x + hx*nose, Y: y + hy*nose}
	pts[1] = draw.Point{X: x - hx*tail + rx*wing, Y: y - hy*tail + ry*wing}
	pts[2] = draw.Point{X: x - hx*tail - rx*wing, Y: y - hy*tail - ry*wing}
	return pts
}

// drawFlash draws an impact ring that shrinks and fades over its lifetime.
func (c *Client) drawFlash(f hitFlash) {
	x, y := c.toView(f.X, f.Y)
	life := float64(f.frames) / config.HitFlashFrames
	radius := 4 * f.Scale * (0.5 + life/2)
	const segments = 12
	for i := 0; i < segments; i++ {
		a := 2 * math.Pi * float64(i) / segments
		c.canvas.SetShade(x+math.Cos(a)*radius, y+math.Sin(a)*radius, life)
	}
}

// writeText writes s at a 1-based canvas position and marks the cells so the
// canvas repaints them once the text is gone.
func (c *Client) writeText(col, row int, s string) {
	c.writeColored(col, row, "", s)
}

func (c *Client) writeColored(col, row int, color, s string) {
	c.frame.Text(col, row, color, s)
}

// writeCentered writes s centered on column centerX.
func (c *Client) writeCentered(centerX, row int, s string) {
	c.writeText(centerX-utf8.RuneCountInString(s)/2, row, s)
}

// drawUI draws the game UI overlay.
func (c *Client) drawUI(snap *world.Snapshot) {
	termWidth := c.canvas.TerminalWidth()
	termHeight := c.canvas.TerminalHeight()
	centerX := termWidth / 2
	centerY := termHeight / 2

	if c.state.GameState == GameStateShutdown {
		c.drawShutdownScreen(centerX, centerY)
		return
	}

	if c.state.isInactive {
		c.drawInactivityScreen(centerX, centerY)
		return
	}

	switch c.state.GameState {
	case GameStatePlaying:
		if snap != nil {
			c.drawPlayingHUD(termWidth, termHeight, snap)
		}
	case GameStateStart:
		c.drawStartScreen(centerX, centerY)
	case GameStateGameOver:
		c.drawGameOverScreen(centerX, centerY)
	}
}

// bar renders a fixed-width gauge for value out of maximum.
func bar(value, maximum float64, width int) string {
	filled := 0
	if maximum > 0 {
		filled = int(math.Round(physics.Clamp(value/maximum, 0, 1) * float64(width)))
	}
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}

// drawPlayingHUD draws the in-game HUD.
// Text fields use fixed-width formatting so shrinking values don't leave
// residual characters on screen.
func (c *Client) drawPlayingHUD(termWidth, termHeight int, snap *world.Snapshot) {
	p := snap.Player

	hullColor := ""
	if p.MaxHealth > 0 && p.Health/p.MaxHealth < 0.3 {
		hullColor = draw.ColorRed
	}
	c.writeColored(2, 1, hullColor, fmt.Sprintf("HULL %s %3.0f", bar(p.Health, p.MaxHealth, barWidth), p.Health))
	c.writeColored(2, 2, draw.ColorBrightCyan, fmt.Sprintf("SHLD %s %3.0f", bar(p.Shield, p.MaxShield, barWidth), p.Shield))

	w := p.CurrentWeapon()
	c.writeText(2, 3, fmt.Sprintf("AMMO %s %3d/%-3d", bar(float64(w.Ammo), float64(w.MaxAmmo), barWidth), w.Ammo, w.MaxAmmo))
	c.writeText(2, 4, fmt.Sprintf("%-16s", w.Name))

	if c.state.warningTimer > 0 {
		msg := "OUT OF AMMO"
		c.writeColored(termWidth/2-len(msg)/2, termHeight/2+4, draw.ColorBrightRed, msg)
	}

	fps := fmt.Sprintf("FPS %3d", c.state.fps.value)
	c.writeText(termWidth-len(fps)-1, 1, fps)

	c.drawRadar(termWidth, termHeight, snap)

	coords := fmt.Sprintf("X:%-6.0f Y:%-6.0f", p.X, p.Y)
	c.writeText(2, termHeight, coords)

	status := fmt.Sprintf("KILLS %-3d HOSTILES %-2d", c.state.kills, len(snap.Enemies))
	c.writeText(termWidth-len(status)-1, termHeight, status)
}

// radarCell maps an offset from the player to a radar cell. Contacts beyond
// the radar range stick to the edge in their direction.
func radarCell(dx, dy float64) (col, subRow int) {
	const subRows = config.RadarRows * 2
	fx := physics.Clamp(dx/config.RadarRange, -1, 1)
	fy := physics.Clamp(dy/config.RadarRange, -1, 1)
	col = int(math.Round((fx + 1) / 2 * (config.RadarCols - 1)))
	subRow = int(math.Round((fy + 1) / 2 * (subRows - 1)))
	return col, subRow
}

// drawRadar draws enemies around the player using half-block characters
// for 2x vertical resolution. The player is bright cyan, enemies red.
func (c *Client) drawRadar(termWidth, termHeight int, snap *world.Snapshot) {
	// Grid: 0=empty, 1=enemy, 2=self (self overwrites)
	grid := &c.state.radar
	*grid = [config.RadarRows * 2][config.RadarCols]byte{}

	for _, e := range snap.Enemies {
		col, sub := radarCell(e.X-snap.Player.X, e.Y-snap.Player.Y)
		if grid[sub][col] == 0 {
			grid[sub][col] = 1
		}
	}
	col, sub := radarCell(0, 0)
	grid[sub][col] = 2

	// Position: top-right, below the FPS counter
	startCol := termWidth - config.RadarCols - 3
	startRow := 3
	if startCol < 1 || startRow+config.RadarRows+1 > termHeight {
		return // Not enough space
	}

	c.writeText(startCol, startRow, "┌"+strings.Repeat("─", config.RadarCols)+"┐")

	var line strings.Builder
	for termRow := 0; termRow < config.RadarRows; termRow++ {
		line.Reset()
		line.WriteString("│")
		curColor := ""
		for col := 0; col < config.RadarCols; col++ {
			top := grid[termRow*2][col]
			bot := grid[termRow*2+1][col]
			wantColor := draw.ColorRed
			if top == 2 || bot == 2 {
				wantColor = draw.ColorBrightCyan
			}
			var r rune
			switch {
			case top != 0 && bot != 0:
				r = draw.BlockFull
			case top != 0:
				r = draw.BlockUpperHalf
			case bot != 0:
				r = draw.BlockLowerHalf
			default:
				r = ' '
			}
			if r != ' ' {
				if curColor != wantColor {
					line.WriteString(wantColor)
					curColor = wantColor
				}
			} else if curColor != "" {
				line.WriteString(draw.ColorReset)
				curColor = ""
			}
			line.WriteRune(r)
		}
		if curColor != "" {
			line.WriteString(draw.ColorReset)
		}
		line.WriteString("│")
		c.frame.Styled(startCol, startRow+1+termRow, config.RadarCols+2, line.String())
	}

	c.writeText(startCol, startRow+1+config.RadarRows, "└"+strings.Repeat("─", config.RadarCols)+"┘")
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(centerX, centerY int) {
	c.writeCentered(centerX, centerY-2, "INACTIVITY WARNING")

	msg := fmt.Sprintf(
		"You have been inactive for too long. You will be disconnected in %d seconds.",
		int(config.InactivityDisconnectUser-time.Since(c.lastInput).Seconds()),
	)
	c.writeCentered(centerX, centerY, msg)
	c.writeCentered(centerX, centerY+2, "Press any key to continue")
}

var titleArt = []string{
	`╻ ╻┏━┓╻╺┳┓┏━╸╻┏━╸╻ ╻╺┳╸┏━╸┏━┓`,
	`┃┏┛┃ ┃┃ ┃┃┣╸ ┃┃╺┓┣━┫ ┃ ┣╸ ┣┳┛`,
	`┗┛ ┗━┛╹╺┻┛╹  ╹┗━┛╹ ╹ ╹ ┗━╸╹┗╸`,
}

var bootLines = []string{
	"> NAVIGATION ............ ONLINE",
	"> DEFLECTOR SHIELDS ..... CHARGED",
	"> WEAPON SYSTEMS ........ ARMED",
	"> LONG RANGE SCAN ....... HOSTILES DETECTED",
}

// bootLineInterval is how fast the boot sequence scrolls in.
const bootLineInterval = 0.4

// drawStartScreen draws the title screen.
func (c *Client) drawStartScreen(centerX, centerY int) {
	titleStartY := centerY - 9
	for i, line := range titleArt {
		c.writeCentered(centerX, titleStartY+i, line)
	}
	c.writeCentered(centerX, titleStartY+len(titleArt)+1, "~ Deep space combat over SSH ~")

	// Boot sequence, one line at a time
	bootY := titleStartY + len(titleArt) + 3
	shown := min(len(bootLines), int(c.state.stateTime/bootLineInterval))
	for i := 0; i < shown; i++ {
		c.writeText(centerX-22, bootY+i, bootLines[i])
	}

	controlsY := bootY + len(bootLines) + 1
	c.writeCentered(centerX, controlsY, "Controls")
	controlLines := []string{
		"W / Up  . . . . . Thrust",
		"S / Down  . . . . Brake",
		"A D / < >  . . . Rotate",
		"SPACE  . . . . . . Fire",
		"E / TAB  . Switch weapon",
		"Q  . . . . . . . . Quit",
	}
	for i, line := range controlLines {
		c.writeCentered(centerX, controlsY+1+i, line)
	}

	// Blinking start prompt once the boot sequence is done
	if shown == len(bootLines) && time.Now().UnixMilli()/600%2 == 0 {
		c.writeCentered(centerX, controlsY+len(controlLines)+2, ">>  Press SPACE to Launch  <<")
	}
}

// drawGameOverScreen draws the game over screen over the wreck.
func (c *Client) drawGameOverScreen(centerX, centerY int) {
	art := []string{
		`   ___   _   __  __ ___    _____   _____ ___  `,
		`  / __| /_\ |  \/  | __|  / _ \ \ / / __| _ \ `,
		` | (_ |/ _ \| |\/| | _|  | (_) \ V /| _||   / `,
		`  \___/_/ \_\_|  |_|___|  \___/ \_/ |___|_|_\ `,
	}
	titleStartY := centerY - 6
	for i, line := range art {
		c.writeCentered(centerX, titleStartY+i, line)
	}

	c.writeCentered(centerX, titleStartY+len(art)+1, fmt.Sprintf("Hostiles destroyed: %d", c.state.kills))
	c.writeCentered(centerX, titleStartY+len(art)+2, fmt.Sprintf("Survived: %.1f seconds", c.state.survived))

	if c.state.stateTime >= config.RestartDelaySeconds && time.Now().UnixMilli()/600%2 == 0 {
		c.writeCentered(centerX, titleStartY+len(art)+4, ">>  Press SPACE to Restart  <<")
	}
}

// drawShutdownScreen draws the server shutdown notification screen.
func (c *Client) drawShutdownScreen(centerX, centerY int) {
	c.writeCentered(centerX, centerY-3, "SERVER SHUTTING DOWN")
	c.writeCentered(centerX, centerY-1, "The server is restarting for maintenance.")
	c.writeCentered(centerX, centerY, "Please reconnect in a moment.")

	remaining := int(c.state.shutdownTimer) + 1
	c.writeCentered(centerX, centerY+2, fmt.Sprintf("Disconnecting in %d seconds...", remaining))
	c.writeCentered(centerX, centerY+4, "Press Q to disconnect now")
}
