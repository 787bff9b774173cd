// Package input turns a raw terminal byte stream into per-frame input snapshots.
package input

import (
	"bufio"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
// Terminals only report repeats, so a held key is a key seen recently.
const keyHoldDuration = 30 * time.Millisecond

// Input represents the current frame's input state.
type Input struct {
	Quit  bool
	Left  bool
	Right bool
	Up    bool
	Down  bool
	Space bool
	Enter bool

	// Fire is held while space is held; the weapon cooldown rate-limits it.
	Fire bool
	// SwitchWeapon is a discrete trigger: true only on frames that saw the key.
	SwitchWeapon bool

	Pressed []byte
}

// Merge folds a newer snapshot into in. Held keys take the newer value,
// discrete triggers stay set until consumed.
func (in Input) Merge(next Input) Input {
	out := next
	out.Fire = in.Fire || next.Fire
	out.SwitchWeapon = in.SwitchWeapon || next.SwitchWeapon
	out.Quit = in.Quit || next.Quit
	out.Pressed = nil
	return out
}

// keyState tracks the last time each key was pressed.
type keyState struct {
	quit  time.Time
	left  time.Time
	right time.Time
	up    time.Time
	down  time.Time
	space time.Time
	enter time.Time
}

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch    chan byte
	state keyState
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{ch: make(chan byte, 128)}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// ReadInput drains all available bytes from the stream (non-blocking).
// A closed stream reports Quit so the caller can end the session.
func ReadInput(s *Stream) Input {
	now := time.Now()
	var buf []byte
	closed := false

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	in := parse(&s.state, buf, now)
	if closed {
		in.Quit = true
	}
	return in
}

// ResetKeyInput forgets every held key, e.g. after a screen transition.
func ResetKeyInput(s *Stream) {
	s.state = keyState{}
}

// parse updates key timestamps from buf and builds the frame's snapshot.
// Arrow keys arrive as CSI sequences (ESC [ A..D).
func parse(state *keyState, buf []byte, now time.Time) Input {
	var switched bool

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			switch buf[i+2] {
			case 'A':
				state.up = now
				i += 2
				continue
			case 'B':
				state.down = now
				i += 2
				continue
			case 'C':
				state.right = now
				i += 2
				continue
			case 'D':
				state.left = now
				i += 2
				continue
			}
		}

		if b == 'e' || b == 'E' || b == '\t' {
			switched = true
			continue
		}
		applyByteToState(state, b, now)
	}

	held := func(t time.Time) bool { return now.Sub(t) < keyHoldDuration }
	return Input{
		Quit:         held(state.quit),
		Left:         held(state.left),
		Right:        held(state.right),
		Up:           held(state.up),
		Down:         held(state.down),
		Space:        held(state.space),
		Enter:        held(state.enter),
		Fire:         held(state.space),
		SwitchWeapon: switched,
		Pressed:      buf,
	}
}

// applyByteToState updates the key state timestamps based on the pressed byte.
func applyByteToState(state *keyState, b byte, now time.Time) {
	switch b {
	case 'q', 'Q':
		state.quit = now
	case 'a', 'A', 'h', 'H':
		state.left = now
	case 'd', 'D', 'l', 'L':
		state.right = now
	case 'w', 'W', 'k', 'K':
		state.up = now
	case 's', 'S', 'j', 'J':
		state.down = now
	case ' ':
		state.space = now
	case '\n', '\r':
		state.enter = now
	}
}
