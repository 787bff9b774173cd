package draw

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"strconv"
	"unicode/utf8"

	"golang.org/x/term"
)

// maxPacket bounds a single write so SSH frames stay under a typical 1500 byte MTU.
const maxPacket = 1400

// Frame collects one frame of terminal output for a canvas: the changed
// canvas cells, the border and any HUD text laid over them. Text writes mark
// the cells they cover so the canvas repaints them once the text is gone.
type Frame struct {
	canvas *Canvas
	out    *bufio.Writer
	buf    bytes.Buffer
	num    [20]byte
}

// NewFrame creates a Frame that renders canvas to w. Cursor positions follow
// the canvas offset, so a resize only needs to touch the canvas.
func NewFrame(w io.Writer, canvas *Canvas) *Frame {
	return &Frame{
		canvas: canvas,
		out:    bufio.NewWriterSize(w, 8192),
	}
}

// Reset queues a full terminal clear and forces every canvas cell to repaint.
func (f *Frame) Reset() {
	f.buf.WriteString("\033[H\033[2J")
	f.canvas.ForceRedraw()
}

// Canvas queues the changed canvas cells followed by the border.
func (f *Frame) Canvas() {
	f.canvas.Render(&f.buf)
	f.canvas.RenderBorder(&f.buf)
}

// Text queues s at the 1-based canvas position (col, row). color is an ANSI
// sequence or "" for the default colour. Text that would leave the canvas is
// dropped and Text reports false.
func (f *Frame) Text(col, row int, color, s string) bool {
	if color == "" {
		return f.Styled(col, row, utf8.RuneCountInString(s), s)
	}
	return f.Styled(col, row, utf8.RuneCountInString(s), color+s+ColorReset)
}

// Styled queues s, which may carry its own escape sequences, as a run of
// width visible cells at (col, row).
func (f *Frame) Styled(col, row, width int, s string) bool {
	if row < 1 || row > f.canvas.TerminalHeight() || col < 1 || col+width-1 > f.canvas.TerminalWidth() {
		return false
	}
	f.moveTo(col, row)
	f.buf.WriteString(s)
	f.canvas.MarkTextDirty(col, row, width)
	return true
}

func (f *Frame) moveTo(col, row int) {
	f.buf.WriteString("\033[")
	f.buf.Write(strconv.AppendInt(f.num[:0], int64(row+f.canvas.OffsetRow()), 10))
	f.buf.WriteByte(';')
	f.buf.Write(strconv.AppendInt(f.num[:0], int64(col+f.canvas.OffsetCol()), 10))
	f.buf.WriteByte('H')
}

// Len reports the number of queued bytes.
func (f *Frame) Len() int {
	return f.buf.Len()
}

// Flush writes the queued frame in packets of at most maxPacket bytes.
func (f *Frame) Flush() error {
	defer f.buf.Reset()
	for f.buf.Len() > 0 {
		if _, err := f.out.Write(f.buf.Next(maxPacket)); err != nil {
			return err
		}
		if err := f.out.Flush(); err != nil {
			return err
		}
	}
	return nil
}

// TermSizeFunc is a function that returns the terminal dimensions.
type TermSizeFunc func() (width, height int, err error)

// StdoutSize reports the size of the terminal attached to os.Stdout.
func StdoutSize() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// ClearScreen clears the terminal and moves the cursor home.
func ClearScreen(w io.Writer) {
	io.WriteString(w, "\033[H\033[2J")
}

// SetCursorVisible shows or hides the terminal cursor.
func SetCursorVisible(w io.Writer, visible bool) {
	if visible {
		io.WriteString(w, "\033[?25h")
		return
	}
	io.WriteString(w, "\033[?25l")
}
