// ==============================================================================================
// FILE: screen/screen.go
// ==============================================================================================
// PACKAGE: screen
// PURPOSE: The display capability interp drives for HOME/HTAB/VTAB/PRINT. Modeled as a
//          capability interface so interp never imports an io.Writer directly, per the
//          collaborator-injection design this interpreter calls for.
// ==============================================================================================

package screen

import (
	"fmt"
	"io"
)

// Screen is the cursor-addressable display interp writes program output to.
// Implementations are expected to clamp HTAB/VTAB targets to their
// configured geometry rather than error — going off-screen in real
// Applesoft wraps or clips, it never raises a BASIC error.
type Screen interface {
	// Write emits text at the current cursor position, advancing the
	// column (and, on a newline, the row).
	Write(s string)

	// Newline moves the cursor to column 0 of the next row, scrolling if
	// necessary.
	Newline()

	// Home clears the display and returns the cursor to (0, 0).
	Home()

	// HTab moves the cursor to the given column (0-based), clamped to
	// the screen width.
	HTab(col int)

	// VTab moves the cursor to the given row (0-based), clamped to the
	// screen height.
	VTab(row int)

	// Column reports the current cursor column, for POS(x).
	Column() int

	// Width reports the configured screen width, for PRINT's comma-zone
	// tabbing and end-of-line wrap.
	Width() int
}

// ANSI is a Screen backed by ANSI escape sequences over an io.Writer. It
// is deliberately best-effort: a write error never aborts a RUN, since a
// historical interpreter can't meaningfully handle a broken terminal
// mid-program either.
type ANSI struct {
	out    io.Writer
	width  int
	height int
	col    int
	row    int
}

// NewANSI creates a Screen with the given geometry, defaulting to the
// classic 40x24 Applesoft text screen when either dimension is <= 0.
func NewANSI(out io.Writer, width, height int) *ANSI {
	if width <= 0 {
		width = 40
	}
	if height <= 0 {
		height = 24
	}
	return &ANSI{out: out, width: width, height: height}
}

func (a *ANSI) Write(s string) {
	for _, r := range s {
		if r == '\n' {
			a.Newline()
			continue
		}
		fmt.Fprint(a.out, string(r))
		a.col++
		if a.col >= a.width {
			a.Newline()
		}
	}
}

func (a *ANSI) Newline() {
	fmt.Fprint(a.out, "\r\n")
	a.col = 0
	a.row++
	if a.row >= a.height {
		a.row = a.height - 1
	}
}

func (a *ANSI) Home() {
	fmt.Fprint(a.out, "\x1b[2J\x1b[H")
	a.col, a.row = 0, 0
}

func (a *ANSI) HTab(col int) {
	if col < 0 {
		col = 0
	}
	if col >= a.width {
		col = a.width - 1
	}
	a.col = col
	fmt.Fprintf(a.out, "\x1b[%d;%dH", a.row+1, a.col+1)
}

func (a *ANSI) VTab(row int) {
	if row < 0 {
		row = 0
	}
	if row >= a.height {
		row = a.height - 1
	}
	a.row = row
	fmt.Fprintf(a.out, "\x1b[%d;%dH", a.row+1, a.col+1)
}

func (a *ANSI) Column() int { return a.col }
func (a *ANSI) Width() int  { return a.width }
