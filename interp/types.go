// ==============================================================================================
// FILE: interp/types.go
// ==============================================================================================
// PACKAGE: interp
// PURPOSE: Supporting types for the interpreter's program store and runtime stacks.
// ==============================================================================================

package interp

import (
	"applesoft/token"
	"applesoft/value"
)

// line is one stored program line: its number, the tokens following it
// (always ending in token.EndOfLine), and the raw text it was lexed
// from. raw is kept around for DATA harvesting, which must read item
// text straight from source rather than through re-lexed tokens (see
// rebuildDataPool).
type line struct {
	num  int
	toks []token.Token
	raw  string
}

// array is a dense, auto-dimensioned Applesoft array. dims holds the
// declared (or default) size per axis; data is row-major.
type array struct {
	dims   []int
	data   []value.Value
	isStr  bool
}

// forFrame is one level of an active FOR/NEXT loop.
type forFrame struct {
	varName  string
	limit    float64
	step     float64
	lineIdx  int // program line index to resume at on loop-back
	tokPos   int // token offset within that line, just past the FOR statement
}

// gosubFrame is a pending RETURN target. Per the classic return-anchor
// quirk, RETURN resumes at the start of the line *after* the one that
// contained GOSUB, never mid-line.
type gosubFrame struct {
	lineIdx int
}

// userFunc is a DEF FN definition: its formal parameter name and the
// token slice of its body expression (within the defining line).
type userFunc struct {
	param   string
	lineIdx int
	tokPos  int
}
