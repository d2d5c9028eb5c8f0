// ==============================================================================================
// FILE: interp/program.go
// ==============================================================================================
// PACKAGE: interp
// PURPOSE: The line-numbered program store: insertion, deletion, lookup, LIST rendering, and
//          NEW. Mirrors the classic Applesoft editor model — entering a bare line number with
//          nothing after it deletes that line.
// ==============================================================================================

package interp

import (
	"strconv"
	"strings"

	"applesoft/basicerr"
	"applesoft/lexer"
	"applesoft/token"
	"applesoft/value"
)

// StoreLine tokenizes one line of program text. A leading line number is
// required; a line consisting of just that number deletes any existing
// line with the same number. Returns ok=false (with no error) for
// immediate-mode text carrying no leading line number, so the caller can
// route it to ExecuteDirect instead.
func (it *Interpreter) StoreLine(text string) (ok bool, err error) {
	toks, err := lexer.Lex(text)
	if err != nil {
		return false, err
	}
	if len(toks) == 0 || toks[0].Kind != token.Number {
		return false, nil
	}
	num := int(toks[0].Num)
	if num < 0 || float64(num) != toks[0].Num {
		return false, basicerr.IllegalQuantity()
	}
	rest := toks[1:]

	idx, found := it.findLineIndex(num)
	if len(rest) == 1 && rest[0].Kind == token.EndOfLine {
		if found {
			it.lines = append(it.lines[:idx], it.lines[idx+1:]...)
		}
		return true, nil
	}

	newLine := line{num: num, toks: rest, raw: text}
	if found {
		it.lines[idx] = newLine
	} else {
		it.lines = append(it.lines, line{})
		copy(it.lines[idx+1:], it.lines[idx:])
		it.lines[idx] = newLine
	}
	return true, nil
}

// New clears the stored program and all runtime state, matching the
// classic NEW command.
func (it *Interpreter) New() {
	it.lines = nil
	it.vars = map[string]value.Value{}
	it.arrays = map[string]*array{}
	it.userFuncs = map[string]userFunc{}
	it.forStack = nil
	it.gosubStack = nil
	it.data = nil
	it.dataPtr = 0
}

// List renders the stored program back to source text, one string per
// line, in ascending line-number order.
func (it *Interpreter) List() []string {
	out := make([]string, len(it.lines))
	for i, l := range it.lines {
		out[i] = strconv.Itoa(l.num) + " " + detokenize(l.toks)
	}
	return out
}

// detokenize renders a token slice (without its line number and final
// EndOfLine) back to readable Applesoft text. It is a best-effort
// reconstruction for LIST/SAVE, not a byte-exact echo of what was typed.
func detokenize(toks []token.Token) string {
	var sb strings.Builder
	prevTight := true
	for _, t := range toks {
		if t.Kind == token.EndOfLine {
			break
		}
		lit := literalFor(t)
		tight := t.Kind == token.Comma || t.Kind == token.Semicolon || t.Kind == token.Colon ||
			t.Kind == token.RParen
		openParen := t.Kind == token.LParen
		if !prevTight && !tight && sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(lit)
		prevTight = openParen
	}
	return sb.String()
}

func literalFor(t token.Token) string {
	switch t.Kind {
	case token.String:
		return `"` + t.Literal + `"`
	case token.Number:
		return strconv.FormatFloat(t.Num, 'g', -1, 64)
	default:
		return t.Literal
	}
}
