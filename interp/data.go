// ==============================================================================================
// FILE: interp/data.go
// ==============================================================================================
// PACKAGE: interp
// PURPOSE: Builds the READ/DATA pool. Applesoft scans every DATA statement in line-number
//          order once at RUN time, regardless of control flow ever reaching those lines, so
//          READ/RESTORE operate over one flat pool rather than re-scanning program text.
// ==============================================================================================

package interp

import (
	"strings"

	"applesoft/token"
	"applesoft/value"
)

func (it *Interpreter) rebuildDataPool() {
	it.data = nil
	for _, l := range it.lines {
		raw := []rune(l.raw)
		pos := 0
		for pos < len(l.toks) {
			if l.toks[pos].Kind != token.Data {
				pos++
				continue
			}
			start := l.toks[pos].Col + len("DATA")
			pos++
			end := len(raw)
			for pos < len(l.toks) {
				k := l.toks[pos].Kind
				if k == token.Colon || k == token.EndOfLine {
					end = l.toks[pos].Col
					break
				}
				pos++
			}
			if start < 0 {
				start = 0
			}
			if start > len(raw) {
				start = len(raw)
			}
			if end < start {
				end = start
			}
			it.data = append(it.data, parseDataItems(string(raw[start:end]))...)
		}
	}
}

// parseDataItems splits the raw text following a DATA keyword into its
// comma-separated items, exactly as classic Applesoft reads them: commas
// inside a quoted item don't split it, a quoted item's surrounding quotes
// are stripped, and an unquoted item is trimmed of surrounding whitespace
// and kept as literal text (so "-5" stays "-5" rather than being re-lexed
// into a unary-minus expression). Every item is stored as a plain string;
// READ's target variable decides whether it becomes a number or a string.
func parseDataItems(span string) []value.Value {
	if strings.TrimSpace(span) == "" {
		return nil
	}

	var items []value.Value
	var cur strings.Builder
	inQuotes := false
	flush := func() {
		items = append(items, value.String(unquoteDataItem(cur.String())))
		cur.Reset()
	}
	for _, r := range span {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			cur.WriteRune(r)
		case r == ',' && !inQuotes:
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return items
}

func unquoteDataItem(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
