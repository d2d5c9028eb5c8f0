// ==============================================================================================
// FILE: eval/builtins.go
// ==============================================================================================
// PACKAGE: eval
// PURPOSE: Dispatch table for Applesoft's built-in functions. Numeric built-ins are pure
//          functions of their argument; PEEK/RND/POS/FRE consult the Host.
// ==============================================================================================

package eval

import (
	"math"
	"strconv"
	"strings"

	"applesoft/basicerr"
	"applesoft/token"
	"applesoft/value"
)

func isBuiltinFunction(k token.Kind) bool {
	return token.NumericBuiltins[k] || token.StringBuiltins[k] ||
		k == token.Rnd || k == token.Peek || k == token.Pos || k == token.Val ||
		k == token.Len || k == token.Asc
}

func powFloat(base, exp float64) float64 {
	return math.Pow(base, exp)
}

func (e *evaluator) parseBuiltinCall() (value.Value, error) {
	kind := e.advance().Kind

	switch kind {
	case token.Tab, token.Spc:
		return e.parseOneArgCall(kind)
	}

	if e.cur().Kind != token.LParen {
		return value.Value{}, basicerr.SyntaxExpected("(")
	}
	e.advance()

	switch kind {
	case token.MidS:
		return e.evalMid()
	}

	arg, err := e.parseOr()
	if err != nil {
		return value.Value{}, err
	}

	var result value.Value
	switch kind {
	case token.Abs:
		result, err = numFn(arg, math.Abs)
	case token.Int:
		result, err = numFn(arg, math.Floor)
	case token.Sqr:
		if arg.IsString {
			err = basicerr.TypeMismatch()
		} else if arg.Num < 0 {
			err = basicerr.IllegalQuantity()
		} else {
			result = value.Number(math.Sqrt(arg.Num))
		}
	case token.Sgn:
		result, err = numFn(arg, sgn)
	case token.Sin:
		result, err = numFn(arg, math.Sin)
	case token.Cos:
		result, err = numFn(arg, math.Cos)
	case token.Tan:
		result, err = numFn(arg, math.Tan)
	case token.Atn:
		result, err = numFn(arg, math.Atan)
	case token.Log:
		result, err = numFn(arg, math.Log)
	case token.Exp:
		result, err = numFn(arg, math.Exp)
	case token.Rnd:
		if arg.IsString {
			err = basicerr.TypeMismatch()
		} else {
			result = value.Number(e.host.Rnd(arg.Num))
		}
	case token.Peek:
		if arg.IsString {
			err = basicerr.TypeMismatch()
		} else {
			var b float64
			b, err = e.host.Peek(int(arg.Num))
			result = value.Number(b)
		}
	case token.Pos:
		if arg.IsString {
			err = basicerr.TypeMismatch()
		} else {
			result = value.Number(e.host.Pos(arg.Num))
		}
	case token.Fre:
		if arg.IsString {
			err = basicerr.TypeMismatch()
		} else {
			result = value.Number(e.host.Fre(arg.Num))
		}
	case token.Len:
		if !arg.IsString {
			err = basicerr.TypeMismatch()
		} else {
			result = value.Number(float64(len(arg.Str)))
		}
	case token.Val:
		if arg.IsString {
			result = value.Number(parseVal(arg.Str))
		} else {
			err = basicerr.TypeMismatch()
		}
	case token.StrS:
		if arg.IsString {
			err = basicerr.TypeMismatch()
		} else {
			result = value.String(value.StrDollar(arg.Num))
		}
	case token.ChrS:
		if arg.IsString {
			err = basicerr.TypeMismatch()
		} else {
			result = value.String(string(rune(int(arg.Num))))
		}
	case token.Asc:
		if !arg.IsString || len(arg.Str) == 0 {
			err = basicerr.IllegalQuantity()
		} else {
			result = value.Number(float64([]rune(arg.Str)[0]))
		}
	case token.LeftS:
		result, err = e.evalLeftRight(arg, true)
	case token.RightS:
		result, err = e.evalLeftRight(arg, false)
	default:
		err = basicerr.Syntax()
	}
	if err != nil {
		return value.Value{}, err
	}

	if e.cur().Kind != token.RParen {
		return value.Value{}, basicerr.SyntaxExpected(")")
	}
	e.advance()
	return result, nil
}

// parseOneArgCall handles TAB(n) and SPC(n), Applesoft's cursor-motion
// pseudo-functions. Both return a string of spaces: SPC(n) is n spaces,
// TAB(n) pads from the current cursor column up to column n. PRINT
// writes that string like any other, which moves the cursor.
func (e *evaluator) parseOneArgCall(kind token.Kind) (value.Value, error) {
	if e.cur().Kind != token.LParen {
		return value.Value{}, basicerr.SyntaxExpected("(")
	}
	e.advance()
	arg, err := e.parseOr()
	if err != nil {
		return value.Value{}, err
	}
	if arg.IsString {
		return value.Value{}, basicerr.TypeMismatch()
	}
	if e.cur().Kind != token.RParen {
		return value.Value{}, basicerr.SyntaxExpected(")")
	}
	e.advance()
	n := int(arg.Num)
	if n < 0 {
		return value.Value{}, basicerr.IllegalQuantity()
	}
	if kind == token.Tab {
		col := int(e.host.Pos(0))
		if n <= col {
			return value.String(""), nil
		}
		return value.String(strings.Repeat(" ", n-col)), nil
	}
	return value.String(strings.Repeat(" ", n)), nil
}

func (e *evaluator) evalMid() (value.Value, error) {
	s, err := e.parseOr()
	if err != nil {
		return value.Value{}, err
	}
	if !s.IsString {
		return value.Value{}, basicerr.TypeMismatch()
	}
	if e.cur().Kind != token.Comma {
		return value.Value{}, basicerr.SyntaxExpected(",")
	}
	e.advance()
	start, err := e.parseOr()
	if err != nil {
		return value.Value{}, err
	}
	if start.IsString {
		return value.Value{}, basicerr.TypeMismatch()
	}
	length := float64(len([]rune(s.Str))) - start.Num + 1
	if e.cur().Kind == token.Comma {
		e.advance()
		lv, err := e.parseOr()
		if err != nil {
			return value.Value{}, err
		}
		if lv.IsString {
			return value.Value{}, basicerr.TypeMismatch()
		}
		length = lv.Num
	}
	if e.cur().Kind != token.RParen {
		return value.Value{}, basicerr.SyntaxExpected(")")
	}
	e.advance()
	return value.String(midString(s.Str, int(start.Num), int(length))), nil
}

func (e *evaluator) evalLeftRight(s value.Value, left bool) (value.Value, error) {
	if !s.IsString {
		return value.Value{}, basicerr.TypeMismatch()
	}
	if e.cur().Kind != token.Comma {
		return value.Value{}, basicerr.SyntaxExpected(",")
	}
	e.advance()
	n, err := e.parseOr()
	if err != nil {
		return value.Value{}, err
	}
	if n.IsString {
		return value.Value{}, basicerr.TypeMismatch()
	}
	count := int(n.Num)
	if count < 0 {
		return value.Value{}, basicerr.IllegalQuantity()
	}
	runes := []rune(s.Str)
	if count > len(runes) {
		count = len(runes)
	}
	if left {
		return value.String(string(runes[:count])), nil
	}
	return value.String(string(runes[len(runes)-count:])), nil
}

func midString(s string, start, length int) string {
	runes := []rune(s)
	if start < 1 {
		start = 1
	}
	idx := start - 1
	if idx >= len(runes) || length <= 0 {
		return ""
	}
	end := idx + length
	if end > len(runes) {
		end = len(runes)
	}
	return string(runes[idx:end])
}

func numFn(arg value.Value, f func(float64) float64) (value.Value, error) {
	if arg.IsString {
		return value.Value{}, basicerr.TypeMismatch()
	}
	return value.Number(f(arg.Num)), nil
}

func sgn(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

func parseVal(s string) float64 {
	s = strings.TrimLeft(s, " ")
	end := 0
	seenDigitOrDot := false
	seenE := false
	for end < len(s) {
		c := s[end]
		switch {
		case c >= '0' && c <= '9':
			seenDigitOrDot = true
		case c == '.' && !seenE:
			seenDigitOrDot = true
		case (c == '+' || c == '-') && end == 0:
		case (c == 'E' || c == 'e') && seenDigitOrDot && !seenE:
			seenE = true
		case (c == '+' || c == '-') && end > 0 && (s[end-1] == 'E' || s[end-1] == 'e'):
		default:
			goto done
		}
		end++
	}
done:
	n, _ := strconv.ParseFloat(s[:end], 64)
	return n
}
