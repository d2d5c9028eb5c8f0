// ==============================================================================================
// FILE: eval/eval.go
// ==============================================================================================
// PACKAGE: eval
// PURPOSE: Recursive-descent expression evaluator over a token slice. Mirrors Applesoft's
//          precedence table directly (no intermediate AST — the interpreter re-evaluates a
//          statement's tail each time it is reached, so building and discarding a tree bought
//          nothing). Operates purely on tokens and a Host; never touches program text.
// ==============================================================================================

package eval

import (
	"strings"

	"applesoft/basicerr"
	"applesoft/token"
	"applesoft/value"
)

// evaluator holds the token cursor for one expression evaluation.
type evaluator struct {
	toks []token.Token
	pos  int
	host Host
}

func (e *evaluator) cur() token.Token {
	if e.pos >= len(e.toks) {
		return token.Token{Kind: token.EndOfLine}
	}
	return e.toks[e.pos]
}

func (e *evaluator) advance() token.Token {
	t := e.cur()
	if e.pos < len(e.toks) {
		e.pos++
	}
	return t
}

// Eval evaluates one expression beginning at toks[pos] and returns its
// value along with the index of the first unconsumed token. Callers
// (interp's statement dispatch) use the returned offset to continue
// parsing the rest of the statement.
func Eval(toks []token.Token, pos int, host Host) (value.Value, int, error) {
	e := &evaluator{toks: toks, pos: pos, host: host}
	v, err := e.parseOr()
	if err != nil {
		return value.Value{}, e.pos, err
	}
	return v, e.pos, nil
}

func (e *evaluator) parseOr() (value.Value, error) {
	left, err := e.parseAnd()
	if err != nil {
		return value.Value{}, err
	}
	for e.cur().Kind == token.Or {
		e.advance()
		right, err := e.parseAnd()
		if err != nil {
			return value.Value{}, err
		}
		left, err = boolOp(left, right, func(a, b bool) bool { return a || b })
		if err != nil {
			return value.Value{}, err
		}
	}
	return left, nil
}

func (e *evaluator) parseAnd() (value.Value, error) {
	left, err := e.parseNot()
	if err != nil {
		return value.Value{}, err
	}
	for e.cur().Kind == token.And {
		e.advance()
		right, err := e.parseNot()
		if err != nil {
			return value.Value{}, err
		}
		left, err = boolOp(left, right, func(a, b bool) bool { return a && b })
		if err != nil {
			return value.Value{}, err
		}
	}
	return left, nil
}

func (e *evaluator) parseNot() (value.Value, error) {
	if e.cur().Kind == token.Not {
		e.advance()
		v, err := e.parseNot()
		if err != nil {
			return value.Value{}, err
		}
		if v.IsString {
			return value.Value{}, basicerr.TypeMismatch()
		}
		return boolToNumber(v.Num == 0), nil
	}
	return e.parseComparison()
}

func (e *evaluator) parseComparison() (value.Value, error) {
	left, err := e.parseAdd()
	if err != nil {
		return value.Value{}, err
	}
	for {
		op := e.cur().Kind
		switch op {
		case token.Equal, token.NotEqual, token.Less, token.Greater, token.LessEq, token.GreaterEq:
			e.advance()
			right, err := e.parseAdd()
			if err != nil {
				return value.Value{}, err
			}
			left, err = compare(left, op, right)
			if err != nil {
				return value.Value{}, err
			}
		default:
			return left, nil
		}
	}
}

func (e *evaluator) parseAdd() (value.Value, error) {
	left, err := e.parseMul()
	if err != nil {
		return value.Value{}, err
	}
	for {
		op := e.cur().Kind
		if op != token.Plus && op != token.Minus {
			return left, nil
		}
		e.advance()
		right, err := e.parseMul()
		if err != nil {
			return value.Value{}, err
		}
		if op == token.Plus {
			// Any string operand makes '+' a concatenation; a numeric
			// side is rendered exactly as PRINT would render it.
			if left.IsString || right.IsString {
				left = value.String(left.Format() + right.Format())
			} else {
				left = value.Number(left.Num + right.Num)
			}
		} else {
			if left.IsString || right.IsString {
				return value.Value{}, basicerr.TypeMismatch()
			}
			left = value.Number(left.Num - right.Num)
		}
	}
}

func (e *evaluator) parseMul() (value.Value, error) {
	left, err := e.parseUnary()
	if err != nil {
		return value.Value{}, err
	}
	for {
		op := e.cur().Kind
		if op != token.Star && op != token.Slash {
			return left, nil
		}
		e.advance()
		right, err := e.parseUnary()
		if err != nil {
			return value.Value{}, err
		}
		if left.IsString || right.IsString {
			return value.Value{}, basicerr.TypeMismatch()
		}
		if op == token.Star {
			left = value.Number(left.Num * right.Num)
		} else {
			if right.Num == 0 {
				return value.Value{}, basicerr.DivisionByZero()
			}
			left = value.Number(left.Num / right.Num)
		}
	}
}

// parseUnary handles prefix minus. It binds looser than '^' so that
// -2^2 evaluates as -(2^2) == -4, matching Applesoft.
func (e *evaluator) parseUnary() (value.Value, error) {
	if e.cur().Kind == token.Minus {
		e.advance()
		v, err := e.parseUnary()
		if err != nil {
			return value.Value{}, err
		}
		if v.IsString {
			return value.Value{}, basicerr.TypeMismatch()
		}
		return value.Number(-v.Num), nil
	}
	if e.cur().Kind == token.Plus {
		e.advance()
		return e.parseUnary()
	}
	return e.parsePow()
}

// parsePow is right-associative: 2^3^2 == 2^(3^2) == 512. The right
// operand is parsed via parseUnary so a negative exponent (2^-1) is
// accepted without another layer of parens.
func (e *evaluator) parsePow() (value.Value, error) {
	left, err := e.parseAtom()
	if err != nil {
		return value.Value{}, err
	}
	if e.cur().Kind == token.Caret {
		e.advance()
		right, err := e.parseUnary()
		if err != nil {
			return value.Value{}, err
		}
		if left.IsString || right.IsString {
			return value.Value{}, basicerr.TypeMismatch()
		}
		return value.Number(powFloat(left.Num, right.Num)), nil
	}
	return left, nil
}

func (e *evaluator) parseAtom() (value.Value, error) {
	t := e.cur()
	switch t.Kind {
	case token.Number:
		e.advance()
		return value.Number(t.Num), nil
	case token.String:
		e.advance()
		return value.String(t.Literal), nil
	case token.LParen:
		e.advance()
		v, err := e.parseOr()
		if err != nil {
			return value.Value{}, err
		}
		if e.cur().Kind != token.RParen {
			return value.Value{}, basicerr.SyntaxExpected(")")
		}
		e.advance()
		return v, nil
	case token.Fn:
		return e.parseUserFunctionCall()
	case token.Identifier:
		return e.parseIdentifierOrArray()
	default:
		if isBuiltinFunction(t.Kind) {
			return e.parseBuiltinCall()
		}
		return value.Value{}, basicerr.Syntax()
	}
}

func (e *evaluator) parseIdentifierOrArray() (value.Value, error) {
	name := e.advance().Literal
	if e.cur().Kind == token.LParen {
		indices, err := e.parseIndexList()
		if err != nil {
			return value.Value{}, err
		}
		return e.host.GetArrayElement(name, indices)
	}
	return e.host.GetVariable(name), nil
}

// ParseExprList parses a parenthesized, comma-separated expression list
// beginning at toks[pos] (which must be a '('), returning the evaluated
// values and the index of the first token past the closing ')'. interp
// uses this for array subscripts and DIM bounds so the two packages
// never duplicate comma/paren handling.
func ParseExprList(toks []token.Token, pos int, host Host) ([]value.Value, int, error) {
	e := &evaluator{toks: toks, pos: pos, host: host}
	if e.cur().Kind != token.LParen {
		return nil, e.pos, basicerr.SyntaxExpected("(")
	}
	e.advance()
	var vals []value.Value
	for {
		v, err := e.parseOr()
		if err != nil {
			return nil, e.pos, err
		}
		vals = append(vals, v)
		if e.cur().Kind == token.Comma {
			e.advance()
			continue
		}
		break
	}
	if e.cur().Kind != token.RParen {
		return nil, e.pos, basicerr.SyntaxExpected(")")
	}
	e.advance()
	return vals, e.pos, nil
}

func (e *evaluator) parseIndexList() ([]float64, error) {
	e.advance() // '('
	var indices []float64
	for {
		v, err := e.parseOr()
		if err != nil {
			return nil, err
		}
		if v.IsString {
			return nil, basicerr.TypeMismatch()
		}
		indices = append(indices, v.Num)
		if e.cur().Kind == token.Comma {
			e.advance()
			continue
		}
		break
	}
	if e.cur().Kind != token.RParen {
		return nil, basicerr.SyntaxExpected(")")
	}
	e.advance()
	return indices, nil
}

func (e *evaluator) parseUserFunctionCall() (value.Value, error) {
	e.advance() // FN
	if e.cur().Kind != token.Identifier {
		return value.Value{}, basicerr.Syntax()
	}
	name := e.advance().Literal
	if e.cur().Kind != token.LParen {
		return value.Value{}, basicerr.SyntaxExpected("(")
	}
	e.advance()
	arg, err := e.parseOr()
	if err != nil {
		return value.Value{}, err
	}
	if e.cur().Kind != token.RParen {
		return value.Value{}, basicerr.SyntaxExpected(")")
	}
	e.advance()
	return e.host.CallUserFunction(name, arg)
}

func boolOp(left, right value.Value, f func(a, b bool) bool) (value.Value, error) {
	if left.IsString || right.IsString {
		return value.Value{}, basicerr.TypeMismatch()
	}
	return boolToNumber(f(left.Num != 0, right.Num != 0)), nil
}

func boolToNumber(b bool) value.Value {
	if b {
		return value.Number(1)
	}
	return value.Number(0)
}

func compare(left value.Value, op token.Kind, right value.Value) (value.Value, error) {
	if left.IsString != right.IsString {
		return value.Value{}, basicerr.TypeMismatch()
	}
	var result bool
	if left.IsString {
		c := strings.Compare(left.Str, right.Str)
		result = compareOrdering(c, op)
	} else {
		result = compareNumeric(left.Num, right.Num, op)
	}
	return boolToNumber(result), nil
}

func compareOrdering(c int, op token.Kind) bool {
	switch op {
	case token.Equal:
		return c == 0
	case token.NotEqual:
		return c != 0
	case token.Less:
		return c < 0
	case token.Greater:
		return c > 0
	case token.LessEq:
		return c <= 0
	case token.GreaterEq:
		return c >= 0
	}
	return false
}

func compareNumeric(a, b float64, op token.Kind) bool {
	switch op {
	case token.Equal:
		return a == b
	case token.NotEqual:
		return a != b
	case token.Less:
		return a < b
	case token.Greater:
		return a > b
	case token.LessEq:
		return a <= b
	case token.GreaterEq:
		return a >= b
	}
	return false
}
