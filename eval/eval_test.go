// ==============================================================================================
// FILE: eval/eval_test.go
// ==============================================================================================

package eval

import (
	"testing"

	"applesoft/lexer"
	"applesoft/value"
)

// fakeHost is a minimal Host for expression-level tests; only the methods
// exercised by a given test case need meaningful bodies.
type fakeHost struct {
	vars   map[string]value.Value
	arrays map[string][]value.Value
	mem    [65536]byte
	rndSeq []float64
	rndIdx int
	funcs  map[string]func(value.Value) value.Value
	col    float64
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		vars:   map[string]value.Value{},
		arrays: map[string][]value.Value{},
		funcs:  map[string]func(value.Value) value.Value{},
	}
}

func (h *fakeHost) GetVariable(name string) value.Value {
	if v, ok := h.vars[name]; ok {
		return v
	}
	if len(name) > 0 && name[len(name)-1] == '$' {
		return value.EmptyString
	}
	return value.Zero
}

func (h *fakeHost) GetArrayElement(name string, indices []float64) (value.Value, error) {
	return value.Zero, nil
}

func (h *fakeHost) Peek(addr int) (float64, error) {
	return float64(h.mem[addr]), nil
}

func (h *fakeHost) Rnd(x float64) float64 {
	if h.rndIdx < len(h.rndSeq) {
		v := h.rndSeq[h.rndIdx]
		h.rndIdx++
		return v
	}
	return 0
}

func (h *fakeHost) CallUserFunction(name string, arg value.Value) (value.Value, error) {
	if f, ok := h.funcs[name]; ok {
		return f(arg), nil
	}
	return value.Value{}, nil
}

func (h *fakeHost) Fre(x float64) float64 { return 38911 }
func (h *fakeHost) Pos(x float64) float64 { return h.col }

func evalExpr(t *testing.T, src string, host Host) value.Value {
	t.Helper()
	toks, err := lexer.Lex(src)
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}
	v, _, err := Eval(toks, 0, host)
	if err != nil {
		t.Fatalf("eval error: %v", err)
	}
	return v
}

func TestArithmeticPrecedence(t *testing.T) {
	host := newFakeHost()
	v := evalExpr(t, "2+3*4", host)
	if v.Num != 14 {
		t.Errorf("2+3*4 = %v, want 14", v.Num)
	}
}

func TestExponentRightAssociative(t *testing.T) {
	host := newFakeHost()
	v := evalExpr(t, "2^3^2", host)
	if v.Num != 512 {
		t.Errorf("2^3^2 = %v, want 512", v.Num)
	}
}

func TestUnaryLooserThanPower(t *testing.T) {
	host := newFakeHost()
	v := evalExpr(t, "-2^2", host)
	if v.Num != -4 {
		t.Errorf("-2^2 = %v, want -4", v.Num)
	}
}

func TestStringConcatenation(t *testing.T) {
	host := newFakeHost()
	v := evalExpr(t, `"AB"+"CD"`, host)
	if !v.IsString || v.Str != "ABCD" {
		t.Errorf(`"AB"+"CD" = %+v, want ABCD`, v)
	}
}

func TestStringNumberConcatenation(t *testing.T) {
	host := newFakeHost()
	v := evalExpr(t, `"AB"+1`, host)
	if !v.IsString || v.Str != "AB 1 " {
		t.Errorf(`"AB"+1 = %+v, want "AB 1 "`, v)
	}
}

func TestComparisonAndLogical(t *testing.T) {
	host := newFakeHost()
	v := evalExpr(t, "1<2 AND 3>2", host)
	if v.Num != 1 {
		t.Errorf("1<2 AND 3>2 = %v, want 1 (true)", v.Num)
	}
}

func TestDivisionByZero(t *testing.T) {
	host := newFakeHost()
	toks, _ := lexer.Lex("1/0")
	_, _, err := Eval(toks, 0, host)
	if err == nil || err.Error() != "?DIVISION BY ZERO ERROR" {
		t.Errorf("expected division by zero, got %v", err)
	}
}

func TestBuiltinFunctions(t *testing.T) {
	host := newFakeHost()
	v := evalExpr(t, "ABS(-5)", host)
	if v.Num != 5 {
		t.Errorf("ABS(-5) = %v, want 5", v.Num)
	}
	v = evalExpr(t, `LEN("HELLO")`, host)
	if v.Num != 5 {
		t.Errorf(`LEN("HELLO") = %v, want 5`, v.Num)
	}
	v = evalExpr(t, `LEFT$("HELLO",2)`, host)
	if v.Str != "HE" {
		t.Errorf(`LEFT$("HELLO",2) = %q, want HE`, v.Str)
	}
	v = evalExpr(t, `MID$("HELLO",2,3)`, host)
	if v.Str != "ELL" {
		t.Errorf(`MID$("HELLO",2,3) = %q, want ELL`, v.Str)
	}
}

func TestSqrOfNegativeIsIllegalQuantity(t *testing.T) {
	host := newFakeHost()
	toks, _ := lexer.Lex("SQR(-4)")
	_, _, err := Eval(toks, 0, host)
	if err == nil || err.Error() != "?ILLEGAL QUANTITY ERROR" {
		t.Errorf("SQR(-4) error = %v, want ?ILLEGAL QUANTITY ERROR", err)
	}
}

func TestParenthesizedExpression(t *testing.T) {
	host := newFakeHost()
	v := evalExpr(t, "(2+3)*4", host)
	if v.Num != 20 {
		t.Errorf("(2+3)*4 = %v, want 20", v.Num)
	}
}
