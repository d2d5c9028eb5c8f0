// ==============================================================================================
// FILE: token/token_test.go
// ==============================================================================================
// PURPOSE: Validates the keyword lookup table, including the PRINT/"?" alias
//          and the STR$/LEFT$ family of dollar-suffixed built-ins.
// ==============================================================================================

package token

import "testing"

func TestLookupIdentKeywords(t *testing.T) {
	tests := []struct {
		upper string
		kind  Kind
	}{
		{"PRINT", Print},
		{"?", Print},
		{"GOTO", Goto},
		{"GOSUB", Gosub},
		{"FOR", For},
		{"NEXT", Next},
		{"STR$", StrS},
		{"LEFT$", LeftS},
		{"MID$", MidS},
		{"AND", And},
		{"NOT", Not},
		{"TRACE", Trace},
		{"NOTRACE", NoTrace},
	}
	for _, tt := range tests {
		got, ok := LookupIdent(tt.upper)
		if !ok {
			t.Errorf("LookupIdent(%q): expected keyword match, got none", tt.upper)
			continue
		}
		if got != tt.kind {
			t.Errorf("LookupIdent(%q) = %s, want %s", tt.upper, got, tt.kind)
		}
	}
}

func TestLookupIdentPlainIdentifier(t *testing.T) {
	for _, name := range []string{"X", "COUNT", "A1", "NAM"} {
		kind, ok := LookupIdent(name)
		if ok {
			t.Errorf("LookupIdent(%q) matched a keyword unexpectedly (%s)", name, kind)
		}
		if kind != Identifier {
			t.Errorf("LookupIdent(%q) = %s, want Identifier", name, kind)
		}
	}
}

func TestBuiltinClassification(t *testing.T) {
	if !NumericBuiltins[Sin] {
		t.Error("SIN should be classified as a numeric builtin")
	}
	if NumericBuiltins[Rnd] {
		t.Error("RND should not be classified as a pure numeric builtin (it consults interpreter state)")
	}
	if !StringBuiltins[MidS] {
		t.Error("MID$ should be classified as a string builtin")
	}
	if StringBuiltins[Abs] {
		t.Error("ABS should not be classified as a string builtin")
	}
}
