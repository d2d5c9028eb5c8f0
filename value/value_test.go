// ==============================================================================================
// FILE: value/value_test.go
// ==============================================================================================

package value

import "testing"

func TestFormatNumberIntegers(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, " 0 "},
		{3, " 3 "},
		{-3, "-3 "},
		{100, " 100 "},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.in); got != tt.want {
			t.Errorf("FormatNumber(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatNumberFractional(t *testing.T) {
	got := FormatNumber(3.14159265358979)
	want := " 3.14159265 "
	if got != want {
		t.Errorf("FormatNumber(pi) = %q, want %q", got, want)
	}
}

func TestStrDollarOmitsLeadingSpace(t *testing.T) {
	if got := StrDollar(3); got != "3 " {
		t.Errorf("StrDollar(3) = %q, want %q", got, "3 ")
	}
	if got := StrDollar(-3); got != "-3 " {
		t.Errorf("StrDollar(-3) = %q, want %q", got, "-3 ")
	}
}

func TestValueFormat(t *testing.T) {
	if got := String("HELLO").Format(); got != "HELLO" {
		t.Errorf("String Format = %q", got)
	}
	if got := Number(5).Format(); got != " 5 " {
		t.Errorf("Number Format = %q", got)
	}
}
