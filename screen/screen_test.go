// ==============================================================================================
// FILE: screen/screen_test.go
// ==============================================================================================

package screen

import (
	"bytes"
	"testing"
)

func TestWriteAdvancesColumn(t *testing.T) {
	var buf bytes.Buffer
	s := NewANSI(&buf, 10, 5)
	s.Write("HI")
	if s.Column() != 2 {
		t.Errorf("Column() = %d, want 2", s.Column())
	}
}

func TestWriteWrapsAtWidth(t *testing.T) {
	var buf bytes.Buffer
	s := NewANSI(&buf, 4, 5)
	s.Write("ABCDE")
	if s.Column() != 1 {
		t.Errorf("Column() = %d, want 1 after wrap", s.Column())
	}
}

func TestHTabClampsToWidth(t *testing.T) {
	var buf bytes.Buffer
	s := NewANSI(&buf, 10, 5)
	s.HTab(100)
	if s.Column() != 9 {
		t.Errorf("Column() = %d, want 9 (clamped)", s.Column())
	}
	s.HTab(-5)
	if s.Column() != 0 {
		t.Errorf("Column() = %d, want 0 (clamped)", s.Column())
	}
}

func TestHomeResetsCursor(t *testing.T) {
	var buf bytes.Buffer
	s := NewANSI(&buf, 10, 5)
	s.Write("HI")
	s.Home()
	if s.Column() != 0 {
		t.Errorf("Column() after Home = %d, want 0", s.Column())
	}
}

func TestDefaultGeometry(t *testing.T) {
	var buf bytes.Buffer
	s := NewANSI(&buf, 0, 0)
	if s.Width() != 40 {
		t.Errorf("default Width() = %d, want 40", s.Width())
	}
}
