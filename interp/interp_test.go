// ==============================================================================================
// FILE: interp/interp_test.go
// ==============================================================================================
// PURPOSE: End-to-end program scenarios exercising the statement dispatcher: PRINT formatting,
//          FOR/NEXT, GOSUB/RETURN's return-anchor quirk, DATA/READ, array auto-dimensioning,
//          and DEF FN parameter save/restore.
// ==============================================================================================

package interp

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"applesoft/lineio"
	"applesoft/screen"
)

func newTestInterp(t *testing.T, out *bytes.Buffer) *Interpreter {
	t.Helper()
	scr := screen.NewANSI(out, 40, 24)
	in := lineio.NewStdin(strings.NewReader(""))
	return New(scr, in, nil)
}

func loadProgram(t *testing.T, it *Interpreter, src string) {
	t.Helper()
	for _, l := range strings.Split(strings.TrimSpace(src), "\n") {
		if l == "" {
			continue
		}
		if ok, err := it.StoreLine(l); err != nil || !ok {
			t.Fatalf("StoreLine(%q): ok=%v err=%v", l, ok, err)
		}
	}
}

func TestPrintArithmeticAndStrings(t *testing.T) {
	var out bytes.Buffer
	it := newTestInterp(t, &out)
	loadProgram(t, it, `
10 PRINT "SUM="; 2+3
20 END
`)
	if err := it.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "SUM= 5") {
		t.Errorf("output = %q, want to contain %q", got, "SUM= 5")
	}
}

func TestForNextLoop(t *testing.T) {
	var out bytes.Buffer
	it := newTestInterp(t, &out)
	loadProgram(t, it, `
10 FOR I = 1 TO 3
20 PRINT I;
30 NEXT I
40 END
`)
	if err := it.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, " 1  2  3 ") {
		t.Errorf("output = %q, want to contain \" 1  2  3 \"", got)
	}
}

func TestForNextSingleLine(t *testing.T) {
	var out bytes.Buffer
	it := newTestInterp(t, &out)
	loadProgram(t, it, `
10 FOR I=1 TO 3 : PRINT I; : NEXT I
`)
	if err := it.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, " 1  2  3 ") {
		t.Errorf("output = %q, want to contain \" 1  2  3 \"", got)
	}
}

func TestGosubReturnAnchorQuirk(t *testing.T) {
	var out bytes.Buffer
	it := newTestInterp(t, &out)
	// Line 10 calls the subroutine, then has a trailing statement that
	// should NEVER run: RETURN resumes at line 20, not back at line 10.
	loadProgram(t, it, `
10 GOSUB 100 : PRINT "SKIPPED"
20 PRINT "AFTER"
30 END
100 PRINT "IN SUB"
110 RETURN
`)
	if err := it.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	got := out.String()
	if strings.Contains(got, "SKIPPED") {
		t.Errorf("output = %q, should not contain SKIPPED", got)
	}
	if !strings.Contains(got, "IN SUB") || !strings.Contains(got, "AFTER") {
		t.Errorf("output = %q, want IN SUB and AFTER", got)
	}
}

func TestDataReadRestore(t *testing.T) {
	var out bytes.Buffer
	it := newTestInterp(t, &out)
	loadProgram(t, it, `
10 DATA 1,2,3
20 READ A,B,C
30 PRINT A+B+C
40 RESTORE
50 READ D
60 PRINT D
70 END
`)
	if err := it.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, " 6 ") {
		t.Errorf("output = %q, want to contain sum 6", got)
	}
	if !strings.Contains(got, " 1 ") {
		t.Errorf("output = %q, want RESTORE to rewind to first item", got)
	}
}

func TestDataNegativeNumber(t *testing.T) {
	var out bytes.Buffer
	it := newTestInterp(t, &out)
	loadProgram(t, it, `
10 DATA -5,"HI, THERE",7
20 READ A,B$,C
30 PRINT A; B$; C
40 END
`)
	if err := it.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "-5 HI, THERE 7") {
		t.Errorf("output = %q, want -5 HI, THERE 7", got)
	}
}

func TestArrayAutoDimension(t *testing.T) {
	var out bytes.Buffer
	it := newTestInterp(t, &out)
	loadProgram(t, it, `
10 A(5) = 42
20 PRINT A(5)
30 END
`)
	if err := it.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(out.String(), " 42 ") {
		t.Errorf("output = %q, want 42", out.String())
	}
}

func TestDefFnParameterSaveRestore(t *testing.T) {
	var out bytes.Buffer
	it := newTestInterp(t, &out)
	loadProgram(t, it, `
10 X = 99
20 DEF FN SQ(X) = X*X
30 PRINT FN SQ(4)
40 PRINT X
50 END
`)
	if err := it.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, " 16 ") {
		t.Errorf("output = %q, want FN SQ(4)=16", got)
	}
	if !strings.Contains(got, " 99 ") {
		t.Errorf("output = %q, want X restored to 99", got)
	}
}

func TestUndefinedStatementError(t *testing.T) {
	var out bytes.Buffer
	it := newTestInterp(t, &out)
	loadProgram(t, it, `
10 GOTO 999
`)
	err := it.Run(context.Background())
	if err == nil || err.Error() != "?UNDEF'D STATEMENT ERROR IN 10" {
		t.Errorf("err = %v, want ?UNDEF'D STATEMENT ERROR IN 10", err)
	}
}

func TestStopReportsBreak(t *testing.T) {
	var out bytes.Buffer
	it := newTestInterp(t, &out)
	loadProgram(t, it, `
10 STOP
`)
	err := it.Run(context.Background())
	if err == nil || err.Error() != "BREAK IN 10" {
		t.Errorf("err = %v, want BREAK IN 10", err)
	}
}
