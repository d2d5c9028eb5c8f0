// ==============================================================================================
// FILE: repl/repl_test.go
// ==============================================================================================

package repl

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"applesoft/interp"
	"applesoft/lineio"
	"applesoft/screen"
	"applesoft/store"
)

func newShell(t *testing.T, session string) (*Shell, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	scr := screen.NewANSI(&out, 40, 24)
	in := lineio.NewStdin(strings.NewReader(""))
	it := interp.New(scr, in, nil)
	st := store.New(filepath.Join(t.TempDir(), "programs"))
	sh := New(it, st, strings.NewReader(session), &out, nil)
	return sh, &out
}

func TestRunListAndProgramEntry(t *testing.T) {
	sh, out := newShell(t, "10 PRINT \"HI\"\nRUN\nLIST\nQUIT\n")
	sh.Run(context.Background())
	got := out.String()
	if !strings.Contains(got, "HI") {
		t.Errorf("output = %q, want to contain HI from RUN", got)
	}
	if !strings.Contains(got, "10 PRINT") {
		t.Errorf("output = %q, want LIST to show stored line", got)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	sh, out := newShell(t, "10 PRINT 1\nSAVE DEMO\nNEW\nLOAD DEMO\nRUN\nQUIT\n")
	sh.Run(context.Background())
	got := out.String()
	if !strings.Contains(got, " 1 ") {
		t.Errorf("output = %q, want RUN after LOAD to print 1", got)
	}
}

func TestRunWithStartLine(t *testing.T) {
	sh, out := newShell(t, "10 PRINT \"SKIPPED\"\n20 PRINT \"FROM20\"\nRUN 20\nQUIT\n")
	sh.Run(context.Background())
	got := out.String()
	if strings.Contains(got, "SKIPPED") {
		t.Errorf("output = %q, should not contain SKIPPED", got)
	}
	if !strings.Contains(got, "FROM20") {
		t.Errorf("output = %q, want FROM20", got)
	}
}

func TestRunWithUndefinedStartLine(t *testing.T) {
	sh, out := newShell(t, "10 PRINT 1\nRUN 999\nQUIT\n")
	sh.Run(context.Background())
	if !strings.Contains(out.String(), "?UNDEF'D STATEMENT ERROR") {
		t.Errorf("output = %q, want undefined statement error", out.String())
	}
}

func TestImmediateModeErrorIsReported(t *testing.T) {
	sh, out := newShell(t, "GOTO 999\nQUIT\n")
	sh.Run(context.Background())
	if !strings.Contains(out.String(), "?UNDEF'D STATEMENT ERROR") {
		t.Errorf("output = %q, want undefined statement error", out.String())
	}
}
