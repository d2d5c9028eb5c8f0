// ==============================================================================================
// FILE: repl/repl.go
// ==============================================================================================
// PACKAGE: repl
// PURPOSE: The interactive shell: prompt, line routing (numbered program entry vs. immediate
//          statements vs. meta-commands), and the banner. Follows the classic Start(in, out)
//          REPL loop shape, generalized from ".command" dot-commands to Applesoft's own
//          RUN/LIST/NEW/SAVE/LOAD/DEL/QUIT vocabulary.
// ==============================================================================================

package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"applesoft/basicerr"
	"applesoft/interp"
	"applesoft/store"
)

const banner = `
    APPLESOFT-GO INTERACTIVE BASIC
    COPYRIGHT STUDENT-EDITION
`

const prompt = "]"

// Shell drives one interactive session over in/out, dispatching each
// line to the interpreter or to a program-management meta-command.
type Shell struct {
	it    *interp.Interpreter
	store *store.Store
	in    *bufio.Scanner
	out   io.Writer
	log   *logrus.Entry
}

// New creates a Shell. store may be nil if SAVE/LOAD/DEL are not needed
// (e.g. script-mode execution of a single file).
func New(it *interp.Interpreter, st *store.Store, in io.Reader, out io.Writer, logger *logrus.Logger) *Shell {
	if logger == nil {
		logger = logrus.New()
	}
	return &Shell{
		it:    it,
		store: st,
		in:    bufio.NewScanner(in),
		out:   out,
		log:   logger.WithField("component", "repl"),
	}
}

// Run prints the banner and processes lines until EOF, QUIT, or EXIT.
func (s *Shell) Run(ctx context.Context) {
	fmt.Fprint(s.out, banner)
	fmt.Fprint(s.out, prompt)
	for s.in.Scan() {
		line := s.in.Text()
		if s.dispatch(ctx, line) {
			return
		}
		fmt.Fprint(s.out, prompt)
	}
}

// dispatch handles one line of input, returning true if the shell
// should exit.
func (s *Shell) dispatch(ctx context.Context, line string) bool {
	trimmed := strings.TrimSpace(line)
	upper := strings.ToUpper(trimmed)

	switch {
	case upper == "":
		return false
	case upper == "QUIT" || upper == "EXIT":
		return true
	case upper == "RUN":
		s.report(s.it.Run(ctx))
		return false
	case strings.HasPrefix(upper, "RUN "):
		arg := strings.TrimSpace(trimmed[4:])
		n, convErr := strconv.Atoi(arg)
		if convErr != nil {
			fmt.Fprintln(s.out, basicerr.Syntax().Error())
			return false
		}
		s.report(s.it.RunFromLine(ctx, n))
		return false
	case upper == "NEW":
		s.it.New()
		return false
	case upper == "LIST":
		for _, l := range s.it.List() {
			fmt.Fprintln(s.out, l)
		}
		return false
	case strings.HasPrefix(upper, "SAVE "):
		s.doSave(strings.TrimSpace(trimmed[5:]))
		return false
	case strings.HasPrefix(upper, "LOAD "):
		s.doLoad(strings.TrimSpace(trimmed[5:]))
		return false
	case strings.HasPrefix(upper, "DEL "):
		s.doDel(strings.TrimSpace(trimmed[4:]))
		return false
	}

	s.report(s.it.ExecuteDirect(ctx, line))
	return false
}

func (s *Shell) report(err error) {
	if err == nil {
		return
	}
	if stop, ok := err.(*basicerr.StopEvent); ok {
		fmt.Fprintln(s.out, stop.Error())
		return
	}
	if _, ok := err.(*basicerr.Error); ok {
		fmt.Fprintln(s.out, err.Error())
	} else {
		fmt.Fprintln(s.out, "?ERROR: "+err.Error())
	}
	s.log.WithError(err).Debug("statement failed")
}

func (s *Shell) doSave(name string) {
	if s.store == nil || name == "" {
		fmt.Fprintln(s.out, basicerr.Syntax().Error())
		return
	}
	s.report(s.store.Save(name, s.it.List()))
}

func (s *Shell) doLoad(name string) {
	if s.store == nil || name == "" {
		fmt.Fprintln(s.out, basicerr.Syntax().Error())
		return
	}
	lines, err := s.store.Load(name)
	if err != nil {
		s.report(err)
		return
	}
	s.it.New()
	for _, l := range lines {
		if _, err := s.it.StoreLine(l); err != nil {
			s.report(err)
			return
		}
	}
}

func (s *Shell) doDel(name string) {
	if s.store == nil || name == "" {
		fmt.Fprintln(s.out, basicerr.Syntax().Error())
		return
	}
	s.report(s.store.Delete(name))
}
