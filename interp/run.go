// ==============================================================================================
// FILE: interp/run.go
// ==============================================================================================
// PACKAGE: interp
// PURPOSE: The statement dispatch loop: RUN executes the stored program from its first line;
//          ExecuteDirect evaluates one immediate-mode line against the same runtime state.
//          Both drive the same per-statement dispatcher, so GOTO/GOSUB/FOR are only ever
//          implemented once.
// ==============================================================================================

package interp

import (
	"context"

	"applesoft/basicerr"
	"applesoft/eval"
	"applesoft/lexer"
	"applesoft/token"
)

// flow carries a statement's control-flow effect back to the runner
// loop: an ordinary fall-through to the next statement, a jump to a
// different program line, or a halt (END). STOP is reported as a
// *basicerr.StopEvent error instead, and running past the last line
// simply ends the loop.
type flow struct {
	jumped  bool
	lineIdx int
	tokPos  int
	halted  bool
}

// Run executes the stored program from its lowest-numbered line. It
// returns nil on END or falling off the end of the program, a
// *basicerr.StopEvent on STOP, or the first domain error raised by a
// statement — domain errors carry an " IN <line>" suffix naming the
// stored line that raised them.
func (it *Interpreter) Run(ctx context.Context) error {
	it.clearVariables()
	it.rebuildDataPool()
	it.dataPtr = 0
	return it.runFrom(ctx, 0, true)
}

// RunFromLine behaves like Run but begins execution at the stored line
// numbered startLine rather than the program's first line, implementing
// RUN <n>'s optional start-line argument. startLine must name an
// existing line or ?UNDEF'D STATEMENT ERROR is raised before anything
// runs.
func (it *Interpreter) RunFromLine(ctx context.Context, startLine int) error {
	idx, ok := it.findLineIndex(startLine)
	if !ok {
		return basicerr.UndefinedStatement()
	}
	it.clearVariables()
	it.rebuildDataPool()
	it.dataPtr = 0
	return it.runFrom(ctx, idx, true)
}

func (it *Interpreter) runFrom(ctx context.Context, lineIdx int, annotate bool) error {
	tokPos := 0
	for lineIdx < len(it.lines) {
		if err := ctx.Err(); err != nil {
			return err
		}

		l := it.lines[lineIdx]
		if tokPos >= len(l.toks) || l.toks[tokPos].Kind == token.EndOfLine {
			lineIdx++
			tokPos = 0
			continue
		}

		if it.traceOn {
			it.log.Infof("TRACE %d", l.num)
		}

		next, fl, err := it.execStatement(lineIdx, tokPos)
		if err != nil {
			if annotate {
				if domainErr, ok := err.(*basicerr.Error); ok {
					return basicerr.WithLine(domainErr, l.num)
				}
			}
			return err
		}
		if fl.halted {
			return nil
		}
		if fl.jumped {
			lineIdx = fl.lineIdx
			tokPos = fl.tokPos
		} else {
			tokPos = next
		}
		// A jump can land right on a ':' (e.g. NEXT looping back to just
		// past a single-line FOR clause), same as an ordinary fall-through
		// statement boundary, so the skip applies to both paths alike.
		if lineIdx < len(it.lines) {
			toks := it.lines[lineIdx].toks
			if tokPos < len(toks) && toks[tokPos].Kind == token.Colon {
				tokPos++
			}
		}
	}
	return nil
}

// ExecuteDirect runs one line of immediate-mode input: either storing it
// as a numbered program line, or evaluating it against the current
// runtime state (a REPL "type a statement, see it happen" line).
func (it *Interpreter) ExecuteDirect(ctx context.Context, text string) error {
	stored, err := it.StoreLine(text)
	if err != nil {
		return err
	}
	if stored {
		return nil
	}

	toks, err := lexer.Lex(text)
	if err != nil {
		return err
	}
	if len(toks) == 0 || toks[0].Kind == token.EndOfLine {
		return nil
	}

	// Execute the immediate-mode statement(s) as a synthetic unnumbered
	// line appended past the end of the program, so GOTO/GOSUB/RETURN
	// within it still have well-defined (if unusual) semantics.
	synthetic := line{num: -1, toks: toks, raw: text}
	saved := it.lines
	it.lines = append(append([]line{}, it.lines...), synthetic)
	idx := len(it.lines) - 1
	err = it.runFrom(ctx, idx, false)
	it.lines = saved
	return err
}

func (it *Interpreter) execStatement(lineIdx, tokPos int) (int, flow, error) {
	toks := it.lines[lineIdx].toks
	kw := toks[tokPos].Kind

	switch kw {
	case token.Print:
		return it.stmtPrint(lineIdx, tokPos)
	case token.Let:
		return it.stmtLet(lineIdx, tokPos+1)
	case token.If:
		return it.stmtIf(lineIdx, tokPos)
	case token.Goto:
		return it.stmtGoto(lineIdx, tokPos)
	case token.Gosub:
		return it.stmtGosub(lineIdx, tokPos)
	case token.Return:
		return it.stmtReturn(lineIdx, tokPos)
	case token.For:
		return it.stmtFor(lineIdx, tokPos)
	case token.Next:
		return it.stmtNext(lineIdx, tokPos)
	case token.Dim:
		return it.stmtDim(lineIdx, tokPos)
	case token.Data:
		return it.stmtData(lineIdx, tokPos)
	case token.Read:
		return it.stmtRead(lineIdx, tokPos)
	case token.Restore:
		return it.stmtRestore(lineIdx, tokPos)
	case token.Def:
		return it.stmtDefFn(lineIdx, tokPos)
	case token.On:
		return it.stmtOn(lineIdx, tokPos)
	case token.Home:
		it.screenOrNop(func() { it.screen.Home() })
		return tokPos + 1, flow{}, nil
	case token.Htab:
		return it.stmtHtab(lineIdx, tokPos)
	case token.Vtab:
		return it.stmtVtab(lineIdx, tokPos)
	case token.Poke:
		return it.stmtPoke(lineIdx, tokPos)
	case token.Call:
		return it.stmtCall(lineIdx, tokPos)
	case token.Input:
		return it.stmtInput(lineIdx, tokPos)
	case token.Get:
		return tokPos, flow{}, basicerr.Syntax()
	case token.End:
		return tokPos + 1, flow{halted: true}, nil
	case token.Stop:
		return tokPos + 1, flow{}, &basicerr.StopEvent{Line: it.lines[lineIdx].num}
	case token.Rem:
		return tokPos + 1, flow{}, nil
	case token.Trace:
		it.traceOn = true
		return tokPos + 1, flow{}, nil
	case token.NoTrace:
		it.traceOn = false
		return tokPos + 1, flow{}, nil
	case token.Clear:
		it.clearVariables()
		return tokPos + 1, flow{}, nil
	case token.Speed:
		pos := tokPos + 1
		if pos >= len(toks) || toks[pos].Kind != token.Equal {
			return pos, flow{}, basicerr.SyntaxExpected("=")
		}
		_, next, err := eval.Eval(toks, pos+1, it)
		if err != nil {
			return pos + 1, flow{}, err
		}
		return next, flow{}, nil
	case token.Identifier:
		return it.stmtLet(lineIdx, tokPos)
	default:
		return tokPos, flow{}, basicerr.Syntax()
	}
}

func (it *Interpreter) skipToEndOfStatement(lineIdx, tokPos int) int {
	toks := it.lines[lineIdx].toks
	for tokPos < len(toks) && toks[tokPos].Kind != token.Colon && toks[tokPos].Kind != token.EndOfLine {
		tokPos++
	}
	return tokPos
}

func (it *Interpreter) screenOrNop(f func()) {
	if it.screen != nil {
		f()
	}
}
