// ==============================================================================================
// FILE: basicerr/error.go
// ==============================================================================================
// PACKAGE: basicerr
// PURPOSE: The domain-error and stop-event result types shared by lexer, eval, and interp.
//          Exception-based control flow in a historical interpreter maps here to a small
//          set of typed errors carried out of the RUN loop.
// ==============================================================================================

package basicerr

import "fmt"

// Error is a recoverable domain error — one of the literal "?...ERROR" forms
// classic Applesoft prints verbatim. It aborts the current RUN or immediate
// statement; the interpreter's RUN loop returns it to its caller without
// printing it, and the REPL shell prints it.
type Error struct {
	Msg string
}

func (e *Error) Error() string { return e.Msg }

func New(msg string) *Error { return &Error{Msg: msg} }

func Syntax() *Error                    { return New("?SYNTAX ERROR") }
func SyntaxExpected(thing string) *Error { return New("?SYNTAX ERROR: EXPECTED " + thing) }
func DivisionByZero() *Error            { return New("?DIVISION BY ZERO ERROR") }
func IllegalQuantity() *Error           { return New("?ILLEGAL QUANTITY ERROR") }
func UndefinedStatement() *Error        { return New("?UNDEF'D STATEMENT ERROR") }
func UndefinedFunction(name string) *Error {
	return New("?UNDEF'D FUNCTION ERROR: FN" + name)
}
func ReturnWithoutGosub() *Error { return New("?RETURN WITHOUT GOSUB ERROR") }
func NextWithoutFor() *Error     { return New("?NEXT WITHOUT FOR ERROR") }
func OutOfData() *Error          { return New("?OUT OF DATA ERROR") }
func TypeMismatch() *Error       { return New("?TYPE MISMATCH ERROR") }
func BadSubscript() *Error       { return New("?BAD SUBSCRIPT ERROR") }
func FileNotFound() *Error       { return New("?FILE NOT FOUND") }

// WithLine appends " IN <line>", the suffix a domain error carries when it
// is raised while RUN is executing a stored program line rather than an
// immediate-mode statement.
func WithLine(err *Error, line int) *Error {
	return New(fmt.Sprintf("%s IN %d", err.Msg, line))
}

// StopEvent signals STOP; it halts the RUN cleanly and is reported as
// "BREAK IN <line>" rather than as a domain error. Running past the last
// program line is not a StopEvent: RUN just returns nil.
type StopEvent struct {
	Line int
}

func (s *StopEvent) Error() string { return fmt.Sprintf("BREAK IN %d", s.Line) }
