// ==============================================================================================
// FILE: lineio/lineio.go
// ==============================================================================================
// PACKAGE: lineio
// PURPOSE: The blocking line-input capability interp's INPUT statement depends on. Kept
//          as its own capability interface so interp never imports os.Stdin directly —
//          stdin is explicitly an injected collaborator, not a hidden global.
// ==============================================================================================

package lineio

import (
	"bufio"
	"io"

	"github.com/pkg/errors"
)

// Reader is the line-input capability. ReadLine blocks until a full line
// (or EOF) is available.
type Reader interface {
	// ReadLine returns the next input line with its trailing newline
	// stripped, or an error (io.EOF at end of input).
	ReadLine() (string, error)
}

// Stdin is a Reader backed by a bufio.Scanner over an arbitrary
// io.Reader (normally os.Stdin).
type Stdin struct {
	scanner *bufio.Scanner
}

// NewStdin wraps r as a line-oriented Reader.
func NewStdin(r io.Reader) *Stdin {
	return &Stdin{scanner: bufio.NewScanner(r)}
}

func (s *Stdin) ReadLine() (string, error) {
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return "", errors.Wrap(err, "lineio: read failed")
		}
		return "", io.EOF
	}
	return s.scanner.Text(), nil
}
