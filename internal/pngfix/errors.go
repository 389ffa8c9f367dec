package pngfix

import "github.com/pkg/errors"

var (
	ErrMalformedHeader = errors.New("pngfix: malformed png header")
	ErrDecompression   = errors.New("pngfix: idat decompression failed")
	ErrCompression     = errors.New("pngfix: idat compression failed")
)

// Error carries one of the Err* kinds together with the codec error that
// caused it. errors.Is matches both.
type Error struct {
	Kind error
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Kind.Error()
	}
	return e.Kind.Error() + ": " + e.Err.Error()
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
