package convert

import (
	"errors"
	"fmt"
)

var (
	// ErrUnregistered reports a tag or kind with no descriptor and no
	// fallback configured. Always fatal: it is a registry misuse, not a
	// malformed document.
	ErrUnregistered = errors.New("no descriptor registered")

	// ErrDuplicate reports two descriptors claiming the same tag or kind.
	ErrDuplicate = errors.New("descriptor already registered")

	// ErrDescriptor reports a descriptor whose conversion or reversion
	// logic failed. Recoverable in the default mode, fatal under strict.
	ErrDescriptor = errors.New("descriptor failed")

	// ErrMalformedAttr reports an attribute value that does not satisfy
	// its declared spec. Recoverable in the default mode, fatal under
	// strict.
	ErrMalformedAttr = errors.New("malformed attribute")
)

// PathError wraps a conversion error with the element or node path at
// which it occurred.
type PathError struct {
	Path string
	Err  error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("at %s: %v", e.Path, e.Err)
}

func (e *PathError) Unwrap() error { return e.Err }

func pathErr(path string, err error) error {
	var pe *PathError
	if errors.As(err, &pe) {
		return err
	}
	return &PathError{Path: path, Err: err}
}
