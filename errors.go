package jardiff

import (
	"errors"
	"fmt"
)

// Sentinel errors returned while decoding patch archives.
var (
	// ErrNoControlIndex is returned when a patch archive carries no
	// control index entry.
	ErrNoControlIndex = errors.New("jardiff: patch has no control index")

	// ErrUnsupportedVersion is returned when a control index declares a
	// version this package cannot process.
	ErrUnsupportedVersion = errors.New("jardiff: unsupported patch version")

	// ErrMalformedPatch is returned when a control index cannot be decoded
	// or its instructions cannot be applied coherently.
	ErrMalformedPatch = errors.New("jardiff: malformed patch")
)

// OpenError reports that an archive could not be opened or indexed.
type OpenError struct {
	Path string // filesystem path of the archive
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("jardiff: open archive %s: %v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error { return e.Err }

// ReadError reports that an entry's content stream failed while being
// compared or copied. Any ReadError aborts the surrounding operation; no
// partial patch or reconstruction is valid after one occurs.
type ReadError struct {
	Archive string // filesystem path of the archive being read
	Name    string // name of the entry whose stream failed
	Err     error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("jardiff: read %s from %s: %v", e.Name, e.Archive, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// WriteError reports a failure writing the output stream. Output is not
// transactional: callers must discard whatever was already written.
type WriteError struct {
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("jardiff: write output: %v", e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
