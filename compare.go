package jardiff

import (
	"bytes"
	"errors"
	"io"
)

// compareBlockSize is the buffer size used when streaming entry content.
const compareBlockSize = 32 * 1024

// differ compares entry content block by block through a pair of reusable
// buffers. A differ is not safe for concurrent use; each classification run
// owns its own.
type differ struct {
	a []byte
	b []byte
}

func newDiffer() *differ {
	return &differ{
		a: make([]byte, compareBlockSize),
		b: make([]byte, compareBlockSize),
	}
}

// SameContent reports whether two entries hold byte-identical content. Both
// streams are read to the end; equality requires identical length and
// bytes. Checksums are never trusted as proof of equality.
func SameContent(a, b *Entry) (bool, error) {
	return newDiffer().sameContent(a, b)
}

func (d *differ) sameContent(a, b *Entry) (bool, error) {
	ra, err := a.Open()
	if err != nil {
		return false, err
	}
	defer ra.Close()

	rb, err := b.Open()
	if err != nil {
		return false, err
	}
	defer rb.Close()

	for {
		na, err := readBlock(ra, d.a)
		if err != nil {
			return false, &ReadError{Archive: a.archive, Name: a.Name, Err: err}
		}
		nb, err := readBlock(rb, d.b)
		if err != nil {
			return false, &ReadError{Archive: b.archive, Name: b.Name, Err: err}
		}
		if na != nb {
			return false, nil
		}
		if na == 0 {
			return true, nil
		}
		if !bytes.Equal(d.a[:na], d.b[:nb]) {
			return false, nil
		}
	}
}

// readBlock fills buf from r. Only end of stream yields a short block, so
// two streams of equal content always produce equal block sequences.
func readBlock(r io.Reader, buf []byte) (int, error) {
	n, err := io.ReadFull(r, buf)
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return n, nil
	}
	return n, err
}
