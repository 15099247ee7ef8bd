package jardiff

import (
	"io"
	"iter"
	"time"

	"github.com/klauspost/compress/zip"
)

// Entry is one named member of an archive.
type Entry struct {
	// Name is the entry's path within the archive, unique per [Archive].
	Name string

	// Checksum is the CRC-32 of the entry's uncompressed content, as
	// recorded in the archive's central directory.
	Checksum uint32

	// Size is the uncompressed length in bytes.
	Size uint64

	method   uint16
	modified time.Time
	file     *zip.File
	archive  string
}

// Open returns a reader over the entry's uncompressed content. The caller
// must close the returned reader. The content checksum is verified as the
// stream is consumed; a mismatch surfaces as a read error at end of stream.
func (e *Entry) Open() (io.ReadCloser, error) {
	rc, err := e.file.Open()
	if err != nil {
		return nil, &ReadError{Archive: e.archive, Name: e.Name, Err: err}
	}
	return rc, nil
}

// Archive is an immutable index over a zip archive's entries.
//
// The index preserves the archive's native entry order and maps both names
// and checksums to entries. If the underlying archive holds several entries
// under one name, the last occurrence wins and iteration yields the name
// once, at the position of its first occurrence.
type Archive struct {
	path    string
	rc      *zip.ReadCloser
	entries []*Entry
	byName  map[string]*Entry
	bySum   map[uint32][]*Entry
}

// OpenArchive opens the zip archive at path and indexes its entries. The
// caller must close the returned archive; entries are invalid after Close.
func OpenArchive(path string) (*Archive, error) {
	rc, err := zip.OpenReader(path)
	if err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}

	a := &Archive{
		path:    path,
		rc:      rc,
		entries: make([]*Entry, 0, len(rc.File)),
		byName:  make(map[string]*Entry, len(rc.File)),
		bySum:   make(map[uint32][]*Entry, len(rc.File)),
	}

	pos := make(map[string]int, len(rc.File))
	for _, f := range rc.File {
		e := &Entry{
			Name:     f.Name,
			Checksum: f.CRC32,
			Size:     f.UncompressedSize64,
			method:   f.Method,
			modified: f.Modified,
			file:     f,
			archive:  path,
		}
		if i, ok := pos[f.Name]; ok {
			a.entries[i] = e
			continue
		}
		pos[f.Name] = len(a.entries)
		a.entries = append(a.entries, e)
	}

	for _, e := range a.entries {
		a.byName[e.Name] = e
		a.bySum[e.Checksum] = append(a.bySum[e.Checksum], e)
	}
	return a, nil
}

// Path returns the filesystem path the archive was opened from.
func (a *Archive) Path() string { return a.path }

// Len returns the number of distinct entry names in the archive.
func (a *Archive) Len() int { return len(a.entries) }

// Entries iterates over entries in the archive's native order.
func (a *Archive) Entries() iter.Seq[*Entry] {
	return func(yield func(*Entry) bool) {
		for _, e := range a.entries {
			if !yield(e) {
				return
			}
		}
	}
}

// Lookup returns the entry with the given name.
func (a *Archive) Lookup(name string) (*Entry, bool) {
	e, ok := a.byName[name]
	return e, ok
}

// ChecksumMatches returns every entry whose checksum equals sum, in native
// order. The returned slice is shared with the index; callers must not
// modify it.
func (a *Archive) ChecksumMatches(sum uint32) []*Entry {
	return a.bySum[sum]
}

// Close releases the underlying file handle.
func (a *Archive) Close() error {
	return a.rc.Close()
}
