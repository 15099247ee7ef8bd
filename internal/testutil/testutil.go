// Package testutil builds small zip fixtures for jardiff tests.
package testutil

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zip"
)

// ZipEntry describes one entry of a fixture archive. Entries are written in
// the order given, which becomes the archive's native order.
type ZipEntry struct {
	Name string
	Data string
}

// WriteZip creates a zip archive at dir/name holding the given entries and
// returns its path. Duplicate names are written as given, producing an
// archive with several entries under one name.
func WriteZip(tb testing.TB, dir, name string, entries ...ZipEntry) string {
	tb.Helper()

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		tb.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	for _, e := range entries {
		w, err := zw.Create(e.Name)
		if err != nil {
			tb.Fatalf("create entry %s: %v", e.Name, err)
		}
		if _, err := w.Write([]byte(e.Data)); err != nil {
			tb.Fatalf("write entry %s: %v", e.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		tb.Fatalf("finish %s: %v", path, err)
	}
	return path
}

// WriteZipStored is WriteZip with entries stored uncompressed, leaving
// their bytes verbatim in the file. Tests that corrupt archives depend on
// locating content by its raw bytes.
func WriteZipStored(tb testing.TB, dir, name string, entries ...ZipEntry) string {
	tb.Helper()

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		tb.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	for _, e := range entries {
		w, err := zw.CreateHeader(&zip.FileHeader{Name: e.Name, Method: zip.Store})
		if err != nil {
			tb.Fatalf("create entry %s: %v", e.Name, err)
		}
		if _, err := w.Write([]byte(e.Data)); err != nil {
			tb.Fatalf("write entry %s: %v", e.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		tb.Fatalf("finish %s: %v", path, err)
	}
	return path
}

// ReadZip returns a zip archive's contents keyed by entry name.
func ReadZip(tb testing.TB, data []byte) map[string]string {
	tb.Helper()

	contents := make(map[string]string)
	for _, f := range openZip(tb, data).File {
		r, err := f.Open()
		if err != nil {
			tb.Fatalf("open entry %s: %v", f.Name, err)
		}
		b, err := io.ReadAll(r)
		r.Close()
		if err != nil {
			tb.Fatalf("read entry %s: %v", f.Name, err)
		}
		contents[f.Name] = string(b)
	}
	return contents
}

// Names returns a zip archive's entry names in native order.
func Names(tb testing.TB, data []byte) []string {
	tb.Helper()

	files := openZip(tb, data).File
	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, f.Name)
	}
	return names
}

// CorruptEntry flips one byte inside the stored content of a zip file on
// disk, located by its leading bytes. The archive must have been written
// with [WriteZipStored] so the content appears verbatim.
func CorruptEntry(tb testing.TB, path string, content []byte) {
	tb.Helper()

	raw, err := os.ReadFile(path)
	if err != nil {
		tb.Fatalf("read %s: %v", path, err)
	}
	i := bytes.Index(raw, content)
	if i < 0 {
		tb.Fatalf("content not found verbatim in %s", path)
	}
	raw[i+len(content)/2] ^= 0xff
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		tb.Fatalf("write %s: %v", path, err)
	}
}

func openZip(tb testing.TB, data []byte) *zip.Reader {
	tb.Helper()

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		tb.Fatalf("open zip: %v", err)
	}
	return zr
}
