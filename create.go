package jardiff

import (
	"io"
	"io/fs"
	"log/slog"

	"github.com/klauspost/compress/zip"
)

// copyBlockSize is the buffer size used when copying entry content into an
// output archive.
const copyBlockSize = 32 * 1024

// CreatePatch computes the delta between the archives at oldPath and
// newPath and writes a patch archive to w.
//
// The patch opens with a control index entry named [IndexName] carrying
// remove and move commands, followed by one entry per new or modified name,
// copied whole from the new archive with its name, method, and modification
// time. Applying the patch to the old archive reconstructs the new archive
// exactly; see [ApplyPatch].
//
// CreatePatch finalizes the archive footer but does not close w. On error,
// whatever was already written to w is not a valid patch and must be
// discarded.
func CreatePatch(oldPath, newPath string, w io.Writer, opts ...CreateOption) error {
	cfg := createConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	pw := &patchWriter{cfg: cfg, logger: cfg.logger}

	oldArc, err := OpenArchive(oldPath)
	if err != nil {
		return err
	}
	defer oldArc.Close()
	pw.report(StageIndex, "", 1, 2)

	newArc, err := OpenArchive(newPath)
	if err != nil {
		return err
	}
	defer newArc.Close()
	pw.report(StageIndex, "", 2, 2)

	return pw.write(oldArc, newArc, w)
}

// patchWriter holds the state for one patch creation run.
type patchWriter struct {
	cfg    createConfig
	logger *slog.Logger
}

// log returns the logger, falling back to a discard logger if nil.
func (pw *patchWriter) log() *slog.Logger {
	if pw.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return pw.logger
}

// report sends a progress event if a callback is configured.
func (pw *patchWriter) report(stage ProgressStage, name string, done, total int) {
	if pw.cfg.progress == nil {
		return
	}
	pw.cfg.progress(ProgressEvent{
		Stage:        stage,
		Name:         name,
		EntriesDone:  done,
		EntriesTotal: total,
	})
}

func (pw *patchWriter) write(oldArc, newArc *Archive, w io.Writer) error {
	pw.log().Info("creating patch",
		"old", oldArc.Path(),
		"new", newArc.Path(),
		"minimal", pw.cfg.minimal)

	cl := &classifier{
		oldArc:   oldArc,
		newArc:   newArc,
		minimal:  pw.cfg.minimal,
		logger:   pw.logger,
		progress: pw.cfg.progress,
	}
	c, err := cl.run()
	if err != nil {
		return err
	}

	pw.log().Info("archives classified",
		"implicit", len(c.Implicit()),
		"moves", len(c.Moves()),
		"stored", len(c.NewOrModified()),
		"removed", len(c.Deleted()))

	zw := zip.NewWriter(w)
	total := len(c.NewOrModified()) + 1

	if err := pw.writeIndex(zw, c); err != nil {
		return err
	}
	pw.report(StageWrite, IndexName, 1, total)

	buf := make([]byte, copyBlockSize)
	for i, name := range c.NewOrModified() {
		e, ok := newArc.Lookup(name)
		if !ok {
			return &ReadError{Archive: newArc.Path(), Name: name, Err: fs.ErrNotExist}
		}
		if err := pw.copyEntry(zw, e, buf); err != nil {
			return err
		}
		pw.report(StageWrite, name, i+2, total)
	}

	// Close finalizes the central directory without closing w.
	if err := zw.Close(); err != nil {
		return &WriteError{Err: err}
	}
	return nil
}

// writeIndex emits the control index as the patch's first entry.
func (pw *patchWriter) writeIndex(zw *zip.Writer, c *Classification) error {
	ew, err := zw.Create(IndexName)
	if err != nil {
		return &WriteError{Err: err}
	}
	if _, err := ew.Write(encodeIndex(c)); err != nil {
		return &WriteError{Err: err}
	}
	return nil
}

// copyEntry streams one new-archive entry into the patch under a fresh
// header carrying the source's name, method, and modification time.
func (pw *patchWriter) copyEntry(zw *zip.Writer, e *Entry, buf []byte) error {
	r, err := e.Open()
	if err != nil {
		return err
	}
	defer r.Close()

	ew, err := zw.CreateHeader(&zip.FileHeader{
		Name:     e.Name,
		Method:   e.method,
		Modified: e.modified,
	})
	if err != nil {
		return &WriteError{Err: err}
	}

	pw.log().Debug("entry stored whole", "name", e.Name, "size", e.Size)
	return copyBlocks(ew, r, e, buf)
}

// copyBlocks copies r to w in fixed-size blocks, attributing failures to
// the correct side of the stream.
func copyBlocks(w io.Writer, r io.Reader, src *Entry, buf []byte) error {
	for {
		n, rerr := r.Read(buf)
		if n > 0 {
			if _, werr := w.Write(buf[:n]); werr != nil {
				return &WriteError{Err: werr}
			}
		}
		if rerr == io.EOF {
			return nil
		}
		if rerr != nil {
			return &ReadError{Archive: src.archive, Name: src.Name, Err: rerr}
		}
	}
}
