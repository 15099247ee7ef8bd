package jardiff

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/klauspost/compress/zip"
)

// ApplyPatch reconstructs the new archive from the archive at oldPath plus
// the patch archive at patchPath, writing the result to w.
//
// Move targets are written first, in control-index order, streaming bytes
// from their old-archive sources. Patch payload entries follow in patch
// order. Finally, every old entry neither removed, nor consumed as a move
// source, nor already written is carried over unchanged, in old-archive
// order.
//
// Patches created in minimal mode may hold several moves sharing one
// source; each is streamed independently, so ApplyPatch accepts both forms.
// The control index is validated before any output is produced. ApplyPatch
// finalizes the archive footer but does not close w; on error the partial
// output must be discarded.
func ApplyPatch(oldPath, patchPath string, w io.Writer, opts ...ApplyOption) error {
	cfg := applyConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	ap := &applier{cfg: cfg, logger: cfg.logger}

	oldArc, err := OpenArchive(oldPath)
	if err != nil {
		return err
	}
	defer oldArc.Close()
	ap.report(StageIndex, "", 1, 2)

	patch, err := OpenArchive(patchPath)
	if err != nil {
		return err
	}
	defer patch.Close()
	ap.report(StageIndex, "", 2, 2)

	return ap.apply(oldArc, patch, w)
}

// applier holds the state for one patch application run.
type applier struct {
	cfg    applyConfig
	logger *slog.Logger
}

// log returns the logger, falling back to a discard logger if nil.
func (ap *applier) log() *slog.Logger {
	if ap.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return ap.logger
}

// report sends a progress event if a callback is configured.
func (ap *applier) report(stage ProgressStage, name string, done, total int) {
	if ap.cfg.progress == nil {
		return
	}
	ap.cfg.progress(ProgressEvent{
		Stage:        stage,
		Name:         name,
		EntriesDone:  done,
		EntriesTotal: total,
	})
}

// moveStep pairs a resolved old-archive source with its target name.
type moveStep struct {
	src *Entry
	to  string
}

// reconstruction is the validated write plan for one application run.
type reconstruction struct {
	moves   []moveStep
	payload []*Entry // patch entries minus the control index, patch order
	retains []*Entry // old entries carried over unchanged, old order
	removed int
	total   int
}

func (ap *applier) apply(oldArc, patch *Archive, w io.Writer) error {
	ap.log().Info("applying patch", "old", oldArc.Path(), "patch", patch.Path())

	plan, err := ap.plan(oldArc, patch)
	if err != nil {
		return err
	}

	ap.log().Info("reconstruction planned",
		"moves", len(plan.moves),
		"stored", len(plan.payload),
		"retained", len(plan.retains),
		"removed", plan.removed)

	zw := zip.NewWriter(w)
	buf := make([]byte, copyBlockSize)
	done := 0

	write := func(e *Entry, name, kind string) error {
		if err := ap.writeEntry(zw, e, name, buf); err != nil {
			return err
		}
		done++
		ap.log().Debug("entry written", "name", name, "kind", kind)
		ap.report(StageWrite, name, done, plan.total)
		return nil
	}

	for _, mv := range plan.moves {
		if err := write(mv.src, mv.to, "move"); err != nil {
			return err
		}
	}
	for _, e := range plan.payload {
		if err := write(e, e.Name, "stored"); err != nil {
			return err
		}
	}
	for _, e := range plan.retains {
		if err := write(e, e.Name, "retain"); err != nil {
			return err
		}
	}

	// Close finalizes the central directory without closing w.
	if err := zw.Close(); err != nil {
		return &WriteError{Err: err}
	}
	return nil
}

// plan decodes the control index and validates it against the old archive
// before anything is written: every move source must exist, and no two
// instructions may claim the same output name.
func (ap *applier) plan(oldArc, patch *Archive) (*reconstruction, error) {
	idx, err := readIndex(patch)
	if err != nil {
		return nil, err
	}

	removed := make(map[string]struct{}, len(idx.removes))
	for _, name := range idx.removes {
		removed[name] = struct{}{}
	}

	plan := &reconstruction{removed: len(idx.removes)}
	claimed := make(map[string]struct{}, len(idx.moves)+patch.Len())
	sources := make(map[string]struct{}, len(idx.moves))

	for _, mv := range idx.moves {
		src, ok := oldArc.Lookup(mv.From)
		if !ok {
			return nil, fmt.Errorf("%w: move source %q not in old archive", ErrMalformedPatch, mv.From)
		}
		if _, dup := claimed[mv.To]; dup {
			return nil, fmt.Errorf("%w: output name %q claimed twice", ErrMalformedPatch, mv.To)
		}
		claimed[mv.To] = struct{}{}
		sources[mv.From] = struct{}{}
		plan.moves = append(plan.moves, moveStep{src: src, to: mv.To})
	}

	for e := range patch.Entries() {
		if e.Name == IndexName {
			continue
		}
		if _, dup := claimed[e.Name]; dup {
			return nil, fmt.Errorf("%w: output name %q claimed twice", ErrMalformedPatch, e.Name)
		}
		claimed[e.Name] = struct{}{}
		plan.payload = append(plan.payload, e)
	}

	for e := range oldArc.Entries() {
		if _, ok := removed[e.Name]; ok {
			continue
		}
		if _, ok := sources[e.Name]; ok {
			continue
		}
		if _, ok := claimed[e.Name]; ok {
			continue
		}
		plan.retains = append(plan.retains, e)
	}

	plan.total = len(plan.moves) + len(plan.payload) + len(plan.retains)
	return plan, nil
}

// writeEntry streams one source entry into the output under the given name,
// carrying over the source's method and modification time.
func (ap *applier) writeEntry(zw *zip.Writer, e *Entry, name string, buf []byte) error {
	r, err := e.Open()
	if err != nil {
		return err
	}
	defer r.Close()

	ew, err := zw.CreateHeader(&zip.FileHeader{
		Name:     name,
		Method:   e.method,
		Modified: e.modified,
	})
	if err != nil {
		return &WriteError{Err: err}
	}
	return copyBlocks(ew, r, e, buf)
}
