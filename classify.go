package jardiff

import "log/slog"

// Move instructs an applier to write the content stored under From in the
// old archive to the name To in the reconstructed archive.
type Move struct {
	From string
	To   string
}

// Classification partitions the entry names of two archives into patch
// buckets. Every new-archive name lands in exactly one of implicit retain,
// move target, or stored whole; every old-archive name in exactly one of
// implicit retain, move source, superseded, or deleted.
type Classification struct {
	implicit []string
	moves    []Move
	payload  []string
	deleted  []string

	payloadSet map[string]struct{}
}

// Implicit returns the names retained unchanged under the same name, in
// new-archive order. No patch command is emitted for them.
func (c *Classification) Implicit() []string { return c.implicit }

// Moves returns the move commands in discovery order.
func (c *Classification) Moves() []Move { return c.moves }

// NewOrModified returns the names whose content must be stored whole in
// the patch, in new-archive order.
func (c *Classification) NewOrModified() []string { return c.payload }

// Deleted returns the old-archive names absent from the new archive, in
// old-archive order.
func (c *Classification) Deleted() []string { return c.deleted }

func newClassification() *Classification {
	return &Classification{payloadSet: make(map[string]struct{})}
}

func (c *Classification) addImplicit(name string) {
	c.implicit = append(c.implicit, name)
}

func (c *Classification) dropImplicit(name string) {
	for i, n := range c.implicit {
		if n == name {
			c.implicit = append(c.implicit[:i], c.implicit[i+1:]...)
			return
		}
	}
}

func (c *Classification) addMove(from, to string) {
	c.moves = append(c.moves, Move{From: from, To: to})
}

func (c *Classification) addPayload(name string) {
	c.payload = append(c.payload, name)
	c.payloadSet[name] = struct{}{}
}

// oldStatus tracks how an old-archive name has been claimed during the
// first pass. A name goes from unclaimed to implicit when the new archive
// holds it unchanged, and from either state to move source once a move
// consumes it. The move source state is final: after any entry depends on
// moving from a name, only an explicit command can preserve its bytes.
type oldStatus uint8

const (
	statusUnclaimed oldStatus = iota
	statusImplicit
	statusMoveSource
)

// Classify compares two open archives and partitions every entry name into
// the patch buckets.
//
// In minimal mode the result is the smallest edit script, which may contain
// several moves sharing one source. With minimal false, a name is moved at
// most once and any further entry with the same content is stored whole;
// 1.0-era appliers accept only that form.
func Classify(oldArc, newArc *Archive, minimal bool) (*Classification, error) {
	cl := &classifier{oldArc: oldArc, newArc: newArc, minimal: minimal}
	return cl.run()
}

// classifier runs the two-pass diff over a pair of archives.
type classifier struct {
	oldArc   *Archive
	newArc   *Archive
	minimal  bool
	cmp      *differ
	logger   *slog.Logger
	progress ProgressFunc
}

// log returns the logger, falling back to a discard logger if nil.
func (cl *classifier) log() *slog.Logger {
	if cl.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return cl.logger
}

// report sends a progress event if a callback is configured.
func (cl *classifier) report(name string, done, total int) {
	if cl.progress == nil {
		return
	}
	cl.progress(ProgressEvent{
		Stage:        StageClassify,
		Name:         name,
		EntriesDone:  done,
		EntriesTotal: total,
	})
}

func (cl *classifier) run() (*Classification, error) {
	cl.cmp = newDiffer()
	c := newClassification()
	status := make(map[string]oldStatus, cl.oldArc.Len())

	// First pass: resolve every new entry against the old index.
	done := 0
	total := cl.newArc.Len()
	for e := range cl.newArc.Entries() {
		if err := cl.classifyEntry(c, status, e); err != nil {
			return nil, err
		}
		done++
		cl.report(e.Name, done, total)
	}

	// Second pass: old names nobody claimed or superseded are deletions.
	for e := range cl.oldArc.Entries() {
		if status[e.Name] != statusUnclaimed {
			continue
		}
		if _, ok := c.payloadSet[e.Name]; ok {
			// Overwritten in place by new content, never also deleted.
			continue
		}
		cl.log().Debug("classified delete", "name", e.Name)
		c.deleted = append(c.deleted, e.Name)
	}
	return c, nil
}

func (cl *classifier) classifyEntry(c *Classification, status map[string]oldStatus, e *Entry) error {
	n := e.Name
	m, ok, err := cl.cmp.bestMatch(cl.oldArc, e)
	if err != nil {
		return err
	}
	if !ok {
		cl.log().Debug("classified new or modified", "name", n)
		c.addPayload(n)
		return nil
	}

	if m == n && status[m] != statusMoveSource {
		cl.log().Debug("classified implicit retain", "name", n)
		c.addImplicit(n)
		status[m] = statusImplicit
		return nil
	}

	// The content lives under another name, or under the same name that an
	// earlier move already claimed as its source.
	if !cl.minimal && status[m] != statusUnclaimed {
		// A second move from m would break 1.0-era appliers, which accept
		// at most one move per source. Store the entry whole instead.
		cl.log().Debug("duplicate move source, storing whole", "name", n, "source", m)
		c.addPayload(n)
		return nil
	}

	cl.log().Debug("classified move", "from", m, "to", n)
	c.addMove(m, n)
	prev := status[m]
	status[m] = statusMoveSource

	if prev == statusImplicit && cl.minimal {
		// The retained copy of m now rides on a name that moves are
		// consuming. Replace the implicit retain with an explicit
		// self-move so appliers keep its bytes in place.
		cl.log().Debug("implicit retain converted to self-move", "name", m)
		c.dropImplicit(m)
		c.addMove(m, m)
	}
	return nil
}
