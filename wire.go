package jardiff

import (
	"bytes"
	"fmt"
	"io"
	"iter"
	"strings"
)

// IndexName is the name of the control index entry inside a patch archive.
// The value is fixed by the JNLP jardiff format and shared with every
// conforming applier.
const IndexName = "META-INF/INDEX.JD"

// versionHeader is the first line of every control index.
const versionHeader = "version 1.0"

// Control index commands.
const (
	removeCommand = "remove"
	moveCommand   = "move"
)

// encodeIndex renders a classification as a control index: the version
// header, one remove line per deleted name in old-archive order, then one
// move line per move in discovery order. Every line ends with CRLF.
func encodeIndex(c *Classification) []byte {
	var buf bytes.Buffer
	buf.WriteString(versionHeader)
	buf.WriteString("\r\n")
	for _, name := range c.Deleted() {
		buf.WriteString(removeCommand)
		buf.WriteByte(' ')
		buf.WriteString(escapeName(name))
		buf.WriteString("\r\n")
	}
	for _, mv := range c.Moves() {
		buf.WriteString(moveCommand)
		buf.WriteByte(' ')
		buf.WriteString(escapeName(mv.From))
		buf.WriteByte(' ')
		buf.WriteString(escapeName(mv.To))
		buf.WriteString("\r\n")
	}
	return buf.Bytes()
}

// escapeName inserts a backslash before every space in name. No other
// byte is escaped, not even backslash itself, so a name ending in a
// backslash is ambiguous on the wire. The defect is part of the format;
// fixing it would break every existing applier.
func escapeName(name string) string {
	if !strings.Contains(name, " ") {
		return name
	}
	return strings.ReplaceAll(name, " ", "\\ ")
}

// splitCommand tokenizes one control index line. Tokens split on spaces; a
// backslash immediately before a space escapes the space into the current
// token. A backslash before anything else is literal.
func splitCommand(line string) []string {
	var tokens []string
	var cur strings.Builder
	for i := 0; i < len(line); i++ {
		switch {
		case line[i] == '\\' && i+1 < len(line) && line[i+1] == ' ':
			cur.WriteByte(' ')
			i++
		case line[i] == ' ':
			if cur.Len() > 0 {
				tokens = append(tokens, cur.String())
				cur.Reset()
			}
		default:
			cur.WriteByte(line[i])
		}
	}
	if cur.Len() > 0 {
		tokens = append(tokens, cur.String())
	}
	return tokens
}

// patchIndex is a decoded control index.
type patchIndex struct {
	version string
	removes []string
	moves   []Move
}

// parseIndex decodes a control index. The first line must carry the known
// version header; every further line must be a well-formed remove or move
// command. Blank lines after the header are ignored.
func parseIndex(data []byte) (*patchIndex, error) {
	idx := &patchIndex{}
	first := true
	for line := range indexLines(data) {
		if first {
			first = false
			if line != versionHeader {
				return nil, fmt.Errorf("%w: %q", ErrUnsupportedVersion, line)
			}
			idx.version = line
			continue
		}
		if line == "" {
			continue
		}

		tokens := splitCommand(line)
		if len(tokens) == 0 {
			return nil, fmt.Errorf("%w: blank command line", ErrMalformedPatch)
		}
		switch tokens[0] {
		case removeCommand:
			if len(tokens) != 2 {
				return nil, fmt.Errorf("%w: remove takes one name, got %d", ErrMalformedPatch, len(tokens)-1)
			}
			idx.removes = append(idx.removes, tokens[1])
		case moveCommand:
			if len(tokens) != 3 {
				return nil, fmt.Errorf("%w: move takes two names, got %d", ErrMalformedPatch, len(tokens)-1)
			}
			idx.moves = append(idx.moves, Move{From: tokens[1], To: tokens[2]})
		default:
			return nil, fmt.Errorf("%w: unknown command %q", ErrMalformedPatch, tokens[0])
		}
	}
	if first {
		return nil, fmt.Errorf("%w: empty control index", ErrMalformedPatch)
	}
	return idx, nil
}

// indexLines yields the lines of a control index, splitting on LF and
// dropping one trailing CR per line.
func indexLines(data []byte) iter.Seq[string] {
	return func(yield func(string) bool) {
		for len(data) > 0 {
			line := data
			if i := bytes.IndexByte(data, '\n'); i >= 0 {
				line = data[:i]
				data = data[i+1:]
			} else {
				data = nil
			}
			line = bytes.TrimSuffix(line, []byte{'\r'})
			if !yield(string(line)) {
				return
			}
		}
	}
}

// readIndex locates and decodes the control index entry of a patch archive.
func readIndex(patch *Archive) (*patchIndex, error) {
	e, ok := patch.Lookup(IndexName)
	if !ok {
		return nil, ErrNoControlIndex
	}
	r, err := e.Open()
	if err != nil {
		return nil, err
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &ReadError{Archive: patch.path, Name: IndexName, Err: err}
	}
	return parseIndex(data)
}
