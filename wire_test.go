package jardiff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscapeName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no spaces", "lib/util.jar", "lib/util.jar"},
		{"single space", "My App.jar", `My\ App.jar`},
		{"consecutive spaces", "a  b", `a\ \ b`},
		{"leading space", " lead", `\ lead`},
		{"trailing space", "trail ", `trail\ `},
		{"only a space", " ", `\ `},
		{"backslash left alone", `dir\file name`, `dir\file\ name`},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, escapeName(tt.input))
		})
	}
}

func TestSplitCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		line string
		want []string
	}{
		{"plain", "remove a.txt", []string{"remove", "a.txt"}},
		{"escaped space", `remove My\ App.jar`, []string{"remove", "My App.jar"}},
		{"two escaped names", `move old\ name.txt new\ name.txt`, []string{"move", "old name.txt", "new name.txt"}},
		{"runs of spaces collapse", "remove  a.txt", []string{"remove", "a.txt"}},
		{"trailing backslash literal", `remove a\`, []string{"remove", `a\`}},
		{"backslash before letter literal", `remove a\b`, []string{"remove", `a\b`}},
		{"double backslash before space", `remove a\\ b`, []string{"remove", `a\ b`}},
		{"empty line", "", nil},
		{"only spaces", "   ", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, splitCommand(tt.line))
		})
	}
}

func TestEscapeRoundTrip(t *testing.T) {
	t.Parallel()

	names := []string{
		"plain.txt",
		"My Application.jar",
		"a  b  c",
		" lead",
		"trail ",
		"dir/sub dir/file.txt",
		`inner\ backslash.txt`,
	}
	for _, name := range names {
		tokens := splitCommand(removeCommand + " " + escapeName(name))
		require.Len(t, tokens, 2, "name %q", name)
		assert.Equal(t, name, tokens[1])
	}
}

func TestEncodeIndex(t *testing.T) {
	t.Parallel()

	c := &Classification{
		deleted: []string{"gone.txt", "old dir/left behind.cfg"},
		moves: []Move{
			{From: "a.txt", To: "b.txt"},
			{From: "My App.jar", To: "lib/My App.jar"},
		},
	}

	want := "version 1.0\r\n" +
		"remove gone.txt\r\n" +
		"remove old\\ dir/left\\ behind.cfg\r\n" +
		"move a.txt b.txt\r\n" +
		"move My\\ App.jar lib/My\\ App.jar\r\n"
	assert.Equal(t, want, string(encodeIndex(c)))
}

func TestEncodeIndexEmpty(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "version 1.0\r\n", string(encodeIndex(newClassification())))
}

func TestParseIndex(t *testing.T) {
	t.Parallel()

	data := []byte("version 1.0\r\n" +
		"remove gone.txt\r\n" +
		"remove old\\ dir/left\\ behind.cfg\r\n" +
		"move a.txt b.txt\r\n" +
		"move My\\ App.jar lib/My\\ App.jar\r\n")

	idx, err := parseIndex(data)
	require.NoError(t, err)
	assert.Equal(t, "version 1.0", idx.version)
	assert.Equal(t, []string{"gone.txt", "old dir/left behind.cfg"}, idx.removes)
	assert.Equal(t, []Move{
		{From: "a.txt", To: "b.txt"},
		{From: "My App.jar", To: "lib/My App.jar"},
	}, idx.moves)
}

func TestParseIndexLenientEndings(t *testing.T) {
	t.Parallel()

	// Bare LF line endings and trailing blank lines still parse.
	idx, err := parseIndex([]byte("version 1.0\nremove a.txt\n\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt"}, idx.removes)

	// No trailing newline on the last command.
	idx, err = parseIndex([]byte("version 1.0\r\nmove a b"))
	require.NoError(t, err)
	assert.Equal(t, []Move{{From: "a", To: "b"}}, idx.moves)
}

func TestParseIndexErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
		want error
	}{
		{"empty index", "", ErrMalformedPatch},
		{"wrong version", "version 2.0\r\n", ErrUnsupportedVersion},
		{"garbage header", "not an index\r\n", ErrUnsupportedVersion},
		{"unknown command", "version 1.0\r\nrename a b\r\n", ErrMalformedPatch},
		{"remove missing name", "version 1.0\r\nremove\r\n", ErrMalformedPatch},
		{"remove extra name", "version 1.0\r\nremove a b\r\n", ErrMalformedPatch},
		{"move missing name", "version 1.0\r\nmove a.txt\r\n", ErrMalformedPatch},
		{"move extra name", "version 1.0\r\nmove a b c\r\n", ErrMalformedPatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := parseIndex([]byte(tt.data))
			require.ErrorIs(t, err, tt.want)
		})
	}
}
