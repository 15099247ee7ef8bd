package jardiff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meigma/jardiff/internal/testutil"
)

func TestBestMatch(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	oldPath := testutil.WriteZip(t, dir, "old.zip",
		testutil.ZipEntry{Name: "dup1.txt", Data: "shared payload"},
		testutil.ZipEntry{Name: "kept.txt", Data: "kept content"},
		testutil.ZipEntry{Name: "dup2.txt", Data: "shared payload"},
		testutil.ZipEntry{Name: "plumless", Data: "plumless"},
	)
	newPath := testutil.WriteZip(t, dir, "new.zip",
		testutil.ZipEntry{Name: "kept.txt", Data: "kept content"},
		testutil.ZipEntry{Name: "renamed.txt", Data: "shared payload"},
		testutil.ZipEntry{Name: "dup2.txt", Data: "shared payload"},
		testutil.ZipEntry{Name: "buckeroo", Data: "buckeroo"},
		testutil.ZipEntry{Name: "brand-new.txt", Data: "nothing like it"},
	)

	oldArc, err := OpenArchive(oldPath)
	require.NoError(t, err)
	t.Cleanup(func() { oldArc.Close() })

	newArc, err := OpenArchive(newPath)
	require.NoError(t, err)
	t.Cleanup(func() { newArc.Close() })

	tests := []struct {
		entry string
		want  string
		found bool
	}{
		// Unchanged entry resolves to itself.
		{"kept.txt", "kept.txt", true},
		// Renamed content resolves to the first match in native order.
		{"renamed.txt", "dup1.txt", true},
		// The same name wins even when another name holds equal content
		// earlier in the index.
		{"dup2.txt", "dup2.txt", true},
		// A checksum collision is rejected by the content comparison.
		{"buckeroo", "", false},
		{"brand-new.txt", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.entry, func(t *testing.T) {
			t.Parallel()

			e, ok := newArc.Lookup(tt.entry)
			require.True(t, ok)

			got, found, err := newDiffer().bestMatch(oldArc, e)
			require.NoError(t, err)
			assert.Equal(t, tt.found, found)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBestMatchChecksumOnlySameName(t *testing.T) {
	t.Parallel()

	// The same name with colliding checksum but different content must not
	// match itself; the content under another name wins instead.
	dir := t.TempDir()
	oldPath := testutil.WriteZip(t, dir, "old.zip",
		testutil.ZipEntry{Name: "word.txt", Data: "plumless"},
		testutil.ZipEntry{Name: "stash.txt", Data: "buckeroo"},
	)
	newPath := testutil.WriteZip(t, dir, "new.zip",
		testutil.ZipEntry{Name: "word.txt", Data: "buckeroo"},
	)

	oldArc, err := OpenArchive(oldPath)
	require.NoError(t, err)
	defer oldArc.Close()

	newArc, err := OpenArchive(newPath)
	require.NoError(t, err)
	defer newArc.Close()

	e, ok := newArc.Lookup("word.txt")
	require.True(t, ok)

	got, found, err := newDiffer().bestMatch(oldArc, e)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "stash.txt", got)
}
