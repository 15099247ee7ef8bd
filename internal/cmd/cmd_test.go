package cmd

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meigma/jardiff/internal/testutil"
)

// runCommand executes a fresh root command with args and returns its
// stdout. Cobra keeps flag state between runs, so each call builds a new
// command tree.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestCreateApplyInspectCommands(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	oldPath := testutil.WriteZip(t, dir, "old.jar",
		testutil.ZipEntry{Name: "keep.txt", Data: "steady"},
		testutil.ZipEntry{Name: "data/old name.bin", Data: "binary payload"},
		testutil.ZipEntry{Name: "gone.txt", Data: "obsolete"},
	)
	newPath := testutil.WriteZip(t, dir, "new.jar",
		testutil.ZipEntry{Name: "keep.txt", Data: "steady"},
		testutil.ZipEntry{Name: "data/new name.bin", Data: "binary payload"},
		testutil.ZipEntry{Name: "fresh.txt", Data: "added"},
	)

	patchPath := filepath.Join(dir, "patch.jardiff")
	_, err := runCommand(t, "create", oldPath, newPath, "-o", patchPath)
	require.NoError(t, err)
	require.FileExists(t, patchPath)

	rebuiltPath := filepath.Join(dir, "rebuilt.jar")
	_, err = runCommand(t, "apply", oldPath, patchPath, "-o", rebuiltPath)
	require.NoError(t, err)

	data, err := os.ReadFile(rebuiltPath)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"keep.txt":          "steady",
		"data/new name.bin": "binary payload",
		"fresh.txt":         "added",
	}, testutil.ReadZip(t, data))

	out, err := runCommand(t, "inspect", patchPath)
	require.NoError(t, err)
	assert.Contains(t, out, "version 1.0\n")
	assert.Contains(t, out, "remove gone.txt\n")
	assert.Contains(t, out, "move data/old name.bin -> data/new name.bin\n")
	assert.Contains(t, out, "add fresh.txt\n")
}

func TestCreateCmdMinimal(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	oldPath := testutil.WriteZip(t, dir, "old.jar",
		testutil.ZipEntry{Name: "seed.bin", Data: "replicated"},
	)
	newPath := testutil.WriteZip(t, dir, "new.jar",
		testutil.ZipEntry{Name: "left.bin", Data: "replicated"},
		testutil.ZipEntry{Name: "right.bin", Data: "replicated"},
	)

	patchPath := filepath.Join(dir, "patch.jardiff")
	_, err := runCommand(t, "create", oldPath, newPath, "--minimal", "-o", patchPath)
	require.NoError(t, err)

	out, err := runCommand(t, "inspect", patchPath)
	require.NoError(t, err)
	assert.Contains(t, out, "move seed.bin -> left.bin\n")
	assert.Contains(t, out, "move seed.bin -> right.bin\n")
	assert.NotContains(t, out, "add")
}

func TestCreateCmdMissingArchive(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	newPath := testutil.WriteZip(t, dir, "new.jar",
		testutil.ZipEntry{Name: "a.txt", Data: "a"},
	)

	patchPath := filepath.Join(dir, "patch.jardiff")
	_, err := runCommand(t, "create", filepath.Join(dir, "absent.jar"), newPath, "-o", patchPath)
	require.Error(t, err)
	assert.NoFileExists(t, patchPath)
}

func TestCreateCmdRequiresOutput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := testutil.WriteZip(t, dir, "a.jar",
		testutil.ZipEntry{Name: "a.txt", Data: "a"},
	)

	_, err := runCommand(t, "create", path, path)
	require.Error(t, err)
}

func TestApplyCmdRejectsBadPatch(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	oldPath := testutil.WriteZip(t, dir, "old.jar",
		testutil.ZipEntry{Name: "a.txt", Data: "a"},
	)
	patchPath := testutil.WriteZip(t, dir, "patch.jardiff",
		testutil.ZipEntry{Name: "payload.txt", Data: "no control index here"},
	)

	outPath := filepath.Join(dir, "rebuilt.jar")
	_, err := runCommand(t, "apply", oldPath, patchPath, "-o", outPath)
	require.Error(t, err)
	assert.NoFileExists(t, outPath)
}

func TestVersionCmd(t *testing.T) {
	t.Parallel()

	out, err := runCommand(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "jardiff version")
}

func TestWriteFileAtomic(t *testing.T) {
	t.Parallel()

	t.Run("writes target", func(t *testing.T) {
		t.Parallel()

		target := filepath.Join(t.TempDir(), "out.bin")
		err := writeFileAtomic(target, func(f *os.File) error {
			_, err := f.Write([]byte("payload"))
			return err
		})
		require.NoError(t, err)

		data, err := os.ReadFile(target)
		require.NoError(t, err)
		assert.Equal(t, "payload", string(data))
	})

	t.Run("failure leaves nothing behind", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		sentinel := errors.New("boom")
		err := writeFileAtomic(filepath.Join(dir, "out.bin"), func(*os.File) error {
			return sentinel
		})
		require.ErrorIs(t, err, sentinel)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}
