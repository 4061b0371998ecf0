package detect

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/castxml/errors"
)

func TestProfileSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles", "gcc.toml")
	p := &Profile{
		ID:         "gnu",
		Command:    []string{"g++", "-std=c++17"},
		Triple:     "x86_64-unknown-linux-gnu",
		Predefines: "#define __GNUC__ 12\n#define __cplusplus 201703L\n",
		Includes: []Include{
			{Dir: "/usr/include"},
			{Dir: "/Library/Frameworks", Framework: true},
		},
		DetectedAt: time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC),
	}
	require.NoError(t, p.Save(path))

	got, err := LoadProfile(path)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
	assert.Equal(t, p.Command, got.Command)
	assert.Equal(t, p.Triple, got.Triple)
	assert.Equal(t, p.Predefines, got.Predefines)
	assert.Equal(t, p.Includes, got.Includes)
	assert.True(t, p.DetectedAt.Equal(got.DetectedAt))
}

func TestLoadProfileErrors(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}

	_, err := LoadProfile(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)

	_, err = LoadProfile(write("unknown-key.toml", "id = \"gnu\"\ncompiler = \"g++\"\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidOption))
	assert.Contains(t, err.Error(), "compiler")

	_, err = LoadProfile(write("bad-id.toml", "id = \"icc\"\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidOption))
	assert.NotEmpty(t, errors.GetAllHints(err))
}
