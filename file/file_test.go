package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateFileNumMap(t *testing.T) {
	m := CreateFileNumMap([]string{"a.mid", "b.mid"})
	assert.Equal(t, FileNumToMidiPath{0: "a.mid", 1: "b.mid"}, m)
	assert.Empty(t, CreateFileNumMap(nil))
}

func TestReadAll(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "song.mid")
	require.NoError(t, os.WriteFile(path, []byte("MThd"), 0o644))

	data, err := ReadAll(path, 0)
	require.NoError(t, err)
	assert.Equal(t, []byte("MThd"), data)

	_, err = ReadAll(path, 3)
	assert.Error(t, err)

	_, err = ReadAll(dir, 0)
	assert.Error(t, err)

	_, err = ReadAll(filepath.Join(dir, "missing.mid"), 0)
	assert.Error(t, err)
}
