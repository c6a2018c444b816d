package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStorage_RoundTrip(t *testing.T) {
	store, err := NewFileStorage(filepath.Join(t.TempDir(), "reports"))
	require.NoError(t, err)

	require.NoError(t, store.Store("reports/2024/stats.json", []byte(`{"ok":true}`)))
	require.NoError(t, store.Store("raw/batch.json", []byte(`[]`)))

	data, err := store.Retrieve("reports/2024/stats.json")
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, string(data))

	names, err := store.List("reports/")
	require.NoError(t, err)
	assert.Equal(t, []string{"reports/2024/stats.json"}, names)

	all, err := store.List("")
	require.NoError(t, err)
	assert.Equal(t, []string{"raw/batch.json", "reports/2024/stats.json"}, all)

	require.NoError(t, store.Delete("raw/batch.json"))
	_, err = store.Retrieve("raw/batch.json")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, store.Delete("raw/batch.json"), ErrNotFound)
}

func TestFileStorage_RejectsEscapingNames(t *testing.T) {
	store, err := NewFileStorage(t.TempDir())
	require.NoError(t, err)

	for _, name := range []string{"../outside.json", "/etc/passwd", ".", ""} {
		assert.Error(t, store.Store(name, []byte("x")), name)
	}
}

func TestNewFileStorage_RequiresRoot(t *testing.T) {
	_, err := NewFileStorage("")
	assert.Error(t, err)
}

