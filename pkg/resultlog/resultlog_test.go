package resultlog_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/eventqueue/pkg/resultlog"
)

func TestPathFor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, filepath.Join("data", "output.txt"),
		resultlog.PathFor(resultlog.Config{}, filepath.Join("data", "events.db")))
	assert.Equal(t, "/tmp/results.log",
		resultlog.PathFor(resultlog.Config{Path: "/tmp/results.log"}, "data/events.db"))
}

func TestFile(t *testing.T) {
	t.Parallel()

	t.Run("appends lines in write order", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "output.txt")
		log, err := resultlog.Open(path)
		require.NoError(t, err)
		assert.Equal(t, path, log.Path())

		require.NoError(t, log.WriteResult("random", "12"))
		require.NoError(t, log.WriteResult("sleep", "1"))
		require.NoError(t, log.WriteResult("fetch", "error: fetch request failed"))
		require.NoError(t, log.Close())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "random 12\nsleep 1\nfetch error: fetch request failed\n", string(data))
	})

	t.Run("truncates on open", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "output.txt")
		require.NoError(t, os.WriteFile(path, []byte("stale line\n"), 0o644))

		log, err := resultlog.Open(path)
		require.NoError(t, err)
		require.NoError(t, log.WriteResult("sleep", "7"))
		require.NoError(t, log.Close())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "sleep 7\n", string(data))
	})

	t.Run("write after close", func(t *testing.T) {
		t.Parallel()

		log, err := resultlog.Open(filepath.Join(t.TempDir(), "output.txt"))
		require.NoError(t, err)
		require.NoError(t, log.Close())
		require.NoError(t, log.Close())

		assert.ErrorIs(t, log.WriteResult("sleep", "1"), resultlog.ErrClosed)
	})

	t.Run("open errors", func(t *testing.T) {
		t.Parallel()

		_, err := resultlog.Open("")
		assert.ErrorIs(t, err, resultlog.ErrEmptyPath)

		_, err = resultlog.Open(filepath.Join(t.TempDir(), "missing", "output.txt"))
		assert.ErrorIs(t, err, resultlog.ErrFailedOpen)
	})
}
