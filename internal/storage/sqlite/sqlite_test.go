package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"casa_criativa/internal/storage"
)

func TestStorage_EnsureSchemaIdempotent(t *testing.T) {
	ctx := context.Background()

	s, err := New(ctx, filepath.Join(t.TempDir(), "nested", "ideas.db"))
	require.NoError(t, err)
	defer s.Stop()

	require.NoError(t, s.EnsureSchema(ctx))
	require.NoError(t, s.EnsureSchema(ctx))

	var name string
	err = s.DB().QueryRowContext(ctx,
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", ideaTable).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, ideaTable, name)
}

func TestStorage_WALEnabled(t *testing.T) {
	ctx := context.Background()

	s, err := New(ctx, filepath.Join(t.TempDir(), "ideas.db"))
	require.NoError(t, err)
	defer s.Stop()

	var mode string
	require.NoError(t, s.DB().QueryRowContext(ctx, "PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)
}

func TestStorage_EnsureSchemaAfterStop(t *testing.T) {
	ctx := context.Background()

	s, err := New(ctx, filepath.Join(t.TempDir(), "ideas.db"))
	require.NoError(t, err)
	require.NoError(t, s.Stop())

	err = s.EnsureSchema(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, storage.ErrStorageUnavailable)
}
