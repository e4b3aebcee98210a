package snapshot

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func exerciseStore(t *testing.T, s Store) {
	t.Helper()

	ctx := context.Background()

	_, err := s.Get(ctx, Key)
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Put(ctx, Key, []byte(`{"nombres":"Ana"}`)))
	data, err := s.Get(ctx, Key)
	require.NoError(t, err)
	require.JSONEq(t, `{"nombres":"Ana"}`, string(data))

	require.NoError(t, s.Put(ctx, Key, []byte(`{"nombres":"Luz"}`)))
	data, err = s.Get(ctx, Key)
	require.NoError(t, err)
	require.JSONEq(t, `{"nombres":"Luz"}`, string(data))

	require.NoError(t, s.Delete(ctx, Key))
	_, err = s.Get(ctx, Key)
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Delete(ctx, Key), "deleting a missing key is a no-op")
}

func TestFileStore(t *testing.T) {
	t.Parallel()

	s, err := NewFileStore(filepath.Join(t.TempDir(), "state"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	exerciseStore(t, s)
}

func TestFileStore_InvalidKey(t *testing.T) {
	t.Parallel()

	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	for _, key := range []string{"", "..", "a/b", `a\b`} {
		_, err := s.Get(ctx, key)
		require.ErrorIs(t, err, ErrInvalidKey, key)
		require.ErrorIs(t, s.Put(ctx, key, []byte("x")), ErrInvalidKey, key)
	}
}

func TestFileStore_NoTempFilesLeft(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, s.Put(context.Background(), Key, []byte("{}")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, Key+".json", entries[0].Name())
}

func TestSQLiteStore(t *testing.T) {
	t.Parallel()

	s, err := NewSQLiteStore(context.Background(), filepath.Join(t.TempDir(), "data", "form.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	exerciseStore(t, s)
}

func TestSQLiteStore_Reopen(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "form.db")

	s, err := NewSQLiteStore(ctx, path)
	require.NoError(t, err)
	require.NoError(t, s.Put(ctx, Key, []byte(`{"ciudad":"Bogotá"}`)))
	require.NoError(t, s.Close())

	s, err = NewSQLiteStore(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	data, err := s.Get(ctx, Key)
	require.NoError(t, err)
	require.JSONEq(t, `{"ciudad":"Bogotá"}`, string(data))
}

func TestMemoryStore(t *testing.T) {
	t.Parallel()

	exerciseStore(t, NewMemoryStore())
}

func TestMemoryStore_CopiesData(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewMemoryStore()

	data := []byte("abc")
	require.NoError(t, s.Put(ctx, Key, data))
	data[0] = 'z'

	got, err := s.Get(ctx, Key)
	require.NoError(t, err)
	require.Equal(t, "abc", string(got))
}

func TestOpen(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("empty", func(t *testing.T) {
		t.Parallel()

		_, err := Open(ctx, "")
		require.ErrorIs(t, err, ErrEmptyDSN)
	})

	t.Run("bare path", func(t *testing.T) {
		t.Parallel()

		s, err := Open(ctx, t.TempDir())
		require.NoError(t, err)
		require.IsType(t, &FileStore{}, s)
	})

	t.Run("file scheme", func(t *testing.T) {
		t.Parallel()

		s, err := Open(ctx, "file://"+t.TempDir())
		require.NoError(t, err)
		require.IsType(t, &FileStore{}, s)
	})

	t.Run("sqlite scheme", func(t *testing.T) {
		t.Parallel()

		s, err := Open(ctx, "sqlite://"+filepath.Join(t.TempDir(), "form.db"))
		require.NoError(t, err)
		t.Cleanup(func() { _ = s.Close() })
		require.IsType(t, &SQLiteStore{}, s)
	})

	t.Run("s3 scheme", func(t *testing.T) {
		t.Parallel()

		s, err := Open(ctx, "s3://forms/sindeform?region=sa-east-1")
		require.NoError(t, err)
		require.IsType(t, &S3Store{}, s)
	})

	t.Run("unsupported scheme", func(t *testing.T) {
		t.Parallel()

		_, err := Open(ctx, "postgres://localhost/forms")
		require.ErrorIs(t, err, ErrInvalidDSN)
	})
}

func TestOpenRedisStore_InvalidURL(t *testing.T) {
	t.Parallel()

	_, err := Open(context.Background(), "redis://localhost:notaport")
	require.Error(t, err)
}
