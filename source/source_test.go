package source

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseURI(t *testing.T) {
	tests := []struct {
		uri    string
		want   Location
		prefix bool
	}{
		{"Mall_Customers.csv", Location{Scheme: SchemeFile, Path: "Mall_Customers.csv"}, false},
		{"file:///tmp/data.csv", Location{Scheme: SchemeFile, Path: "/tmp/data.csv"}, false},
		{"s3://bucket/exports/a.csv.gz", Location{Scheme: SchemeS3, Bucket: "bucket", Path: "exports/a.csv.gz"}, false},
		{"minio://bucket/exports/", Location{Scheme: SchemeMinio, Bucket: "bucket", Path: "exports/"}, true},
		{"s3://bucket", Location{Scheme: SchemeS3, Bucket: "bucket"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			got, err := ParseURI(tt.uri)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.prefix, got.IsPrefix())
		})
	}
}

func TestParseURI_Errors(t *testing.T) {
	for _, uri := range []string{"", "s3:///key", "gs://bucket/key"} {
		_, err := ParseURI(uri)
		assert.Error(t, err, uri)
	}
}

func TestLocation_String(t *testing.T) {
	assert.Equal(t, "data.csv", Location{Scheme: SchemeFile, Path: "data.csv"}.String())
	assert.Equal(t, "s3://b/k.csv", Location{Scheme: SchemeS3, Bucket: "b", Path: "k.csv"}.String())
}

func TestLocalStore(t *testing.T) {
	tmpDir := t.TempDir()
	ctx := context.Background()

	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "parts"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "parts", "b.csv"), []byte("b"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "parts", "a.csv"), []byte("a"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "other.csv"), []byte("o"), 0o600))

	store := NewLocalStore(tmpDir)

	rc, err := store.Open(ctx, "parts/a.csv")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "a", string(data))

	names, err := store.List(ctx, "parts/")
	require.NoError(t, err)
	assert.Equal(t, []string{"parts/a.csv", "parts/b.csv"}, names)

	_, err = store.Open(ctx, "missing.csv")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = NewLocalStore(filepath.Join(tmpDir, "nope")).List(ctx, "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	buf := []byte("hello")
	store.Put("x/1.csv", buf)
	store.Put("x/0.csv", []byte("zero"))
	store.Put("y.csv", nil)
	buf[0] = 'j'

	rc, err := store.Open(ctx, "x/1.csv")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	names, err := store.List(ctx, "x/")
	require.NoError(t, err)
	assert.Equal(t, []string{"x/0.csv", "x/1.csv"}, names)

	_, err = store.Open(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
