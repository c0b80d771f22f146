package source

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
)

// ErrNotFound is returned when an input does not exist.
//
// Implementations should return an error that satisfies `errors.Is(err, ErrNotFound)`.
// The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// Source is an abstraction for reading input files.
type Source interface {
	// Open opens an input for reading.
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	// List returns the names of all inputs with the given prefix, sorted.
	List(ctx context.Context, prefix string) ([]string, error)
}

// Scheme is the storage backend of a URI.
type Scheme string

const (
	SchemeFile  Scheme = "file"
	SchemeS3    Scheme = "s3"
	SchemeMinio Scheme = "minio"
)

// Location is a parsed input URI.
type Location struct {
	Scheme Scheme
	// Bucket is empty for SchemeFile.
	Bucket string
	// Path is the file path (SchemeFile) or object key.
	Path string
}

// IsPrefix reports whether the location names a directory or key prefix
// rather than a single input.
func (l Location) IsPrefix() bool {
	return l.Path == "" || strings.HasSuffix(l.Path, "/")
}

func (l Location) String() string {
	if l.Scheme == SchemeFile {
		return l.Path
	}
	return fmt.Sprintf("%s://%s/%s", l.Scheme, l.Bucket, l.Path)
}

// ParseURI parses an input location. A URI without a scheme is a local path.
func ParseURI(uri string) (Location, error) {
	if uri == "" {
		return Location{}, fmt.Errorf("empty input uri")
	}
	if !strings.Contains(uri, "://") {
		return Location{Scheme: SchemeFile, Path: uri}, nil
	}

	u, err := url.Parse(uri)
	if err != nil {
		return Location{}, fmt.Errorf("parse input uri %q: %w", uri, err)
	}

	switch Scheme(u.Scheme) {
	case SchemeFile:
		return Location{Scheme: SchemeFile, Path: u.Host + u.Path}, nil
	case SchemeS3, SchemeMinio:
		if u.Host == "" {
			return Location{}, fmt.Errorf("input uri %q: missing bucket", uri)
		}
		return Location{
			Scheme: Scheme(u.Scheme),
			Bucket: u.Host,
			Path:   strings.TrimPrefix(u.Path, "/"),
		}, nil
	default:
		return Location{}, fmt.Errorf("input uri %q: unsupported scheme %q", uri, u.Scheme)
	}
}
