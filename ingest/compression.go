package ingest

import (
	"errors"
	"io"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression defines the compression algorithm of an input.
type Compression uint8

const (
	// CompressionNone indicates plain input.
	CompressionNone Compression = iota
	// CompressionGzip indicates gzip input (.gz).
	CompressionGzip
	// CompressionZSTD indicates zstd input (.zst, .zstd).
	CompressionZSTD
	// CompressionLZ4 indicates lz4 frame input (.lz4).
	CompressionLZ4
)

func (c Compression) String() string {
	switch c {
	case CompressionGzip:
		return "gzip"
	case CompressionZSTD:
		return "zstd"
	case CompressionLZ4:
		return "lz4"
	default:
		return "none"
	}
}

// DetectCompression infers the compression from the file name extension.
func DetectCompression(name string) Compression {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, ".gz"):
		return CompressionGzip
	case strings.HasSuffix(lower, ".zst"), strings.HasSuffix(lower, ".zstd"):
		return CompressionZSTD
	case strings.HasSuffix(lower, ".lz4"):
		return CompressionLZ4
	default:
		return CompressionNone
	}
}

// Decompress wraps rc with a decompressing reader. Closing the result closes rc.
func Decompress(rc io.ReadCloser, c Compression) (io.ReadCloser, error) {
	switch c {
	case CompressionNone:
		return rc, nil
	case CompressionGzip:
		zr, err := gzip.NewReader(rc)
		if err != nil {
			_ = rc.Close()
			return nil, err
		}
		return &decompressReader{Reader: zr, closers: []io.Closer{zr, rc}}, nil
	case CompressionZSTD:
		dec, err := zstd.NewReader(rc)
		if err != nil {
			_ = rc.Close()
			return nil, err
		}
		zr := dec.IOReadCloser()
		return &decompressReader{Reader: zr, closers: []io.Closer{zr, rc}}, nil
	case CompressionLZ4:
		return &decompressReader{Reader: lz4.NewReader(rc), closers: []io.Closer{rc}}, nil
	default:
		_ = rc.Close()
		return nil, errors.New("unknown compression type")
	}
}

type decompressReader struct {
	io.Reader
	closers []io.Closer
}

func (d *decompressReader) Close() error {
	var errs []error
	for _, c := range d.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
