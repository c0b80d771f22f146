package ingest

import (
	"context"
	"fmt"

	"github.com/hupe1980/kclust/model"
	"github.com/hupe1980/kclust/source"
)

// Load reads the records of a single input from src.
func Load(ctx context.Context, src source.Source, name string, optFns ...func(*Options)) (records []*model.Record, err error) {
	rc, err := src.Open(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}

	rc, err = Decompress(rc, DetectCompression(name))
	if err != nil {
		return nil, fmt.Errorf("decompress %s: %w", name, err)
	}
	defer func() {
		if cerr := rc.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", name, cerr)
		}
	}()

	fns := append([]func(*Options){func(o *Options) { o.Name = name }}, optFns...)
	return Read(rc, fns...)
}

// LoadPrefix reads every input below prefix in name order and concatenates
// the records. Each input carries its own header row when Header is set.
func LoadPrefix(ctx context.Context, src source.Source, prefix string, optFns ...func(*Options)) ([]*model.Record, error) {
	names, err := src.List(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", prefix, err)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("list %s: %w", prefix, source.ErrNotFound)
	}

	var records []*model.Record
	for _, name := range names {
		part, err := Load(ctx, src, name, optFns...)
		if err != nil {
			return nil, err
		}
		records = append(records, part...)
	}
	return records, nil
}
