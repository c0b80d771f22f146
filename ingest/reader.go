package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hupe1980/kclust/model"
)

// Columns holds the 0-based column positions of the record fields.
type Columns struct {
	ID     int
	Age    int
	Income int
	Score  int
}

// DefaultColumns matches the mall customer export.
var DefaultColumns = Columns{ID: 0, Age: 2, Income: 3, Score: 4}

// Options configures a Reader.
type Options struct {
	// Header reports whether the first row is a header to discard.
	Header bool
	// Columns selects the field positions.
	Columns Columns
	// Comma is the field delimiter.
	Comma rune
	// Name labels parse errors.
	Name string
}

// DefaultOptions returns the options for the mall customer layout.
func DefaultOptions() Options {
	return Options{
		Header:  true,
		Columns: DefaultColumns,
		Comma:   ',',
	}
}

// Reader reads records from CSV input.
type Reader struct {
	r    *csv.Reader
	opts Options
	rows int
	line int
}

// NewReader creates a Reader over r.
func NewReader(r io.Reader, optFns ...func(*Options)) *Reader {
	opts := DefaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	cr := csv.NewReader(r)
	cr.Comma = opts.Comma
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	return &Reader{r: cr, opts: opts}
}

// ReadAll reads every remaining record. The header row, if configured, is
// skipped before the first record.
func (r *Reader) ReadAll() ([]*model.Record, error) {
	var records []*model.Record

	for {
		row, err := r.r.Read()
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return nil, r.wrapCSV(err)
		}

		r.rows++
		r.line, _ = r.r.FieldPos(0)
		if r.opts.Header && r.rows == 1 {
			continue
		}

		rec, err := r.parse(row)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
}

func (r *Reader) parse(row []string) (*model.Record, error) {
	fields := [...]struct {
		name string
		col  int
	}{
		{"id", r.opts.Columns.ID},
		{"age", r.opts.Columns.Age},
		{"income", r.opts.Columns.Income},
		{"score", r.opts.Columns.Score},
	}

	var values [4]int
	for i, f := range fields {
		if f.col < 0 || f.col >= len(row) {
			return nil, r.errorf(f.col, f.name, ErrMissingColumn)
		}
		v, err := strconv.Atoi(strings.TrimSpace(row[f.col]))
		if err != nil {
			return nil, r.errorf(f.col, f.name, err)
		}
		values[i] = v
	}

	return model.NewRecord(model.RecordID(values[0]), values[1], values[2], values[3]), nil
}

func (r *Reader) errorf(col int, field string, err error) error {
	return &ParseError{Name: r.opts.Name, Line: r.line, Column: col, Field: field, Err: err}
}

func (r *Reader) wrapCSV(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &ParseError{Name: r.opts.Name, Line: pe.Line, Column: pe.Column, Field: "csv", Err: pe.Err}
	}
	if r.opts.Name != "" {
		return fmt.Errorf("read %s: %w", r.opts.Name, err)
	}
	return err
}

// Read reads all records from r.
func Read(r io.Reader, optFns ...func(*Options)) ([]*model.Record, error) {
	return NewReader(r, optFns...).ReadAll()
}
