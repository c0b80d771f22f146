package kmeans

import "errors"

var (
	// ErrNoRecords is returned when seeding is attempted on an empty record set.
	ErrNoRecords = errors.New("no records to cluster")

	// ErrInvalidK is returned when the requested cluster count is not positive.
	ErrInvalidK = errors.New("cluster count must be positive")

	// ErrTooManyClusters is returned when more clusters are requested than records exist.
	ErrTooManyClusters = errors.New("cluster count exceeds record count")

	// ErrTooManyRecords is returned when the record count exceeds the
	// uint32 index space of the membership bitmaps.
	ErrTooManyRecords = errors.New("record count exceeds bitmap index range")

	// ErrInvalidMaxIterations is returned when the iteration budget is not positive.
	ErrInvalidMaxIterations = errors.New("max iterations must be positive")
)
