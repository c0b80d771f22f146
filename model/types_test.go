package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRecord(t *testing.T) {
	r := NewRecord(7, 25, 40, 60)

	assert.Equal(t, RecordID(7), r.ID)
	assert.Equal(t, 25, r.Age())
	assert.Equal(t, 40, r.Income())
	assert.Equal(t, 60, r.Score())
	assert.False(t, r.Assigned())

	r.Cluster = 2
	assert.True(t, r.Assigned())
	assert.Equal(t, "Record(7:(25,40,60)->2)", r.String())
}

func TestFeatures_Float64s(t *testing.T) {
	f := Features{1, -2, 3}
	assert.Equal(t, []float64{1, -2, 3}, f.Float64s())
}
