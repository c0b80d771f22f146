package distance

import (
	"math"
	"testing"

	"github.com/hupe1980/kclust/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEuclidean(t *testing.T) {
	tests := []struct {
		name     string
		a, b     model.Features
		expected float64
	}{
		{"Zero", model.Features{0, 0, 0}, model.Features{0, 0, 0}, 0},
		{"Pythagorean", model.Features{0, 0, 0}, model.Features{3, 4, 0}, 5},
		{"Negative", model.Features{-1, -1, -1}, model.Features{1, 1, 1}, math.Sqrt(12)},
		{"Records", model.Features{25, 40, 60}, model.Features{27, 42, 58}, math.Sqrt(12)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Euclidean(tt.a, tt.b), 1e-9)
			assert.InDelta(t, tt.expected, Euclidean(tt.b, tt.a), 1e-9)
		})
	}
}

func TestSquaredEuclidean(t *testing.T) {
	assert.InDelta(t, 25.0, SquaredEuclidean(model.Features{0, 0, 0}, model.Features{3, 4, 0}), 1e-9)
}

func TestManhattan(t *testing.T) {
	assert.InDelta(t, 9.0, Manhattan(model.Features{1, 2, 3}, model.Features{4, 5, 0}), 1e-9)
}

func TestProvider(t *testing.T) {
	for _, m := range []Metric{MetricEuclidean, MetricSquaredEuclidean, MetricManhattan} {
		fn, err := Provider(m)
		require.NoError(t, err, m.String())
		assert.NotNil(t, fn)
	}

	_, err := Provider(Metric(999))
	assert.Error(t, err)
	assert.Equal(t, "unknown(999)", Metric(999).String())
}

func TestParseMetric(t *testing.T) {
	tests := []struct {
		in   string
		want Metric
	}{
		{"", MetricEuclidean},
		{"L2", MetricEuclidean},
		{"euclidean", MetricEuclidean},
		{"squared_euclidean", MetricSquaredEuclidean},
		{" manhattan ", MetricManhattan},
	}
	for _, tt := range tests {
		got, err := ParseMetric(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		back, err := ParseMetric(got.String())
		require.NoError(t, err)
		assert.Equal(t, got, back)
	}

	_, err := ParseMetric("cosine")
	assert.Error(t, err)
}
