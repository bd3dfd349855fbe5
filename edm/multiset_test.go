package edm

import (
	"math/rand"
	"testing"

	"github.com/montanaflynn/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMultiset(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		m := newMultiset()
		assert.Equal(t, 0, m.Len())
		_, ok := m.Min()
		assert.False(t, ok)
		_, ok = m.Max()
		assert.False(t, ok)
		assert.False(t, m.Remove(1.0))
	})
	t.Run("Duplicates", func(t *testing.T) {
		m := newMultiset()
		for _, x := range []float64{2, 1, 2, 3, 2} {
			m.Insert(x)
		}
		assert.Equal(t, 5, m.Len())

		min, ok := m.Min()
		require.True(t, ok)
		assert.Equal(t, 1.0, min)
		max, ok := m.Max()
		require.True(t, ok)
		assert.Equal(t, 3.0, max)

		assert.True(t, m.Remove(2.0))
		assert.True(t, m.Remove(2.0))
		assert.Equal(t, 3, m.Len())
		assert.True(t, m.Remove(2.0))
		assert.False(t, m.Remove(2.0))
		assert.Equal(t, 2, m.Len())
	})
	t.Run("Clear", func(t *testing.T) {
		m := newMultiset()
		m.Insert(4)
		m.Insert(4)
		m.Clear()
		assert.Equal(t, 0, m.Len())
		_, ok := m.Min()
		assert.False(t, ok)

		m.Insert(5)
		max, ok := m.Max()
		require.True(t, ok)
		assert.Equal(t, 5.0, max)
	})
}

func checkWindowHalves(t *testing.T, w *windowMedian) {
	diff := w.lowerHalf.Len() - w.upperHalf.Len()
	assert.True(t, diff >= -1 && diff <= 1, "unbalanced halves %d/%d", w.lowerHalf.Len(), w.upperHalf.Len())

	lower, lowerOK := w.lowerHalf.Max()
	upper, upperOK := w.upperHalf.Min()
	if lowerOK && upperOK {
		assert.True(t, lower <= upper, "%f > %f", lower, upper)
	}
}

func TestWindowMedian(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		w := newWindowMedian()
		assert.Equal(t, 0.0, w.Median())
		assert.Equal(t, 0, w.Len())
	})
	t.Run("InsertAndRemove", func(t *testing.T) {
		w := newWindowMedian()
		for _, x := range []float64{5, 1, 4, 2, 3} {
			w.Insert(x)
			checkWindowHalves(t, w)
		}
		assert.Equal(t, 3.0, w.Median())

		assert.True(t, w.Remove(5))
		assert.Equal(t, 2.5, w.Median())
		assert.True(t, w.Remove(1))
		assert.Equal(t, 3.0, w.Median())
		checkWindowHalves(t, w)
	})
	t.Run("RemoveAbsent", func(t *testing.T) {
		w := newWindowMedian()
		for _, x := range []float64{1, 2, 3, 4} {
			w.Insert(x)
		}
		assert.False(t, w.Remove(10))
		assert.False(t, w.Remove(0.5))
		assert.False(t, w.Remove(2.5))
		assert.Equal(t, 4, w.Len())
		assert.Equal(t, 2.5, w.Median())
	})
	t.Run("Clear", func(t *testing.T) {
		w := newWindowMedian()
		w.Insert(1)
		w.Insert(7)
		w.Clear()
		assert.Equal(t, 0, w.Len())
		assert.Equal(t, 0.0, w.Median())
	})
	t.Run("MatchesSortedMedian", func(t *testing.T) {
		r := rand.New(rand.NewSource(defaultSeed))
		for size := 1; size <= 200; size++ {
			w := newWindowMedian()
			values := make([]float64, size)
			for i := range values {
				values[i] = float64(r.Intn(30)) / 4.0
				w.Insert(values[i])
			}
			checkWindowHalves(t, w)

			expected, err := stats.Median(values)
			require.NoError(t, err)
			assert.Equal(t, expected, w.Median(), "size %d", size)
		}
	})
	t.Run("RemovalPermutation", func(t *testing.T) {
		r := rand.New(rand.NewSource(defaultSeed))
		for trial := 0; trial < 20; trial++ {
			size := 2 + r.Intn(100)
			values := make([]float64, size)
			w := newWindowMedian()
			for i := range values {
				values[i] = float64(r.Intn(20))
				w.Insert(values[i])
			}

			order := r.Perm(size)
			remaining := append([]float64{}, values...)
			for _, idx := range order[:size-1] {
				require.True(t, w.Remove(values[idx]))
				checkWindowHalves(t, w)

				remaining = removeOne(remaining, values[idx])
				expected, err := stats.Median(remaining)
				require.NoError(t, err)
				assert.Equal(t, expected, w.Median())
			}
			assert.Equal(t, 1, w.Len())
		}
	})
}

func removeOne(values []float64, x float64) []float64 {
	for i := range values {
		if values[i] == x {
			return append(values[:i], values[i+1:]...)
		}
	}
	return values
}
