package edm

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPenalty(t *testing.T) {
	t.Run("ForDegree", func(t *testing.T) {
		assert.Equal(t, PenaltyConstant, PenaltyForDegree(0))
		assert.Equal(t, PenaltyLinear, PenaltyForDegree(1))
		assert.Equal(t, PenaltyQuadratic, PenaltyForDegree(2))
		assert.Equal(t, PenaltyConstant, PenaltyForDegree(3))
		assert.Equal(t, PenaltyConstant, PenaltyForDegree(-1))
	})
	t.Run("Weights", func(t *testing.T) {
		for _, k := range []int{0, 1, 4} {
			assert.Equal(t, 0.0, PenaltyConstant.weight(k))
			assert.Equal(t, 1.0, PenaltyLinear.weight(k))
		}
		assert.Equal(t, 1.0, PenaltyQuadratic.weight(0))
		assert.Equal(t, 5.0, PenaltyQuadratic.weight(2))
	})
	t.Run("String", func(t *testing.T) {
		assert.Equal(t, "constant", PenaltyConstant.String())
		assert.Equal(t, "linear", PenaltyLinear.String())
		assert.Equal(t, "quadratic", PenaltyQuadratic.String())
	})
}

func checkChangePoints(t *testing.T, points []int, n, minSize int) {
	require.NotNil(t, points)
	assert.True(t, sort.IntsAreSorted(points))
	for idx, p := range points {
		assert.True(t, p >= minSize, "%d below min size", p)
		assert.True(t, p <= n-minSize, "%d too close to the end", p)
		if idx > 0 {
			assert.True(t, p-points[idx-1] >= minSize, "%d and %d too close", points[idx-1], p)
		}
	}
}

func TestEDMMulti(t *testing.T) {
	t.Run("ThreeLevels", func(t *testing.T) {
		z, ok := normalize(threeLevelSeries())
		require.True(t, ok)
		assert.Equal(t, []int{10, 15, 20}, edmMulti(z, 5, defaultBeta, PenaltyLinear))
	})
	t.Run("Step", func(t *testing.T) {
		assert.Equal(t, []int{10}, edmMulti(stepSeries(), 5, defaultBeta, PenaltyLinear))
	})
	t.Run("NegativeBetaIsAbsolute", func(t *testing.T) {
		z, ok := normalize(threeLevelSeries())
		require.True(t, ok)
		assert.Equal(t, edmMulti(z, 5, 0.3, PenaltyQuadratic), edmMulti(z, 5, -0.3, PenaltyQuadratic))
	})
	t.Run("LargePenaltyFindsNothing", func(t *testing.T) {
		z, ok := normalize(threeLevelSeries())
		require.True(t, ok)

		points := edmMulti(z, 5, 10, PenaltyLinear)
		assert.NotNil(t, points)
		assert.Empty(t, points)
	})
	t.Run("TooShort", func(t *testing.T) {
		points := edmMulti(stepSeries(), 11, defaultBeta, PenaltyLinear)
		assert.NotNil(t, points)
		assert.Empty(t, points)
	})
	t.Run("ChangePointsAreSeparated", func(t *testing.T) {
		z, ok := normalize(threeLevelSeries())
		require.True(t, ok)

		for _, m := range []int{2, 3, 4, 5, 8} {
			for _, penalty := range []Penalty{PenaltyConstant, PenaltyLinear, PenaltyQuadratic} {
				checkChangePoints(t, edmMulti(z, m, defaultBeta, penalty), len(z), m)
			}
		}
	})
	t.Run("Tables", func(t *testing.T) {
		z, ok := normalize(threeLevelSeries())
		require.True(t, ok)

		m := 4
		tables := fillMulti(z, m, defaultBeta, PenaltyLinear)
		require.Len(t, tables.best, len(z)+1)

		for s := range tables.prev {
			if s < 2*m {
				assert.Equal(t, 0, tables.prev[s])
				assert.Equal(t, -3.0, tables.best[s])
				continue
			}

			p := tables.prev[s]
			if p == 0 {
				continue
			}
			assert.True(t, p >= m)
			assert.True(t, p <= s-m)
			assert.Equal(t, tables.number[p]+1, tables.number[s])
		}
	})
}

func TestEDMPercent(t *testing.T) {
	t.Run("ThreeLevels", func(t *testing.T) {
		z, ok := normalize(threeLevelSeries())
		require.True(t, ok)
		assert.Equal(t, []int{8, 19}, edmPercent(z, 5, 0.5, PenaltyLinear))
	})
	t.Run("TooShort", func(t *testing.T) {
		points := edmPercent(stepSeries(), 11, 0.5, PenaltyLinear)
		assert.NotNil(t, points)
		assert.Empty(t, points)
	})
	t.Run("ChangePointsAreSeparated", func(t *testing.T) {
		z, ok := normalize(threeLevelSeries())
		require.True(t, ok)

		for _, m := range []int{2, 3, 5, 8} {
			for _, percent := range []float64{0, 0.1, 0.5, 2} {
				checkChangePoints(t, edmPercent(z, m, percent, PenaltyLinear), len(z), m)
			}
		}
	})
	t.Run("Tables", func(t *testing.T) {
		z, ok := normalize(threeLevelSeries())
		require.True(t, ok)

		tables := fillPercent(z, 5, 0.5, PenaltyLinear)
		for s := range tables.prev {
			if s < 10 {
				assert.Equal(t, 0, tables.prev[s])
				assert.Equal(t, 0.0, tables.best[s])
				continue
			}
			if p := tables.prev[s]; p != 0 {
				assert.True(t, p >= 5)
				assert.True(t, p <= s-5)
			}
		}
	})
}
