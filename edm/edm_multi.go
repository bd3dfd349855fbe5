package edm

import "sort"

// Penalty selects how the cost of an additional breakout grows with the
// number of breakouts already found.
type Penalty int

const (
	PenaltyConstant Penalty = iota
	PenaltyLinear
	PenaltyQuadratic
)

// PenaltyForDegree maps a polynomial degree to a penalty shape. Degrees
// other than 1 and 2 penalize nothing.
func PenaltyForDegree(degree int) Penalty {
	switch degree {
	case 1:
		return PenaltyLinear
	case 2:
		return PenaltyQuadratic
	default:
		return PenaltyConstant
	}
}

func (p Penalty) String() string {
	switch p {
	case PenaltyLinear:
		return "linear"
	case PenaltyQuadratic:
		return "quadratic"
	default:
		return "constant"
	}
}

func (p Penalty) weight(breakouts int) float64 {
	switch p {
	case PenaltyLinear:
		return 1.0
	case PenaltyQuadratic:
		return 2.0*float64(breakouts) + 1.0
	default:
		return 0.0
	}
}

// multiTables are the dynamic programming tables for one call. For every
// prefix length s, best holds the optimal objective, prev the last change
// before s (0 for none) and number the breakouts on that path.
type multiTables struct {
	best   []float64
	prev   []int
	number []int
}

func newMultiTables(n int, initial float64) *multiTables {
	t := &multiTables{
		best:   make([]float64, n+1),
		prev:   make([]int, n+1),
		number: make([]int, n+1),
	}
	for i := range t.best {
		t.best[i] = initial
	}
	return t
}

// changePoints follows the prev pointers back from the end of the series.
func (t *multiTables) changePoints() []int {
	out := []int{}
	for at := len(t.prev) - 1; at > 0; at = t.prev[at] {
		if value := t.prev[at]; value != 0 {
			out = append(out, value)
		}
	}
	sort.Ints(out)
	return out
}

// multiSearch owns the four half-collections backing the left and right
// window medians.
type multiSearch struct {
	z       []float64
	minSize int
	left    *windowMedian
	right   *windowMedian
	tables  *multiTables
}

func newMultiSearch(z []float64, minSize int, initial float64) *multiSearch {
	return &multiSearch{
		z:       z,
		minSize: minSize,
		left:    newWindowMedian(),
		right:   newWindowMedian(),
		tables:  newMultiTables(len(z), initial),
	}
}

// scan evaluates every admissible penultimate change t for a final change
// at s, charging penalty(t) for the extra breakout and keeping the best.
func (m *multiSearch) scan(s int, penalty func(t int) float64) {
	z, prev, best, number := m.z, m.tables.prev, m.tables.best, m.tables.number

	m.left.Clear()
	m.right.Clear()

	for i := prev[m.minSize-1]; i < m.minSize-1; i++ {
		m.left.Insert(z[i])
	}
	for i := m.minSize - 1; i < s; i++ {
		m.right.Insert(z[i])
	}

	for t := m.minSize; t < s-m.minSize+1; t++ {
		// left holds z[prev[t-1]:t], right holds z[t:s]
		m.left.Insert(z[t-1])
		m.right.Remove(z[t-1])

		if prev[t] > prev[t-1] {
			for i := prev[t-1]; i < prev[t]; i++ {
				m.left.Remove(z[i])
			}
		} else if prev[t] < prev[t-1] {
			for i := prev[t]; i < prev[t-1]; i++ {
				m.left.Insert(z[i])
			}
		}

		gap := m.left.Median() - m.right.Median()
		span := float64(s - prev[t])
		normalize := float64((t-prev[t])*(s-t)) / (span * span)
		tmp := best[t] + normalize*(gap*gap) - penalty(t)

		if tmp > best[s] {
			number[s] = number[t] + 1
			best[s] = tmp
			prev[s] = t
		}
	}
}

// edmMulti finds any number of breakouts, charging beta times the penalty
// shape for each additional one.
func edmMulti(z []float64, minSize int, beta float64, penalty Penalty) []int {
	return fillMulti(z, minSize, beta, penalty).changePoints()
}

func fillMulti(z []float64, minSize int, beta float64, penalty Penalty) *multiTables {
	if beta < 0 {
		beta = -beta
	}

	search := newMultiSearch(z, minSize, -3.0)
	number := search.tables.number
	cost := func(t int) float64 { return beta * penalty.weight(number[t]) }

	for s := 2 * minSize; s < len(z)+1; s++ {
		search.scan(s, cost)
	}

	return search.tables
}

// edmPercent finds any number of breakouts, keeping a new breakout only if
// it improves the objective by at least percent (scaled by the penalty
// shape) over the previous breakout.
func edmPercent(z []float64, minSize int, percent float64, penalty Penalty) []int {
	return fillPercent(z, minSize, percent, penalty).changePoints()
}

func fillPercent(z []float64, minSize int, percent float64, penalty Penalty) *multiTables {
	search := newMultiSearch(z, minSize, 0.0)
	prev, best, number := search.tables.prev, search.tables.best, search.tables.number
	free := func(int) float64 { return 0 }

	for s := 2 * minSize; s < len(z)+1; s++ {
		search.scan(s, free)

		// the candidate is only judged against its own predecessor; a
		// rejected breakout is merged into the one before it
		p := prev[s]
		if p != 0 && best[s]-best[p] < percent*penalty.weight(number[p])*best[p] {
			number[s] = number[p]
			best[s] = best[p]
			prev[s] = prev[p]
		}
	}

	return search.tables
}
