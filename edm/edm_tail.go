package edm

import "math"

const tailQuantile = 0.5

// tailSearch holds the interval trees for the approximate single breakout
// search. a covers differences within the left segment, b within the right
// segment and ab across the two.
type tailSearch struct {
	z       []float64
	minSize int
	alpha   float64

	a  *quantileTree
	b  *quantileTree
	ab *quantileTree

	bestStat float64
	bestLoc  int
	bestT2   int
}

func newTailSearch(z []float64, minSize int, alpha float64) *tailSearch {
	depth := treeDepth(len(z))
	return &tailSearch{
		z:        z,
		minSize:  minSize,
		alpha:    alpha,
		a:        newQuantileTree(depth),
		b:        newQuantileTree(depth),
		ab:       newQuantileTree(depth),
		bestStat: -3.0,
	}
}

// edmTail approximates the single breakout search using quantiles of the
// pairwise distance distributions held in interval trees, moving the split
// points with warm starts instead of rebuilding the trees.
func edmTail(z []float64, minSize int, alpha float64) (int, float64) {
	n := len(z)
	if minSize < 1 || n < 2*minSize {
		return 0, -3.0
	}

	s := newTailSearch(z, minSize, alpha)
	tau1 := minSize
	tau2 := 2 * minSize

	for i := 0; i < tau1; i++ {
		for j := i + 1; j < tau1; j++ {
			s.a.add(z[i] - z[j])
		}
	}
	for i := tau1; i < tau2; i++ {
		for j := i + 1; j < tau2; j++ {
			s.b.add(z[i] - z[j])
		}
	}
	for i := 0; i < tau1; i++ {
		for j := tau1; j < tau2; j++ {
			s.ab.add(z[i] - z[j])
		}
	}

	qa := s.q(s.a)
	qc := s.q(s.ab)

	// the starting configuration is always recorded, even below the
	// sentinel
	s.bestStat = s.stat(tau1, tau2, qa, s.q(s.b), qc)
	s.bestLoc = tau1
	s.bestT2 = tau2

	for tau2++; tau2 < n+1; tau2++ {
		s.b.add(z[tau2-1] - z[tau2-2])
		s.consider(tau1, tau2, qa, s.q(s.b), qc)
	}

	forward := false
	for tau1 < n-minSize {
		if forward {
			tau1 = s.forwardUpdate(tau1)
		} else {
			tau1 = s.backwardUpdate(tau1)
		}
		forward = !forward
	}

	return s.bestLoc, s.bestStat
}

func (s *tailSearch) q(tree *quantileTree) float64 {
	return math.Pow(tree.quantile(tailQuantile), s.alpha)
}

func (s *tailSearch) stat(tau1, tau2 int, qa, qb, qc float64) float64 {
	stat := 2.0*qc - qa - qb
	return stat * float64(tau1*(tau2-tau1)/tau2)
}

func (s *tailSearch) consider(tau1, tau2 int, qa, qb, qc float64) {
	if stat := s.stat(tau1, tau2, qa, qb, qc); stat > s.bestStat {
		s.bestStat = stat
		s.bestLoc = tau1
		s.bestT2 = tau2
	}
}

// shiftLeft moves the split point one step to the right, updating the
// within-left and across trees. It returns the new split point, the index
// bounding the right segment and the refreshed quantiles.
func (s *tailSearch) shiftLeft(tau1 int) (int, int, float64, float64) {
	z, m := s.z, s.minSize
	tau2 := tau1 + m
	tau1++

	entering := tau1 - 1
	leaving := tau1 - m - 1

	for i := tau1 - m; i < tau1-1; i++ {
		s.a.add(z[i] - z[entering])
	}
	for i := tau1 - m; i < tau1; i++ {
		s.a.remove(z[i] - z[leaving])
	}
	s.a.add(z[leaving] - z[tau1-m])
	qa := s.q(s.a)

	s.ab.remove(z[entering] - z[leaving])
	for i := tau1; i < tau2; i++ {
		s.ab.remove(z[i] - z[leaving])
		s.ab.add(z[i] - z[entering])
	}
	for i := tau1 - m; i < tau1-1; i++ {
		s.ab.remove(z[i] - z[entering])
		s.ab.add(z[i] - z[tau2])
	}
	s.ab.add(z[entering] - z[tau2])
	qc := s.q(s.ab)

	return tau1, tau2, qa, qc
}

// forwardUpdate moves tau1 forward and sweeps tau2 towards the end of the
// series.
func (s *tailSearch) forwardUpdate(tau1 int) int {
	z, n := s.z, len(s.z)
	tau1, tau2, qa, qc := s.shiftLeft(tau1)

	for i := tau1; i < tau2; i++ {
		s.b.add(z[i] - z[tau1-1])
		s.b.add(z[i] - z[tau2])
	}

	for tau2++; tau2 < n+1; tau2++ {
		s.b.add(z[tau2-1] - z[tau2-2])
		s.consider(tau1, tau2, qa, s.q(s.b), qc)
	}

	return tau1
}

// backwardUpdate moves tau1 forward and sweeps tau2 from the end of the
// series back towards tau1.
func (s *tailSearch) backwardUpdate(tau1 int) int {
	z, n, m := s.z, len(s.z), s.minSize
	tau1, _, qa, qc := s.shiftLeft(tau1)

	for i := tau1; i < tau1+m-1; i++ {
		s.b.add(z[tau1+m-1] - z[i])
		s.b.remove(z[i] - z[tau1-1])
	}

	for tau2 := n; tau2 >= tau1+m; tau2-- {
		s.b.add(z[tau2-1] - z[tau2-2])
		s.consider(tau1, tau2, qa, s.q(s.b), qc)
	}

	return tau1
}
