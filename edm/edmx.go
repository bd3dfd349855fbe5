package edm

// edmx is the exact single breakout search: a robust estimate of the
// alpha = 2 E-statistic where the means of each segment are replaced by
// their medians. z must already be normalized.
func edmx(z []float64, minSize int) (int, float64) {
	n := len(z)
	bestStat := -3.0
	bestLoc := 0

	left := &heapMedian{}
	for i := 0; i < minSize-1 && i < n; i++ {
		left.Insert(z[i])
	}

	for tau1 := minSize; tau1 < n-minSize+1; tau1++ {
		left.Insert(z[tau1-1])
		leftMedian := left.Median()

		right := &heapMedian{}
		for i := tau1; i < tau1+minSize-1; i++ {
			right.Insert(z[i])
		}

		for tau2 := tau1 + minSize; tau2 < n+1; tau2++ {
			right.Insert(z[tau2-1])
			gap := leftMedian - right.Median()

			stat := gap * gap
			stat *= float64(tau1*(tau2-tau1)) / float64(tau2)

			if stat > bestStat {
				bestLoc = tau1
				bestStat = stat
			}
		}
	}

	return bestLoc, bestStat
}
