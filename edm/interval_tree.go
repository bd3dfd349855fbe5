package edm

import "math"

const minTreeDepth = 10

// quantileTree is a complete binary tree over [0, 1] used to answer
// approximate quantile queries about absolute pairwise differences. Slot 0
// is unused; node i has children 2i and 2i+1, and leaves start at 2^depth.
type quantileTree struct {
	depth int
	nodes []float64
}

func newQuantileTree(depth int) *quantileTree {
	return &quantileTree{
		depth: depth,
		nodes: make([]float64, 1<<(depth+1)),
	}
}

// treeDepth returns the depth used for a series of length n.
func treeDepth(n int) int {
	depth := int(math.Ceil(math.Log(float64(n))))
	if depth < minTreeDepth {
		return minTreeDepth
	}
	return depth
}

// bucket returns the slot for the difference v. A zero difference maps to
// slot 2^depth-1, the last node one level above the leaves.
func (t *quantileTree) bucket(v float64) int {
	width := float64(int(1) << t.depth)
	return int(math.Ceil(math.Abs(v)*width) + width - 1)
}

// update adds delta to index and all of its ancestors.
func (t *quantileTree) update(index int, delta float64) {
	for ; index != 0; index /= 2 {
		t.nodes[index] += delta
	}
}

func (t *quantileTree) add(v float64)    { t.update(t.bucket(v), 1) }
func (t *quantileTree) remove(v float64) { t.update(t.bucket(v), -1) }

func (t *quantileTree) total() float64 { return t.nodes[1] }

// quantile walks down the tree to the node holding the q-th weighted rank.
func (t *quantileTree) quantile(q float64) float64 {
	n := len(t.nodes)
	if t.nodes[1] == 0 {
		return 0
	}

	k := math.Ceil(t.nodes[1] * q)
	l, u := 0.0, 1.0
	for i := 1; i < n; {
		j := i << 1
		if j >= n {
			break
		}

		if t.nodes[i] == k {
			// exactly k elements below this node, blend the two children
			leftWeight := t.nodes[j] / (t.nodes[j] + t.nodes[j+1])
			rightWeight := 1.0 - leftWeight
			lu := (u + l) / 2.0
			rl := (u + lu) / 2.0
			return leftWeight*(q*(lu-l)+l) + rightWeight*(q*(u-rl)+rl)
		}

		if t.nodes[j] >= k {
			i = j
			u = (l + u) / 2.0
		} else {
			k -= t.nodes[j]
			i = j + 1
			l = (l + u) / 2.0
		}
	}

	return q*(u-l) + l
}
