package edm

import "container/heap"

type minFloatHeap []float64

func (h minFloatHeap) Len() int            { return len(h) }
func (h minFloatHeap) Less(i, j int) bool  { return h[i] < h[j] }
func (h minFloatHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *minFloatHeap) Push(x interface{}) { *h = append(*h, x.(float64)) }
func (h *minFloatHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

type maxFloatHeap struct{ minFloatHeap }

func (h maxFloatHeap) Less(i, j int) bool { return h.minFloatHeap[i] > h.minFloatHeap[j] }

// heapMedian tracks the running median of an append-only sequence.
// lowerHalf is a max-heap holding the smaller half, upperHalf a min-heap
// holding the greater half.
type heapMedian struct {
	lowerHalf maxFloatHeap
	upperHalf minFloatHeap
}

func (m *heapMedian) Len() int { return m.lowerHalf.Len() + m.upperHalf.Len() }

// Insert adds x, keeping the halves within one element of each other.
func (m *heapMedian) Insert(x float64) {
	if m.upperHalf.Len() == 0 || x < m.upperHalf[0] {
		heap.Push(&m.lowerHalf, x)
	} else {
		heap.Push(&m.upperHalf, x)
	}

	if m.upperHalf.Len() > m.lowerHalf.Len()+1 {
		heap.Push(&m.lowerHalf, heap.Pop(&m.upperHalf))
	} else if m.lowerHalf.Len() > m.upperHalf.Len()+1 {
		heap.Push(&m.upperHalf, heap.Pop(&m.lowerHalf))
	}
}

// Median returns the median of everything inserted so far, or 0 when
// nothing has been inserted.
func (m *heapMedian) Median() float64 {
	lower, upper := m.lowerHalf.Len(), m.upperHalf.Len()
	switch {
	case lower == 0 && upper == 0:
		return 0
	case upper > lower:
		return m.upperHalf[0]
	case lower > upper:
		return m.lowerHalf.minFloatHeap[0]
	default:
		return (m.lowerHalf.minFloatHeap[0] + m.upperHalf[0]) / 2.0
	}
}
