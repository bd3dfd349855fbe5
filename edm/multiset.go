package edm

import "github.com/google/btree"

const multisetDegree = 16

type multisetEntry struct {
	value float64
	count int
}

func multisetLess(a, b multisetEntry) bool { return a.value < b.value }

// multiset is an ordered bag of floats with duplicate counts.
type multiset struct {
	tree *btree.BTreeG[multisetEntry]
	size int
}

func newMultiset() *multiset {
	return &multiset{tree: btree.NewG(multisetDegree, multisetLess)}
}

func (m *multiset) Len() int { return m.size }

func (m *multiset) Insert(x float64) {
	entry, ok := m.tree.Get(multisetEntry{value: x})
	if !ok {
		entry = multisetEntry{value: x}
	}
	entry.count++
	m.tree.ReplaceOrInsert(entry)
	m.size++
}

// Remove deletes one occurrence of x, returning false if x is not present.
func (m *multiset) Remove(x float64) bool {
	entry, ok := m.tree.Get(multisetEntry{value: x})
	if !ok {
		return false
	}

	if entry.count == 1 {
		m.tree.Delete(entry)
	} else {
		entry.count--
		m.tree.ReplaceOrInsert(entry)
	}
	m.size--
	return true
}

func (m *multiset) Min() (float64, bool) {
	entry, ok := m.tree.Min()
	return entry.value, ok
}

func (m *multiset) Max() (float64, bool) {
	entry, ok := m.tree.Max()
	return entry.value, ok
}

func (m *multiset) Clear() {
	m.tree.Clear(true)
	m.size = 0
}

// windowMedian tracks the median of a window whose both ends move, so
// values can be removed as well as inserted.
type windowMedian struct {
	lowerHalf *multiset
	upperHalf *multiset
}

func newWindowMedian() *windowMedian {
	return &windowMedian{
		lowerHalf: newMultiset(),
		upperHalf: newMultiset(),
	}
}

func (w *windowMedian) Len() int { return w.lowerHalf.Len() + w.upperHalf.Len() }

func (w *windowMedian) belongsToLower(x float64) bool {
	top, ok := w.upperHalf.Min()
	return !ok || x < top
}

func (w *windowMedian) Insert(x float64) {
	if w.belongsToLower(x) {
		w.lowerHalf.Insert(x)
	} else {
		w.upperHalf.Insert(x)
	}
	w.rebalance()
}

// Remove deletes one occurrence of x. Absent values leave the window
// untouched and report false.
func (w *windowMedian) Remove(x float64) bool {
	var removed bool
	if w.belongsToLower(x) {
		removed = w.lowerHalf.Remove(x)
	} else {
		removed = w.upperHalf.Remove(x)
	}
	if removed {
		w.rebalance()
	}
	return removed
}

func (w *windowMedian) rebalance() {
	if w.upperHalf.Len() > w.lowerHalf.Len()+1 {
		x, _ := w.upperHalf.Min()
		w.upperHalf.Remove(x)
		w.lowerHalf.Insert(x)
	} else if w.lowerHalf.Len() > w.upperHalf.Len()+1 {
		x, _ := w.lowerHalf.Max()
		w.lowerHalf.Remove(x)
		w.upperHalf.Insert(x)
	}
}

// Median returns 0 for an empty window.
func (w *windowMedian) Median() float64 {
	lower, lowerOK := w.lowerHalf.Max()
	upper, upperOK := w.upperHalf.Min()
	switch {
	case !lowerOK && !upperOK:
		return 0
	case w.upperHalf.Len() > w.lowerHalf.Len():
		return upper
	case w.lowerHalf.Len() > w.upperHalf.Len():
		return lower
	default:
		return (lower + upper) / 2.0
	}
}

func (w *windowMedian) Clear() {
	w.lowerHalf.Clear()
	w.upperHalf.Clear()
}
