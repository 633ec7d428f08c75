package queue

// entry is a queued element plus its insertion sequence
type entry[T any] struct {
	value T
	seq   uint64
}

// entryHeap is a max-heap of entries (internal use)
type entryHeap[T any] struct {
	items []entry[T]
	less  func(a, b T) bool
}

// Len implements heap.Interface
func (h *entryHeap[T]) Len() int { return len(h.items) }

// Less implements heap.Interface - greater element first, earlier push for ties
func (h *entryHeap[T]) Less(i, j int) bool {
	a, b := h.items[i], h.items[j]
	if h.less(b.value, a.value) {
		return true
	}
	if h.less(a.value, b.value) {
		return false
	}
	return a.seq < b.seq
}

// Swap implements heap.Interface
func (h *entryHeap[T]) Swap(i, j int) { h.items[i], h.items[j] = h.items[j], h.items[i] }

// Push implements heap.Interface
func (h *entryHeap[T]) Push(x interface{}) {
	h.items = append(h.items, x.(entry[T]))
}

// Pop implements heap.Interface
func (h *entryHeap[T]) Pop() interface{} {
	old := h.items
	n := len(old)
	item := old[n-1]
	// drop the reference so the caller becomes the only owner
	old[n-1] = entry[T]{}
	h.items = old[0 : n-1]
	return item
}
