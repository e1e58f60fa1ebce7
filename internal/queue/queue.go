// Package queue provides a value-based bounded heap for top-k selection.
package queue

import "slices"

// Item is an entry of the queue: the position of a value in the scanned
// sequence and its distance.
type Item struct {
	Index    int
	Distance float32
}

// before reports whether a orders strictly before b: smaller distance first,
// equal distances by ascending index.
func before(a, b Item) bool {
	if a.Distance != b.Distance {
		return a.Distance < b.Distance
	}
	return a.Index < b.Index
}

// MaxQueue is a max-heap over Item ordered by (Distance, Index).
// The top is the worst item retained so far.
type MaxQueue struct {
	items []Item
}

// NewMax initializes a new max queue with the given capacity.
func NewMax(capacity int) *MaxQueue {
	return &MaxQueue{items: make([]Item, 0, capacity)}
}

// Len returns the number of elements in the queue.
func (q *MaxQueue) Len() int { return len(q.items) }

// Top returns the worst retained item.
func (q *MaxQueue) Top() (Item, bool) {
	if len(q.items) == 0 {
		return Item{}, false
	}
	return q.items[0], true
}

// Push inserts an item while maintaining the heap invariant.
func (q *MaxQueue) Push(item Item) {
	q.items = append(q.items, item)
	q.siftUp(len(q.items) - 1)
}

// ReplaceTop overwrites the worst item and restores the heap invariant.
func (q *MaxQueue) ReplaceTop(item Item) {
	q.items[0] = item
	q.siftDown(0)
}

// Pop removes and returns the worst item.
func (q *MaxQueue) Pop() (Item, bool) {
	n := len(q.items)
	if n == 0 {
		return Item{}, false
	}
	root := q.items[0]
	last := q.items[n-1]
	q.items = q.items[:n-1]
	if n-1 > 0 {
		q.items[0] = last
		q.siftDown(0)
	}
	return root, true
}

// Reset clears the queue for reuse.
func (q *MaxQueue) Reset() {
	q.items = q.items[:0]
}

func (q *MaxQueue) less(i, j int) bool {
	// max-heap: the item that sorts later wins
	return before(q.items[j], q.items[i])
}

func (q *MaxQueue) siftUp(i int) {
	for i > 0 {
		p := (i - 1) / 2
		if !q.less(i, p) {
			return
		}
		q.items[i], q.items[p] = q.items[p], q.items[i]
		i = p
	}
}

func (q *MaxQueue) siftDown(i int) {
	n := len(q.items)
	for {
		l := 2*i + 1
		if l >= n {
			return
		}
		best := l
		r := l + 1
		if r < n && q.less(r, l) {
			best = r
		}
		if !q.less(best, i) {
			return
		}
		q.items[i], q.items[best] = q.items[best], q.items[i]
		i = best
	}
}

// SmallestK returns the indices of the k smallest values in ascending order of
// value, ties broken by ascending index. When k >= len(values) every index is
// returned in that order. k <= 0 yields an empty result.
func SmallestK(values []float32, k int) []int {
	if k <= 0 || len(values) == 0 {
		return []int{}
	}

	if k >= len(values) {
		idx := make([]int, len(values))
		for i := range idx {
			idx[i] = i
		}
		slices.SortStableFunc(idx, func(a, b int) int {
			switch {
			case values[a] < values[b]:
				return -1
			case values[a] > values[b]:
				return 1
			default:
				return 0
			}
		})
		return idx
	}

	q := NewMax(k)
	for i, v := range values {
		item := Item{Index: i, Distance: v}
		if q.Len() < k {
			q.Push(item)
			continue
		}
		if top, _ := q.Top(); before(item, top) {
			q.ReplaceTop(item)
		}
	}

	out := make([]int, q.Len())
	for i := len(out) - 1; i >= 0; i-- {
		item, _ := q.Pop()
		out[i] = item.Index
	}
	return out
}
