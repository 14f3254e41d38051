package swrand

import "math"

// sortedItem is one slot of a sortedArray: a distance, the node at that
// distance, and whether SearchV1Merge has already expanded it.
type sortedItem struct {
	dist float64
	node *Node
	used bool
}

// sortedArray is the v1merge search frontier: a single ascending-by-
// distance array capped at capacity, supporting insert-or-replace and
// merge-with-sorted-run. Keeping one contiguous
// array rather than two heaps is the cache-efficiency trade the original
// makes; this is a direct, non-SIMD port of that structure (SortArrBI in
// the original C++).
type sortedArray struct {
	capacity int
	items    []sortedItem
}

func newSortedArray(capacity int) *sortedArray {
	return &sortedArray{capacity: capacity, items: make([]sortedItem, 0, capacity)}
}

// Len returns the number of items currently held (<= capacity).
func (s *sortedArray) Len() int { return len(s.items) }

// topKey returns the distance of the farthest held item, or +Inf if the
// array is not yet full to capacity (matching SortArrBI::top_key: an
// array that isn't full hasn't established a pruning bound yet).
func (s *sortedArray) topKey() float64 {
	if len(s.items) < s.capacity {
		return math.Inf(1)
	}
	return s.items[len(s.items)-1].dist
}

// seed unconditionally appends an item; used only to place the entry
// point into an empty array, which always fits.
func (s *sortedArray) seed(dist float64, node *Node) {
	s.items = append(s.items, sortedItem{dist: dist, node: node})
}

// searchInsertionPoint finds the index at which dist belongs, using an
// exponential probe followed by a binary search over the narrowed range
// — the same two-phase search the original's push_or_replace_non_empty_exp
// performs to avoid a full binary search over the whole array when the
// insertion point is near the front.
func (s *sortedArray) searchInsertionPoint(dist float64) int {
	n := len(s.items)
	bound := 1
	for bound < n && s.items[bound].dist < dist {
		bound *= 2
	}
	lo := bound / 2
	hi := bound
	if hi > n {
		hi = n
	}
	for lo < hi {
		mid := (lo + hi) / 2
		if s.items[mid].dist < dist {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// insertOrReplace inserts (dist, node) in sorted position, truncating to
// capacity, and returns the insertion index. It returns -1 without
// modifying the array if the array is already at capacity and dist does
// not beat the current farthest item.
func (s *sortedArray) insertOrReplace(dist float64, node *Node) int {
	if len(s.items) >= s.capacity && dist >= s.items[len(s.items)-1].dist {
		return -1
	}
	idx := s.searchInsertionPoint(dist)
	s.items = append(s.items, sortedItem{})
	copy(s.items[idx+1:], s.items[idx:])
	s.items[idx] = sortedItem{dist: dist, node: node}
	if len(s.items) > s.capacity {
		s.items = s.items[:s.capacity]
	}
	return idx
}

// mergeWithSortedRun merges the already-sorted buf into the array in one
// linear pass, truncates to capacity, and returns the lowest index any
// element of buf landed at (len(s.items) if none did). This is the
// MERGE_BUFFER_ALGO_SWITCH_THRESHOLD path: amortising many inserts into
// a single O(n) merge once the scratch buffer is large enough to make
// per-item exponential-search inserts more expensive in aggregate.
func (s *sortedArray) mergeWithSortedRun(buf []candidate) int {
	merged := make([]sortedItem, 0, len(s.items)+len(buf))
	i, j := 0, 0
	firstInserted := -1
	for i < len(s.items) && j < len(buf) {
		if s.items[i].dist <= buf[j].dist {
			merged = append(merged, s.items[i])
			i++
		} else {
			if firstInserted == -1 {
				firstInserted = len(merged)
			}
			merged = append(merged, sortedItem{dist: buf[j].dist, node: buf[j].node})
			j++
		}
	}
	for ; i < len(s.items); i++ {
		merged = append(merged, s.items[i])
	}
	for ; j < len(buf); j++ {
		if firstInserted == -1 {
			firstInserted = len(merged)
		}
		merged = append(merged, sortedItem{dist: buf[j].dist, node: buf[j].node})
	}
	if len(merged) > s.capacity {
		merged = merged[:s.capacity]
	}
	s.items = merged
	if firstInserted == -1 || firstInserted > len(s.items) {
		firstInserted = len(s.items)
	}
	return firstInserted
}
