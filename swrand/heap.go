package swrand

import "container/heap"

// candidate pairs a node with its distance to the probe of the traversal
// currently in progress.
type candidate struct {
	node *Node
	dist float64
}

// candidateMinHeap yields the nearest unexpanded candidate first. Used as
// the "candidates" queue in both construction and the old search
// algorithm.
type candidateMinHeap []candidate

func (h candidateMinHeap) Len() int { return len(h) }
func (h candidateMinHeap) Less(i, j int) bool {
	if h[i].dist == h[j].dist {
		return h[i].node.InternalID < h[j].node.InternalID
	}
	return h[i].dist < h[j].dist
}
func (h candidateMinHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *candidateMinHeap) Push(x interface{}) { *h = append(*h, x.(candidate)) }
func (h *candidateMinHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// candidateMaxHeap yields the farthest retained candidate first, so its
// top is always the current pruning distance. Used for both
// "topDistances" (construction and SearchOld's distance window) and
// "result" (construction's NN-bounded neighbor set).
type candidateMaxHeap []candidate

func (h candidateMaxHeap) Len() int { return len(h) }
func (h candidateMaxHeap) Less(i, j int) bool {
	if h[i].dist == h[j].dist {
		return h[i].node.InternalID < h[j].node.InternalID
	}
	return h[i].dist > h[j].dist
}
func (h candidateMaxHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *candidateMaxHeap) Push(x interface{}) { *h = append(*h, x.(candidate)) }
func (h *candidateMaxHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

var (
	_ heap.Interface = (*candidateMinHeap)(nil)
	_ heap.Interface = (*candidateMaxHeap)(nil)
)
