package swrand

import (
	"container/heap"

	"github.com/arcaneiq/swrand/core"
	"github.com/arcaneiq/swrand/space"
)

// searchForIndexing is the construction-time greedy traversal. It
// returns up to nn candidate neighbors of probe,
// nearest first, discovered by a best-first walk bounded by
// efConstruction. maxInternalID sizes the visited bitset and doubles as
// a consistency check: any node encountered with an id beyond it is an
// invariant violation.
func searchForIndexing(
	sp space.Space,
	probe space.Object,
	entryPoint *Node,
	maxInternalID uint32,
	efConstruction, nn int,
	useProxyDist bool,
) ([]candidate, error) {
	if entryPoint == nil {
		return nil, core.Errorf(core.KindInvariant, "searchForIndexing", "no entry point set")
	}

	dist := sp.IndexTimeDistance
	if useProxyDist {
		dist = sp.ProxyDistance
	}

	visited := NewVisitedSet(int(maxInternalID) + 1)

	candidates := make(candidateMinHeap, 0, efConstruction)
	topDistances := make(candidateMaxHeap, 0, efConstruction+1)
	result := make(candidateMaxHeap, 0, nn+1)

	if entryPoint.InternalID > maxInternalID {
		return nil, core.Errorf(core.KindInvariant, "searchForIndexing", "entry point id %d exceeds maxInternalId %d", entryPoint.InternalID, maxInternalID)
	}

	d0 := dist(entryPoint.Object, probe)
	heap.Push(&candidates, candidate{entryPoint, d0})
	heap.Push(&topDistances, candidate{entryPoint, d0})
	if topDistances.Len() > efConstruction {
		heap.Pop(&topDistances)
	}
	visited.Visit(entryPoint.InternalID)
	heap.Push(&result, candidate{entryPoint, d0})
	if result.Len() > nn {
		heap.Pop(&result)
	}

	var friendScratch []*Node

	for candidates.Len() > 0 {
		curr := candidates[0]
		if curr.dist > topDistances[0].dist {
			break
		}
		heap.Pop(&candidates)

		friendScratch = curr.node.SnapshotFriends(friendScratch)

		for _, friend := range friendScratch {
			if friend.InternalID > maxInternalID {
				return nil, core.Errorf(core.KindInvariant, "searchForIndexing", "friend id %d exceeds maxInternalId %d", friend.InternalID, maxInternalID)
			}
			if visited.Visit(friend.InternalID) {
				continue
			}
			d := dist(friend.Object, probe)

			if topDistances.Len() < efConstruction || d < topDistances[0].dist {
				heap.Push(&topDistances, candidate{friend, d})
				if topDistances.Len() > efConstruction {
					heap.Pop(&topDistances)
				}
				heap.Push(&candidates, candidate{friend, d})
			}

			if result.Len() < nn || d < result[0].dist {
				heap.Push(&result, candidate{friend, d})
				if result.Len() > nn {
					heap.Pop(&result)
				}
			}
		}
	}

	// Popping a max-heap yields farthest-first; filling out back-to-front
	// leaves it nearest-first without a separate sort.
	out := make([]candidate, result.Len())
	for i := len(out) - 1; i >= 0; i-- {
		out[i] = heap.Pop(&result).(candidate)
	}
	return out, nil
}
