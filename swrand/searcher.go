package swrand

import (
	"container/heap"
	"sort"

	"github.com/arcaneiq/swrand/core"
	"github.com/arcaneiq/swrand/space"
)

// mergeBufferAlgoSwitchThreshold caps one-at-a-time insertion into the
// frontier: above this many freshly-discovered candidates, searchV1Merge
// merges them into the frontier in one O(n) pass instead.
const mergeBufferAlgoSwitchThreshold = 100

// queryConfig holds the resolved, validated query-time parameters:
// efSearch and the selected traversal algorithm.
type queryConfig struct {
	efSearch uint
	algoType core.AlgoType
}

// resolveQueryConfig reads efSearch (default NN) and algoType (default
// "old") from params.
func resolveQueryConfig(nn uint, params *core.Params) (queryConfig, error) {
	efSearch, err := params.GetUintOptional("efSearch", nn)
	if err != nil {
		return queryConfig{}, err
	}
	algoStr, err := params.GetStringOptional("algoType", "old")
	if err != nil {
		return queryConfig{}, err
	}
	algo, err := core.ParseAlgoType(algoStr)
	if err != nil {
		return queryConfig{}, core.NewError(core.KindConfiguration, "SetQueryTimeParams", err)
	}
	if err := params.Done(); err != nil {
		return queryConfig{}, err
	}
	return queryConfig{efSearch: efSearch, algoType: algo}, nil
}

// Prefetcher lets a platform-specific build issue memory prefetches for a
// node's friends before their distances are computed. The default is a
// no-op: Go has no portable prefetch intrinsic, and omitting it changes
// only latency, never the result.
type Prefetcher interface {
	Prefetch(obj space.Object)
}

// searchOld is a best-first traversal with a bounded distance window of
// size efSearch, offering every visited object to query as it is
// discovered.
func searchOld(registry *NodeRegistry, query space.KNNQuery, efSearch uint) error {
	if registry.Size() == 0 {
		return nil
	}
	if efSearch == 0 {
		return core.Errorf(core.KindMisuse, "Search", "efSearch should be > 0")
	}
	entry := registry.EntryPoint()
	if entry == nil {
		return core.Errorf(core.KindInvariant, "Search", "no entry point set")
	}
	n := uint32(registry.Size())
	if entry.InternalID >= n {
		return core.Errorf(core.KindInvariant, "Search", "entry point id %d >= registry size %d", entry.InternalID, n)
	}

	visited := NewVisitedSet(registry.Size())
	candidates := make(candidateMinHeap, 0, efSearch)
	topDistances := make(candidateMaxHeap, 0, efSearch+1)

	d0 := query.DistanceObjLeft(entry.Object)
	query.CheckAndAddToResult(d0, entry.Object) // offered before entering the queue, as in the original
	heap.Push(&candidates, candidate{entry, d0})
	heap.Push(&topDistances, candidate{entry, d0})
	visited.Visit(entry.InternalID)

	var friendScratch []*Node
	for candidates.Len() > 0 {
		curr := candidates[0]
		if curr.dist > topDistances[0].dist {
			break
		}
		heap.Pop(&candidates)

		friendScratch = curr.node.SnapshotFriends(friendScratch)

		for _, friend := range friendScratch {
			if friend.InternalID >= n {
				return core.Errorf(core.KindInvariant, "Search", "friend id %d >= registry size %d", friend.InternalID, n)
			}
			if visited.Visit(friend.InternalID) {
				continue
			}
			d := query.DistanceObjLeft(friend.Object)

			if topDistances.Len() < int(efSearch) || d < topDistances[0].dist {
				heap.Push(&topDistances, candidate{friend, d})
				if topDistances.Len() > int(efSearch) {
					heap.Pop(&topDistances)
				}
				heap.Push(&candidates, candidate{friend, d})
			}

			query.CheckAndAddToResult(d, friend.Object)
		}
	}
	return nil
}

// searchV1Merge runs the same greedy policy as searchOld over a single
// sorted-array frontier instead of two heaps.
func searchV1Merge(registry *NodeRegistry, query space.KNNQuery, efSearch uint, prefetch Prefetcher) error {
	if registry.Size() == 0 {
		return nil
	}
	if efSearch == 0 {
		return core.Errorf(core.KindMisuse, "Search", "efSearch should be > 0")
	}
	entry := registry.EntryPoint()
	if entry == nil {
		return core.Errorf(core.KindInvariant, "Search", "no entry point set")
	}
	n := uint32(registry.Size())
	if entry.InternalID >= n {
		return core.Errorf(core.KindInvariant, "Search", "entry point id %d >= registry size %d", entry.InternalID, n)
	}

	k := uint(query.GetK())
	capacity := efSearch
	if k > capacity {
		capacity = k
	}
	arr := newSortedArray(int(capacity))

	visited := NewVisitedSet(registry.Size())
	d0 := query.DistanceObjLeft(entry.Object)
	arr.seed(d0, entry)
	visited.Visit(entry.InternalID)

	currElem := 0
	limit := int(efSearch)
	if arr.Len() < limit {
		limit = arr.Len()
	}

	var friendScratch []*Node
	var scratch []candidate

	for currElem < limit {
		item := &arr.items[currElem]
		item.used = true
		node := item.node
		currElem++

		friendScratch = node.SnapshotFriends(friendScratch)
		if prefetch != nil {
			for _, friend := range friendScratch {
				prefetch.Prefetch(friend.Object)
			}
		}

		topKey := arr.topKey()
		scratch = scratch[:0]
		for _, friend := range friendScratch {
			if friend.InternalID >= n {
				return core.Errorf(core.KindInvariant, "Search", "friend id %d >= registry size %d", friend.InternalID, n)
			}
			if visited.Visit(friend.InternalID) {
				continue
			}
			d := query.DistanceObjLeft(friend.Object)
			if arr.Len() < int(efSearch) || d < topKey {
				scratch = append(scratch, candidate{friend, d})
			}
		}

		if len(scratch) > 0 {
			sort.Slice(scratch, func(i, j int) bool { return scratch[i].dist < scratch[j].dist })

			var insIndex int
			if len(scratch) > mergeBufferAlgoSwitchThreshold {
				insIndex = arr.mergeWithSortedRun(scratch)
			} else {
				insIndex = arr.Len()
				for _, c := range scratch {
					idx := arr.insertOrReplace(c.dist, c.node)
					if idx != -1 && idx < insIndex {
						insIndex = idx
					}
				}
			}
			if insIndex < currElem {
				currElem = insIndex
			}
		}

		limit = int(efSearch)
		if arr.Len() < limit {
			limit = arr.Len()
		}
		for currElem < arr.Len() && arr.items[currElem].used {
			currElem++
		}
	}

	kLimit := query.GetK()
	for i := 0; i < kLimit && i < arr.Len(); i++ {
		query.CheckAndAddToResult(arr.items[i].dist, arr.items[i].node.Object)
	}
	return nil
}
