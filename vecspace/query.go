package vecspace

import (
	"github.com/arcaneiq/swrand/space"
)

// Neighbor is one entry of a TopKAccumulator's result: an object id and
// its distance to the query's probe.
type Neighbor struct {
	ID       int64
	Distance float64
}

// TopKAccumulator is a reference space.KNNQuery: it keeps the k smallest
// distances seen so far in a sorted slice, trimmed to k on every insert.
// Insertion is O(k) rather than O(log k); the graph core treats this as
// an opaque collaborator rather than part of its own algorithm, so it
// favors simplicity over asymptotics.
type TopKAccumulator struct {
	probe   *VectorObject
	metric  MetricFunc
	k       int
	results []Neighbor
}

// NewTopKAccumulator builds an accumulator for k results around probe,
// using metric to compute DistanceObjLeft.
func NewTopKAccumulator(probe *VectorObject, metric MetricFunc, k int) *TopKAccumulator {
	return &TopKAccumulator{probe: probe, metric: metric, k: k}
}

// DistanceObjLeft implements space.KNNQuery.
func (q *TopKAccumulator) DistanceObjLeft(obj space.Object) float64 {
	return q.metric(q.probe.vec, obj.(*VectorObject).vec)
}

// CheckAndAddToResult implements space.KNNQuery.
func (q *TopKAccumulator) CheckAndAddToResult(dist float64, obj space.Object) {
	id := obj.(*VectorObject).ID()
	for _, n := range q.results {
		if n.ID == id {
			return
		}
	}
	if len(q.results) >= q.k && dist >= q.results[len(q.results)-1].Distance {
		return
	}
	insertAt := len(q.results)
	for i, n := range q.results {
		if dist < n.Distance {
			insertAt = i
			break
		}
	}
	q.results = append(q.results, Neighbor{})
	copy(q.results[insertAt+1:], q.results[insertAt:])
	q.results[insertAt] = Neighbor{ID: id, Distance: dist}
	if len(q.results) > q.k {
		q.results = q.results[:q.k]
	}
}

// GetK implements space.KNNQuery.
func (q *TopKAccumulator) GetK() int { return q.k }

// Results returns the accumulated top-k neighbors, nearest first.
func (q *TopKAccumulator) Results() []Neighbor {
	out := make([]Neighbor, len(q.results))
	copy(out, q.results)
	return out
}

var _ space.KNNQuery = (*TopKAccumulator)(nil)
