// Package space defines the interfaces the graph core consumes but does
// not implement: the opaque object store, the distance oracle, and the
// query-time result accumulator, specified only by their behavior.
package space

// Object is an opaque payload identified by an external, signed-integer
// object id. The core never interprets Data's contents; it is exposed
// only so collaborators (e.g. a prefetcher) can address it as bytes.
type Object interface {
	ID() int64
	Data() []byte
}

// DistanceFunc computes the distance between two objects. It need not be
// a metric: it is only required to be a deterministic, symmetric
// function suitable for greedy nearest-neighbor traversal.
type DistanceFunc func(a, b Object) float64

// Space is the distance oracle. IndexTimeDistance is the distance used to
// build and search the graph; ProxyDistance is an optional faster,
// possibly inadmissible stand-in used during indexing only when
// useProxyDist is enabled.
type Space interface {
	IndexTimeDistance(a, b Object) float64
	ProxyDistance(a, b Object) float64
}

// KNNQuery accumulates the top-k results of a single query. The core
// offers every object it visits to CheckAndAddToResult; the accumulator
// decides whether and where the object belongs in its result set.
type KNNQuery interface {
	// DistanceObjLeft computes the distance from the query's probe object
	// to obj, with the probe held as the fixed "left" operand.
	DistanceObjLeft(obj Object) float64
	// CheckAndAddToResult offers a visited object and its distance to the
	// accumulator.
	CheckAndAddToResult(dist float64, obj Object)
	// GetK returns the number of results the query wants.
	GetK() int
}

// RangeQuery marks a range-query request. The core rejects this with a
// specific "unsupported" error rather than attempting to answer it, and
// accepts this type only to produce that rejection.
type RangeQuery interface {
	Radius() float64
}
