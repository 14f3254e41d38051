package vecspace

import "github.com/arcaneiq/swrand/space"

// RangeQueryRequest is a reference space.RangeQuery. The graph core never
// answers it, and this type exists only so the rejection path has
// something concrete to reject.
type RangeQueryRequest struct {
	Probe  *VectorObject
	radius float64
}

// NewRangeQueryRequest builds a range query around probe with the given radius.
func NewRangeQueryRequest(probe *VectorObject, radius float64) *RangeQueryRequest {
	return &RangeQueryRequest{Probe: probe, radius: radius}
}

// Radius implements space.RangeQuery.
func (r *RangeQueryRequest) Radius() float64 { return r.radius }

var _ space.RangeQuery = (*RangeQueryRequest)(nil)
