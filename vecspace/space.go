package vecspace

import (
	"fmt"
	"math"
	"sync"

	"github.com/arcaneiq/swrand/space"
	"github.com/rs/zerolog/log"
	"golang.org/x/sys/cpu"
	"gonum.org/v1/gonum/blas/gonum"
)

// gonumEngine provides the BLAS kernels (Saxpy, Sdot) used for distance
// computation. Pure Go needs no C toolchain and degrades gracefully on
// platforms without AVX, at the cost of hand-tuned assembly's absolute
// throughput.
var gonumEngine = gonum.Implementation{}

var diffWorkspace = sync.Pool{
	New: func() any {
		s := make([]float32, 0)
		return &s
	},
}

func init() {
	if cpu.X86.HasAVX {
		log.Debug().Msg("AVX instructions available; gonum's BLAS kernels may use them internally")
	} else {
		log.Debug().Msg("AVX instructions unavailable; falling back to gonum's portable BLAS kernels")
	}
}

// MetricFunc computes a distance between two equal-length float32 vectors.
type MetricFunc func(a, b []float32) float64

// Metrics maps the recognized distance-metric names to their MetricFunc.
var Metrics = map[string]MetricFunc{
	"euclidean":         Euclidean,
	"squared_euclidean": SquaredEuclidean,
	"manhattan":         Manhattan,
	"cosine":            CosineDistance,
}

// SquaredEuclidean computes the squared Euclidean distance via a pooled
// scratch buffer and a single Saxpy + Sdot pair.
func SquaredEuclidean(a, b []float32) float64 {
	n := len(a)
	diffPtr := diffWorkspace.Get().(*[]float32)
	defer diffWorkspace.Put(diffPtr)
	if cap(*diffPtr) < n {
		*diffPtr = make([]float32, n)
	}
	diff := (*diffPtr)[:n]
	copy(diff, a)
	gonumEngine.Saxpy(n, -1, b, 1, diff, 1)
	dot := gonumEngine.Sdot(n, diff, 1, diff, 1)
	return float64(dot)
}

// Euclidean computes the Euclidean (L2) distance between two vectors.
func Euclidean(a, b []float32) float64 {
	return math.Sqrt(SquaredEuclidean(a, b))
}

// Manhattan computes the Manhattan (L1) distance between two vectors.
func Manhattan(a, b []float32) float64 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		if d < 0 {
			d = -d
		}
		sum += d
	}
	return sum
}

// CosineDistance computes 1 - cosine similarity between two vectors.
func CosineDistance(a, b []float32) float64 {
	dot := float64(gonumEngine.Sdot(len(a), a, 1, b, 1))
	var normA, normB float64
	for i := range a {
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 1
	}
	return 1 - dot/(math.Sqrt(normA)*math.Sqrt(normB))
}

// VectorSpace is a reference space.Space over *VectorObject, using a
// named metric for IndexTimeDistance and optionally a cheaper one for
// ProxyDistance.
type VectorSpace struct {
	Dimension    int
	MetricName   string
	Metric       MetricFunc
	ProxyMetric  MetricFunc // if nil, ProxyDistance falls back to Metric
	NormalizeVec bool       // true for "cosine": NewVectorObject normalizes vectors
}

// NewVectorSpace builds a VectorSpace for the named metric ("euclidean",
// "squared_euclidean", "manhattan", or "cosine").
func NewVectorSpace(dimension int, metricName string) (*VectorSpace, error) {
	metric, ok := Metrics[metricName]
	if !ok {
		return nil, fmt.Errorf("unknown distance metric %q", metricName)
	}
	return &VectorSpace{
		Dimension:    dimension,
		MetricName:   metricName,
		Metric:       metric,
		NormalizeVec: metricName == "cosine",
	}, nil
}

// NewVectorObject builds a *VectorObject for id and vec, normalizing vec
// in place if this space's metric requires it.
func (s *VectorSpace) NewVectorObject(id int64, vec []float32) (*VectorObject, error) {
	if len(vec) != s.Dimension {
		return nil, fmt.Errorf("vector dimension %d does not match space dimension %d", len(vec), s.Dimension)
	}
	if s.NormalizeVec {
		normalize(vec)
	}
	return NewVectorObject(id, vec), nil
}

// IndexTimeDistance implements space.Space.
func (s *VectorSpace) IndexTimeDistance(a, b space.Object) float64 {
	return s.Metric(a.(*VectorObject).vec, b.(*VectorObject).vec)
}

// ProxyDistance implements space.Space, using ProxyMetric if one was
// configured, or falling back to Metric otherwise.
func (s *VectorSpace) ProxyDistance(a, b space.Object) float64 {
	metric := s.Metric
	if s.ProxyMetric != nil {
		metric = s.ProxyMetric
	}
	return metric(a.(*VectorObject).vec, b.(*VectorObject).vec)
}

// compile-time check that VectorSpace implements space.Space.
var _ space.Space = (*VectorSpace)(nil)

// compile-time check that VectorObject implements space.Object.
var _ space.Object = (*VectorObject)(nil)
