package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/arcaneiq/swrand/core"
	"github.com/arcaneiq/swrand/internal/dataset"
	"github.com/arcaneiq/swrand/space"
	"github.com/arcaneiq/swrand/swrand"
	"github.com/arcaneiq/swrand/vecspace"
)

// toObjects wraps each vector in objects, in order, with an object id
// equal to its position — the convention every swrand CLI command relies
// on to keep a saved index's object ids aligned with the training CSV.
func toObjects(sp *vecspace.VectorSpace, vectors [][]float32) ([]space.Object, error) {
	objects := make([]space.Object, len(vectors))
	for i, vec := range vectors {
		obj, err := sp.NewVectorObject(int64(i), vec)
		if err != nil {
			return nil, fmt.Errorf("vector %d: %w", i, err)
		}
		objects[i] = obj
	}
	return objects, nil
}

// buildCreateParams assembles the CreateIndex parameter bag from the
// build-time flags shared by build, search, save, and bench. A zero flag value
// means "use the default resolveBuildConfig would pick" and is omitted
// from the bag rather than passed through literally.
func buildCreateParams(nn, efConstruction, threads uint, proxyDist bool) *core.Params {
	values := map[string]any{"useProxyDist": proxyDist}
	if nn > 0 {
		values["NN"] = nn
	}
	if efConstruction > 0 {
		values["efConstruction"] = efConstruction
	}
	if threads > 0 {
		values["indexThreadQty"] = threads
	}
	return core.NewParams("CreateIndex", values)
}

// queryParams assembles the SetQueryTimeParams parameter bag. efSearch
// of 0 means "use the graph's NN", same omission rule as
// buildCreateParams.
func queryParams(efSearch uint, algoType string) *core.Params {
	values := map[string]any{"algoType": algoType}
	if efSearch > 0 {
		values["efSearch"] = efSearch
	}
	return core.NewParams("SetQueryTimeParams", values)
}

// buildFromTrain loads a training CSV, builds a space over it, and runs
// CreateIndex with the given parameters, returning the index and the
// object slice callers need for later LoadIndex cross-checks.
func buildFromTrain(trainPath string, dim int, metric string, nn, efConstruction, threads uint, proxyDist, progress bool) (*swrand.Index, []space.Object, error) {
	vectors, err := dataset.LoadVectors(trainPath)
	if err != nil {
		return nil, nil, err
	}
	sp, err := vecspace.NewVectorSpace(dim, metric)
	if err != nil {
		return nil, nil, err
	}
	objects, err := toObjects(sp, vectors)
	if err != nil {
		return nil, nil, err
	}
	idx := swrand.NewIndex(sp)
	if err := idx.CreateIndex(objects, buildCreateParams(nn, efConstruction, threads, proxyDist), progress); err != nil {
		return nil, nil, err
	}
	return idx, objects, nil
}

// parseQueryVector parses a comma-separated list of floats, e.g.
// "0.1,0.2,0.3".
func parseQueryVector(s string) ([]float32, error) {
	fields := strings.Split(s, ",")
	vec := make([]float32, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 32)
		if err != nil {
			return nil, fmt.Errorf("malformed query vector component %q: %w", f, err)
		}
		vec[i] = float32(v)
	}
	return vec, nil
}
