// Package swrand implements the small-world random-graph approximate
// nearest-neighbor index: concurrent incremental construction, bounded
// best-first search under two interchangeable traversal algorithms, and
// a text-format persistence round-trip.
package swrand

import (
	"sync"
	"time"

	"github.com/arcaneiq/swrand/core"
	"github.com/arcaneiq/swrand/space"
	"github.com/rs/zerolog/log"
)

// Index is the small-world graph index: the public type wiring
// NodeRegistry, the builder, the two searchers, and persistence behind
// the space.Space/space.KNNQuery/space.RangeQuery interfaces.
type Index struct {
	sp space.Space

	mu       sync.RWMutex
	registry *NodeRegistry
	data     []space.Object

	build buildConfig
	query queryConfig
	built bool
}

// NewIndex creates an unbuilt index over the given distance oracle. Call
// CreateIndex or LoadIndex before Search or SaveIndex.
func NewIndex(sp space.Space) *Index {
	return &Index{
		sp:    sp,
		query: queryConfig{efSearch: 10, algoType: core.AlgoOld},
	}
}

// StrDesc identifies the method by name.
func (idx *Index) StrDesc() string { return methodName }

// CreateIndex builds the graph over data using the parameters in params
// (NN, efConstruction, indexThreadQty, useProxyDist — see
// resolveBuildConfig). showProgress draws a progress bar on stderr while
// building, matching the original's progress_bar_.
func (idx *Index) CreateIndex(data []space.Object, params *core.Params, showProgress bool) error {
	cfg, err := resolveBuildConfig(params)
	if err != nil {
		return err
	}

	start := time.Now()
	registry, err := buildGraph(idx.sp, data, cfg, showProgress)
	if err != nil {
		return err
	}
	core.BuildDuration.Observe(time.Since(start).Seconds())

	idx.mu.Lock()
	idx.registry = registry
	idx.data = data
	idx.build = cfg
	idx.query = queryConfig{efSearch: cfg.nn, algoType: core.AlgoOld}
	idx.built = true
	idx.mu.Unlock()

	log.Info().Int("n", len(data)).Dur("elapsed", time.Since(start)).Msg("CreateIndex complete")
	return nil
}

// SetQueryTimeParams resolves and installs efSearch and algoType for all
// subsequent Search calls (see resolveQueryConfig).
func (idx *Index) SetQueryTimeParams(params *core.Params) error {
	idx.mu.RLock()
	nn := idx.build.nn
	idx.mu.RUnlock()
	if nn == 0 {
		nn = 10
	}
	cfg, err := resolveQueryConfig(nn, params)
	if err != nil {
		return err
	}
	idx.mu.Lock()
	idx.query = cfg
	idx.mu.Unlock()
	return nil
}

// Search answers a KNNQuery against the current graph using the
// installed efSearch and algoType. It is safe to call concurrently with
// other Search calls once CreateIndex has returned.
func (idx *Index) Search(query space.KNNQuery) error {
	idx.mu.RLock()
	registry := idx.registry
	cfg := idx.query
	idx.mu.RUnlock()

	if registry == nil {
		return nil
	}

	start := time.Now()
	var err error
	switch cfg.algoType {
	case core.AlgoV1Merge:
		err = searchV1Merge(registry, query, cfg.efSearch, nil)
	default:
		err = searchOld(registry, query, cfg.efSearch)
	}
	core.SearchDuration.WithLabelValues(cfg.algoType.String()).Observe(time.Since(start).Seconds())
	return err
}

// SearchRange always fails: range queries are rejected with a specific
// "unsupported" error rather than silently answered or approximated.
func (idx *Index) SearchRange(query space.RangeQuery) error {
	return core.Errorf(core.KindMisuse, "Search", "unsupported: small_world_rand does not implement range queries")
}

// SaveIndex writes the current graph to path in the format
// persistence.go implements.
func (idx *Index) SaveIndex(path string) error {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	if idx.registry == nil {
		return core.Errorf(core.KindMisuse, "SaveIndex", "index has not been built")
	}
	return SaveIndex(path, idx.registry, idx.build.nn)
}

// LoadIndex replaces the current graph with the one stored at path,
// cross-checked against data. data must be the same dataset, by
// object id, that was indexed when the file was saved.
func (idx *Index) LoadIndex(path string, data []space.Object) error {
	registry, nn, err := LoadIndex(path, data)
	if err != nil {
		return err
	}
	idx.mu.Lock()
	idx.registry = registry
	idx.data = data
	idx.build.nn = nn
	if idx.build.efConstruction < nn {
		idx.build.efConstruction = nn
	}
	idx.query = queryConfig{efSearch: nn, algoType: core.AlgoOld}
	idx.built = true
	idx.mu.Unlock()
	return nil
}

// Size returns the number of nodes currently in the graph, or 0 before
// CreateIndex/LoadIndex has run.
func (idx *Index) Size() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	if idx.registry == nil {
		return 0
	}
	return idx.registry.Size()
}
