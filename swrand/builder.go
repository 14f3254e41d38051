package swrand

import (
	"runtime"
	"sync"

	"github.com/arcaneiq/swrand/core"
	"github.com/arcaneiq/swrand/space"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"
)

// buildConfig holds the resolved, validated CreateIndex-time parameters.
type buildConfig struct {
	nn             uint
	efConstruction uint
	indexThreadQty uint
	useProxyDist   bool
}

// resolveBuildConfig reads and validates the CreateIndex parameter bag:
// NN, efConstruction, indexThreadQty, and useProxyDist. efSearch and
// algoType are query-time parameters, resolved separately by
// resolveQueryConfig.
func resolveBuildConfig(params *core.Params) (buildConfig, error) {
	var cfg buildConfig
	nn, err := params.GetUintOptional("NN", 10)
	if err != nil {
		return cfg, err
	}
	efConstruction, err := params.GetUintOptional("efConstruction", nn)
	if err != nil {
		return cfg, err
	}
	indexThreadQty, err := params.GetUintOptional("indexThreadQty", uint(runtime.NumCPU()))
	if err != nil {
		return cfg, err
	}
	useProxyDist, err := params.GetBoolOptional("useProxyDist", false)
	if err != nil {
		return cfg, err
	}
	if err := params.Done(); err != nil {
		return cfg, err
	}
	if nn < 1 {
		return cfg, core.Errorf(core.KindConfiguration, "CreateIndex", "NN must be >= 1, got %d", nn)
	}
	if efConstruction < nn {
		return cfg, core.Errorf(core.KindConfiguration, "CreateIndex", "efConstruction must be >= NN (%d), got %d", nn, efConstruction)
	}
	if indexThreadQty < 1 {
		indexThreadQty = 1
	}
	cfg = buildConfig{nn: nn, efConstruction: efConstruction, indexThreadQty: indexThreadQty, useProxyDist: useProxyDist}
	log.Info().
		Uint("NN", cfg.nn).
		Uint("efConstruction", cfg.efConstruction).
		Uint("indexThreadQty", cfg.indexThreadQty).
		Bool("useProxyDist", cfg.useProxyDist).
		Msg("resolved CreateIndex parameters")
	return cfg, nil
}

// progressBatch is the number of inserted nodes between progress bar
// updates, matching the original C++ implementation's batching of
// display updates under a shared mutex (it advances in chunks of 200
// rather than once per insertion, to keep the mutex-guarded bar update
// cheap under many threads).
const progressBatch = 200

// buildGraph synchronously inserts data[0] as the entry point, then
// inserts the rest either sequentially or via indexThreadQty strided
// workers, and verifies that the registry ends up holding len(data)
// nodes.
func buildGraph(sp space.Space, data []space.Object, cfg buildConfig, showProgress bool) (*NodeRegistry, error) {
	registry := NewNodeRegistry()
	n := len(data)
	if n == 0 {
		return registry, nil
	}

	entry := NewNode(0, data[0])
	registry.Insert(entry)
	maxInternalID := uint32(n)

	var bar *progressbar.ProgressBar
	if showProgress {
		bar = progressbar.Default(int64(n))
		_ = bar.Add(1)
	}

	insertOne := func(id int) error {
		node := NewNode(uint32(id), data[id])
		if err := addNode(sp, registry, node, maxInternalID, cfg); err != nil {
			return err
		}
		core.NodesIndexed.Inc()
		return nil
	}

	if cfg.indexThreadQty <= 1 {
		for id := 1; id < n; id++ {
			if err := insertOne(id); err != nil {
				return nil, err
			}
			if bar != nil {
				_ = bar.Add(1)
			}
		}
	} else {
		T := int(cfg.indexThreadQty)
		var barMu sync.Mutex
		g := new(errgroup.Group)
		for w := 0; w < T; w++ {
			w := w
			g.Go(func() error {
				sinceFlush := 0
				for id := 1; id < n; id++ {
					if id%T != w {
						continue
					}
					if err := insertOne(id); err != nil {
						return err
					}
					sinceFlush++
					if bar != nil && sinceFlush >= progressBatch {
						barMu.Lock()
						_ = bar.Add(sinceFlush)
						barMu.Unlock()
						sinceFlush = 0
					}
				}
				if bar != nil && sinceFlush > 0 {
					barMu.Lock()
					_ = bar.Add(sinceFlush)
					barMu.Unlock()
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
		log.Info().Int("indexThreadQty", T).Msg("indexing threads have finished")
	}

	if registry.Size() != n {
		return nil, core.Errorf(core.KindInvariant, "CreateIndex", "registry size (%d) isn't equal to data size (%d)", registry.Size(), n)
	}
	return registry, nil
}

// addNode inserts one node ("add"): find up to nn candidate neighbors
// via searchForIndexing, link each bidirectionally,
// then publish the node into the registry. Linking happens strictly
// before publication, so any reader that reaches node via the registry
// or via a friend's list always sees its final-at-that-moment adjacency.
func addNode(sp space.Space, registry *NodeRegistry, node *Node, maxInternalID uint32, cfg buildConfig) error {
	if registry.Size() == 0 {
		return core.Errorf(core.KindMisuse, "add", "the registry shouldn't be empty before add() is called")
	}

	candidates, err := searchForIndexing(sp, node.Object, registry.EntryPoint(), maxInternalID, int(cfg.efConstruction), int(cfg.nn), cfg.useProxyDist)
	if err != nil {
		return err
	}
	for _, c := range candidates {
		c.node.AddFriend(node, false)
		node.AddFriend(c.node, false)
	}

	registry.Insert(node)
	return nil
}
