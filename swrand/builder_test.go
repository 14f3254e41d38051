package swrand

import (
	"math/rand"
	"testing"

	"github.com/arcaneiq/swrand/core"
	"github.com/arcaneiq/swrand/space"
	"github.com/arcaneiq/swrand/vecspace"
)

func randomObjects(n, dim int, seed int64) []space.Object {
	rng := rand.New(rand.NewSource(seed))
	objects := make([]space.Object, n)
	for i := 0; i < n; i++ {
		vec := make([]float32, dim)
		for j := range vec {
			vec[j] = rng.Float32()
		}
		objects[i] = vecspace.NewVectorObject(int64(i), vec)
	}
	return objects
}

func colinearObjects() []space.Object {
	objects := make([]space.Object, 8)
	for i := 0; i < 8; i++ {
		objects[i] = vecspace.NewVectorObject(int64(i), []float32{float32(i)})
	}
	return objects
}

func mustBuild(t *testing.T, sp space.Space, data []space.Object, values map[string]any) *NodeRegistry {
	t.Helper()
	cfg, err := resolveBuildConfig(core.NewParams("CreateIndex", values))
	if err != nil {
		t.Fatalf("resolveBuildConfig failed: %v", err)
	}
	registry, err := buildGraph(sp, data, cfg, false)
	if err != nil {
		t.Fatalf("buildGraph failed: %v", err)
	}
	return registry
}

func TestBuildGraphEmptyDataset(t *testing.T) {
	sp, _ := vecspace.NewVectorSpace(4, "euclidean")
	registry := mustBuild(t, sp, nil, map[string]any{})
	if registry.Size() != 0 {
		t.Errorf("Size() = %d; want 0 for an empty dataset", registry.Size())
	}
}

func TestBuildGraphSingleNode(t *testing.T) {
	sp, _ := vecspace.NewVectorSpace(4, "euclidean")
	data := randomObjects(1, 4, 1)
	registry := mustBuild(t, sp, data, map[string]any{})
	if registry.Size() != 1 {
		t.Fatalf("Size() = %d; want 1", registry.Size())
	}
	if registry.EntryPoint().Object.ID() != 0 {
		t.Errorf("EntryPoint() has object id %d; want 0", registry.EntryPoint().Object.ID())
	}
}

func TestBuildGraphTwoNodesHaveOneEdge(t *testing.T) {
	sp, _ := vecspace.NewVectorSpace(4, "euclidean")
	data := randomObjects(2, 4, 2)
	registry := mustBuild(t, sp, data, map[string]any{"NN": uint(10)})
	if registry.Size() != 2 {
		t.Fatalf("Size() = %d; want 2", registry.Size())
	}
	var total int
	registry.Ascend(func(n *Node) bool {
		total += n.FriendCount()
		return true
	})
	if total != 2 {
		t.Errorf("total friend-list entries = %d; want 2 (one bidirectional edge)", total)
	}
}

func TestBuildGraphSizeMatchesDataset(t *testing.T) {
	sp, _ := vecspace.NewVectorSpace(16, "euclidean")
	data := randomObjects(100, 16, 3)
	registry := mustBuild(t, sp, data, map[string]any{"NN": uint(8), "efConstruction": uint(32), "indexThreadQty": uint(4)})
	if registry.Size() != 100 {
		t.Errorf("Size() = %d; want 100", registry.Size())
	}
}

func TestBuildGraphIsUndirected(t *testing.T) {
	sp, _ := vecspace.NewVectorSpace(16, "euclidean")
	data := randomObjects(64, 16, 4)
	registry := mustBuild(t, sp, data, map[string]any{"NN": uint(6), "efConstruction": uint(16), "indexThreadQty": uint(1)})

	registry.Ascend(func(n *Node) bool {
		friends := n.SnapshotFriends(nil)
		for _, f := range friends {
			if !hasFriend(f, n) {
				t.Errorf("edge %d -> %d is not reciprocated", n.InternalID, f.InternalID)
			}
		}
		return true
	})
}

func hasFriend(n, target *Node) bool {
	for _, f := range n.SnapshotFriends(nil) {
		if f == target {
			return true
		}
	}
	return false
}

func TestBuildGraphNNOneProducesChainOrStar(t *testing.T) {
	sp, _ := vecspace.NewVectorSpace(1, "euclidean")
	data := colinearObjects()
	registry := mustBuild(t, sp, data, map[string]any{"NN": uint(1), "efConstruction": uint(1)})

	if registry.Size() != 8 {
		t.Fatalf("Size() = %d; want 8", registry.Size())
	}
	registry.Ascend(func(n *Node) bool {
		if n.FriendCount() == 0 {
			t.Errorf("node %d has no friends with NN=1", n.InternalID)
		}
		return true
	})
}

func TestResolveBuildConfigRejectsEfConstructionBelowNN(t *testing.T) {
	_, err := resolveBuildConfig(core.NewParams("CreateIndex", map[string]any{"NN": uint(8), "efConstruction": uint(2)}))
	if !core.IsKind(err, core.KindConfiguration) {
		t.Errorf("resolveBuildConfig() error = %v; want a configuration error", err)
	}
}

func TestAddNodeOnEmptyRegistryIsMisuse(t *testing.T) {
	sp, _ := vecspace.NewVectorSpace(1, "euclidean")
	registry := NewNodeRegistry()
	node := NewNode(0, vecspace.NewVectorObject(0, []float32{0}))
	cfg := buildConfig{nn: 1, efConstruction: 1, indexThreadQty: 1}
	err := addNode(sp, registry, node, 1, cfg)
	if !core.IsKind(err, core.KindMisuse) {
		t.Errorf("addNode() on an empty registry error = %v; want a misuse error", err)
	}
}
