package swrand

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arcaneiq/swrand/core"
	"github.com/arcaneiq/swrand/space"
	"github.com/arcaneiq/swrand/vecspace"
)

func TestSaveLoadRoundTripPreservesGraph(t *testing.T) {
	sp, err := vecspace.NewVectorSpace(8, "euclidean")
	if err != nil {
		t.Fatalf("NewVectorSpace failed: %v", err)
	}
	data := randomObjects(40, 8, 99)
	registry := mustBuild(t, sp, data, map[string]any{"NN": uint(6), "efConstruction": uint(16)})

	path := filepath.Join(t.TempDir(), "index.swr")
	if err := SaveIndex(path, registry, 6); err != nil {
		t.Fatalf("SaveIndex failed: %v", err)
	}

	loaded, nn, err := LoadIndex(path, data)
	if err != nil {
		t.Fatalf("LoadIndex failed: %v", err)
	}
	if nn != 6 {
		t.Errorf("loaded NN = %d; want 6", nn)
	}
	if loaded.Size() != registry.Size() {
		t.Fatalf("loaded size = %d; want %d", loaded.Size(), registry.Size())
	}

	originalEdges := edgeSet(registry)
	loadedEdges := edgeSet(loaded)
	if len(originalEdges) != len(loadedEdges) {
		t.Fatalf("edge count mismatch: original=%d loaded=%d", len(originalEdges), len(loadedEdges))
	}
	for e := range originalEdges {
		if _, ok := loadedEdges[e]; !ok {
			t.Errorf("edge %v present before save but missing after load", e)
		}
	}
}

type edge struct{ a, b uint32 }

func edgeSet(r *NodeRegistry) map[edge]struct{} {
	edges := make(map[edge]struct{})
	r.Ascend(func(n *Node) bool {
		for _, f := range n.SnapshotFriends(nil) {
			a, b := n.InternalID, f.InternalID
			if a > b {
				a, b = b, a
			}
			edges[edge{a, b}] = struct{}{}
		}
		return true
	})
	return edges
}

func TestLoadIndexDetectsDatasetMutation(t *testing.T) {
	sp, _ := vecspace.NewVectorSpace(4, "euclidean")
	data := randomObjects(10, 4, 7)
	registry := mustBuild(t, sp, data, map[string]any{"NN": uint(3), "efConstruction": uint(5)})

	path := filepath.Join(t.TempDir(), "index.swr")
	if err := SaveIndex(path, registry, 3); err != nil {
		t.Fatalf("SaveIndex failed: %v", err)
	}

	mutated := make([]space.Object, len(data))
	copy(mutated, data)
	mutated[7] = vecspace.NewVectorObject(9999, []float32{0, 0, 0, 0})

	if _, _, err := LoadIndex(path, mutated); !core.IsKind(err, core.KindInvariant) {
		t.Errorf("LoadIndex against a mutated dataset returned %v; want an invariant error", err)
	}
}

func TestLoadIndexRejectsBadMethodName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.swr")
	writeRaw(t, path, "MethodDescription\tsome_other_method\nNN\t1\n\nLineQty\t3\n")
	if _, _, err := LoadIndex(path, nil); err == nil {
		t.Errorf("LoadIndex with an unexpected method name returned nil error; want an error")
	}
}

func TestLoadIndexDetectsLineCountMismatch(t *testing.T) {
	data := randomObjects(1, 2, 1)
	path := filepath.Join(t.TempDir(), "index.swr")
	writeRaw(t, path, "MethodDescription\tsmall_world_rand\nNN\t1\n0:0: \n\nLineQty\t999\n")
	if _, _, err := LoadIndex(path, data); !core.IsKind(err, core.KindIO) {
		t.Errorf("LoadIndex with a wrong LineQty returned %v; want an io error", err)
	}
}

func writeRaw(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("os.WriteFile failed: %v", err)
	}
}
