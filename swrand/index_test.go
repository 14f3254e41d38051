package swrand

import (
	"path/filepath"
	"testing"

	"github.com/arcaneiq/swrand/core"
	"github.com/arcaneiq/swrand/vecspace"
)

func TestIndexStrDesc(t *testing.T) {
	sp, _ := vecspace.NewVectorSpace(4, "euclidean")
	idx := NewIndex(sp)
	if idx.StrDesc() != "small_world_rand" {
		t.Errorf("StrDesc() = %q; want %q", idx.StrDesc(), "small_world_rand")
	}
}

func TestIndexCreateAndSearch(t *testing.T) {
	sp, _ := vecspace.NewVectorSpace(8, "euclidean")
	idx := NewIndex(sp)
	data := randomObjects(50, 8, 11)

	if err := idx.CreateIndex(data, core.NewParams("CreateIndex", map[string]any{"NN": uint(6)}), false); err != nil {
		t.Fatalf("CreateIndex failed: %v", err)
	}
	if idx.Size() != 50 {
		t.Fatalf("Size() = %d; want 50", idx.Size())
	}

	probe := data[3].(*vecspace.VectorObject)
	acc := vecspace.NewTopKAccumulator(probe, sp.Metric, 1)
	if err := idx.Search(acc); err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	results := acc.Results()
	if len(results) != 1 || results[0].ID != probe.ID() {
		t.Errorf("Search() = %+v; want the probe itself", results)
	}
}

func TestIndexSearchRangeIsUnsupported(t *testing.T) {
	sp, _ := vecspace.NewVectorSpace(4, "euclidean")
	idx := NewIndex(sp)
	rq := vecspace.NewRangeQueryRequest(vecspace.NewVectorObject(0, []float32{0, 0, 0, 0}), 1.0)
	if err := idx.SearchRange(rq); !core.IsKind(err, core.KindMisuse) {
		t.Errorf("SearchRange() = %v; want a misuse error", err)
	}
}

func TestIndexSetQueryTimeParamsValidatesAlgoType(t *testing.T) {
	sp, _ := vecspace.NewVectorSpace(4, "euclidean")
	idx := NewIndex(sp)
	data := randomObjects(5, 4, 1)
	if err := idx.CreateIndex(data, core.NewParams("CreateIndex", map[string]any{}), false); err != nil {
		t.Fatalf("CreateIndex failed: %v", err)
	}
	err := idx.SetQueryTimeParams(core.NewParams("SetQueryTimeParams", map[string]any{"algoType": "bogus"}))
	if !core.IsKind(err, core.KindConfiguration) {
		t.Errorf("SetQueryTimeParams() with an unknown algoType = %v; want a configuration error", err)
	}
}

func TestIndexSaveLoadRoundTrip(t *testing.T) {
	sp, _ := vecspace.NewVectorSpace(6, "euclidean")
	idx := NewIndex(sp)
	data := randomObjects(30, 6, 21)
	if err := idx.CreateIndex(data, core.NewParams("CreateIndex", map[string]any{"NN": uint(5)}), false); err != nil {
		t.Fatalf("CreateIndex failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "index.swr")
	if err := idx.SaveIndex(path); err != nil {
		t.Fatalf("SaveIndex failed: %v", err)
	}

	fresh := NewIndex(sp)
	if err := fresh.LoadIndex(path, data); err != nil {
		t.Fatalf("LoadIndex failed: %v", err)
	}
	if fresh.Size() != idx.Size() {
		t.Errorf("fresh.Size() = %d; want %d", fresh.Size(), idx.Size())
	}
}

func TestIndexSearchBeforeCreateReturnsNoResults(t *testing.T) {
	sp, _ := vecspace.NewVectorSpace(4, "euclidean")
	idx := NewIndex(sp)
	probe := vecspace.NewVectorObject(-1, []float32{0, 0, 0, 0})
	acc := vecspace.NewTopKAccumulator(probe, sp.Metric, 5)
	if err := idx.Search(acc); err != nil {
		t.Fatalf("Search on an unbuilt index returned an error: %v", err)
	}
	if len(acc.Results()) != 0 {
		t.Errorf("Search on an unbuilt index produced results: %+v", acc.Results())
	}
}
