package swrand

import (
	"testing"

	"github.com/arcaneiq/swrand/vecspace"
)

func TestRegistryEntryPointIsFirstInsert(t *testing.T) {
	r := NewNodeRegistry()
	first := NewNode(0, vecspace.NewVectorObject(5, []float32{0}))
	second := NewNode(1, vecspace.NewVectorObject(1, []float32{1}))
	r.Insert(first)
	r.Insert(second)

	if r.EntryPoint() != first {
		t.Errorf("EntryPoint() did not return the first inserted node")
	}
}

func TestRegistryEntryPointNilWhenEmpty(t *testing.T) {
	r := NewNodeRegistry()
	if r.EntryPoint() != nil {
		t.Errorf("EntryPoint() on an empty registry = %v; want nil", r.EntryPoint())
	}
}

func TestRegistrySize(t *testing.T) {
	r := NewNodeRegistry()
	for i := int64(0); i < 10; i++ {
		r.Insert(NewNode(uint32(i), vecspace.NewVectorObject(i, []float32{float32(i)})))
	}
	if r.Size() != 10 {
		t.Errorf("Size() = %d; want 10", r.Size())
	}
}

func TestRegistryAscendIsObjectIDOrder(t *testing.T) {
	r := NewNodeRegistry()
	ids := []int64{5, 1, 4, 2, 3}
	for i, oid := range ids {
		r.Insert(NewNode(uint32(i), vecspace.NewVectorObject(oid, []float32{float32(oid)})))
	}

	var seen []int64
	r.Ascend(func(n *Node) bool {
		seen = append(seen, n.Object.ID())
		return true
	})
	want := []int64{1, 2, 3, 4, 5}
	if len(seen) != len(want) {
		t.Fatalf("Ascend visited %d nodes; want %d", len(seen), len(want))
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("Ascend order[%d] = %d; want %d", i, seen[i], want[i])
		}
	}
}

func TestRegistryAscendStopsEarly(t *testing.T) {
	r := NewNodeRegistry()
	for i := int64(0); i < 5; i++ {
		r.Insert(NewNode(uint32(i), vecspace.NewVectorObject(i, []float32{float32(i)})))
	}
	count := 0
	r.Ascend(func(n *Node) bool {
		count++
		return count < 2
	})
	if count != 2 {
		t.Errorf("Ascend visited %d nodes after returning false; want 2", count)
	}
}
