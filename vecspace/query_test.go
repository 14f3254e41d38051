package vecspace

import "testing"

func TestTopKAccumulatorKeepsKNearest(t *testing.T) {
	probe := NewVectorObject(-1, []float32{0, 0})
	acc := NewTopKAccumulator(probe, Euclidean, 2)

	objs := []*VectorObject{
		NewVectorObject(0, []float32{5, 0}),
		NewVectorObject(1, []float32{1, 0}),
		NewVectorObject(2, []float32{3, 0}),
	}
	for _, o := range objs {
		acc.CheckAndAddToResult(acc.DistanceObjLeft(o), o)
	}

	results := acc.Results()
	if len(results) != 2 {
		t.Fatalf("len(results) = %d; want 2", len(results))
	}
	if results[0].ID != 1 || results[1].ID != 2 {
		t.Errorf("results = %+v; want ids [1, 2] in that order", results)
	}
}

func TestTopKAccumulatorDedupesByID(t *testing.T) {
	probe := NewVectorObject(-1, []float32{0})
	acc := NewTopKAccumulator(probe, Euclidean, 5)

	obj := NewVectorObject(7, []float32{1})
	acc.CheckAndAddToResult(acc.DistanceObjLeft(obj), obj)
	acc.CheckAndAddToResult(acc.DistanceObjLeft(obj), obj)

	if len(acc.Results()) != 1 {
		t.Errorf("len(results) = %d; want 1 after offering the same object twice", len(acc.Results()))
	}
}

func TestTopKAccumulatorGetK(t *testing.T) {
	acc := NewTopKAccumulator(NewVectorObject(-1, nil), Euclidean, 3)
	if acc.GetK() != 3 {
		t.Errorf("GetK() = %d; want 3", acc.GetK())
	}
}

func TestTopKAccumulatorRejectsWorseThanFull(t *testing.T) {
	probe := NewVectorObject(-1, []float32{0})
	acc := NewTopKAccumulator(probe, Euclidean, 1)

	near := NewVectorObject(0, []float32{1})
	far := NewVectorObject(1, []float32{10})
	acc.CheckAndAddToResult(acc.DistanceObjLeft(near), near)
	acc.CheckAndAddToResult(acc.DistanceObjLeft(far), far)

	results := acc.Results()
	if len(results) != 1 || results[0].ID != 0 {
		t.Errorf("results = %+v; want only the nearer object to survive", results)
	}
}
