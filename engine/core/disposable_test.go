package core

import (
	"errors"
	"testing"
)

type countingResource struct {
	name     string
	disposed int
	log      *[]string
}

func (r *countingResource) Dispose() {
	r.disposed++
	if r.log != nil {
		*r.log = append(*r.log, r.name)
	}
}

func TestUsingDisposesOnError(t *testing.T) {
	r := &countingResource{}
	want := errors.New("boom")
	if err := Using(r, func() error { return want }); !errors.Is(err, want) {
		t.Fatalf("Using error = %v, want %v", err, want)
	}
	if r.disposed != 1 {
		t.Fatalf("disposed %d times, want 1", r.disposed)
	}
}

func TestUsingDisposesOnPanic(t *testing.T) {
	r := &countingResource{}
	func() {
		defer func() { _ = recover() }()
		_ = Using(r, func() error { panic("boom") })
	}()
	if r.disposed != 1 {
		t.Fatalf("disposed %d times, want 1", r.disposed)
	}
}

func TestDisposeAllReverseOrder(t *testing.T) {
	var order []string
	a := &countingResource{name: "a", log: &order}
	b := &countingResource{name: "b", log: &order}
	c := &countingResource{name: "c", log: &order}

	DisposeAll(a, nil, b, c)

	if len(order) != 3 || order[0] != "c" || order[1] != "b" || order[2] != "a" {
		t.Fatalf("dispose order = %v, want [c b a]", order)
	}
}
