package core

import "fmt"

// Registry associates backend handles with the objects that own them. It is
// how a process-wide callback recovers the instance an event belongs to.
//
// Registry is not synchronized: all access happens on the thread that owns
// the graphics context.
type Registry[H comparable, T any] struct {
	owners map[H]T
}

func NewRegistry[H comparable, T any]() *Registry[H, T] {
	return &Registry[H, T]{
		owners: make(map[H]T),
	}
}

// Register stores owner for handle. A handle can only have one owner.
func (r *Registry[H, T]) Register(handle H, owner T) error {
	if _, ok := r.owners[handle]; ok {
		return fmt.Errorf("register %v: %w", handle, ErrAlreadyRegistered)
	}
	r.owners[handle] = owner
	return nil
}

func (r *Registry[H, T]) Lookup(handle H) (T, bool) {
	owner, ok := r.owners[handle]
	return owner, ok
}

// Release drops the association, making the handle available again.
func (r *Registry[H, T]) Release(handle H) error {
	if _, ok := r.owners[handle]; !ok {
		return fmt.Errorf("release %v: %w", handle, ErrNotRegistered)
	}
	delete(r.owners, handle)
	return nil
}

// Owners returns every registered owner in no particular order.
func (r *Registry[H, T]) Owners() []T {
	owners := make([]T, 0, len(r.owners))
	for _, o := range r.owners {
		owners = append(owners, o)
	}
	return owners
}

func (r *Registry[H, T]) Len() int {
	return len(r.owners)
}
