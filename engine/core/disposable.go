package core

// Disposable is implemented by everything that owns a backend handle.
// Dispose must release the handle at most once; later calls are no-ops.
type Disposable interface {
	Dispose()
}

// Using runs fn and disposes d on every exit path, panics included.
func Using(d Disposable, fn func() error) error {
	defer d.Dispose()
	return fn()
}

// DisposeAll disposes the given resources in reverse order, skipping nils.
func DisposeAll(resources ...Disposable) {
	for i := len(resources) - 1; i >= 0; i-- {
		if resources[i] != nil {
			resources[i].Dispose()
		}
	}
}
