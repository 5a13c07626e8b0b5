package container

import (
	"sync"

	"github.com/pkg/errors"
)

// Registry is the minimal lookup surface of a delegate. *Container
// satisfies it, so containers can delegate to one another.
type Registry interface {
	Has(id string) bool
	Get(id string) (any, error)
}

// ContainerAware is implemented by components that want a reference to
// the container they were attached to.
type ContainerAware interface {
	SetContainer(c *Container)
}

// Aware is an embeddable ContainerAware implementation.
//
//	type MyDelegate struct{ container.Aware }
//	// d.Container() is set once c.Delegate(d) runs
type Aware struct {
	c *Container
}

// SetContainer records c.
func (a *Aware) SetContainer(c *Container) { a.c = c }

// Container returns the recorded container, or nil.
func (a *Aware) Container() *Container { return a.c }

// DelegateChain is an append-only, ordered list of fallback registries.
type DelegateChain struct {
	mu        sync.RWMutex
	delegates []Registry
}

// Add appends r to the end of the chain.
func (dc *DelegateChain) Add(r Registry) {
	dc.mu.Lock()
	defer dc.mu.Unlock()
	dc.delegates = append(dc.delegates, r)
}

// Len returns the number of delegates.
func (dc *DelegateChain) Len() int {
	dc.mu.RLock()
	defer dc.mu.RUnlock()
	return len(dc.delegates)
}

// Has reports whether any delegate has id.
func (dc *DelegateChain) Has(id string) bool {
	_, _, ok := dc.find(id)
	return ok
}

// Get fetches id from the first delegate that has it. NotFoundError and
// ContainerError come back unchanged, so a delegating *Container reports the
// child's own error. Any other failure is wrapped with the delegate's
// position; errors.Cause recovers the original.
func (dc *DelegateChain) Get(id string) (any, int, error) {
	r, idx, ok := dc.find(id)
	if !ok {
		return nil, -1, notFound(id, "alias is not being managed by any delegate")
	}
	instance, err := r.Get(id)
	if err != nil {
		if isContainerError(err) {
			return nil, idx, err
		}
		return nil, idx, errors.Wrapf(err, "container: delegate #%d failed to get (%s)", idx, id)
	}
	return instance, idx, nil
}

func (dc *DelegateChain) find(id string) (Registry, int, bool) {
	dc.mu.RLock()
	delegates := dc.delegates
	dc.mu.RUnlock()
	for i, r := range delegates {
		if r.Has(id) {
			return r, i, true
		}
	}
	return nil, -1, false
}

func isContainerError(err error) bool {
	var nf *NotFoundError
	var ce *ContainerError
	return errors.As(err, &nf) || errors.As(err, &ce)
}
