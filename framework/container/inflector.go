package container

import (
	"reflect"
	"slices"
	"sync"
)

// InflectorFunc transforms a resolved instance. It may mutate and return the
// same value or replace it.
type InflectorFunc func(instance any, c *Container) any

// Inflector applies callbacks to every resolved value assignable to a type.
type Inflector struct {
	mu        sync.Mutex
	typ       reflect.Type
	callbacks []InflectorFunc
}

// Type returns the type or interface the inflector matches.
func (i *Inflector) Type() reflect.Type { return i.typ }

// Invoke appends another callback, run after the existing ones.
func (i *Inflector) Invoke(fn InflectorFunc) *Inflector {
	if fn == nil {
		return i
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	i.callbacks = append(i.callbacks, fn)
	return i
}

// Matches reports whether instance's dynamic type is assignable to the
// inflector's type. A nil instance never matches.
func (i *Inflector) Matches(instance any) bool {
	if instance == nil || i.typ == nil {
		return false
	}
	return reflect.TypeOf(instance).AssignableTo(i.typ)
}

func (i *Inflector) apply(instance any, c *Container) any {
	i.mu.Lock()
	callbacks := slices.Clone(i.callbacks)
	i.mu.Unlock()
	for _, cb := range callbacks {
		instance = cb(instance, c)
	}
	return instance
}

// InflectorRegistry holds inflectors in registration order.
type InflectorRegistry struct {
	Aware

	mu         sync.RWMutex
	inflectors []*Inflector
}

// NewInflectorRegistry creates an empty registry.
func NewInflectorRegistry() *InflectorRegistry {
	return &InflectorRegistry{}
}

// Add registers fn for values assignable to typ.
func (r *InflectorRegistry) Add(typ reflect.Type, fn InflectorFunc) *Inflector {
	inf := (&Inflector{typ: typ}).Invoke(fn)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.inflectors = append(r.inflectors, inf)
	return inf
}

// Inflect pipes instance through every matching inflector. Each inflector
// sees the previous one's output.
func (r *InflectorRegistry) Inflect(instance any) any {
	r.mu.RLock()
	inflectors := r.inflectors
	r.mu.RUnlock()
	for _, inf := range inflectors {
		if inf.Matches(instance) {
			instance = inf.apply(instance, r.Container())
		}
	}
	return instance
}

// Len returns the number of registered inflectors.
func (r *InflectorRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.inflectors)
}
