package container

import (
	"fmt"
	"reflect"
	"slices"
	"sort"
	"sync"
)

// ── Definition ────────────────────────────────────────────────────────────────

// Factory builds a concrete value, resolving its own dependencies from c.
//
//	c.Add("mailer", container.Factory(func(c *container.Container) (any, error) {
//	    cfg, err := container.Resolve[*config.Config](c, "config")
//	    if err != nil {
//	        return nil, err
//	    }
//	    return mail.NewSMTP(cfg.Mail), nil
//	}))
type Factory func(c *Container) (any, error)

// Decorator wraps an instance after its definition has built it.
type Decorator func(instance any, c *Container) any

// Definition describes how to produce the value for one id.
//
// The concrete may be:
//   - a Factory, func(*Container) any, func() any or func() (any, error): called
//   - a reflect.Type: a pointer to a new zero value is allocated
//   - a string naming another id the container has: resolved through it
//   - anything else: returned as a literal
type Definition struct {
	mu sync.Mutex

	id         string
	concrete   any
	shared     bool
	tags       map[string]struct{}
	decorators []Decorator

	resolved    any
	hasResolved bool

	container *Container
}

// NewDefinition creates an unshared definition. A nil concrete defaults to id.
func NewDefinition(id string, concrete any) *Definition {
	if concrete == nil {
		concrete = id
	}
	return &Definition{
		id:       id,
		concrete: concrete,
		tags:     make(map[string]struct{}),
	}
}

// ID returns the id the definition is registered under.
func (d *Definition) ID() string { return d.id }

// AddTag labels the definition so it resolves as part of each tag group.
func (d *Definition) AddTag(tags ...string) *Definition {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, t := range tags {
		d.tags[t] = struct{}{}
	}
	return d
}

// HasTag reports whether the definition carries tag.
func (d *Definition) HasTag(tag string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.tags[tag]
	return ok
}

// Tags returns the definition's tags in lexical order.
func (d *Definition) Tags() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, 0, len(d.tags))
	for t := range d.tags {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// SetShared toggles instance caching.
func (d *Definition) SetShared(shared bool) *Definition {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.shared = shared
	return d
}

// IsShared reports whether resolutions reuse the cached instance.
func (d *Definition) IsShared() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.shared
}

// SetConcrete replaces the recipe and drops any cached instance.
func (d *Definition) SetConcrete(concrete any) *Definition {
	d.mu.Lock()
	defer d.mu.Unlock()
	if concrete == nil {
		concrete = d.id
	}
	d.concrete = concrete
	d.resolved, d.hasResolved = nil, false
	return d
}

// Concrete returns the current recipe.
func (d *Definition) Concrete() any {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.concrete
}

// Decorate appends a decorator run after every build. A cached shared
// instance is dropped so the next resolution sees the decorator.
//
//	def, _ := c.Extend("logger")
//	def.Decorate(func(instance any, c *container.Container) any {
//	    return &TimestampLogger{Inner: instance.(*Logger)}
//	})
func (d *Definition) Decorate(fn Decorator) *Definition {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.decorators = append(d.decorators, fn)
	d.resolved, d.hasResolved = nil, false
	return d
}

// Resolve returns the cached instance for shared definitions, building one
// on first use. Unshared definitions always build.
func (d *Definition) Resolve() (any, error) {
	d.mu.Lock()
	if d.shared && d.hasResolved {
		instance := d.resolved
		d.mu.Unlock()
		return instance, nil
	}
	d.mu.Unlock()

	instance, err := d.build()
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	// A concurrent build may have been stored first; shared callers agree on it.
	if d.shared && d.hasResolved {
		return d.resolved, nil
	}
	d.resolved, d.hasResolved = instance, true
	return instance, nil
}

// ResolveNew always builds a fresh instance and records it as the cached one.
func (d *Definition) ResolveNew() (any, error) {
	instance, err := d.build()
	if err != nil {
		return nil, err
	}
	d.mu.Lock()
	d.resolved, d.hasResolved = instance, true
	d.mu.Unlock()
	return instance, nil
}

func (d *Definition) setContainer(c *Container) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.container = c
}

// build runs the recipe without holding mu, so factories may re-enter the
// container.
func (d *Definition) build() (any, error) {
	d.mu.Lock()
	concrete, c := d.concrete, d.container
	decorators := slices.Clone(d.decorators)
	d.mu.Unlock()

	var (
		instance any
		err      error
	)
	switch v := concrete.(type) {
	case Factory:
		instance, err = v(c)
	case func(*Container) (any, error):
		instance, err = v(c)
	case func(*Container) any:
		instance = v(c)
	case func() (any, error):
		instance, err = v()
	case func() any:
		instance = v()
	case reflect.Type:
		instance = reflect.New(v).Interface()
	case string:
		instance = v
		if v != d.id && c != nil && c.Has(v) {
			if c.definitions.aliasesTo(v, d.id) {
				err = misconfigured(d.id, fmt.Sprintf("alias cycle through (%s)", v))
				break
			}
			instance, err = c.Get(v)
		}
	default:
		instance = concrete
	}
	if err != nil {
		return nil, err
	}

	for _, dec := range decorators {
		instance = dec(instance, c)
	}
	return instance, nil
}

// ── DefinitionRegistry ────────────────────────────────────────────────────────

// DefinitionRegistry owns id → Definition mappings in registration order.
type DefinitionRegistry struct {
	Aware

	mu   sync.RWMutex
	defs []*Definition
	byID map[string]*Definition
}

// NewDefinitionRegistry creates an empty registry.
func NewDefinitionRegistry() *DefinitionRegistry {
	return &DefinitionRegistry{byID: make(map[string]*Definition)}
}

// Add registers an unshared definition for id.
//
// Without overwrite an existing definition is kept and returned unchanged.
// With overwrite the old definition is dropped and the new one appended.
func (r *DefinitionRegistry) Add(id string, concrete any, overwrite bool) *Definition {
	return r.AddDefinition(NewDefinition(id, concrete), overwrite)
}

// AddShared is Add with the shared flag set.
func (r *DefinitionRegistry) AddShared(id string, concrete any, overwrite bool) *Definition {
	return r.AddDefinition(NewDefinition(id, concrete).SetShared(true), overwrite)
}

// AddDefinition registers a pre-built definition under its own id.
func (r *DefinitionRegistry) AddDefinition(def *Definition, overwrite bool) *Definition {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.byID[def.id]; ok {
		if !overwrite {
			if c := r.Container(); c != nil {
				c.logger().WithField("id", def.id).Debug("definition exists, keeping it")
			}
			return existing
		}
		r.defs = slices.DeleteFunc(r.defs, func(d *Definition) bool { return d == existing })
	}

	def.setContainer(r.Container())
	r.defs = append(r.defs, def)
	r.byID[def.id] = def
	return def
}

// Has reports whether a definition exists for id.
func (r *DefinitionRegistry) Has(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byID[id]
	return ok
}

// HasTag reports whether any definition carries tag.
func (r *DefinitionRegistry) HasTag(tag string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, d := range r.defs {
		if d.HasTag(tag) {
			return true
		}
	}
	return false
}

// Definition returns the definition for id.
func (r *DefinitionRegistry) Definition(id string) (*Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.byID[id]
	return d, ok
}

// aliasesTo reports whether following string aliases from id reaches target.
func (r *DefinitionRegistry) aliasesTo(id, target string) bool {
	seen := map[string]bool{}
	for cur := id; !seen[cur]; {
		seen[cur] = true
		d, ok := r.Definition(cur)
		if !ok {
			return false
		}
		next, ok := d.Concrete().(string)
		if !ok || next == cur {
			return false
		}
		if next == target {
			return true
		}
		cur = next
	}
	return false
}

// Resolve resolves id honoring its shared flag.
func (r *DefinitionRegistry) Resolve(id string) (any, error) {
	d, ok := r.Definition(id)
	if !ok {
		return nil, notFound(id, "alias is not being managed as a definition")
	}
	return d.Resolve()
}

// ResolveNew builds a fresh instance for id.
func (r *DefinitionRegistry) ResolveNew(id string) (any, error) {
	d, ok := r.Definition(id)
	if !ok {
		return nil, notFound(id, "alias is not being managed as a definition")
	}
	return d.ResolveNew()
}

// ResolveTagged resolves every definition tagged tag, in registration order.
func (r *DefinitionRegistry) ResolveTagged(tag string) ([]any, error) {
	return r.resolveTagged(tag, (*Definition).Resolve)
}

// ResolveTaggedNew is ResolveTagged building fresh instances.
func (r *DefinitionRegistry) ResolveTaggedNew(tag string) ([]any, error) {
	return r.resolveTagged(tag, (*Definition).ResolveNew)
}

func (r *DefinitionRegistry) resolveTagged(tag string, resolve func(*Definition) (any, error)) ([]any, error) {
	members := r.tagged(tag)
	out := make([]any, 0, len(members))
	for _, d := range members {
		instance, err := resolve(d)
		if err != nil {
			return nil, err
		}
		out = append(out, instance)
	}
	return out, nil
}

func (r *DefinitionRegistry) tagged(tag string) []*Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*Definition
	for _, d := range r.defs {
		if d.HasTag(tag) {
			out = append(out, d)
		}
	}
	return out
}

// IDs returns registered ids in registration order.
func (r *DefinitionRegistry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.defs))
	for _, d := range r.defs {
		out = append(out, d.id)
	}
	return out
}

// Tags returns every tag in use, sorted.
func (r *DefinitionRegistry) Tags() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := make(map[string]struct{})
	for _, d := range r.defs {
		for _, t := range d.Tags() {
			seen[t] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for t := range seen {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// SetContainer also hands the container to definitions added before it.
func (r *DefinitionRegistry) SetContainer(c *Container) {
	r.Aware.SetContainer(c)
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, d := range r.defs {
		d.setContainer(c)
	}
}
