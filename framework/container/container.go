package container

import (
	"reflect"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Source names the branch of the lookup chain that serves an id.
type Source string

const (
	SourceDefinition Source = "definition"
	SourceTag        Source = "tag"
	SourceProvider   Source = "provider"
	SourceDelegate   Source = "delegate"
	SourceNone       Source = "none"
)

// ── Container ─────────────────────────────────────────────────────────────────

// Container resolves ids through a fixed chain:
//
//  1. a definition registered under the id
//  2. every definition tagged with the id
//  3. a service provider claiming the id, registered lazily
//  4. delegate registries, in the order they were added
//
// Every value leaving the container passes through the matching inflectors.
type Container struct {
	id uuid.UUID

	mu   sync.RWMutex
	opts Options

	definitions *DefinitionRegistry
	providers   *ProviderRegistry
	inflectors  *InflectorRegistry
	delegates   *DelegateChain
}

// New creates an empty container.
//
//	c := container.New(container.WithDefaultToShared(true))
func New(opts ...Option) *Container {
	c := &Container{
		id:          uuid.New(),
		opts:        newOptions(opts),
		definitions: NewDefinitionRegistry(),
		providers:   NewProviderRegistry(),
		inflectors:  NewInflectorRegistry(),
		delegates:   &DelegateChain{},
	}
	c.definitions.SetContainer(c)
	c.providers.SetContainer(c)
	c.inflectors.SetContainer(c)
	return c
}

// ID returns the container's instance id.
func (c *Container) ID() uuid.UUID { return c.id }

// ── Registration ──────────────────────────────────────────────────────────────

// Add registers concrete under id. A nil concrete means id itself. The
// definition is shared when DefaultToShared is on.
//
//	c.Add("logger", container.Factory(func(c *container.Container) (any, error) {
//	    return NewConsoleLogger(), nil
//	})).AddTag("services")
func (c *Container) Add(id string, concrete any, overwrite ...bool) *Definition {
	c.mu.RLock()
	shared := c.opts.DefaultToShared
	c.mu.RUnlock()

	if shared {
		return c.AddShared(id, concrete, overwrite...)
	}
	return c.definitions.Add(id, concrete, c.overwrite(overwrite))
}

// AddShared registers concrete under id and caches the first instance.
func (c *Container) AddShared(id string, concrete any, overwrite ...bool) *Definition {
	return c.definitions.AddShared(id, concrete, c.overwrite(overwrite))
}

func (c *Container) overwrite(flags []bool) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.opts.DefaultToOverwrite || slices.Contains(flags, true)
}

// DefaultToShared makes subsequent Add calls register shared definitions.
func (c *Container) DefaultToShared(shared bool) *Container {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.opts.DefaultToShared = shared
	return c
}

// DefaultToOverwrite makes subsequent registrations replace existing ids.
func (c *Container) DefaultToOverwrite(overwrite bool) *Container {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.opts.DefaultToOverwrite = overwrite
	return c
}

// Extend returns the definition for id so it can be changed. A provider
// claiming id is registered first.
//
//	def, err := c.Extend("logger")
//	if err != nil {
//	    return err
//	}
//	def.AddTag("services").Decorate(withTimestamps)
func (c *Container) Extend(id string) (*Definition, error) {
	if c.providers.Provides(id) {
		if err := c.providers.Register(id); err != nil {
			return nil, err
		}
	}
	if d, ok := c.definitions.Definition(id); ok {
		return d, nil
	}
	return nil, notFound(id, "unable to extend alias as it is not being managed as a definition")
}

// AddServiceProvider adds a lazily registered provider.
func (c *Container) AddServiceProvider(provider ServiceProvider) *Container {
	c.providers.Add(provider)
	return c
}

// Inflector registers fn for every resolved value assignable to typ.
//
//	c.Inflector(reflect.TypeFor[LoggerAware](), func(v any, c *container.Container) any {
//	    v.(LoggerAware).SetLogger(logger)
//	    return v
//	})
func (c *Container) Inflector(typ reflect.Type, fn InflectorFunc) *Inflector {
	return c.inflectors.Add(typ, fn)
}

// Delegate appends r to the fallback chain. If r is ContainerAware it
// receives c.
func (c *Container) Delegate(r Registry) *Container {
	c.delegates.Add(r)
	if aware, ok := r.(ContainerAware); ok {
		aware.SetContainer(c)
	}
	return c
}

// ── Resolution ────────────────────────────────────────────────────────────────

// Get resolves id. A tag resolves to []any.
func (c *Container) Get(id string) (any, error) {
	return c.resolve(id, false)
}

// GetNew resolves id with fresh instances, bypassing shared caches.
// Delegates only expose Get, so their values are returned as they come.
func (c *Container) GetNew(id string) (any, error) {
	return c.resolve(id, true)
}

// Has reports whether id can be resolved. It never registers providers.
func (c *Container) Has(id string) bool {
	return c.Source(id) != SourceNone
}

// Source reports which branch would serve id, without side effects.
func (c *Container) Source(id string) Source {
	switch {
	case c.definitions.Has(id):
		return SourceDefinition
	case c.definitions.HasTag(id):
		return SourceTag
	case c.providers.Provides(id):
		return SourceProvider
	case c.delegates.Has(id):
		return SourceDelegate
	}
	return SourceNone
}

func (c *Container) resolve(id string, wantNew bool) (any, error) {
	log := c.logger().WithField("id", id)

	// A provider registers at most once, and afterwards the id must be a
	// definition or tag, so the second pass always returns.
	for pass := 0; pass < 2; pass++ {
		if c.definitions.Has(id) {
			resolve := c.definitions.Resolve
			if wantNew {
				resolve = c.definitions.ResolveNew
			}
			instance, err := resolve(id)
			if err != nil {
				return nil, err
			}
			log.WithField("source", SourceDefinition).Debug("resolved")
			return c.inflectors.Inflect(instance), nil
		}

		if c.definitions.HasTag(id) {
			resolve := c.definitions.ResolveTagged
			if wantNew {
				resolve = c.definitions.ResolveTaggedNew
			}
			group, err := resolve(id)
			if err != nil {
				return nil, err
			}
			for i := range group {
				group[i] = c.inflectors.Inflect(group[i])
			}
			log.WithFields(logrus.Fields{"source": SourceTag, "members": len(group)}).Debug("resolved")
			return group, nil
		}

		if !c.providers.Provides(id) {
			break
		}
		log.WithField("source", SourceProvider).Debug("registering provider")
		if err := c.providers.Register(id); err != nil {
			return nil, err
		}
		if !c.definitions.Has(id) && !c.definitions.HasTag(id) {
			return nil, misconfigured(id, "service provider lied about providing service")
		}
	}

	instance, idx, err := c.delegates.Get(id)
	if idx < 0 {
		return nil, notFound(id, "")
	}
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{"source": SourceDelegate, "delegate": idx}).Debug("resolved")
	return c.inflectors.Inflect(instance), nil
}

// ── Introspection ─────────────────────────────────────────────────────────────

// Definitions returns the registered ids in registration order.
func (c *Container) Definitions() []string { return c.definitions.IDs() }

// Tags returns every tag in use.
func (c *Container) Tags() []string { return c.definitions.Tags() }

// Options returns a copy of the current options.
func (c *Container) Options() Options {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.opts
}

func (c *Container) logger() logrus.FieldLogger {
	c.mu.RLock()
	l := c.opts.Logger
	c.mu.RUnlock()
	return l.WithField("container", c.id.String())
}
