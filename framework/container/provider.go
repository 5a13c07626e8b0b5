package container

import (
	"reflect"
	"slices"
	"sync"
)

// ── ServiceProvider interface ─────────────────────────────────────────────────

// ServiceProvider is a lazy bundle of definitions. Register runs the first
// time something asks the container for an id the provider claims.
//
//	type MailProvider struct{ container.BaseProvider }
//
//	func NewMailProvider() *MailProvider {
//	    return &MailProvider{BaseProvider: container.BaseProvider{Services: []string{"mailer"}}}
//	}
//
//	func (p *MailProvider) Register(c *container.Container) {
//	    c.AddShared("mailer", container.Factory(newMailer))
//	}
type ServiceProvider interface {
	// Provides reports whether the provider claims id. It must be free of
	// side effects.
	Provides(id string) bool

	// Register adds the provider's definitions. It runs at most once.
	Register(c *Container)
}

// BootableServiceProvider is a provider with an eager phase. Boot runs as
// soon as the provider is added, before anything is resolved. Use it for
// inflectors or delegates that must exist up front.
type BootableServiceProvider interface {
	ServiceProvider
	Boot(c *Container)
}

// ── BaseProvider ──────────────────────────────────────────────────────────────

// BaseProvider is an embeddable Provides implementation backed by a list.
type BaseProvider struct {
	Services []string
}

// Provides reports whether id is in Services.
func (p BaseProvider) Provides(id string) bool {
	return slices.Contains(p.Services, id)
}

type funcProvider struct {
	BaseProvider
	register func(c *Container)
}

func (p *funcProvider) Register(c *Container) { p.register(c) }

// NewProvider adapts a function into a ServiceProvider claiming ids.
//
//	c.AddServiceProvider(container.NewProvider([]string{"cache"}, func(c *container.Container) {
//	    c.AddShared("cache", newCache)
//	}))
func NewProvider(ids []string, register func(c *Container)) ServiceProvider {
	return &funcProvider{BaseProvider: BaseProvider{Services: ids}, register: register}
}

// ── ProviderRegistry ──────────────────────────────────────────────────────────

type registrationState int

const (
	pending registrationState = iota
	registering
	registered
)

type providerEntry struct {
	provider ServiceProvider
	state    registrationState
}

// ProviderRegistry tracks providers and whether each has registered.
type ProviderRegistry struct {
	Aware

	mu      sync.Mutex
	entries []*providerEntry
}

// NewProviderRegistry creates an empty registry.
func NewProviderRegistry() *ProviderRegistry {
	return &ProviderRegistry{}
}

// Add appends provider and runs its Boot phase if it has one. Adding the
// same provider value twice is ignored.
func (r *ProviderRegistry) Add(provider ServiceProvider) {
	r.mu.Lock()
	if r.contains(provider) {
		r.mu.Unlock()
		return
	}
	r.entries = append(r.entries, &providerEntry{provider: provider})
	r.mu.Unlock()

	if b, ok := provider.(BootableServiceProvider); ok {
		b.Boot(r.Container())
	}
}

// contains compares only comparable providers; others are never deduplicated.
func (r *ProviderRegistry) contains(provider ServiceProvider) bool {
	if !reflect.TypeOf(provider).Comparable() {
		return false
	}
	for _, e := range r.entries {
		if e.provider == provider {
			return true
		}
	}
	return false
}

// Provides reports whether any provider claims id.
func (r *ProviderRegistry) Provides(id string) bool {
	return r.find(id) != nil
}

// Register runs the registration of the first provider claiming id. It is a
// no-op once that provider has registered. Asking for a provider that is
// still registering fails instead of recursing; that includes a second
// goroutine arriving while the first one runs Register.
func (r *ProviderRegistry) Register(id string) error {
	e := r.find(id)
	if e == nil {
		return misconfigured(id, "alias is not provided by a service provider")
	}

	r.mu.Lock()
	switch e.state {
	case registered:
		r.mu.Unlock()
		return nil
	case registering:
		r.mu.Unlock()
		return misconfigured(id, "service provider is still registering (re-entered, or resolved concurrently)")
	}
	e.state = registering
	r.mu.Unlock()

	e.provider.Register(r.Container())

	r.mu.Lock()
	e.state = registered
	r.mu.Unlock()
	return nil
}

// Registered reports whether the provider claiming id has registered.
func (r *ProviderRegistry) Registered(id string) bool {
	e := r.find(id)
	if e == nil {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return e.state == registered
}

// Len returns the number of providers.
func (r *ProviderRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

func (r *ProviderRegistry) find(id string) *providerEntry {
	r.mu.Lock()
	entries := r.entries
	r.mu.Unlock()
	for _, e := range entries {
		if e.provider.Provides(id) {
			return e
		}
	}
	return nil
}
