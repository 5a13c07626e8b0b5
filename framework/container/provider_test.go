package container_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-ioc/framework/container"
)

// ── stub providers ────────────────────────────────────────────────────────────

// bootableProvider boots on add and registers lazily.
type bootableProvider struct {
	container.BaseProvider
	registerCalls int
	bootCalls     int
}

func newBootableProvider() *bootableProvider {
	return &bootableProvider{BaseProvider: container.BaseProvider{Services: []string{"deferred-svc"}}}
}

func (p *bootableProvider) Register(c *container.Container) {
	p.registerCalls++
	c.AddShared("deferred-svc", "deferred-value")
}

func (p *bootableProvider) Boot(c *container.Container) {
	p.bootCalls++
}

// multiProvider registers multiple ids.
type multiProvider struct {
	container.BaseProvider
	calls int
}

func (p *multiProvider) Register(c *container.Container) {
	p.calls++
	c.AddShared("alpha", "α")
	c.AddShared("beta", "β")
}

// valueProvider is not comparable, so it can never be deduplicated.
type valueProvider struct {
	ids []string
}

func (p valueProvider) Provides(id string) bool {
	for _, v := range p.ids {
		if v == id {
			return true
		}
	}
	return false
}

func (p valueProvider) Register(c *container.Container) {
	for _, id := range p.ids {
		c.Add(id, id+"-value")
	}
}

// ── ProviderRegistry ──────────────────────────────────────────────────────────

func TestRegistry_Add_DoesNotRegister(t *testing.T) {
	c := container.New()
	p := newBootableProvider()
	c.AddServiceProvider(p)

	assert.Equal(t, 0, p.registerCalls, "Register() should wait until the id is requested")
	assert.False(t, c.Has("alpha"))
	assert.True(t, c.Has("deferred-svc"))
}

func TestRegistry_Add_BootsImmediately(t *testing.T) {
	c := container.New()
	p := newBootableProvider()
	c.AddServiceProvider(p)

	assert.Equal(t, 1, p.bootCalls)
}

func TestRegistry_DuplicateAdd_Ignored(t *testing.T) {
	reg := container.NewProviderRegistry()
	p := newBootableProvider()
	reg.Add(p)
	reg.Add(p)

	assert.Equal(t, 1, reg.Len())
	assert.Equal(t, 1, p.bootCalls)
}

func TestRegistry_NonComparableProvider_Accepted(t *testing.T) {
	c := container.New()
	p := valueProvider{ids: []string{"v"}}
	c.AddServiceProvider(p).AddServiceProvider(p)

	v, err := c.Get("v")
	require.NoError(t, err)
	assert.Equal(t, "v-value", v)
}

func TestRegistry_RegisteredOnFirstGet(t *testing.T) {
	c := container.New()
	p := newBootableProvider()
	c.AddServiceProvider(p)

	got, err := container.Resolve[string](c, "deferred-svc")
	require.NoError(t, err)
	assert.Equal(t, "deferred-value", got)
	assert.Equal(t, 1, p.registerCalls)

	_, err = c.Get("deferred-svc")
	require.NoError(t, err)
	assert.Equal(t, 1, p.registerCalls)
}

func TestRegistry_Register_Idempotent(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry()
	reg.SetContainer(c)
	p := &multiProvider{BaseProvider: container.BaseProvider{Services: []string{"alpha", "beta"}}}
	reg.Add(p)

	require.False(t, reg.Registered("alpha"))
	require.NoError(t, reg.Register("alpha"))
	require.NoError(t, reg.Register("beta"))
	require.NoError(t, reg.Register("alpha"))

	assert.Equal(t, 1, p.calls)
	assert.True(t, reg.Registered("beta"))
	assert.True(t, c.Has("alpha"))
	assert.True(t, c.Has("beta"))
}

func TestRegistry_Register_UnclaimedID(t *testing.T) {
	reg := container.NewProviderRegistry()
	err := reg.Register("nobody")
	assert.ErrorIs(t, err, container.ErrContainer)
	assert.False(t, reg.Registered("nobody"))
}

func TestRegistry_Provides_FirstClaimWins(t *testing.T) {
	c := container.New()
	first := container.NewProvider([]string{"shared-id"}, func(c *container.Container) {
		c.Add("shared-id", "first")
	})
	second := container.NewProvider([]string{"shared-id"}, func(c *container.Container) {
		c.Add("shared-id", "second")
	})
	c.AddServiceProvider(first).AddServiceProvider(second)

	v, err := c.Get("shared-id")
	require.NoError(t, err)
	assert.Equal(t, "first", v)
}

func TestRegistry_MultipleProviders_AllServicesResolvable(t *testing.T) {
	c := container.New()
	c.AddServiceProvider(&multiProvider{BaseProvider: container.BaseProvider{Services: []string{"alpha", "beta"}}})
	c.AddServiceProvider(newBootableProvider())

	for id, want := range map[string]string{"alpha": "α", "beta": "β", "deferred-svc": "deferred-value"} {
		got, err := container.Resolve[string](c, id)
		require.NoError(t, err, id)
		assert.Equal(t, want, got, id)
	}
}

// ── BaseProvider defaults ─────────────────────────────────────────────────────

func TestBaseProvider_Defaults(t *testing.T) {
	var p container.BaseProvider
	assert.False(t, p.Provides("anything"))

	p.Services = []string{"x"}
	assert.True(t, p.Provides("x"))
}
