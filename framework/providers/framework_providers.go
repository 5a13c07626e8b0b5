package providers

import (
	"reflect"

	"github.com/sirupsen/logrus"

	"github.com/km-arc/go-ioc/framework/config"
	"github.com/km-arc/go-ioc/framework/container"
	gohttp "github.com/km-arc/go-ioc/framework/http"
	"github.com/km-arc/go-ioc/framework/routing"
)

// ── ConfigServiceProvider ─────────────────────────────────────────────────────

// ConfigServiceProvider loads the application configuration from .env on
// first use.
//
// Provided ids:
//   - "config"  → *config.Config (shared)
type ConfigServiceProvider struct {
	container.BaseProvider
	EnvFiles []string
}

// NewConfigServiceProvider creates the provider reading envFiles.
func NewConfigServiceProvider(envFiles ...string) *ConfigServiceProvider {
	return &ConfigServiceProvider{
		BaseProvider: container.BaseProvider{Services: []string{"config"}},
		EnvFiles:     envFiles,
	}
}

func (p *ConfigServiceProvider) Register(c *container.Container) {
	envFiles := p.EnvFiles
	c.AddShared("config", func() any {
		return config.Load(envFiles...)
	})
}

// ── LoggerServiceProvider ─────────────────────────────────────────────────────

// LoggerAware values get the shared logger injected when they leave the
// container.
type LoggerAware interface {
	SetLogger(l logrus.FieldLogger)
}

// LoggerServiceProvider builds the application logger from "config".
//
// Provided ids:
//   - "logger"  → *logrus.Logger (shared)
//
// Boot registers an inflector injecting "logger" into every LoggerAware
// value.
type LoggerServiceProvider struct {
	container.BaseProvider
}

// NewLoggerServiceProvider creates the provider.
func NewLoggerServiceProvider() *LoggerServiceProvider {
	return &LoggerServiceProvider{BaseProvider: container.BaseProvider{Services: []string{"logger"}}}
}

func (p *LoggerServiceProvider) Register(c *container.Container) {
	c.AddShared("logger", container.Factory(func(c *container.Container) (any, error) {
		cfg, err := container.Resolve[*config.Config](c, "config")
		if err != nil {
			return nil, err
		}
		return cfg.NewLogger(), nil
	}))
}

func (p *LoggerServiceProvider) Boot(c *container.Container) {
	c.Inflector(reflect.TypeFor[LoggerAware](), func(instance any, c *container.Container) any {
		logger, err := container.Resolve[*logrus.Logger](c, "logger")
		if err != nil {
			return instance
		}
		instance.(LoggerAware).SetLogger(logger)
		return instance
	})
}

// ── RoutingServiceProvider ────────────────────────────────────────────────────

// RoutingServiceProvider registers the HTTP router with the container
// inspector mounted under InspectorPrefix.
//
// Provided ids:
//   - "router"  → *routing.Router (shared, tagged "http")
type RoutingServiceProvider struct {
	container.BaseProvider
	InspectorPrefix string // default: "/_container"; "-" disables it
}

// NewRoutingServiceProvider creates the provider.
func NewRoutingServiceProvider() *RoutingServiceProvider {
	return &RoutingServiceProvider{BaseProvider: container.BaseProvider{Services: []string{"router"}}}
}

func (p *RoutingServiceProvider) Register(c *container.Container) {
	prefix := p.InspectorPrefix
	if prefix == "" {
		prefix = "/_container"
	}

	c.AddShared("router", container.Factory(func(c *container.Container) (any, error) {
		r := routing.New()
		if prefix != "-" {
			r.Mount(prefix, gohttp.NewInspector(c))
		}
		return r, nil
	})).AddTag("http")
}
