package app

import (
	"context"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/km-arc/go-ioc/framework/config"
	"github.com/km-arc/go-ioc/framework/container"
	"github.com/km-arc/go-ioc/framework/delegate"
	"github.com/km-arc/go-ioc/framework/providers"
	"github.com/km-arc/go-ioc/framework/routing"
)

// EnvPrefix is the id prefix under which environment values resolve.
const EnvPrefix = "env."

// Application is the top-level container. It embeds *container.Container so
// user code calls app.Add(), app.AddShared(), app.Get() directly.
type Application struct {
	*container.Container
	Store *delegate.Store
}

// New loads configuration, builds the container from it and adds the
// framework providers. Delegates are consulted after providers: first the
// environment (ids prefixed with "env."), then the expiring Store.
//
// envFiles are read by both the config loader and the env delegate; a
// missing file is only an error when it is named explicitly.
func New(envFiles ...string) (*Application, error) {
	cfg := config.Load(envFiles...)
	logger := cfg.NewLogger()

	c := container.New(cfg.ContainerOptions(logger)...)

	env, err := delegate.NewEnv(EnvPrefix, envFiles...)
	if err != nil {
		return nil, errors.Wrap(err, "app: env delegate")
	}
	store := delegate.NewStore(delegate.DefaultExpiration, delegate.DefaultCleanupInterval)

	c.AddServiceProvider(providers.NewConfigServiceProvider(envFiles...)).
		AddServiceProvider(providers.NewLoggerServiceProvider()).
		AddServiceProvider(providers.NewRoutingServiceProvider()).
		Delegate(env).
		Delegate(store)

	return &Application{Container: c, Store: store}, nil
}

// Config resolves *config.Config from the container.
func (a *Application) Config() *config.Config {
	return container.MustResolve[*config.Config](a.Container, "config")
}

// Logger resolves the shared *logrus.Logger from the container.
func (a *Application) Logger() *logrus.Logger {
	return container.MustResolve[*logrus.Logger](a.Container, "logger")
}

// Router resolves *routing.Router from the container.
func (a *Application) Router() *routing.Router {
	return container.MustResolve[*routing.Router](a.Container, "router")
}

// Environment returns APP_ENV value.
func (a *Application) Environment() string { return a.Config().App.Env }
func (a *Application) IsLocal() bool       { return a.Environment() == "local" }
func (a *Application) IsProduction() bool  { return a.Environment() == "production" }
func (a *Application) IsTesting() bool     { return a.Environment() == "testing" }
func (a *Application) IsDebug() bool       { return a.Config().App.Debug }

// Run serves the router on APP_PORT until ctx is cancelled.
func (a *Application) Run(ctx context.Context) error {
	cfg := a.Config()
	log := a.Logger().WithFields(logrus.Fields{
		"app":        cfg.App.Name,
		"env":        a.Environment(),
		"debug":      a.IsDebug(),
		"production": a.IsProduction(),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           a.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.WithField("addr", srv.Addr).Info("listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return errors.Wrap(err, "app: server error")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	log.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "app: shutdown")
	}
	return nil
}
