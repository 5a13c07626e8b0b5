// Package container provides an IoC (Inversion of Control) container with
// lazy service providers, tag groups, inflectors and delegate registries.
//
// # Overview
//
// Callers register ids mapped to recipes (factories, types or literals) and
// later resolve fully built values by id. Because Go has no runtime
// constructor reflection, auto-wiring is replaced by explicit factories
// that pull their own dependencies from the container.
//
// # Resolution order
//
// Get and GetNew search, in this order:
//
//  1. a definition registered under the id
//  2. definitions tagged with the id (the result is a []any)
//  3. a service provider claiming the id; it registers once, then step 1
//     or 2 must succeed, otherwise a *ContainerError is returned
//  4. delegates, in the order they were added
//
// Nothing matching yields a *NotFoundError. Every value produced by steps 1,
// 2 and 4 passes through the matching inflectors.
//
// # Definitions
//
//	// New instance on every Get
//	c.Add("logger", container.Factory(func(c *container.Container) (any, error) {
//	    return NewConsoleLogger(), nil
//	}))
//
//	// Built once, then reused
//	c.AddShared("config", container.Factory(loadConfig))
//
//	// A pointer to a new zero value
//	c.Add("buffer", reflect.TypeFor[bytes.Buffer]())
//
//	// Literal
//	c.Add("app.name", "go-ioc")
//
// Registering an id twice keeps the first definition unless overwrite is
// passed (or DefaultToOverwrite is set).
//
// # Tags
//
//	c.Add("logger", newLogger).AddTag("services")
//	c.AddShared("config", loadConfig).AddTag("services")
//	services, err := c.Get("services") // []any{logger, config}
//
// # Service Providers
//
//	c.AddServiceProvider(container.NewProvider([]string{"heavy"}, func(c *container.Container) {
//	    c.AddShared("heavy", container.Factory(heavySetup)) // only run on first Get("heavy")
//	}))
//
// # Inflectors
//
//	container.Inflect(c, func(a LoggerAware, c *container.Container) LoggerAware {
//	    a.SetLogger(container.MustResolve[*logrus.Logger](c, "logger"))
//	    return a
//	})
//
// # Delegates
//
//	c.Delegate(fallback) // any {Has, Get}, including another *Container
//
// # Concurrency
//
// Registries lock their own state and never hold a lock while a factory
// runs. Two goroutines racing on the first Get of a shared definition may
// both build it. The first instance stored is the one both receive; guard
// such call sites externally when a factory must run exactly once.
// Likewise, a goroutine that asks for a provider's id while another
// goroutine is still running that provider's Register gets a
// ContainerError rather than waiting. Resolve provider ids once during
// startup when several goroutines share the container.
package container
