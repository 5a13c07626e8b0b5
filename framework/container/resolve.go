package container

import (
	"fmt"
	"reflect"
)

// ── Generics helpers ──────────────────────────────────────────────────────────

// Resolve gets id and asserts the result to T.
//
//	// Instead of: v, err := c.Get("db"); db := v.(*sql.DB)
//	db, err := container.Resolve[*sql.DB](c, "db")
func Resolve[T any](c *Container, id string) (T, error) {
	v, err := c.Get(id)
	return assert[T](id, v, err)
}

// ResolveNew is Resolve over GetNew.
func ResolveNew[T any](c *Container, id string) (T, error) {
	v, err := c.GetNew(id)
	return assert[T](id, v, err)
}

// MustResolve is Resolve that panics on failure. Use it at bootstrap only.
func MustResolve[T any](c *Container, id string) T {
	v, err := Resolve[T](c, id)
	if err != nil {
		panic(err)
	}
	return v
}

// ResolveTagged resolves a tag group and asserts every member to T.
func ResolveTagged[T any](c *Container, tag string) ([]T, error) {
	v, err := c.Get(tag)
	if err != nil {
		return nil, err
	}
	group, ok := v.([]any)
	if !ok {
		return nil, misconfigured(tag, fmt.Sprintf("resolved to %T, not a tag group", v))
	}
	out := make([]T, 0, len(group))
	for i, member := range group {
		t, ok := member.(T)
		if !ok {
			return nil, misconfigured(tag, fmt.Sprintf("member %d is %T, want %s", i, member, reflect.TypeFor[T]()))
		}
		out = append(out, t)
	}
	return out, nil
}

// Inflect registers a typed inflector for values assignable to T.
//
//	container.Inflect(c, func(s Startable, c *container.Container) Startable {
//	    s.Start()
//	    return s
//	})
func Inflect[T any](c *Container, fn func(instance T, c *Container) T) *Inflector {
	return c.Inflector(reflect.TypeFor[T](), func(instance any, c *Container) any {
		return fn(instance.(T), c)
	})
}

func assert[T any](id string, v any, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, misconfigured(id, fmt.Sprintf("resolved to %T, want %s", v, reflect.TypeFor[T]()))
	}
	return t, nil
}

// ── Reflect helpers ───────────────────────────────────────────────────────────

// TypeKey returns the package-qualified type name of v, useful as a stable
// id when working with interfaces.
//
//	key := container.TypeKey((*UserRepository)(nil))  // "main.UserRepository"
//	c.AddShared(key, factory)
func TypeKey(v any) string {
	t := reflect.TypeOf(v)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.PkgPath() + "." + t.Name()
}
