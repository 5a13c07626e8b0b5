package delegate

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"github.com/km-arc/go-ioc/framework/container"
)

// Env serves environment values as container ids of the form <prefix><KEY>.
// Values read from the .env files take precedence over the process
// environment.
//
//	env, _ := delegate.NewEnv("env.", ".env")
//	c.Delegate(env)
//	name, _ := container.Resolve[string](c, "env.APP_NAME")
type Env struct {
	prefix string
	values map[string]string
}

// NewEnv reads files with godotenv. Missing files are an error; pass no
// files to serve the process environment only.
func NewEnv(prefix string, files ...string) (*Env, error) {
	values := map[string]string{}
	if len(files) > 0 {
		read, err := godotenv.Read(files...)
		if err != nil {
			return nil, errors.Wrap(err, "delegate: reading env files")
		}
		values = read
	}
	return &Env{prefix: prefix, values: values}, nil
}

func (e *Env) key(id string) (string, bool) {
	if !strings.HasPrefix(id, e.prefix) {
		return "", false
	}
	key := strings.TrimPrefix(id, e.prefix)
	return key, key != ""
}

func (e *Env) lookup(id string) (string, bool) {
	key, ok := e.key(id)
	if !ok {
		return "", false
	}
	if v, ok := e.values[key]; ok {
		return v, true
	}
	return os.LookupEnv(key)
}

// Has reports whether the key behind id is set.
func (e *Env) Has(id string) bool {
	_, ok := e.lookup(id)
	return ok
}

// Get returns the value behind id as a string.
func (e *Env) Get(id string) (any, error) {
	v, ok := e.lookup(id)
	if !ok {
		return nil, &container.NotFoundError{ID: id, Reason: "environment variable is not set"}
	}
	return v, nil
}
