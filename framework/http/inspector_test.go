package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-ioc/framework/container"
	gohttp "github.com/km-arc/go-ioc/framework/http"
)

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	return rr
}

func TestInspector_Summary(t *testing.T) {
	c := container.New()
	c.Add("logger", nil).AddTag("services")
	c.Add("config", nil)

	rr := get(t, gohttp.NewInspector(c), "/")
	require.Equal(t, http.StatusOK, rr.Code)

	data := decodeJSON(t, rr)["data"].(map[string]any)
	assert.Equal(t, c.ID().String(), data["container"])
	assert.Equal(t, []any{"logger", "config"}, data["definitions"])
	assert.Equal(t, []any{"services"}, data["tags"])
}

func TestInspector_Has(t *testing.T) {
	c := container.New()
	registered := false
	c.AddServiceProvider(container.NewProvider([]string{"lazy"}, func(c *container.Container) {
		registered = true
		c.Add("lazy", nil)
	}))
	c.Add("direct", nil).AddTag("grp")
	h := gohttp.NewInspector(c)

	tests := []struct {
		id     string
		code   int
		has    bool
		source string
	}{
		{"direct", http.StatusOK, true, "definition"},
		{"grp", http.StatusOK, true, "tag"},
		{"lazy", http.StatusOK, true, "provider"},
		{"ghost", http.StatusNotFound, false, "none"},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			rr := get(t, h, "/has/"+tt.id)
			require.Equal(t, tt.code, rr.Code)
			data := decodeJSON(t, rr)["data"].(map[string]any)
			assert.Equal(t, tt.id, data["id"])
			assert.Equal(t, tt.has, data["has"])
			assert.Equal(t, tt.source, data["source"])
		})
	}
	assert.False(t, registered, "inspecting must not register providers")
}
