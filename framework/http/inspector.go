package http

import (
	"net/http"

	"github.com/km-arc/go-ioc/framework/container"
	"github.com/km-arc/go-ioc/framework/routing"
)

// Summary is the body of GET / on the inspector.
type Summary struct {
	Container   string   `json:"container"`
	Definitions []string `json:"definitions"`
	Tags        []string `json:"tags"`
}

// Lookup is the body of GET /has/{id} on the inspector.
type Lookup struct {
	ID     string           `json:"id"`
	Has    bool             `json:"has"`
	Source container.Source `json:"source"`
}

// NewInspector returns read-only routes describing c. Nothing is resolved,
// so inspecting never triggers providers or factories.
//
//	router.Mount("/_container", gohttp.NewInspector(c))
func NewInspector(c *container.Container) http.Handler {
	r := routing.New()

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		NewResponse(w).Success(Summary{
			Container:   c.ID().String(),
			Definitions: c.Definitions(),
			Tags:        c.Tags(),
		})
	})

	r.Get("/has/{id}", func(w http.ResponseWriter, req *http.Request) {
		id := routing.Param(req, "id")
		source := c.Source(id)
		res := NewResponse(w)
		if source == container.SourceNone {
			res.JSON(http.StatusNotFound, envelope{"data": Lookup{ID: id, Source: source}})
			return
		}
		res.Success(Lookup{ID: id, Has: true, Source: source})
	})

	return r
}
