// Package http provides JSON response helpers and a read-only HTTP
// inspector for a container.
//
// # Response
//
//	res := gohttp.NewResponse(w)
//	res.Success(map[string]any{"id": 1}) // 200 {"data": {...}}
//	res.NotFound()                       // 404 {"message": "Not found."}
//
// # Inspector
//
//	router.Mount("/_container", gohttp.NewInspector(c))
//
//	GET /_container/          → {"data": {"container": "...", "definitions": [...], "tags": [...]}}
//	GET /_container/has/{id}  → {"data": {"id": "...", "has": true, "source": "provider"}}
package http
