// Package server exposes the catalog as a JSON REST API.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # Catalog Handler
//
// [CatalogHandler] is mounted at the root and does its own path-segment routing. It strips the configured
// prefix, treats the first segment as the resource name and hands the remaining segments to the resource's
// handler:
//
//	/albums             collection (list, search with ?s=, create)
//	/albums/{id}        item (get, update, delete)
//	/albums/{id}/tracks sub-resource
//
// Every request borrows its own connection from the [Connector] and returns it when the response is written.
//
// # Responses
//
// All bodies are JSON with Content-Type "application/json; charset=UTF-8". Errors are {"error": "..."}, deletions
// and associations answer {"message": "..."}, everything else is the resource object or array without an envelope.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
