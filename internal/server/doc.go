// Package server wires the HTTP surface and owns the service lifecycle: it
// starts the listener, drains in-flight requests on shutdown, and only then
// runs the hooks that dispose shared resources such as the connection pool.
package server
