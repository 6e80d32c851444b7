// Package middleware provides the HTTP middlewares used by the server:
// request IDs, request logging, panic recovery, and CORS.
package middleware
