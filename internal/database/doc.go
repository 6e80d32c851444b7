// Package database owns the PostgreSQL connection pool and the request-scoped
// sessions drawn from it.
//
// The pool is created exactly once per process via [Connect] and disposed
// exactly once at shutdown via the [Shutdown] hook. Creation is lazy by
// design: the constructor performs no network I/O, so process startup is
// decoupled from database availability and only the first acquisition can
// fail.
//
// [Provider] issues one [Session] per unit of work. Sessions are never shared
// between concurrent units of work and are always returned to the pool when
// their scope ends; [Provider.WithSession] is the guaranteed-release form.
//
// # Error Handling
//
// Acquire failures map onto sentinel errors callers can branch on:
//
//   - [ErrPoolExhausted] - the configured wait timeout elapsed; retry or back off
//   - [ErrPoolClosed] - use after disposal, a programming error
//   - [ErrConnection] - the database was unreachable at first use
//
// Errors are wrapped with [errors.Join] so the driver's original error stays
// inspectable.
package database
