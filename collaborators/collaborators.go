// Package collaborators declares the named, external-facing interfaces
// an application wires through an ioc container — logging, configuration,
// and HTTP serving — and ships one concrete adapter per interface.
//
// spec.md scopes the container itself to construction and lifetime, not
// to logging or transport frameworks (its ambient concerns are left
// external, "named interface only"). SPEC_FULL.md's DOMAIN STACK section
// gives those external collaborators a home so the rest of the pack's
// dependencies (zerolog, gin) have something concrete to wire into.
package collaborators

import "context"

// Logger is the structured-logging contract components depend on. The
// zerolog-backed adapter in logger.go is the one this module ships, but
// any implementation (including a no-op for tests) satisfies it.
type Logger interface {
	Debug(msg string, fields ...any)
	Info(msg string, fields ...any)
	Warn(msg string, fields ...any)
	Error(msg string, err error, fields ...any)
}

// ConfigSource resolves named configuration values at startup. The
// environment-backed adapter in config.go looks a value up on every
// call and caches nothing.
type ConfigSource interface {
	String(key, fallback string) string
	Int(key string, fallback int) int
	Bool(key string, fallback bool) bool
}

// Server runs an HTTP server wired to a root ioc.Provider, creating one
// ioc.Scope per inbound request and closing it when the request
// completes.
type Server interface {
	Run(ctx context.Context, addr string) error
}
