// Package mysql provides the probe-history repositories. It encapsulates
// schema migrations and typed queries for persisting endpoint probe results,
// with an in-memory implementation for tests and single-node runs.
package mysql
