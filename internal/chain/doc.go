// Package chain owns the static network registry: the canonical table of
// supported chains with their currencies, endpoint sets, categories, and
// advisory health status. The registry is immutable for the process
// lifetime; every query tolerates unknown chain ids by returning empty or
// sentinel values, because ids frequently originate from untrusted
// wallet-reported state.
package chain
