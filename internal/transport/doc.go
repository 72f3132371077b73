// Package transport resolves, per chain, an ordered fallback sequence of
// RPC endpoints: zero or more credentialed premium providers in a fixed
// priority order followed by exactly one public default. The public
// default's presence is a correctness invariant, not an optimization. The
// package also ships a fallback dialer that turns a resolved sequence into
// a live go-ethereum client.
package transport
