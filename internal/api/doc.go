// Package api exposes the read-only HTTP surface of chainportd: chain
// listings, per-chain transport and probe detail, the composed session
// configuration, and a liveness endpoint.
package api
