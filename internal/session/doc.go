// Package session composes the chain registry, transport resolver, and
// connector catalog into the single configuration object a hosting
// application hands to its wallet SDK.
package session
