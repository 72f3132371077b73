// Package connector enumerates wallet connector variants and decides, per
// runtime environment, which are eligible and how the external wallet SDK
// should be configured. The catalog never opens a connection and never
// throws on speculative queries; only explicitly building an ineligible
// variant surfaces an error, which names the missing capabilities.
package connector
