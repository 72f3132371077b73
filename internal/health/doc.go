// Package health runs the background prober that verifies each registered
// chain over its resolved transport sequence and feeds the advisory status
// store, probe history, metrics, and transition notifications.
package health
