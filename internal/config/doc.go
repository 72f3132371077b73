// Package config loads the chainportd runtime configuration from a JSON
// file. Values are expanded against the process environment before parsing,
// so secrets such as provider API keys can be referenced as ${VAR} instead
// of being written to disk.
package config
