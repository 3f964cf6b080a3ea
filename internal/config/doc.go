// Package config loads, normalizes, and validates trackdeck configuration
// from TOML. Components receive the run-scoped Config explicitly; nothing
// reads ambient process state.
package config
