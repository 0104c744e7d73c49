// Package errors provides the structured error type shared by fixturekit
// packages. Every error carries a machine-readable code so callers can react
// to a missing filter column differently from an unreadable dataset file.
package errors
