// Package testutil provides test utilities for embedapi, including:
//   - Miniredis helpers for unit tests (miniredis.go)
//   - A quiet logrus logger (logger.go)
//
// None of the helpers require Docker.
package testutil
