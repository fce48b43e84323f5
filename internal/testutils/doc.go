// Package testutils provides in-memory implementations of the store
// interfaces for tests. The implementations honor the same contracts as
// the PostgreSQL adapters, including the compare-and-set session close
// and the open-session append check, so service tests exercise the real
// concurrency semantics without a database.
package testutils
