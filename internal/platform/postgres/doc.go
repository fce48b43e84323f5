// Package postgres provides the PostgreSQL implementation of the ledger
// store adapter interfaces defined in the internal/store package. It
// handles query execution, error mapping to the store error taxonomy,
// and data mapping between domain entities and database records. The
// review ledger relies only on single-statement atomicity and a
// conditional update for session close; no cross-entity transactions
// are used.
package postgres
