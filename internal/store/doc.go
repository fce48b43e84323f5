// Package store defines the persistence contracts for the study ledger:
// vocabulary words, groups, study sessions, activities, and the
// append-only review event log. The interfaces here, together with the
// shared error taxonomy and pagination types, keep the core logic
// independent of the PostgreSQL adapter that implements them.
package store
