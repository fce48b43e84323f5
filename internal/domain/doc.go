// Package domain contains the core entities of the study ledger: words,
// groups, study sessions with their one-way open-to-closed lifecycle,
// study activities, and the immutable word review events every derived
// statistic is computed from. It is independent of any storage or
// delivery mechanism.
package domain
