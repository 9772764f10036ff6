// Package database provides SQLite-based storage for importsweep.
//
// This package implements the SessionDB, which stores completed cleanup
// session reports so that runs over the same corpus can be compared
// across time.
//
// Design decision: We use SQLite (via modernc.org/sqlite) instead of other
// databases because:
// 1. No external dependencies - the database is a single file
// 2. CGO-free implementation allows easy cross-compilation
// 3. Sufficient performance for our use case
// 4. WAL mode provides good concurrent read performance
package database
