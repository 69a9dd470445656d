// Package sqlite opens a local SQLite database through the pure-Go
// modernc.org/sqlite driver, with the same readiness contract as the other
// bootstrap packages: Open retries until the database answers a ping or
// Timeout passes, then fails with ErrNotReady.
package sqlite
