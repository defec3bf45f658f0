// Package migrations contains all database migration files. Each
// migration registers itself in an init() so importing this package is
// enough to make the full set available to the runner.
package migrations
