// Package catalog loads the static assessment catalog from CSV into typed
// in-memory records and provides aggregate read-only views over them.
//
// The catalog is loaded once at startup and treated as immutable for the
// life of the process. Load failures are fatal; there is no partial catalog.
package catalog
