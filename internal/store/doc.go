// Package store persists the run catalog: one SQLite row per analysis run
// with its status, artifact location, and per-track counts. The analysis
// artifact itself lives on disk as JSON; the catalog only indexes it.
package store
