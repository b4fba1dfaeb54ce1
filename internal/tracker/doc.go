// Package tracker orchestrates one end-to-end NAV check run.
//
// A run walks the configured funds sequentially: fetch the detail page text,
// extract a candidate observation, validate it, and merge it into the fund's
// history. Any per-fund failure is recorded and the run moves on to the next
// fund. Run metadata is finalized once at the end and the store is persisted
// in a single atomic write; only a persistence failure aborts the run.
package tracker
