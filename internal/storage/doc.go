// Package storage provides JSON-based persistence for the fund NAV store.
//
// The storage package reads and writes the data.json document consumed by the
// static table/chart site: a mapping of fund code to history plus run-level
// timestamps. Writes go through a temp-file-then-rename so a crash mid-write
// can never leave a torn store on disk.
package storage
