// Package market tracks daily closing prices for a small set of market
// indices alongside the fund NAV data.
//
// Closes come from the Yahoo Finance chart API. The first run backfills a
// year of history; later runs fetch the trailing five days and merge by date,
// so weekends and holidays never produce duplicate rows. History is capped at
// roughly one trading year per index.
package market
