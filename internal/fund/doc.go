// Package fund provides types and functions for tracking mutual fund NAV history.
//
// The fund package handles the domain model (funds, history entries, extracted
// candidates), candidate validation against recency and shape rules, and the
// history merge that appends an entry only when the NAV actually changed. NAV
// values are exact decimals so the changed/unchanged comparison never suffers
// float drift.
package fund
