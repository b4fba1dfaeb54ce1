// Package cli implements the command-line interface for nav-tracker.
//
// The cli package provides the Cobra-based CLI: the root command runs one
// fetch→extract→validate→merge pass over the tracked funds, with subcommands
// for showing the stored history, updating market index closes, and running
// the check on a cron schedule. It coordinates the scraper, tracker, and
// storage packages and formats results as text or JSON.
package cli
