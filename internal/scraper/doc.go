// Package scraper provides HTTP fetching and text extraction for RBC GAM fund
// detail pages.
//
// The scraper package fetches a fund's public detail page, reduces it to its
// visible text, and extracts a candidate (date, NAV, daily change) observation
// using anchor-phrase and proximity heuristics. Extraction is a pure function
// over the page text so it is testable without a live fetch.
package scraper
