package scraper

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	// BaseURL is the RBC GAM site root.
	BaseURL = "https://www.rbcgam.com"

	// UserAgent mimics a desktop browser; the fund pages serve stale or
	// bot-filtered content to obvious non-browser clients.
	UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	Timeout = 30 * time.Second
)

// Fetcher returns the visible text of a fund's detail page. The tracker only
// ever sees this string, which keeps the core pipeline independent of how the
// page is retrieved.
type Fetcher interface {
	FetchPageText(fundCode string) (string, error)
}

// Scraper fetches fund detail pages over HTTP.
type Scraper struct {
	client  *http.Client
	baseURL string
	now     func() time.Time
}

// New creates a Scraper pointed at the RBC GAM site.
func New() *Scraper {
	return &Scraper{
		client:  &http.Client{Timeout: Timeout},
		baseURL: BaseURL,
		now:     time.Now,
	}
}

// FetchPageText retrieves a fund's detail page and returns its visible text.
// A cache-busting timestamp parameter is appended so intermediate caches never
// serve yesterday's prices.
func (s *Scraper) FetchPageText(fundCode string) (string, error) {
	url := fmt.Sprintf("%s/en/ca/products/mutual-funds/%s/detail?_=%d",
		s.baseURL, fundCode, s.now().UnixMilli())

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept-Language", "en-CA,en;q=0.9")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("parsing HTML: %w", err)
	}

	return visibleText(doc), nil
}

var whitespacePattern = regexp.MustCompile(`\s+`)

// visibleText reduces a document to the text a browser would render, with
// whitespace runs collapsed so proximity heuristics see stable distances.
func visibleText(doc *goquery.Document) string {
	doc.Find("script, style, noscript").Remove()

	text := doc.Find("body").Text()
	if strings.TrimSpace(text) == "" {
		text = doc.Text()
	}
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(text, " "))
}
