package scrape

import (
	"context"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/pkg/errors"
)

const (
	// DefaultTimeout is the HTTP request timeout for fetching job postings.
	DefaultTimeout = 10 * time.Second
	// DefaultUserAgent is sent with every fetch. Some job boards reject
	// requests without a browser-looking user agent.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
)

// ErrFetch indicates a network or HTTP-level failure fetching the posting.
var ErrFetch = errors.New("failed to fetch job posting")

// ErrParse indicates the fetched document could not be parsed.
var ErrParse = errors.New("failed to parse job posting page")

// JobPosting holds the fields extracted from a job posting page.
// Extraction is best-effort: fields are never empty, falling back to
// placeholder values when nothing usable is found.
type JobPosting struct {
	Title       string
	Company     string
	Description string
	SourceURL   string
}

// Scraper fetches job postings over HTTP and extracts their fields.
type Scraper struct {
	httpClient *http.Client
	userAgent  string
}

// NewScraper creates a scraper with the given timeout and user agent.
// Zero values select the defaults.
func NewScraper(timeout time.Duration, userAgent string) (scraper *Scraper) {
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	scraper = &Scraper{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		userAgent: userAgent,
	}
	return scraper
}

// Fetch performs a single GET against the job posting URL and extracts
// its fields. There is no retry at this layer.
func (s *Scraper) Fetch(ctx context.Context, urlStr string) (posting JobPosting, err error) {
	var req *http.Request
	req, err = http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		err = errors.Wrapf(ErrFetch, "failed to create request for %s: %v", urlStr, err)
		return posting, err
	}

	req.Header.Set("User-Agent", s.userAgent)

	var resp *http.Response
	resp, err = s.httpClient.Do(req)
	if err != nil {
		err = errors.Wrapf(ErrFetch, "GET %s: %v", urlStr, err)
		return posting, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err = errors.Wrapf(ErrFetch, "HTTP status %d for %s", resp.StatusCode, urlStr)
		return posting, err
	}

	var doc *goquery.Document
	doc, err = goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		err = errors.Wrapf(ErrParse, "%s: %v", urlStr, err)
		return posting, err
	}

	posting = Extract(doc, urlStr)

	return posting, err
}
