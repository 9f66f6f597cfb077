package scrape

import (
	"encoding/json"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// UnknownPosition is the title placeholder when nothing usable is found.
const UnknownPosition = "Unknown Position"

// descriptionUnavailable explains a failed description extraction. Many job
// boards render the posting body client-side, leaving nothing in the HTML.
const descriptionUnavailable = "Could not extract job description - the page may require JavaScript to render"

// Selector lists are ordered by site specificity: product-specific class and
// attribute patterns first, generic fallbacks last. Extraction short-circuits
// at the first qualifying match.
var (
	titleSelectors = []string{
		"h1",
		".job-title",
		".jobsearch-JobInfoHeader-title",
		`[data-testid="job-title"]`,
		".job-header-title",
		".posting-headline h2",
	}

	companySelectors = []string{
		".company-name",
		".jobsearch-InlineCompanyRating-companyHeader",
		`[data-testid="company-name"]`,
		`[data-testid="inlineHeader-companyName"]`,
		".company",
	}

	descriptionSelectors = []string{
		".job-description",
		".jobsearch-jobDescriptionText",
		`[data-testid="job-description"]`,
		".description",
		".job-content",
		".posting-description",
	}

	// titleSuffixes are boilerplate endings stripped from <title> fallbacks.
	titleSuffixes = []string{
		" - Jobs",
		" | Jobs",
		" - Careers",
		" | Careers",
		" - Job Details",
		" | Indeed.com",
		" - Indeed.com",
	}

	// jobBoardNames maps known job-board domain fragments to display names.
	jobBoardNames = map[string]string{
		"indeed":       "Indeed",
		"linkedin":     "LinkedIn",
		"glassdoor":    "Glassdoor",
		"monster":      "Monster",
		"ziprecruiter": "ZipRecruiter",
		"greenhouse":   "Greenhouse",
		"lever":        "Lever",
	}
)

// structuredJob is the subset of a schema.org JobPosting block we read.
type structuredJob struct {
	Type               string `json:"@type"`
	Title              string `json:"title"`
	Description        string `json:"description"`
	HiringOrganization struct {
		Name string `json:"name"`
	} `json:"hiringOrganization"`
}

// Extract derives the job posting fields from a parsed document. It never
// fails: each field degrades through an ordered fallback chain ending in a
// placeholder value.
func Extract(doc *goquery.Document, sourceURL string) (posting JobPosting) {
	sd, sdFound := structuredData(doc)

	posting = JobPosting{
		Title:       extractTitle(doc, sd, sdFound),
		Company:     extractCompany(doc, sd, sdFound, sourceURL),
		Description: extractDescription(doc, sd, sdFound),
		SourceURL:   sourceURL,
	}

	return posting
}

// extractTitle resolves the position title: og:title meta, then the selector
// chain, then structured data, then the page title with boilerplate suffixes
// stripped, then the placeholder.
func extractTitle(doc *goquery.Document, sd structuredJob, sdFound bool) (title string) {
	if og := metaContent(doc, "og:title"); len(og) > 2 {
		title = og
		return title
	}

	for _, selector := range titleSelectors {
		text := strings.TrimSpace(doc.Find(selector).First().Text())
		if len(text) > 2 {
			title = text
			return title
		}
	}

	if sdFound && strings.TrimSpace(sd.Title) != "" {
		title = strings.TrimSpace(sd.Title)
		return title
	}

	pageTitle := strings.TrimSpace(doc.Find("title").First().Text())
	for _, suffix := range titleSuffixes {
		pageTitle = strings.TrimSuffix(pageTitle, suffix)
	}
	pageTitle = strings.TrimSpace(pageTitle)
	if len(pageTitle) > 2 {
		title = pageTitle
		return title
	}

	title = UnknownPosition
	return title
}

// extractCompany resolves the company name: selector chain, structured data,
// og:site_name meta, then a name derived from the source URL's domain.
func extractCompany(doc *goquery.Document, sd structuredJob, sdFound bool, sourceURL string) (company string) {
	for _, selector := range companySelectors {
		text := strings.TrimSpace(doc.Find(selector).First().Text())
		if len(text) > 1 {
			company = text
			return company
		}
	}

	if sdFound && strings.TrimSpace(sd.HiringOrganization.Name) != "" {
		company = strings.TrimSpace(sd.HiringOrganization.Name)
		return company
	}

	if site := metaContent(doc, "og:site_name"); len(site) > 1 {
		company = site
		return company
	}

	company = companyFromDomain(sourceURL)
	return company
}

// companyFromDomain derives a display name from the URL's host: strip a
// leading "www.", take the fragment before the first dot, and map known
// job-board fragments to their display names, title-casing anything else.
func companyFromDomain(sourceURL string) (company string) {
	parsed, err := url.Parse(sourceURL)
	if err != nil || parsed.Host == "" {
		company = "Unknown Company"
		return company
	}

	host := strings.ToLower(parsed.Host)
	host = strings.TrimPrefix(host, "www.")
	fragment := host
	if idx := strings.Index(host, "."); idx > 0 {
		fragment = host[:idx]
	}

	if fragment == "" {
		company = "Unknown Company"
		return company
	}

	if name, found := jobBoardNames[fragment]; found {
		company = name
		return company
	}

	company = strings.ToUpper(fragment[:1]) + fragment[1:]
	return company
}

// extractDescription resolves the posting body. Meta descriptions are only
// trusted when long enough to be a real description; short ones are kept as
// a last resort before the explanatory placeholder.
func extractDescription(doc *goquery.Document, sd structuredJob, sdFound bool) (description string) {
	shortMeta := ""
	for _, name := range []string{"description", "og:description", "twitter:description"} {
		meta := metaContent(doc, name)
		if len(meta) > 100 {
			description = CleanText(meta)
			return description
		}
		if shortMeta == "" && meta != "" {
			shortMeta = meta
		}
	}

	// Strip chrome and script noise before walking content selectors.
	doc.Find("script, style, nav, header, footer").Remove()

	for _, selector := range descriptionSelectors {
		text := CleanText(doc.Find(selector).First().Text())
		if len(text) > 50 {
			description = text
			return description
		}
	}

	if sdFound {
		text := CleanText(stripTags(sd.Description))
		if len(text) > 50 {
			description = text
			return description
		}
	}

	if text := concatParagraphs(doc); text != "" {
		description = text
		return description
	}

	if shortMeta != "" {
		description = CleanText(shortMeta)
		return description
	}

	description = descriptionUnavailable
	return description
}

// concatParagraphs joins substantial paragraph and div texts, capped at the
// first 2000 characters.
func concatParagraphs(doc *goquery.Document) (text string) {
	var builder strings.Builder
	doc.Find("p, div").EachWithBreak(func(_ int, sel *goquery.Selection) (cont bool) {
		chunk := strings.TrimSpace(sel.Text())
		if len(chunk) > 30 {
			builder.WriteString(chunk)
			builder.WriteString(" ")
		}
		cont = builder.Len() < 2000
		return cont
	})

	text = CleanText(builder.String())
	if len(text) > 2000 {
		text = text[:2000]
	}
	return text
}

// structuredData scans embedded JSON-LD blocks for a JobPosting record.
// Malformed blocks are skipped; a top-level array uses its first element.
func structuredData(doc *goquery.Document) (job structuredJob, found bool) {
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, sel *goquery.Selection) (cont bool) {
		raw := strings.TrimSpace(sel.Text())

		var candidate structuredJob
		if strings.HasPrefix(raw, "[") {
			var blocks []structuredJob
			if err := json.Unmarshal([]byte(raw), &blocks); err != nil || len(blocks) == 0 {
				return true
			}
			candidate = blocks[0]
		} else {
			if err := json.Unmarshal([]byte(raw), &candidate); err != nil {
				return true
			}
		}

		if candidate.Type == "JobPosting" {
			job = candidate
			found = true
			return false
		}
		return true
	})

	return job, found
}

// metaContent returns the trimmed content of a meta tag looked up by either
// its property or name attribute.
func metaContent(doc *goquery.Document, key string) (content string) {
	for _, attr := range []string{"property", "name"} {
		selector := `meta[` + attr + `="` + key + `"]`
		if value, exists := doc.Find(selector).First().Attr("content"); exists {
			content = strings.TrimSpace(value)
			if content != "" {
				return content
			}
		}
	}
	return content
}

// stripTags removes markup from structured-data descriptions, which are
// frequently HTML fragments rather than plain text.
func stripTags(html string) (text string) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		text = html
		return text
	}
	text = doc.Text()
	return text
}
