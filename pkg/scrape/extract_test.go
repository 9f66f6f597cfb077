package scrape

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func parseDoc(t *testing.T, html string) (doc *goquery.Document) {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("Failed to parse test HTML: %v", err)
	}
	return doc
}

func TestExtractEmptyDocument(t *testing.T) {
	doc := parseDoc(t, "<html><body></body></html>")

	posting := Extract(doc, "https://example.com/jobs/1")

	if posting.Title != UnknownPosition {
		t.Errorf("Expected '%s', got '%s'", UnknownPosition, posting.Title)
	}

	if posting.Company != "Example" {
		t.Errorf("Expected domain-derived company 'Example', got '%s'", posting.Company)
	}

	if posting.Description == "" {
		t.Error("Expected placeholder description, got empty string")
	}
}

func TestExtractTitleFromOGMeta(t *testing.T) {
	html := `<html><head>
		<meta property="og:title" content="Staff Engineer">
	</head><body><h1>Something else entirely</h1></body></html>`
	doc := parseDoc(t, html)

	posting := Extract(doc, "https://example.com/jobs/1")
	if posting.Title != "Staff Engineer" {
		t.Errorf("Expected og:title to win, got '%s'", posting.Title)
	}
}

func TestExtractTitleFromSelector(t *testing.T) {
	html := `<html><body><h1>Backend Engineer</h1></body></html>`
	doc := parseDoc(t, html)

	posting := Extract(doc, "https://example.com/jobs/1")
	if posting.Title != "Backend Engineer" {
		t.Errorf("Expected 'Backend Engineer', got '%s'", posting.Title)
	}
}

func TestExtractTitleSkipsShortMatches(t *testing.T) {
	// An h1 shorter than three characters must not qualify.
	html := `<html><body><h1>Go</h1><div class="job-title">Go Developer</div></body></html>`
	doc := parseDoc(t, html)

	posting := Extract(doc, "https://example.com/jobs/1")
	if posting.Title != "Go Developer" {
		t.Errorf("Expected selector fallback to '.job-title', got '%s'", posting.Title)
	}
}

func TestExtractTitleFromPageTitleStripsSuffix(t *testing.T) {
	html := `<html><head><title>Platform Engineer - Jobs</title></head><body></body></html>`
	doc := parseDoc(t, html)

	posting := Extract(doc, "https://example.com/jobs/1")
	if posting.Title != "Platform Engineer" {
		t.Errorf("Expected suffix-stripped page title, got '%s'", posting.Title)
	}
}

func TestExtractFromStructuredData(t *testing.T) {
	html := `<html><head>
		<script type="application/ld+json">
		{"@type": "JobPosting", "title": "Data Engineer",
		 "hiringOrganization": {"name": "Initech"},
		 "description": "<p>` + strings.Repeat("Build data pipelines. ", 5) + `</p>"}
		</script>
	</head><body></body></html>`
	doc := parseDoc(t, html)

	posting := Extract(doc, "https://example.com/jobs/1")
	if posting.Title != "Data Engineer" {
		t.Errorf("Expected structured-data title, got '%s'", posting.Title)
	}
	if posting.Company != "Initech" {
		t.Errorf("Expected structured-data company, got '%s'", posting.Company)
	}
	if !strings.Contains(posting.Description, "Build data pipelines") {
		t.Errorf("Expected structured-data description, got '%s'", posting.Description)
	}
	if strings.Contains(posting.Description, "<p>") {
		t.Errorf("Expected markup stripped from description, got '%s'", posting.Description)
	}
}

func TestExtractStructuredDataArray(t *testing.T) {
	// The first element of a top-level array is used.
	html := `<html><head>
		<script type="application/ld+json">
		[{"@type": "JobPosting", "title": "SRE Lead"}]
		</script>
	</head><body></body></html>`
	doc := parseDoc(t, html)

	posting := Extract(doc, "https://example.com/jobs/1")
	if posting.Title != "SRE Lead" {
		t.Errorf("Expected array structured data to be used, got '%s'", posting.Title)
	}
}

func TestExtractStructuredDataMalformed(t *testing.T) {
	// Malformed blocks are skipped without failing extraction.
	html := `<html><head>
		<script type="application/ld+json">{not json at all</script>
	</head><body><h1>Security Engineer</h1></body></html>`
	doc := parseDoc(t, html)

	posting := Extract(doc, "https://example.com/jobs/1")
	if posting.Title != "Security Engineer" {
		t.Errorf("Expected selector title despite malformed JSON-LD, got '%s'", posting.Title)
	}
}

func TestExtractCompanyFromSelector(t *testing.T) {
	html := `<html><body><div class="company-name">Acme Corp</div></body></html>`
	doc := parseDoc(t, html)

	posting := Extract(doc, "https://example.com/jobs/1")
	if posting.Company != "Acme Corp" {
		t.Errorf("Expected 'Acme Corp', got '%s'", posting.Company)
	}
}

func TestExtractCompanyFromSiteName(t *testing.T) {
	html := `<html><head>
		<meta property="og:site_name" content="Hooli Careers">
	</head><body></body></html>`
	doc := parseDoc(t, html)

	posting := Extract(doc, "https://example.com/jobs/1")
	if posting.Company != "Hooli Careers" {
		t.Errorf("Expected og:site_name, got '%s'", posting.Company)
	}
}

func TestCompanyFromDomain(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected string
	}{
		{
			name:     "known job board",
			url:      "https://www.indeed.com/viewjob?jk=123",
			expected: "Indeed",
		},
		{
			name:     "linkedin",
			url:      "https://linkedin.com/jobs/view/456",
			expected: "LinkedIn",
		},
		{
			name:     "unknown domain title-cased",
			url:      "https://hooli.com/careers/789",
			expected: "Hooli",
		},
		{
			name:     "www stripped before lookup",
			url:      "https://www.ziprecruiter.com/job/1",
			expected: "ZipRecruiter",
		},
		{
			name:     "unparseable",
			url:      "not a url",
			expected: "Unknown Company",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := companyFromDomain(tt.url)
			if result != tt.expected {
				t.Errorf("Expected '%s', got '%s'", tt.expected, result)
			}
		})
	}
}

func TestExtractDescriptionFromLongMeta(t *testing.T) {
	long := strings.Repeat("We are hiring a backend engineer. ", 5)
	html := `<html><head>
		<meta name="description" content="` + long + `">
	</head><body></body></html>`
	doc := parseDoc(t, html)

	posting := Extract(doc, "https://example.com/jobs/1")
	if !strings.Contains(posting.Description, "We are hiring a backend engineer") {
		t.Errorf("Expected meta description, got '%s'", posting.Description)
	}
}

func TestExtractDescriptionIgnoresShortMetaUntilLastResort(t *testing.T) {
	// A short meta description loses to a substantial selector match.
	body := strings.Repeat("Ship reliable services in Go. ", 4)
	html := `<html><head>
		<meta name="description" content="Short blurb">
	</head><body><div class="job-description">` + body + `</div></body></html>`
	doc := parseDoc(t, html)

	posting := Extract(doc, "https://example.com/jobs/1")
	if !strings.Contains(posting.Description, "Ship reliable services in Go") {
		t.Errorf("Expected selector description to win, got '%s'", posting.Description)
	}
}

func TestExtractDescriptionShortMetaFallback(t *testing.T) {
	html := `<html><head>
		<meta name="description" content="Short blurb">
	</head><body></body></html>`
	doc := parseDoc(t, html)

	posting := Extract(doc, "https://example.com/jobs/1")
	if posting.Description != "Short blurb" {
		t.Errorf("Expected short meta as last resort, got '%s'", posting.Description)
	}
}

func TestExtractDescriptionStripsNoise(t *testing.T) {
	body := strings.Repeat("Own the deployment pipeline end to end. ", 3)
	html := `<html><body>
		<nav>Home About Careers</nav>
		<div class="job-description"><script>alert(1)</script>` + body + `</div>
		<footer>Copyright</footer>
	</body></html>`
	doc := parseDoc(t, html)

	posting := Extract(doc, "https://example.com/jobs/1")
	if strings.Contains(posting.Description, "alert") {
		t.Errorf("Expected script content removed, got '%s'", posting.Description)
	}
	if strings.Contains(posting.Description, "Copyright") {
		t.Errorf("Expected footer content removed, got '%s'", posting.Description)
	}
}

func TestExtractDescriptionParagraphFallbackCapped(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("<html><body>")
	for i := 0; i < 200; i++ {
		sb.WriteString("<p>This paragraph is certainly longer than thirty characters in total.</p>")
	}
	sb.WriteString("</body></html>")
	doc := parseDoc(t, sb.String())

	posting := Extract(doc, "https://example.com/jobs/1")
	if len(posting.Description) > 2000 {
		t.Errorf("Expected description capped at 2000 chars, got %d", len(posting.Description))
	}
	if !strings.Contains(posting.Description, "longer than thirty characters") {
		t.Errorf("Expected paragraph fallback content, got '%s'", posting.Description)
	}
}

func TestExtractDescriptionUnavailable(t *testing.T) {
	doc := parseDoc(t, "<html><body><p>short</p></body></html>")

	posting := Extract(doc, "https://example.com/jobs/1")
	if !strings.Contains(posting.Description, "JavaScript") {
		t.Errorf("Expected explanatory placeholder, got '%s'", posting.Description)
	}
}
