package output

import (
	"context"
	"fmt"
	"html"
	"net/url"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/pkg/errors"
)

// chromeBinaries are the browser executables probed for availability.
var chromeBinaries = []string{
	"google-chrome",
	"google-chrome-stable",
	"chromium",
	"chromium-browser",
	"chrome",
}

// chromeBackend prints the letter to PDF through a headless browser.
type chromeBackend struct{}

func (b *chromeBackend) Name() (name string) {
	name = "chrome"
	return name
}

// Available reports whether a Chrome or Chromium binary is on PATH.
func (b *chromeBackend) Available() (available bool) {
	for _, binary := range chromeBinaries {
		if _, err := exec.LookPath(binary); err == nil {
			available = true
			return available
		}
	}
	return available
}

func (b *chromeBackend) Render(letter, path string) (err error) {
	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	ctx, cancelTimeout := context.WithTimeout(ctx, 30*time.Second)
	defer cancelTimeout()

	dataURL := "data:text/html;charset=utf-8," + url.PathEscape(letterHTML(letter))

	var pdfData []byte
	err = chromedp.Run(ctx,
		chromedp.Navigate(dataURL),
		chromedp.ActionFunc(func(ctx context.Context) (actionErr error) {
			pdfData, _, actionErr = page.PrintToPDF().
				WithPrintBackground(false).
				WithMarginTop(1).
				WithMarginBottom(1).
				WithMarginLeft(1).
				WithMarginRight(1).
				Do(ctx)
			return actionErr
		}),
	)
	if err != nil {
		err = errors.Wrap(err, "headless browser rendering failed")
		return err
	}

	err = os.WriteFile(path, pdfData, 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write PDF %s", path)
	}

	return err
}

// letterHTML wraps the letter's paragraphs in a minimal styled document.
func letterHTML(letter string) (doc string) {
	var builder strings.Builder
	builder.WriteString(`<!DOCTYPE html><html><head><meta charset="utf-8"><style>
body { font-family: Georgia, serif; font-size: 12pt; line-height: 1.5; max-width: 42em; margin: 2em auto; }
p { margin: 0 0 1em 0; text-align: justify; }
</style></head><body>`)

	paragraphs := strings.Split(strings.ReplaceAll(letter, "\r\n", "\n"), "\n\n")
	for _, paragraph := range paragraphs {
		paragraph = strings.TrimSpace(paragraph)
		if paragraph == "" {
			continue
		}
		escaped := html.EscapeString(paragraph)
		escaped = strings.ReplaceAll(escaped, "\n", "<br>")
		fmt.Fprintf(&builder, "<p>%s</p>", escaped)
	}

	builder.WriteString("</body></html>")

	doc = builder.String()

	return doc
}
