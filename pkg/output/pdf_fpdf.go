package output

import (
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"
)

// fpdfBackend lays the letter out as justified paragraphs on A4 pages.
type fpdfBackend struct{}

func (b *fpdfBackend) Name() (name string) {
	name = "fpdf"
	return name
}

// Available is always true; the renderer is pure Go.
func (b *fpdfBackend) Available() (available bool) {
	available = true
	return available
}

func (b *fpdfBackend) Render(letter, path string) (err error) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetMargins(25, 25, 25)
	doc.SetAutoPageBreak(true, 25)
	doc.AddPage()
	doc.SetFont("Helvetica", "", 11)

	// Helvetica is cp1252; translate what we can, the rest degrades.
	translate := doc.UnicodeTranslatorFromDescriptor("")

	paragraphs := strings.Split(strings.ReplaceAll(letter, "\r\n", "\n"), "\n\n")
	for _, paragraph := range paragraphs {
		paragraph = strings.TrimSpace(paragraph)
		if paragraph == "" {
			continue
		}
		doc.MultiCell(0, 6, translate(paragraph), "", "J", false)
		doc.Ln(4)
	}

	err = doc.OutputFileAndClose(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to write PDF %s", path)
	}

	return err
}
