package resume

import (
	"bytes"
	"io"
	"os"
	"strings"

	ledongpdf "github.com/ledongthuc/pdf"
	"github.com/pkg/errors"
)

// loadPDF extracts text from a PDF resume. The whole-document text reader
// is tried first; if it fails or panics (the library panics on some
// malformed content streams), extraction falls back to a page-by-page walk.
func loadPDF(path string) (text string, err error) {
	if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
		err = errors.Wrapf(ErrNotFound, "%s", path)
		return text, err
	}

	var file *os.File
	var reader *ledongpdf.Reader
	file, reader, err = ledongpdf.Open(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to open PDF resume %s", path)
		return text, err
	}
	defer file.Close()

	text, err = pdfPlainText(reader)
	if err == nil && strings.TrimSpace(text) != "" {
		return text, err
	}

	text = pdfTextByRows(reader)
	if strings.TrimSpace(text) == "" {
		err = errors.Wrapf(ErrNoText, "PDF %s", path)
		return text, err
	}

	err = nil

	return text, err
}

// pdfPlainText reads the document's full plain text, converting the
// library's panics into errors.
func pdfPlainText(reader *ledongpdf.Reader) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("PDF text extraction panicked: %v", r)
		}
	}()

	var content io.Reader
	content, err = reader.GetPlainText()
	if err != nil {
		err = errors.Wrapf(err, "failed to extract PDF text")
		return text, err
	}

	var buf bytes.Buffer
	if _, err = buf.ReadFrom(content); err != nil {
		err = errors.Wrapf(err, "failed to read PDF text")
		return text, err
	}

	text = buf.String()

	return text, err
}

// pdfTextByRows walks the document page by page, joining row texts with
// newlines. Pages that fail to decode are skipped.
func pdfTextByRows(reader *ledongpdf.Reader) (text string) {
	var builder strings.Builder

	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}

		for _, row := range rows {
			for _, word := range row.Content {
				builder.WriteString(word.S)
			}
			builder.WriteString("\n")
		}
	}

	text = builder.String()

	return text
}
