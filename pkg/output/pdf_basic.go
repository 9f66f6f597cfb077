package output

import (
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// basicBackend assembles a minimal valid PDF by hand: Courier text wrapped
// at a fixed width, one content stream per page. It exists as the
// last-resort renderer and trades typography for zero dependencies.
type basicBackend struct{}

const (
	basicWrapWidth    = 80
	basicLinesPerPage = 54
	basicFontSize     = 10
	basicLeading      = 13
	basicPageWidth    = 612 // US Letter, points
	basicPageHeight   = 792
	basicMargin       = 54
)

func (b *basicBackend) Name() (name string) {
	name = "basic"
	return name
}

// Available is always true; this is the terminal fallback.
func (b *basicBackend) Available() (available bool) {
	available = true
	return available
}

func (b *basicBackend) Render(letter, path string) (err error) {
	pages := paginate(wrapLines(letter, basicWrapWidth), basicLinesPerPage)

	data := assemblePDF(pages)

	err = os.WriteFile(path, data, 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write PDF %s", path)
	}

	return err
}

// wrapLines word-wraps the letter at the given width, preserving existing
// line breaks.
func wrapLines(letter string, width int) (lines []string) {
	for _, raw := range strings.Split(strings.ReplaceAll(letter, "\r\n", "\n"), "\n") {
		if strings.TrimSpace(raw) == "" {
			lines = append(lines, "")
			continue
		}

		current := ""
		for _, word := range strings.Fields(raw) {
			switch {
			case current == "":
				current = word
			case len(current)+1+len(word) <= width:
				current = current + " " + word
			default:
				lines = append(lines, current)
				current = word
			}
		}
		if current != "" {
			lines = append(lines, current)
		}
	}

	return lines
}

func paginate(lines []string, perPage int) (pages [][]string) {
	for start := 0; start < len(lines); start += perPage {
		end := start + perPage
		if end > len(lines) {
			end = len(lines)
		}
		pages = append(pages, lines[start:end])
	}

	if len(pages) == 0 {
		pages = [][]string{{}}
	}

	return pages
}

// assemblePDF builds the document: catalog, page tree, one page object and
// content stream per page, a shared Courier font, and the xref table.
func assemblePDF(pages [][]string) (data []byte) {
	var body strings.Builder
	offsets := []int{0} // object 0 is the free-list head

	appendObject := func(content string) {
		offsets = append(offsets, body.Len())
		body.WriteString(content)
	}

	header := "%PDF-1.4\n"
	body.WriteString(header)

	pageCount := len(pages)

	// Object numbering: 1 catalog, 2 pages root, 3 font, then pairs of
	// (page, contents) for each page.
	kids := make([]string, 0, pageCount)
	for i := 0; i < pageCount; i++ {
		kids = append(kids, fmt.Sprintf("%d 0 R", 4+i*2))
	}

	appendObject("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")
	appendObject(fmt.Sprintf("2 0 obj\n<< /Type /Pages /Kids [%s] /Count %d >>\nendobj\n",
		strings.Join(kids, " "), pageCount))
	appendObject("3 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Courier >>\nendobj\n")

	for i, lines := range pages {
		pageNum := 4 + i*2
		contentNum := pageNum + 1

		appendObject(fmt.Sprintf("%d 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 %d %d] /Contents %d 0 R /Resources << /Font << /F1 3 0 R >> >> >>\nendobj\n",
			pageNum, basicPageWidth, basicPageHeight, contentNum))

		stream := pageStream(lines)
		appendObject(fmt.Sprintf("%d 0 obj\n<< /Length %d >>\nstream\n%sendstream\nendobj\n",
			contentNum, len(stream), stream))
	}

	objectCount := len(offsets) - 1

	xrefOffset := body.Len()
	body.WriteString(fmt.Sprintf("xref\n0 %d\n", objectCount+1))
	body.WriteString("0000000000 65535 f \n")
	for _, offset := range offsets[1:] {
		body.WriteString(fmt.Sprintf("%010d 00000 n \n", offset))
	}
	body.WriteString(fmt.Sprintf("trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		objectCount+1, xrefOffset))

	data = []byte(body.String())

	return data
}

// pageStream emits the text operators for one page of lines.
func pageStream(lines []string) (stream string) {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("BT\n/F1 %d Tf\n%d TL\n%d %d Td\n",
		basicFontSize, basicLeading, basicMargin, basicPageHeight-basicMargin))

	for _, line := range lines {
		builder.WriteString(fmt.Sprintf("(%s) Tj\nT*\n", escapePDFText(line)))
	}

	builder.WriteString("ET\n")

	stream = builder.String()

	return stream
}

// escapePDFText escapes the PDF string delimiters and replaces bytes
// outside printable ASCII with '?' so no encoding can break the stream.
func escapePDFText(line string) (escaped string) {
	var builder strings.Builder
	for _, b := range []byte(line) {
		switch {
		case b == '\\' || b == '(' || b == ')':
			builder.WriteByte('\\')
			builder.WriteByte(b)
		case b < 32 || b > 126:
			builder.WriteByte('?')
		default:
			builder.WriteByte(b)
		}
	}

	escaped = builder.String()

	return escaped
}
