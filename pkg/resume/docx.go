package resume

import (
	"archive/zip"
	"encoding/xml"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// docxDocumentPath is the main document part inside a DOCX archive.
const docxDocumentPath = "word/document.xml"

// loadDOCX extracts text from a DOCX resume. A DOCX file is a zip archive;
// the text lives in word/document.xml, where runs of text sit inside <w:t>
// elements and paragraphs end with </w:p>.
func loadDOCX(path string) (text string, err error) {
	if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
		err = errors.Wrapf(ErrNotFound, "%s", path)
		return text, err
	}

	var archive *zip.ReadCloser
	archive, err = zip.OpenReader(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to open DOCX resume %s", path)
		return text, err
	}
	defer archive.Close()

	var document io.ReadCloser
	for _, file := range archive.File {
		if file.Name == docxDocumentPath {
			document, err = file.Open()
			if err != nil {
				err = errors.Wrapf(err, "failed to open %s in %s", docxDocumentPath, path)
				return text, err
			}
			break
		}
	}

	if document == nil {
		err = errors.Errorf("%s missing from DOCX file %s", docxDocumentPath, path)
		return text, err
	}
	defer document.Close()

	text, err = docxText(document)
	if err != nil {
		err = errors.Wrapf(err, "failed to parse %s", path)
		return text, err
	}

	return text, err
}

// docxText walks the document XML token stream, collecting character data
// inside <w:t> elements and emitting newlines at paragraph, line-break, and
// table-cell boundaries.
func docxText(document io.Reader) (text string, err error) {
	var builder strings.Builder
	decoder := xml.NewDecoder(document)

	inText := false
	for {
		token, tokenErr := decoder.Token()
		if tokenErr == io.EOF {
			break
		}
		if tokenErr != nil {
			err = errors.Wrapf(tokenErr, "malformed document XML")
			return text, err
		}

		switch element := token.(type) {
		case xml.StartElement:
			if element.Name.Local == "t" {
				inText = true
			}
			if element.Name.Local == "br" {
				builder.WriteString("\n")
			}
		case xml.EndElement:
			switch element.Name.Local {
			case "t":
				inText = false
			case "p", "tc":
				builder.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				builder.Write(element)
			}
		}
	}

	text = builder.String()

	return text, err
}
