// Package resume loads a candidate's resume from disk and extracts its
// plain text for prompt construction. Plain-text, Markdown, PDF, and DOCX
// files are supported.
package resume

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// ErrNotFound indicates the resume file does not exist.
var ErrNotFound = errors.New("resume file not found")

// ErrUnsupportedFormat indicates the file extension is not a supported
// resume format.
var ErrUnsupportedFormat = errors.New("unsupported resume format")

// ErrNoText indicates a structured file was read but yielded no usable text.
var ErrNoText = errors.New("no text could be extracted from resume")

// Load reads the resume at path and returns its plain text. The format is
// chosen by file extension before the file is touched, so an unsupported
// extension fails fast without any disk access.
func Load(path string) (text string, err error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md", ".markdown":
		text, err = loadPlainText(path)
	case ".pdf":
		text, err = loadPDF(path)
	case ".docx":
		text, err = loadDOCX(path)
	default:
		err = errors.Wrapf(ErrUnsupportedFormat, "%s (supported: .txt, .md, .markdown, .pdf, .docx)", filepath.Ext(path))
		return text, err
	}

	if err != nil {
		return text, err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		err = errors.Wrapf(ErrNoText, "file %s", path)
		return text, err
	}

	return text, err
}

func loadPlainText(path string) (text string, err error) {
	var data []byte
	data, err = os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			err = errors.Wrapf(ErrNotFound, "%s", path)
			return text, err
		}
		err = errors.Wrapf(err, "failed to read resume file %s", path)
		return text, err
	}

	text = string(data)

	return text, err
}
