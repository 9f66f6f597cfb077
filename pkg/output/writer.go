package output

import (
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
)

// timestampFormat names output folders: year through second, underscored.
const timestampFormat = "20060102_150405"

// Artifact records where a letter was written.
type Artifact struct {
	TextPath   string
	PDFPath    string
	FolderPath string
}

// Writer persists cover letters as text and PDF into per-letter folders.
type Writer struct {
	outputDir string
	backends  []PDFBackend
	now       func() time.Time
}

// NewWriter creates a writer using the default PDF backend chain.
func NewWriter(outputDir string) (writer *Writer) {
	writer = NewWriterWithBackends(outputDir, DefaultBackends())
	return writer
}

// NewWriterWithBackends creates a writer with an explicit backend chain.
func NewWriterWithBackends(outputDir string, backends []PDFBackend) (writer *Writer) {
	writer = &Writer{
		outputDir: outputDir,
		backends:  backends,
		now:       time.Now,
	}
	return writer
}

// Write persists the letter. The folder and file base name come from
// baseName when given, otherwise from sanitized company+position+timestamp,
// or a plain timestamped name when neither is known. The text file is
// authoritative; PDF rendering failures degrade to an annotated text file
// under the .pdf name and are never surfaced.
func (w *Writer) Write(letter, baseName, company, position string) (artifact Artifact, err error) {
	base := w.deriveBaseName(baseName, company, position)

	folder := filepath.Join(w.outputDir, base)
	err = os.MkdirAll(folder, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create output folder %s", folder)
		return artifact, err
	}

	textPath := filepath.Join(folder, base+".txt")
	err = os.WriteFile(textPath, []byte(letter), 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write letter to %s", textPath)
		return artifact, err
	}

	pdfPath := filepath.Join(folder, base+".pdf")
	w.renderPDF(letter, pdfPath)

	artifact = Artifact{
		TextPath:   textPath,
		PDFPath:    pdfPath,
		FolderPath: folder,
	}

	return artifact, err
}

func (w *Writer) deriveBaseName(baseName, company, position string) (base string) {
	if baseName != "" {
		base = SanitizeBaseName(baseName)
		return base
	}

	timestamp := w.now().Format(timestampFormat)

	if company == "" && position == "" {
		base = "cover_letter_" + timestamp
		return base
	}

	base = SanitizeBaseName(company + "_" + position + "_" + timestamp)

	return base
}

// renderPDF walks the backend chain, falling back to an annotated text
// file when every backend is unavailable or fails.
func (w *Writer) renderPDF(letter, pdfPath string) {
	for _, backend := range w.backends {
		if !backend.Available() {
			continue
		}
		if tryRender(backend, letter, pdfPath) == nil {
			return
		}
	}

	// Errors here are swallowed too: the .txt artifact already exists and
	// PDF failure must not abort the operation.
	_ = writeFallbackText(letter, pdfPath)
}
