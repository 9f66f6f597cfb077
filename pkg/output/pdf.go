package output

import (
	"os"

	"github.com/pkg/errors"
)

// fallbackNote heads the .pdf-named file written when no PDF backend
// succeeds. The letter is still delivered as plain text.
const fallbackNote = `NOTE: PDF generation was unavailable on this system.
This file contains the cover letter as plain text.
Open the accompanying .txt file for the same content.

`

// PDFBackend renders a letter to a PDF file. Backends declare their own
// availability so the chain can skip those missing system dependencies.
type PDFBackend interface {
	// Name identifies the backend in logs.
	Name() (name string)
	// Available reports whether the backend can run on this system.
	Available() (available bool)
	// Render writes the letter as a PDF at path.
	Render(letter, path string) (err error)
}

// DefaultBackends is the PDF rendering chain in preference order:
// structured document layout, headless-browser HTML printing, pandoc's
// LaTeX pipeline, then a minimal hand-assembled PDF.
func DefaultBackends() (backends []PDFBackend) {
	backends = []PDFBackend{
		&fpdfBackend{},
		&chromeBackend{},
		&pandocBackend{},
		&basicBackend{},
	}
	return backends
}

// tryRender runs one backend, converting panics into errors so a broken
// backend never aborts the chain.
func tryRender(backend PDFBackend, letter, path string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("%s backend panicked: %v", backend.Name(), r)
		}
	}()

	err = backend.Render(letter, path)

	return err
}

// writeFallbackText writes the letter as plain text under the .pdf name
// with a header explaining that PDF generation was unavailable.
func writeFallbackText(letter, path string) (err error) {
	err = os.WriteFile(path, []byte(fallbackNote+letter), 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write fallback file %s", path)
	}
	return err
}
