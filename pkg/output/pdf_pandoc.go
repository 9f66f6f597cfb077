package output

import (
	"os"
	"os/exec"
	"path/filepath"

	"github.com/pkg/errors"
)

// pandocBackend renders the letter through pandoc's markdown-to-PDF
// pipeline. Plain text is valid markdown, so the letter passes through
// unchanged apart from paragraph layout.
type pandocBackend struct{}

func (b *pandocBackend) Name() (name string) {
	name = "pandoc"
	return name
}

// Available reports whether pandoc is on PATH. Pandoc additionally needs a
// LaTeX engine; a missing engine surfaces as a render error and the chain
// moves on.
func (b *pandocBackend) Available() (available bool) {
	_, err := exec.LookPath("pandoc")
	available = err == nil
	return available
}

func (b *pandocBackend) Render(letter, path string) (err error) {
	markdownPath := filepath.Join(filepath.Dir(path), ".letter.md")

	err = os.WriteFile(markdownPath, []byte(letter), 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write markdown file: %s", markdownPath)
		return err
	}
	defer func() { _ = os.Remove(markdownPath) }()

	//nolint:noctx // Context not available for exec.Command - pandoc is a long-running subprocess
	cmd := exec.Command(
		"pandoc",
		"-f", "markdown",
		"-t", "pdf",
		"-o", path,
		"--variable", "geometry:margin=1in",
		"--variable", "fontsize=12pt",
		markdownPath,
	)

	var output []byte
	output, err = cmd.CombinedOutput()
	if err != nil {
		err = errors.Wrapf(err, "pandoc failed: %s", string(output))
		return err
	}

	return err
}
