package prompt

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// DefaultTemplate is the built-in cover letter template: a four-paragraph
// business letter with placeholders the generation step fills in.
const DefaultTemplate = `Dear Hiring Manager,

I am writing to express my strong interest in the {position} position at {company}. With my background in {relevant_experience}, I am excited about the opportunity to contribute to your team.

{body_paragraph_1}

{body_paragraph_2}

Thank you for considering my application. I look forward to hearing from you soon.

Sincerely,
[Your Name]`

// LoadTemplate reads the cover letter template at path, creating the
// default template there first if the file does not exist.
func LoadTemplate(path string) (template string, err error) {
	if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
		err = CreateDefaultTemplate(path)
		if err != nil {
			return template, err
		}
	}

	var data []byte
	data, err = os.ReadFile(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to read template file %s", path)
		return template, err
	}

	template = string(data)

	return template, err
}

// CreateDefaultTemplate writes the built-in template to path, creating
// parent directories as needed.
func CreateDefaultTemplate(path string) (err error) {
	err = os.MkdirAll(filepath.Dir(path), 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create template directory for %s", path)
		return err
	}

	err = os.WriteFile(path, []byte(DefaultTemplate), 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write default template to %s", path)
		return err
	}

	return err
}
