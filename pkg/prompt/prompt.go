// Package prompt builds the generation prompt from a job posting, the
// candidate's resume text, and a cover letter template.
package prompt

import (
	"fmt"
)

const (
	// MaxJobDescriptionChars caps the job description text embedded in the
	// prompt to bound token usage.
	MaxJobDescriptionChars = 2000
	// MaxResumeChars caps the resume text embedded in the prompt.
	MaxResumeChars = 1000
)

// Input holds the raw material the prompt is built from.
type Input struct {
	JobDescription string
	ResumeText     string
	CompanyName    string
	PositionTitle  string
	Template       string
}

// Build constructs the cover letter generation prompt. The template text is
// embedded literally with instructions for each placeholder, so the model
// reproduces the template's paragraph structure. Job description and resume
// text are truncated before embedding.
func Build(input Input) (prompt string) {
	company := input.CompanyName
	if company == "" {
		company = "the organization"
	}

	position := input.PositionTitle
	if position == "" {
		position = "the position"
	}

	template := input.Template
	if template == "" {
		template = DefaultTemplate
	}

	prompt = fmt.Sprintf(`You are a professional cover letter writer. Please create a personalized cover letter using the template and information provided.

TEMPLATE TO FOLLOW:
%s

COMPANY: %s
POSITION: %s

JOB REQUIREMENTS (first %d chars):
%s

CANDIDATE BACKGROUND (first %d chars):
%s

INSTRUCTIONS:
1. Follow the template structure exactly
2. Replace {position} with the actual position title
3. Replace {company} with the company name
4. Replace {relevant_experience} with specific skills from the candidate's background that match the job
5. Write {body_paragraph_1} highlighting the candidate's most relevant experience for this specific job
6. Write {body_paragraph_2} showing enthusiasm and knowledge about the company/role
7. Keep it professional and concise
8. Use specific examples from the candidate's background when possible

Please write the complete cover letter now:`,
		template, company, position,
		MaxJobDescriptionChars, truncate(input.JobDescription, MaxJobDescriptionChars),
		MaxResumeChars, truncate(input.ResumeText, MaxResumeChars))

	return prompt
}

func truncate(text string, limit int) (truncated string) {
	truncated = text
	if len(truncated) > limit {
		truncated = truncated[:limit]
	}
	return truncated
}
