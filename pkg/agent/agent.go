// Package agent orchestrates the cover letter pipeline: fetch or accept a
// job posting, build the prompt, generate the letter, and write artifacts.
package agent

import (
	"context"

	"github.com/pkg/errors"

	"github.com/covergen/covergen/pkg/config"
	"github.com/covergen/covergen/pkg/output"
	"github.com/covergen/covergen/pkg/prompt"
	"github.com/covergen/covergen/pkg/scrape"
)

// Generator produces text from a prompt. *llm.Client satisfies it; tests
// substitute stubs.
type Generator interface {
	Generate(ctx context.Context, prompt string, maxTokens int, temperature float64) (text string, err error)
}

// Result is the outcome of one generation run.
type Result struct {
	Job      scrape.JobPosting
	Letter   string
	Artifact output.Artifact
}

// Agent runs the pipeline. Construct one per invocation; it holds no
// cross-invocation state.
type Agent struct {
	cfg       config.Config
	scraper   *scrape.Scraper
	generator Generator
	writer    *output.Writer
}

// New creates an agent from the configuration and a generation client.
func New(cfg config.Config, generator Generator) (agent *Agent) {
	agent = &Agent{
		cfg:       cfg,
		scraper:   scrape.NewScraper(cfg.RequestTimeout(), cfg.UserAgent),
		generator: generator,
		writer:    output.NewWriter(cfg.OutputDir),
	}
	return agent
}

// NewWithComponents wires explicit collaborators, for tests.
func NewWithComponents(cfg config.Config, scraper *scrape.Scraper, generator Generator, writer *output.Writer) (agent *Agent) {
	agent = &Agent{
		cfg:       cfg,
		scraper:   scraper,
		generator: generator,
		writer:    writer,
	}
	return agent
}

// GenerateFromURL fetches the job posting, generates a letter against the
// resume text, and writes the artifacts.
func (a *Agent) GenerateFromURL(ctx context.Context, jobURL, resumeText, baseName string) (result Result, err error) {
	var job scrape.JobPosting
	job, err = a.scraper.Fetch(ctx, jobURL)
	if err != nil {
		return result, err
	}

	result, err = a.generate(ctx, job, resumeText, baseName)

	return result, err
}

// GenerateFromText generates a letter from raw job description text, with
// company and position supplied by the caller (empty values degrade to
// generic phrasing in the prompt).
func (a *Agent) GenerateFromText(ctx context.Context, jobText, company, position, resumeText, baseName string) (result Result, err error) {
	job := scrape.JobPosting{
		Title:       position,
		Company:     company,
		Description: scrape.CleanText(jobText),
	}

	result, err = a.generate(ctx, job, resumeText, baseName)

	return result, err
}

// Preview fetches and extracts the job posting without generating.
func (a *Agent) Preview(ctx context.Context, jobURL string) (job scrape.JobPosting, err error) {
	job, err = a.scraper.Fetch(ctx, jobURL)
	return job, err
}

func (a *Agent) generate(ctx context.Context, job scrape.JobPosting, resumeText, baseName string) (result Result, err error) {
	result.Job = job

	// Without a configured template path, Build falls back to the
	// built-in default.
	var template string
	if a.cfg.TemplatePath != "" {
		template, err = prompt.LoadTemplate(a.cfg.TemplatePath)
		if err != nil {
			return result, err
		}
	}

	generationPrompt := prompt.Build(prompt.Input{
		JobDescription: job.Description,
		ResumeText:     resumeText,
		CompanyName:    job.Company,
		PositionTitle:  job.Title,
		Template:       template,
	})

	result.Letter, err = a.generator.Generate(ctx, generationPrompt, a.cfg.MaxTokens, a.cfg.Temperature)
	if err != nil {
		err = errors.Wrap(err, "cover letter generation failed")
		return result, err
	}

	result.Artifact, err = a.writer.Write(result.Letter, baseName, job.Company, job.Title)
	if err != nil {
		return result, err
	}

	return result, err
}
