package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/covergen/covergen/pkg/agent"
	"github.com/covergen/covergen/pkg/config"
	"github.com/covergen/covergen/pkg/llm"
	"github.com/covergen/covergen/pkg/resume"
)

const letterPreviewChars = 300

// loadConfigAndClient loads the configuration and builds the generation
// client. The caller owns closing the client.
func loadConfigAndClient(ctx context.Context) (cfg config.Config, client *llm.Client, err error) {
	cfg, err = config.Load(getConfigFile())
	if err != nil {
		return cfg, client, err
	}

	client, err = llm.NewClient(ctx, llm.ProviderConfig{
		Kind:   cfg.ProviderKind(),
		APIKey: cfg.APIKey,
		Model:  cfg.Model,
	}, cfg.Retries)
	if err != nil {
		err = errors.Wrap(err, "failed to initialize LLM client")
		return cfg, client, err
	}

	return cfg, client, err
}

// resolveResume returns the resume text from the file flag, the text flag,
// or an interactive prompt, in that order.
func resolveResume(resumePath, resumeText string) (text string, err error) {
	if resumePath != "" {
		text, err = resume.Load(resumePath)
		if err != nil {
			err = errors.Wrapf(err, "failed to load resume from %s", resumePath)
			return text, err
		}
		return text, err
	}

	if resumeText != "" {
		text = resumeText
		return text, err
	}

	text, err = promptForResume()

	return text, err
}

// promptForResume reads multi-line resume text from stdin, terminated by an
// empty line.
func promptForResume() (text string, err error) {
	fmt.Println("Paste your resume text below. Finish with an empty line:")

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var lines []string
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			break
		}
		lines = append(lines, line)
	}

	err = scanner.Err()
	if err != nil {
		err = errors.Wrap(err, "failed to read resume from stdin")
		return text, err
	}

	text = strings.TrimSpace(strings.Join(lines, "\n"))
	if text == "" {
		err = errors.New("no resume text provided (use --resume or --resume-text)")
		return text, err
	}

	return text, err
}

// printResult reports where the artifacts were written and previews the
// opening of the letter.
func printResult(result agent.Result) {
	fmt.Println("✓ Cover letter generation complete")
	fmt.Println()

	if result.Job.Title != "" {
		fmt.Printf("Position: %s\n", result.Job.Title)
	}
	if result.Job.Company != "" {
		fmt.Printf("Company:  %s\n", result.Job.Company)
	}

	fmt.Printf("Text:     %s\n", result.Artifact.TextPath)
	fmt.Printf("PDF:      %s\n", result.Artifact.PDFPath)
	fmt.Println()

	preview := result.Letter
	if len(preview) > letterPreviewChars {
		preview = preview[:letterPreviewChars] + "..."
	}

	fmt.Printf("Preview (first %d characters):\n", letterPreviewChars)
	fmt.Println(preview)
}
