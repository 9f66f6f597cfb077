package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/covergen/covergen/pkg/config"
	"github.com/covergen/covergen/pkg/scrape"
)

const descriptionPreviewChars = 500

//nolint:gochecknoglobals // Cobra boilerplate
var previewCmd = &cobra.Command{
	Use:   "preview <jobUrl>",
	Short: "Show what would be extracted from a job posting URL",
	Long: `Fetches the job posting and prints the extracted title, company, and the
start of the description, without generating anything. Useful for checking
extraction quality before spending tokens.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		jobURL := args[0]
		ctx := context.Background()

		// Preview needs no API key; use fetch settings from the config if
		// one exists, defaults otherwise.
		cfg, loadErr := config.Load(getConfigFile())
		if loadErr != nil {
			cfg = config.Config{RequestTimeoutSeconds: config.DefaultRequestTimeoutSeconds}
		}

		scraper := scrape.NewScraper(cfg.RequestTimeout(), cfg.UserAgent)

		var job scrape.JobPosting
		job, err = scraper.Fetch(ctx, jobURL)
		if err != nil {
			return err
		}

		description := job.Description
		if len(description) > descriptionPreviewChars {
			description = description[:descriptionPreviewChars] + "..."
		}

		fmt.Printf("Title:   %s\n", job.Title)
		fmt.Printf("Company: %s\n", job.Company)
		fmt.Printf("URL:     %s\n", job.SourceURL)
		fmt.Println()
		fmt.Printf("Description (first %d chars):\n", descriptionPreviewChars)
		fmt.Println(description)

		return err
	},
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(previewCmd)
}
