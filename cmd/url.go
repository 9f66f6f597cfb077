package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/covergen/covergen/pkg/agent"
)

//nolint:gochecknoglobals // Cobra boilerplate
var urlResumePath string

//nolint:gochecknoglobals // Cobra boilerplate
var urlResumeText string

//nolint:gochecknoglobals // Cobra boilerplate
var urlOutputName string

//nolint:gochecknoglobals // Cobra boilerplate
var urlCmd = &cobra.Command{
	Use:   "url <jobUrl>",
	Short: "Generate a cover letter from a job posting URL",
	Long: `Fetches the job posting at the given URL, extracts the title, company,
and description, and generates a cover letter against your resume.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		jobURL := args[0]
		ctx := context.Background()

		cfg, client, err := loadConfigAndClient(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = client.Close() }()

		var resumeText string
		resumeText, err = resolveResume(urlResumePath, urlResumeText)
		if err != nil {
			return err
		}

		a := agent.New(cfg, client)

		if getVerbose() {
			fmt.Printf("Fetching job posting from %s\n", jobURL)
		}

		spin := newSpinner("Generating cover letter...")
		if !getVerbose() {
			spin.start()
		}

		result, err := a.GenerateFromURL(ctx, jobURL, resumeText, urlOutputName)

		if !getVerbose() {
			spin.stopSpinner()
		}

		if err != nil {
			return err
		}

		printResult(result)

		return err
	},
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(urlCmd)
	urlCmd.Flags().StringVarP(&urlResumePath, "resume", "r", "", "Path to resume file (.txt, .md, .pdf, or .docx)")
	urlCmd.Flags().StringVar(&urlResumeText, "resume-text", "", "Resume text supplied inline")
	urlCmd.Flags().StringVarP(&urlOutputName, "output", "o", "", "Base name for the output folder")
}
