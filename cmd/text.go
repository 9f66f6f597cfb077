package cmd

import (
	"context"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/covergen/covergen/pkg/agent"
)

//nolint:gochecknoglobals // Cobra boilerplate
var textResumePath string

//nolint:gochecknoglobals // Cobra boilerplate
var textResumeText string

//nolint:gochecknoglobals // Cobra boilerplate
var textCompany string

//nolint:gochecknoglobals // Cobra boilerplate
var textPosition string

//nolint:gochecknoglobals // Cobra boilerplate
var textOutputName string

//nolint:gochecknoglobals // Cobra boilerplate
var textCmd = &cobra.Command{
	Use:   "text <jobFile>",
	Short: "Generate a cover letter from a job description file",
	Long: `Reads the job description from a plain text file and generates a cover
letter against your resume. Company and position are taken from flags since
raw text carries no structure to extract them from.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		jobFile := args[0]
		ctx := context.Background()

		var jobText []byte
		jobText, err = os.ReadFile(jobFile)
		if err != nil {
			err = errors.Wrapf(err, "failed to read job description file: %s", jobFile)
			return err
		}

		cfg, client, err := loadConfigAndClient(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = client.Close() }()

		var resumeText string
		resumeText, err = resolveResume(textResumePath, textResumeText)
		if err != nil {
			return err
		}

		a := agent.New(cfg, client)

		spin := newSpinner("Generating cover letter...")
		if !getVerbose() {
			spin.start()
		}

		result, err := a.GenerateFromText(ctx, string(jobText), textCompany, textPosition, resumeText, textOutputName)

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
	rootCmd.AddCommand(textCmd)
	textCmd.Flags().StringVarP(&textResumePath, "resume", "r", "", "Path to resume file (.txt, .md, .pdf, or .docx)")
	textCmd.Flags().StringVar(&textResumeText, "resume-text", "", "Resume text supplied inline")
	textCmd.Flags().StringVar(&textCompany, "company", "", "Company name")
	textCmd.Flags().StringVar(&textPosition, "position", "", "Position title")
	textCmd.Flags().StringVarP(&textOutputName, "output", "o", "", "Base name for the output folder")
}
