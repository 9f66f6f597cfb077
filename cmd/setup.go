package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/covergen/covergen/pkg/config"
	"github.com/covergen/covergen/pkg/prompt"
)

//nolint:gochecknoglobals // Cobra boilerplate
var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create the config file, template, and output directory",
	Long: `Creates the default configuration file, the cover letter template, and
the output directory. Existing files are left untouched. Edit the config
file afterwards to set your API key.`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		configPath := getConfigFile()
		if configPath == "" {
			configPath, err = config.DefaultPath()
			if err != nil {
				return err
			}
		}

		err = config.InitConfig(configPath)
		switch {
		case err == nil:
			fmt.Printf("✓ Created config file: %s\n", configPath)
		case strings.Contains(err.Error(), "already exists"):
			fmt.Printf("Config file already exists: %s\n", configPath)
			err = nil
		default:
			return err
		}

		// Read the config back (without validation, which would reject the
		// placeholder API key) to find the template and output paths.
		var cfg config.Config
		cfg, err = readConfigFile(configPath)
		if err != nil {
			return err
		}

		if cfg.TemplatePath != "" {
			if _, statErr := os.Stat(cfg.TemplatePath); os.IsNotExist(statErr) {
				err = prompt.CreateDefaultTemplate(cfg.TemplatePath)
				if err != nil {
					return err
				}
				fmt.Printf("✓ Created template file: %s\n", cfg.TemplatePath)
			} else {
				fmt.Printf("Template file already exists: %s\n", cfg.TemplatePath)
			}
		}

		if cfg.OutputDir != "" {
			err = os.MkdirAll(cfg.OutputDir, 0750)
			if err != nil {
				err = errors.Wrapf(err, "failed to create output directory: %s", cfg.OutputDir)
				return err
			}
			fmt.Printf("✓ Output directory ready: %s\n", cfg.OutputDir)
		}

		fmt.Println()
		fmt.Printf("Edit %s and set your API key, then run 'covergen url <jobUrl>'.\n", configPath)

		return err
	},
}

// readConfigFile parses the config file without env overrides or
// validation.
func readConfigFile(path string) (cfg config.Config, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to read config file: %s", path)
		return cfg, err
	}

	err = json.Unmarshal(data, &cfg)
	if err != nil {
		err = errors.Wrapf(err, "failed to parse config file: %s", path)
		return cfg, err
	}

	return cfg, err
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(setupCmd)
}
