package main

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nao1215/pdfredact/internal/config"
	"github.com/spf13/cobra"
)

//go:embed templates/pdfredact.yaml
var configTemplate embed.FS

const templatePath = "templates/pdfredact.yaml"

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a pdfredact configuration file",
		Long: `Init writes a commented .pdfredact configuration file containing every
available setting with its default value.

Examples:
  # Create .pdfredact in the current directory
  pdfredact init

  # Create the config file at a specific path
  pdfredact init -o ~/.config/pdfredact/config.yaml

  # Overwrite an existing file
  pdfredact init -f`,
		Args: cobra.NoArgs,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", config.DefaultConfigFile,
		"Output file path for the configuration")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing configuration file")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("configuration file already exists: %s (use -f to overwrite)", outputPath)
		}
	}

	content, err := configTemplate.ReadFile(templatePath)
	if err != nil {
		return fmt.Errorf("failed to read config template: %w", err)
	}

	if err := ensureParentDir(outputPath); err != nil {
		return err
	}
	if err := os.WriteFile(outputPath, content, 0600); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created configuration file: %s\n", outputPath)
	fmt.Fprintln(out, "\nEdit this file to point pdfredact at your redaction service:")
	fmt.Fprintln(out, "  - api_url or host")
	fmt.Fprintln(out, "  - timeout and batch size")
	fmt.Fprintln(out, "  - watch debounce and ignore patterns")
	return nil
}

// ensureParentDir creates the parent directory of path if needed.
func ensureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return nil
}
