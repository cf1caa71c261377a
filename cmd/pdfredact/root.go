package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for pdfredact.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pdfredact",
		Short: "Submit PDFs to a PII redaction service and report the findings",
		Long: `pdfredact uploads PDF documents to a PII redaction service and reports
what was redacted: per-category redaction counts and the redacted text of
every page.

The service is reached at http://localhost:8001 unless configured otherwise
with --api-url, the PDFREDACT_API_URL environment variable or the api_url
setting of the .pdfredact configuration file.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")

	cmd.AddCommand(NewRedactCmd())
	cmd.AddCommand(NewWatchCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
