// Command resumematch scores resumes against job descriptions offline,
// using the same extraction and matching as the API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// version is set with -ldflags "-X main.version=..."
var version = "dev"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "resumematch",
		Short:         "Keyword match between a resume and a job description",
		Long:          "resumematch extracts text from a resume and a job description (PDF, DOCX or TXT) and scores their weighted keyword overlap.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("taxonomy", os.Getenv("TAXONOMY_FILE"), "YAML taxonomy file (default: built-in keywords)")
	root.PersistentFlags().String("mode", os.Getenv("SCORING_MODE"), "Scoring mode: taxonomy or posting")

	root.AddCommand(newAnalyzeCmd(), newTaxonomyCmd(), newVersionCmd())
	return root
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
