package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tsawler/linea"
	"github.com/tsawler/linea/layout"
)

var (
	extractTitlePolicy string
	extractMaxLength   int
	extractNoShape     bool
	extractToStdout    bool
)

var extractCmd = &cobra.Command{
	Use:   "extract <input.pdf> [output.json]",
	Short: "Extract the outline of a single PDF",
	Long: `Extract the heading outline of one PDF and write it as JSON.

With no output argument, the outline is written next to the input with
a .json extension.

Examples:
  # Write report.json next to report.pdf
  linea extract report.pdf

  # Explicit output path
  linea extract report.pdf /tmp/outline.json

  # Print to stdout, allow the title anywhere in the document
  linea extract report.pdf --stdout --title-policy any-page
`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringVar(&extractTitlePolicy, "title-policy", "first-page", "Where the title may come from: first-page or any-page")
	extractCmd.Flags().IntVar(&extractMaxLength, "max-heading-length", 200, "Maximum heading length in characters")
	extractCmd.Flags().BoolVar(&extractNoShape, "no-heading-shape", false, "Disable the casing/punctuation plausibility rule")
	extractCmd.Flags().BoolVar(&extractToStdout, "stdout", false, "Print the outline instead of writing a file")
}

func runExtract(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	extractor := linea.Open(inputPath).
		MaxHeadingLength(extractMaxLength).
		HeadingShape(!extractNoShape)

	switch extractTitlePolicy {
	case "first-page":
	case "any-page":
		extractor = extractor.TitlePolicy(layout.TitleAnyPage)
	default:
		return fmt.Errorf("invalid title policy %q: must be first-page or any-page", extractTitlePolicy)
	}

	data, err := extractor.JSON()
	if err != nil {
		return err
	}

	if extractToStdout {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}

	outputPath := strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ".json"
	if len(args) == 2 {
		outputPath = args[1]
	}
	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", outputPath, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Outline written to %s\n", outputPath)
	return nil
}
