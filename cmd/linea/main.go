package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "linea",
	Short: "Linea - PDF outline extraction",
	Long: `Linea infers a document's heading structure (title, H1-H3 headings
with page numbers) from a PDF's rendered text geometry, without markup,
tags, or an ML model.

It ranks the document's font sizes into hierarchy levels, filters
candidate runs through pattern and plausibility rules, and emits one
JSON outline per document.

Use "linea extract" for a single file or "linea batch" for a directory,
S3 bucket, or crawled website.`,
	Version: version,
}

func init() {
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(batchCmd)
}
