package linea

import (
	"github.com/tsawler/linea/layout"
	"github.com/tsawler/linea/reader"
)

// ExtractOptions holds configuration for outline extraction.
type ExtractOptions struct {
	hierarchy  layout.HierarchyConfig
	classifier layout.ClassifierConfig
	assembler  layout.AssemblerConfig

	// Row assembly thresholds; used only when rowsSet is true so the
	// reader's own defaults stay authoritative.
	rows    reader.RowConfig
	rowsSet bool
}

// defaultOptions returns the default extraction options.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		hierarchy:  layout.DefaultHierarchyConfig(),
		classifier: layout.DefaultClassifierConfig(),
		assembler:  layout.DefaultAssemblerConfig(),
	}
}

// clone creates a deep copy of ExtractOptions.
func (o ExtractOptions) clone() ExtractOptions {
	newOpts := ExtractOptions{
		hierarchy:  o.hierarchy,
		classifier: o.classifier,
		assembler:  o.assembler,
		rows:       o.rows,
		rowsSet:    o.rowsSet,
	}

	// Deep copy the pattern slice; the regexps themselves are immutable
	if o.classifier.ExcludePatterns != nil {
		newOpts.classifier.ExcludePatterns = append(
			newOpts.classifier.ExcludePatterns[:0:0],
			o.classifier.ExcludePatterns...,
		)
	}

	return newOpts
}
