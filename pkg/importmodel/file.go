// Package importmodel defines the data model for source file import analysis.
package importmodel

import "github.com/Sumatoshi-tech/depfang/internal/pysrc"

// File represents one scanned source file: its path relative to the project
// root, the dotted module name it maps to, and the imports parsed out of it.
type File struct {
	Path      string
	Module    string
	IsPackage bool
	Lang      string
	Imports   []pysrc.ImportRecord
}

// Failure records a file whose parse was aborted by a grammar error. The
// file is reported and excluded from the graph; the scan continues.
type Failure struct {
	Path string
	Err  error
}
