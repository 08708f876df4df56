// Package export renders the portfolio résumé as a PDF.
package export

import "errors"

// Result holds a generated export file.
type Result struct {
	Data     []byte
	Filename string
	MimeType string
}

var (
	// ErrPDFDependencyMissing indicates PDF export runtime dependencies are unavailable.
	ErrPDFDependencyMissing = errors.New("export pdf dependency missing")

	// ErrNoProfile indicates there is no profile to export.
	ErrNoProfile = errors.New("no profile to export")
)
