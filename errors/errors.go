// Sentinel errors shared by the chemsvg packages.
// Callers wrap them with context and test with errors.Is.
package errors

import "github.com/cockroachdb/errors"

var (
	// Document loading and serialization.
	ErrSourceNotFound  = errors.New("source not found")
	ErrParse           = errors.New("malformed svg document")
	ErrInvalidDocument = errors.New("invalid svg document")
	ErrNoRoot          = errors.New("document has no root element")
	ErrWrite           = errors.New("cannot write svg document")

	// Batch processing.
	ErrDestination = errors.New("cannot create destination directory")
	ErrConvert     = errors.New("conversion failed")

	// Configuration.
	ErrUnknownPreset    = errors.New("unknown palette preset")
	ErrInvalidPalette   = errors.New("invalid palette")
	ErrUnknownTheme     = errors.New("unknown theme")
	ErrUnknownMatchMode = errors.New("unknown match mode")
	ErrInvalidConfig    = errors.New("invalid configuration")

	// Preview rendering.
	ErrRender = errors.New("cannot render preview")
)
