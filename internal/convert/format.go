// SPDX-License-Identifier: MPL-2.0

package convert

import (
	"errors"
	"fmt"
)

const (
	// FormatPDF exports to PDF through a PDF engine.
	FormatPDF Format = "pdf"
	// FormatDOCX exports to Office Open XML.
	FormatDOCX Format = "docx"
	// FormatHTML exports to standalone HTML.
	FormatHTML Format = "html"
	// FormatEPUB exports to EPUB v3.
	FormatEPUB Format = "epub"
	// FormatODT exports to OpenDocument text.
	FormatODT Format = "odt"

	// EngineAuto lets the converter pick its own PDF engine.
	EngineAuto PDFEngine = "auto"
	// EngineWKHTMLToPDF renders PDF through wkhtmltopdf.
	EngineWKHTMLToPDF PDFEngine = "wkhtmltopdf"
	// EngineWeasyPrint renders PDF through WeasyPrint.
	EngineWeasyPrint PDFEngine = "weasyprint"
	// EnginePrince renders PDF through Prince.
	EnginePrince PDFEngine = "prince"
	// EngineXeLaTeX renders PDF through XeLaTeX.
	EngineXeLaTeX PDFEngine = "xelatex"
	// EngineLuaLaTeX renders PDF through LuaLaTeX.
	EngineLuaLaTeX PDFEngine = "lualatex"
)

var (
	// ErrInvalidFormat is the sentinel error wrapped by InvalidFormatError.
	ErrInvalidFormat = errors.New("invalid export format")
	// ErrInvalidPDFEngine is the sentinel error wrapped by InvalidPDFEngineError.
	ErrInvalidPDFEngine = errors.New("invalid pdf engine")
)

type (
	// Format identifies one of the supported export targets.
	Format string

	// InvalidFormatError is returned when a Format value is not one of
	// the supported export targets. It wraps ErrInvalidFormat for
	// errors.Is() compatibility.
	InvalidFormatError struct {
		Value Format
	}

	// PDFEngine selects the engine the converter uses for PDF output.
	// The zero value ("") is valid and means the same as EngineAuto.
	PDFEngine string

	// InvalidPDFEngineError is returned when a PDFEngine value is not
	// recognized. It wraps ErrInvalidPDFEngine for errors.Is() compatibility.
	InvalidPDFEngineError struct {
		Value PDFEngine
	}
)

// Formats returns the supported export formats in display order.
func Formats() []Format {
	return []Format{FormatPDF, FormatDOCX, FormatHTML, FormatEPUB, FormatODT}
}

// PDFEngines returns the selectable PDF engines in display order.
func PDFEngines() []PDFEngine {
	return []PDFEngine{
		EngineAuto, EngineWKHTMLToPDF, EngineWeasyPrint,
		EnginePrince, EngineXeLaTeX, EngineLuaLaTeX,
	}
}

// Error implements the error interface.
func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid export format %q (supported: pdf, docx, html, epub, odt)", string(e.Value))
}

// Unwrap returns ErrInvalidFormat so callers can use errors.Is for
// programmatic detection.
func (e *InvalidFormatError) Unwrap() error { return ErrInvalidFormat }

// IsValid returns whether the Format is one of the supported export
// targets, and a list of validation errors if it is not.
func (f Format) IsValid() (bool, []error) {
	switch f {
	case FormatPDF, FormatDOCX, FormatHTML, FormatEPUB, FormatODT:
		return true, nil
	default:
		return false, []error{&InvalidFormatError{Value: f}}
	}
}

// Extension returns the output filename extension for the format,
// including the leading dot.
func (f Format) Extension() string {
	return "." + string(f)
}

// String returns the format identifier.
func (f Format) String() string { return string(f) }

// Error implements the error interface.
func (e *InvalidPDFEngineError) Error() string {
	return fmt.Sprintf("invalid pdf engine %q (supported: auto, wkhtmltopdf, weasyprint, prince, xelatex, lualatex)", string(e.Value))
}

// Unwrap returns ErrInvalidPDFEngine so callers can use errors.Is for
// programmatic detection.
func (e *InvalidPDFEngineError) Unwrap() error { return ErrInvalidPDFEngine }

// IsValid returns whether the PDFEngine is recognized, and a list of
// validation errors if it is not. The zero value is valid.
func (p PDFEngine) IsValid() (bool, []error) {
	switch p {
	case "", EngineAuto, EngineWKHTMLToPDF, EngineWeasyPrint, EnginePrince, EngineXeLaTeX, EngineLuaLaTeX:
		return true, nil
	default:
		return false, []error{&InvalidPDFEngineError{Value: p}}
	}
}

// IsAuto reports whether the converter should pick its own engine,
// which is the case for both the explicit "auto" selector and the
// zero value.
func (p PDFEngine) IsAuto() bool {
	return p == "" || p == EngineAuto
}

// String returns the engine identifier.
func (p PDFEngine) String() string { return string(p) }
