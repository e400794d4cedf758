// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// ExportFormatPDF targets PDF output through a PDF engine.
	ExportFormatPDF ExportFormat = "pdf"
	// ExportFormatDOCX targets Office Open XML output.
	ExportFormatDOCX ExportFormat = "docx"
	// ExportFormatHTML targets standalone HTML output.
	ExportFormatHTML ExportFormat = "html"
	// ExportFormatEPUB targets EPUB v3 output.
	ExportFormatEPUB ExportFormat = "epub"
	// ExportFormatODT targets OpenDocument text output.
	ExportFormatODT ExportFormat = "odt"

	// PDFEngineAuto lets the converter pick its own PDF engine.
	PDFEngineAuto PDFEngine = "auto"
	// PDFEngineWKHTMLToPDF renders PDF through wkhtmltopdf.
	PDFEngineWKHTMLToPDF PDFEngine = "wkhtmltopdf"
	// PDFEngineWeasyPrint renders PDF through WeasyPrint.
	PDFEngineWeasyPrint PDFEngine = "weasyprint"
	// PDFEnginePrince renders PDF through Prince.
	PDFEnginePrince PDFEngine = "prince"
	// PDFEngineXeLaTeX renders PDF through XeLaTeX.
	PDFEngineXeLaTeX PDFEngine = "xelatex"
	// PDFEngineLuaLaTeX renders PDF through LuaLaTeX.
	PDFEngineLuaLaTeX PDFEngine = "lualatex"

	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"
)

var (
	// ErrInvalidExportFormat is returned when an ExportFormat value is not recognized.
	ErrInvalidExportFormat = errors.New("invalid export format")
	// ErrInvalidConfigPDFEngine is returned when a config PDFEngine value is not recognized.
	ErrInvalidConfigPDFEngine = errors.New("invalid pdf engine")
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidToolPath is returned when a ToolPath value is whitespace-only.
	ErrInvalidToolPath = errors.New("invalid tool path")
	// ErrInvalidOutputDirPath is returned when an OutputDirPath value is whitespace-only.
	ErrInvalidOutputDirPath = errors.New("invalid output dir path")
	// ErrInvalidToolConfig is the sentinel error wrapped by InvalidToolConfigError.
	ErrInvalidToolConfig = errors.New("invalid tool config")
	// ErrInvalidExportConfig is the sentinel error wrapped by InvalidExportConfigError.
	ErrInvalidExportConfig = errors.New("invalid export config")
	// ErrInvalidUIConfig is the sentinel error wrapped by InvalidUIConfigError.
	ErrInvalidUIConfig = errors.New("invalid UI config")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ExportFormat identifies a default output format.
	// Defined locally to avoid coupling config to internal/convert;
	// the command layer casts to convert.Format at the boundary.
	ExportFormat string

	// InvalidExportFormatError is returned when an ExportFormat value is not recognized.
	// It wraps ErrInvalidExportFormat for errors.Is() compatibility.
	InvalidExportFormatError struct {
		Value ExportFormat
	}

	// PDFEngine names the engine the converter uses for PDF output.
	// Defined locally to avoid coupling config to internal/convert;
	// the command layer casts to convert.PDFEngine at the boundary.
	// The zero value ("") is valid and means the same as PDFEngineAuto.
	PDFEngine string

	// InvalidConfigPDFEngineError is returned when a config PDFEngine value is not
	// recognized. It wraps ErrInvalidConfigPDFEngine for errors.Is() compatibility.
	InvalidConfigPDFEngineError struct {
		Value PDFEngine
	}

	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// ToolPath represents a filesystem path to the converter executable.
	// The zero value ("") is valid and means "resolve the executable
	// automatically". Non-zero values must not be whitespace-only.
	ToolPath string

	// InvalidToolPathError is returned when a ToolPath value is
	// non-empty but whitespace-only.
	InvalidToolPathError struct {
		Value ToolPath
	}

	// OutputDirPath represents a filesystem path to the export output directory.
	// The zero value ("") is valid and means "export alongside the document".
	// Non-zero values must not be whitespace-only.
	OutputDirPath string

	// InvalidOutputDirPathError is returned when an OutputDirPath value is
	// non-empty but whitespace-only.
	InvalidOutputDirPathError struct {
		Value OutputDirPath
	}

	// InvalidToolConfigError is returned when a ToolConfig has invalid fields.
	// It wraps ErrInvalidToolConfig for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidToolConfigError struct {
		FieldErrors []error
	}

	// InvalidExportConfigError is returned when an ExportConfig has invalid fields.
	// It wraps ErrInvalidExportConfig for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidExportConfigError struct {
		FieldErrors []error
	}

	// InvalidUIConfigError is returned when a UIConfig has invalid fields.
	// It wraps ErrInvalidUIConfig for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidUIConfigError struct {
		FieldErrors []error
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all sub-components.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// ToolConfig selects the external converter executable.
	ToolConfig struct {
		// Path points at the converter executable; empty means resolve automatically.
		Path ToolPath `json:"path,omitempty" mapstructure:"path"`
		// PDFEngine names the engine used for PDF output.
		PDFEngine PDFEngine `json:"pdf_engine,omitempty" mapstructure:"pdf_engine"`
	}

	// ExportConfig sets defaults for the export command.
	ExportConfig struct {
		// Format is the default output format when --to is not given.
		Format ExportFormat `json:"format,omitempty" mapstructure:"format"`
		// OutputDir is where exported artifacts land. Relative paths are
		// resolved against the document's directory.
		OutputDir OutputDirPath `json:"output_dir,omitempty" mapstructure:"output_dir"`
		// ExtraArgs is a shell-style argument string appended to every
		// converter invocation.
		ExtraArgs string `json:"extra_args,omitempty" mapstructure:"extra_args"`
		// OpenAfter opens the exported artifact with the platform opener.
		OpenAfter bool `json:"open_after,omitempty" mapstructure:"open_after"`
	}

	// UIConfig configures terminal output.
	UIConfig struct {
		// ColorScheme sets the color scheme
		ColorScheme ColorScheme `json:"color_scheme,omitempty" mapstructure:"color_scheme"`
		// Verbose enables verbose output
		Verbose bool `json:"verbose,omitempty" mapstructure:"verbose"`
	}

	// Config holds the application configuration.
	Config struct {
		// Tool selects the external converter executable.
		Tool ToolConfig `json:"tool,omitempty" mapstructure:"tool"`
		// Export sets defaults for the export command.
		Export ExportConfig `json:"export,omitempty" mapstructure:"export"`
		// UI configures terminal output.
		UI UIConfig `json:"ui,omitempty" mapstructure:"ui"`
	}
)

// IsValid returns whether the ToolConfig has valid fields.
// It delegates to Path.IsValid() and PDFEngine.IsValid().
func (c ToolConfig) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Path.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.PDFEngine.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidToolConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidToolConfigError.
func (e *InvalidToolConfigError) Error() string {
	return fmt.Sprintf("invalid tool config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidToolConfig for errors.Is() compatibility.
func (e *InvalidToolConfigError) Unwrap() error { return ErrInvalidToolConfig }

// IsValid returns whether the ExportConfig has valid fields.
// It delegates to Format.IsValid() and OutputDir.IsValid().
// ExtraArgs is free-form and OpenAfter is a bool; neither needs validation.
func (c ExportConfig) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Format.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.OutputDir.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidExportConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidExportConfigError.
func (e *InvalidExportConfigError) Error() string {
	return fmt.Sprintf("invalid export config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidExportConfig for errors.Is() compatibility.
func (e *InvalidExportConfigError) Unwrap() error { return ErrInvalidExportConfig }

// IsValid returns whether the UIConfig has valid fields.
// It delegates to ColorScheme.IsValid(); bool fields need no validation.
func (c UIConfig) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.ColorScheme.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidUIConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidUIConfigError.
func (e *InvalidUIConfigError) Error() string {
	return fmt.Sprintf("invalid UI config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidUIConfig for errors.Is() compatibility.
func (e *InvalidUIConfigError) Unwrap() error { return ErrInvalidUIConfig }

// IsValid returns whether the Config has valid fields.
// It delegates to Tool.IsValid(), Export.IsValid(), and UI.IsValid().
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Tool.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Export.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.UI.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// String returns the string representation of the ToolPath.
func (p ToolPath) String() string { return string(p) }

// IsValid returns whether the ToolPath is valid.
// The zero value ("") is valid (means "resolve automatically").
// Non-zero values must not be whitespace-only.
func (p ToolPath) IsValid() (bool, []error) {
	if p == "" {
		return true, nil
	}
	if strings.TrimSpace(string(p)) == "" {
		return false, []error{&InvalidToolPathError{Value: p}}
	}
	return true, nil
}

// Error implements the error interface for InvalidToolPathError.
func (e *InvalidToolPathError) Error() string {
	return fmt.Sprintf("invalid tool path %q: non-empty value must not be whitespace-only", e.Value)
}

// Unwrap returns ErrInvalidToolPath for errors.Is() compatibility.
func (e *InvalidToolPathError) Unwrap() error { return ErrInvalidToolPath }

// String returns the string representation of the OutputDirPath.
func (p OutputDirPath) String() string { return string(p) }

// IsValid returns whether the OutputDirPath is valid.
// The zero value ("") is valid (means "export alongside the document").
// Non-zero values must not be whitespace-only.
func (p OutputDirPath) IsValid() (bool, []error) {
	if p == "" {
		return true, nil
	}
	if strings.TrimSpace(string(p)) == "" {
		return false, []error{&InvalidOutputDirPathError{Value: p}}
	}
	return true, nil
}

// Error implements the error interface for InvalidOutputDirPathError.
func (e *InvalidOutputDirPathError) Error() string {
	return fmt.Sprintf("invalid output dir path %q: non-empty value must not be whitespace-only", e.Value)
}

// Unwrap returns ErrInvalidOutputDirPath for errors.Is() compatibility.
func (e *InvalidOutputDirPathError) Unwrap() error { return ErrInvalidOutputDirPath }

// Error implements the error interface for InvalidExportFormatError.
func (e *InvalidExportFormatError) Error() string {
	return fmt.Sprintf("invalid export format %q (valid: pdf, docx, html, epub, odt)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidExportFormatError) Unwrap() error {
	return ErrInvalidExportFormat
}

// String returns the string representation of the ExportFormat.
func (f ExportFormat) String() string { return string(f) }

// IsValid returns whether the ExportFormat is one of the supported formats,
// and a list of validation errors if it is not.
func (f ExportFormat) IsValid() (bool, []error) {
	switch f {
	case ExportFormatPDF, ExportFormatDOCX, ExportFormatHTML, ExportFormatEPUB, ExportFormatODT:
		return true, nil
	default:
		return false, []error{&InvalidExportFormatError{Value: f}}
	}
}

// Error implements the error interface for InvalidConfigPDFEngineError.
func (e *InvalidConfigPDFEngineError) Error() string {
	return fmt.Sprintf("invalid pdf engine %q (valid: auto, wkhtmltopdf, weasyprint, prince, xelatex, lualatex)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidConfigPDFEngineError) Unwrap() error {
	return ErrInvalidConfigPDFEngine
}

// String returns the string representation of the config PDFEngine.
func (p PDFEngine) String() string { return string(p) }

// IsValid returns whether the config PDFEngine is one of the defined engines,
// and a list of validation errors if it is not. The zero value is valid.
func (p PDFEngine) IsValid() (bool, []error) {
	switch p {
	case "", PDFEngineAuto, PDFEngineWKHTMLToPDF, PDFEngineWeasyPrint, PDFEnginePrince, PDFEngineXeLaTeX, PDFEngineLuaLaTeX:
		return true, nil
	default:
		return false, []error{&InvalidConfigPDFEngineError{Value: p}}
	}
}

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error {
	return ErrInvalidColorScheme
}

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// IsValid returns whether the ColorScheme is one of the defined color schemes,
// and a list of validation errors if it is not.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: cs}}
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Tool: ToolConfig{
			Path:      "", // Resolver locates the executable if empty
			PDFEngine: PDFEngineAuto,
		},
		Export: ExportConfig{
			Format:    ExportFormatPDF,
			OutputDir: "", // Alongside the document if empty
			ExtraArgs: "",
			OpenAfter: false,
		},
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
			Verbose:     false,
		},
	}
}
