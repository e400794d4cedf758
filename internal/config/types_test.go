// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"testing"
)

func TestExportFormat_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format  ExportFormat
		want    bool
		wantErr bool
	}{
		{ExportFormatPDF, true, false},
		{ExportFormatDOCX, true, false},
		{ExportFormatHTML, true, false},
		{ExportFormatEPUB, true, false},
		{ExportFormatODT, true, false},
		{"", false, true},
		{"rtf", false, true},
		{"PDF", false, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			t.Parallel()
			isValid, errs := tt.format.IsValid()
			if isValid != tt.want {
				t.Errorf("ExportFormat(%q).IsValid() = %v, want %v", tt.format, isValid, tt.want)
			}
			if tt.wantErr {
				if len(errs) == 0 {
					t.Fatalf("ExportFormat(%q).IsValid() returned no errors, want error", tt.format)
				}
				if !errors.Is(errs[0], ErrInvalidExportFormat) {
					t.Errorf("error should wrap ErrInvalidExportFormat, got: %v", errs[0])
				}
			} else if len(errs) > 0 {
				t.Errorf("ExportFormat(%q).IsValid() returned unexpected errors: %v", tt.format, errs)
			}
		})
	}
}

func TestConfigPDFEngine_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		engine  PDFEngine
		want    bool
		wantErr bool
	}{
		{PDFEngineAuto, true, false},
		{PDFEngineWKHTMLToPDF, true, false},
		{PDFEngineWeasyPrint, true, false},
		{PDFEnginePrince, true, false},
		{PDFEngineXeLaTeX, true, false},
		{PDFEngineLuaLaTeX, true, false},
		{"", true, false}, // zero value means auto
		{"ghostscript", false, true},
		{"XELATEX", false, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.engine), func(t *testing.T) {
			t.Parallel()
			isValid, errs := tt.engine.IsValid()
			if isValid != tt.want {
				t.Errorf("PDFEngine(%q).IsValid() = %v, want %v", tt.engine, isValid, tt.want)
			}
			if tt.wantErr {
				if len(errs) == 0 {
					t.Fatalf("PDFEngine(%q).IsValid() returned no errors, want error", tt.engine)
				}
				if !errors.Is(errs[0], ErrInvalidConfigPDFEngine) {
					t.Errorf("error should wrap ErrInvalidConfigPDFEngine, got: %v", errs[0])
				}
			} else if len(errs) > 0 {
				t.Errorf("PDFEngine(%q).IsValid() returned unexpected errors: %v", tt.engine, errs)
			}
		})
	}
}

func TestColorScheme_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		scheme  ColorScheme
		want    bool
		wantErr bool
	}{
		{ColorSchemeAuto, true, false},
		{ColorSchemeDark, true, false},
		{ColorSchemeLight, true, false},
		{"", false, true},
		{"solarized", false, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.scheme), func(t *testing.T) {
			t.Parallel()
			isValid, errs := tt.scheme.IsValid()
			if isValid != tt.want {
				t.Errorf("ColorScheme(%q).IsValid() = %v, want %v", tt.scheme, isValid, tt.want)
			}
			if tt.wantErr {
				if len(errs) == 0 {
					t.Fatalf("ColorScheme(%q).IsValid() returned no errors, want error", tt.scheme)
				}
				if !errors.Is(errs[0], ErrInvalidColorScheme) {
					t.Errorf("error should wrap ErrInvalidColorScheme, got: %v", errs[0])
				}
			} else if len(errs) > 0 {
				t.Errorf("ColorScheme(%q).IsValid() returned unexpected errors: %v", tt.scheme, errs)
			}
		})
	}
}

func TestToolPath_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		path ToolPath
		want bool
	}{
		{"empty means auto-resolve", "", true},
		{"absolute path", "/usr/local/bin/pandoc", true},
		{"relative path", "bin/pandoc", true},
		{"whitespace only", "   ", false},
		{"tab only", "\t", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			isValid, errs := tt.path.IsValid()
			if isValid != tt.want {
				t.Errorf("ToolPath(%q).IsValid() = %v, want %v", tt.path, isValid, tt.want)
			}
			if !tt.want && !errors.Is(errs[0], ErrInvalidToolPath) {
				t.Errorf("error should wrap ErrInvalidToolPath, got: %v", errs[0])
			}
		})
	}
}

func TestOutputDirPath_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		path OutputDirPath
		want bool
	}{
		{"empty means alongside document", "", true},
		{"absolute dir", "/home/writer/exports", true},
		{"relative dir", "exports", true},
		{"whitespace only", "  ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			isValid, errs := tt.path.IsValid()
			if isValid != tt.want {
				t.Errorf("OutputDirPath(%q).IsValid() = %v, want %v", tt.path, isValid, tt.want)
			}
			if !tt.want && !errors.Is(errs[0], ErrInvalidOutputDirPath) {
				t.Errorf("error should wrap ErrInvalidOutputDirPath, got: %v", errs[0])
			}
		})
	}
}

func TestToolConfig_IsValid(t *testing.T) {
	t.Parallel()

	t.Run("zero value is valid", func(t *testing.T) {
		t.Parallel()
		valid, errs := ToolConfig{}.IsValid()
		if !valid {
			t.Errorf("zero ToolConfig should be valid, got errors: %v", errs)
		}
	})

	t.Run("collects field errors", func(t *testing.T) {
		t.Parallel()
		cfg := ToolConfig{Path: "   ", PDFEngine: "ghostscript"}
		valid, errs := cfg.IsValid()
		if valid {
			t.Fatal("ToolConfig with bad path and engine should be invalid")
		}
		if len(errs) != 1 {
			t.Fatalf("expected 1 wrapping error, got %d", len(errs))
		}
		if !errors.Is(errs[0], ErrInvalidToolConfig) {
			t.Errorf("error should wrap ErrInvalidToolConfig, got: %v", errs[0])
		}
		var toolErr *InvalidToolConfigError
		if !errors.As(errs[0], &toolErr) {
			t.Fatalf("error should be *InvalidToolConfigError, got: %T", errs[0])
		}
		if len(toolErr.FieldErrors) != 2 {
			t.Errorf("expected 2 field errors, got %d: %v", len(toolErr.FieldErrors), toolErr.FieldErrors)
		}
	})
}

func TestExportConfig_IsValid(t *testing.T) {
	t.Parallel()

	t.Run("default-shaped value is valid", func(t *testing.T) {
		t.Parallel()
		cfg := ExportConfig{Format: ExportFormatHTML, ExtraArgs: "--toc"}
		if valid, errs := cfg.IsValid(); !valid {
			t.Errorf("ExportConfig should be valid, got errors: %v", errs)
		}
	})

	t.Run("empty format is invalid", func(t *testing.T) {
		t.Parallel()
		valid, errs := ExportConfig{}.IsValid()
		if valid {
			t.Fatal("ExportConfig with empty format should be invalid")
		}
		if !errors.Is(errs[0], ErrInvalidExportConfig) {
			t.Errorf("error should wrap ErrInvalidExportConfig, got: %v", errs[0])
		}
	})
}

func TestConfig_IsValid(t *testing.T) {
	t.Parallel()

	t.Run("default config is valid", func(t *testing.T) {
		t.Parallel()
		if valid, errs := DefaultConfig().IsValid(); !valid {
			t.Errorf("DefaultConfig() should be valid, got errors: %v", errs)
		}
	})

	t.Run("collects errors from all sections", func(t *testing.T) {
		t.Parallel()
		cfg := Config{
			Tool:   ToolConfig{PDFEngine: "ghostscript"},
			Export: ExportConfig{Format: "rtf", OutputDir: "   "},
			UI:     UIConfig{ColorScheme: "sepia"},
		}
		valid, errs := cfg.IsValid()
		if valid {
			t.Fatal("config with three bad sections should be invalid")
		}
		var cfgErr *InvalidConfigError
		if !errors.As(errs[0], &cfgErr) {
			t.Fatalf("error should be *InvalidConfigError, got: %T", errs[0])
		}
		// One wrapping error per invalid section.
		if len(cfgErr.FieldErrors) != 3 {
			t.Errorf("expected 3 section errors, got %d: %v", len(cfgErr.FieldErrors), cfgErr.FieldErrors)
		}
		if !errors.Is(errs[0], ErrInvalidConfig) {
			t.Errorf("error should wrap ErrInvalidConfig, got: %v", errs[0])
		}
	})
}
