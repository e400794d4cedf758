// SPDX-License-Identifier: MPL-2.0

package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"docport-cli/internal/convert"
	"docport-cli/internal/resolver"
	"docport-cli/pkg/fspath"
	"docport-cli/pkg/platform"

	"github.com/charmbracelet/log"
)

type (
	// Settings is the explicit configuration slice one export needs.
	// The CLI maps its config store onto this value per call; the core
	// holds no process-wide defaults.
	Settings struct {
		// ToolHint locates the converter: a bare name, or a path.
		ToolHint resolver.Hint
		// Engine optionally forces the PDF engine.
		Engine convert.PDFEngine
		// ExtraArgs is the free-form argument string appended to every
		// invocation.
		ExtraArgs string
		// OutputDir is the directory exports land in. Empty means the
		// document's own directory; a relative value is resolved
		// against the document's directory.
		OutputDir string
		// OpenAfter opens the produced file with the platform opener
		// after a successful export.
		OpenAfter bool
	}

	// Request describes one export call.
	Request struct {
		// DocumentPath is where the source document lives. Its
		// directory is the output fallback and its base name seeds the
		// transient input and default output names.
		DocumentPath string
		// DocumentText is the document content at export time, which
		// may be newer than what is on disk.
		DocumentText string
		// Format is the export target.
		Format convert.Format
		// OutputPath, when set, is used verbatim and no directory
		// handling happens. Empty derives the path from the settings.
		OutputPath string
		// Settings is the configuration for this call.
		Settings Settings
		// Facts is the platform snapshot for this call.
		Facts platform.Facts
	}

	// pathResolver locates the converter executable. Satisfied by
	// *resolver.Resolver.
	pathResolver interface {
		Resolve(ctx context.Context, hint resolver.Hint, facts platform.Facts) (resolver.ResolvedExecutable, error)
	}

	// jobInvoker runs one conversion job. Satisfied by *convert.Invoker.
	jobInvoker interface {
		Invoke(ctx context.Context, exePath string, job convert.Job, facts platform.Facts) (*convert.Result, error)
	}

	// openFunc opens a produced file with the platform opener.
	openFunc func(ctx context.Context, facts platform.Facts, path string) error

	// Service runs document exports. Construct with NewService.
	Service struct {
		logger   *log.Logger
		resolver pathResolver
		invoker  jobInvoker
		open     openFunc
	}
)

// NewService creates an export Service wired to the real resolver,
// invoker, and platform opener. A nil logger discards diagnostics.
func NewService(logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Service{
		logger:   logger,
		resolver: resolver.New(logger),
		invoker:  convert.NewInvoker(logger),
		open:     openWithPlatformOpener,
	}
}

// Export runs one export end to end. Expected converter failures come
// back classified inside the Result; the error return carries
// resolution failures (errors.Is resolver.ErrToolNotFound) and
// preparation problems. Diagnostics are returned for the caller to
// render, whatever the outcome.
func (s *Service) Export(ctx context.Context, req Request) (*convert.Result, []Diagnostic, error) {
	var diags []Diagnostic

	baseName := documentBaseName(req.DocumentPath)

	outputPath := req.OutputPath
	if outputPath == "" {
		dir, dirDiag := s.resolveOutputDir(req)
		if dirDiag != nil {
			diags = append(diags, *dirDiag)
		}
		outputPath = filepath.Join(dir, baseName+req.Format.Extension())
	}

	metadata, err := convert.LoadMetadataSidecar(req.DocumentPath)
	if err != nil {
		diags = append(diags, Diagnostic{
			Severity: SeverityWarning,
			Code:     CodeMetadataSidecarSkipped,
			Message:  "metadata sidecar is unreadable; exporting without metadata",
			Path:     convert.SidecarPath(req.DocumentPath),
			Cause:    err,
		})
		metadata = nil
	}

	resolved, err := s.resolver.Resolve(ctx, req.Settings.ToolHint, req.Facts)
	if err != nil {
		return nil, diags, err
	}
	s.logger.Debug("using converter",
		"path", resolved.Path, "provenance", resolved.Provenance.String())

	job := convert.Job{
		DocumentName: baseName,
		Content:      req.DocumentText,
		Format:       req.Format,
		OutputPath:   outputPath,
		Engine:       req.Settings.Engine,
		ExtraArgs:    req.Settings.ExtraArgs,
		Metadata:     metadata,
	}

	result, err := s.invoker.Invoke(ctx, resolved.Path, job, req.Facts)
	if err != nil {
		return nil, diags, err
	}

	if warning := result.Warning(); warning != "" {
		diags = append(diags, Diagnostic{
			Severity: SeverityWarning,
			Code:     CodeConverterStderr,
			Message:  warning,
			Path:     outputPath,
		})
	}

	if result.Success() && req.Settings.OpenAfter {
		if err := s.open(ctx, req.Facts, outputPath); err != nil {
			diags = append(diags, Diagnostic{
				Severity: SeverityWarning,
				Code:     CodeOpenAfterFailed,
				Message:  fmt.Sprintf("export succeeded but the file could not be opened: %v", err),
				Path:     outputPath,
				Cause:    err,
			})
		}
	}

	return result, diags, nil
}

// resolveOutputDir picks the directory an export lands in. The
// configured directory is created when missing; if creation fails the
// export falls back to the document's own directory with a warning
// diagnostic instead of aborting.
func (s *Service) resolveOutputDir(req Request) (string, *Diagnostic) {
	docDir := filepath.Dir(req.DocumentPath)

	dir := strings.TrimSpace(req.Settings.OutputDir)
	if dir == "" {
		return docDir, nil
	}
	dir = fspath.ExpandUser(dir, req.Facts.Home)
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(docDir, dir)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		s.logger.Debug("output directory unavailable", "dir", dir, "error", err)
		return docDir, &Diagnostic{
			Severity: SeverityWarning,
			Code:     CodeOutputDirFallback,
			Message:  fmt.Sprintf("cannot create output directory %s; writing next to the document", dir),
			Path:     dir,
			Cause:    err,
		}
	}
	return dir, nil
}

// documentBaseName strips the directory and extension from a document
// path: "notes/report.md" -> "report".
func documentBaseName(documentPath string) string {
	base := filepath.Base(documentPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
