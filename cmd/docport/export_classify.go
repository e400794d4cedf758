// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"strings"

	"docport-cli/internal/convert"
	"docport-cli/internal/issue"
	"docport-cli/internal/resolver"
)

// classifyExportError derives the issue ID and user-facing message for a
// service-level export failure: everything that stops the pipeline before
// the converter produces a classified result.
func classifyExportError(err error, verbose bool) (issueID issue.Id, styledMsg string) {
	issueID = issue.ExportFailedId

	switch {
	case errors.Is(err, resolver.ErrToolNotFound):
		issueID = issue.PandocNotFoundId
	case strings.Contains(err.Error(), "transient input file"):
		issueID = issue.InputMaterializeFailedId
	}

	return issueID, fmt.Sprintf("\n%s %s\n", ErrorStyle.Render("Error:"), formatErrorForDisplay(err, verbose))
}

// classifyConverterFailure turns a non-success converter result into a
// renderable ServiceError. The outcome classification picks the issue;
// the message quotes the tail of the converter's stderr because that is
// where pandoc and the PDF engines explain themselves.
func classifyConverterFailure(result *convert.Result, verbose bool) *ServiceError {
	issueID := issue.ExportFailedId
	switch result.Outcome {
	case convert.OutcomeToolNotFound:
		issueID = issue.PandocNotFoundId
	case convert.OutcomeEngineMissing:
		issueID = issue.PDFEngineMissingId
	}

	err := failureError(result)

	var b strings.Builder
	fmt.Fprintf(&b, "\n%s %s\n", ErrorStyle.Render("Error:"), err)
	if tail := stderrTail(result.ErrOutput, stderrTailLines); tail != "" {
		b.WriteString(VerboseStyle.Render(tail))
		b.WriteString("\n")
	}
	if verbose && result.CommandLine != "" {
		fmt.Fprintf(&b, "%s %s\n", SubtitleStyle.Render("command:"), CmdStyle.Render(result.CommandLine))
	}

	return newServiceError(err, issueID, b.String())
}

// failureError distills a failed result into one error value. Spawn errors
// carry the OS-level cause; anything else reports the exit status.
func failureError(result *convert.Result) error {
	if result.Error != nil {
		return result.Error
	}
	return fmt.Errorf("converter exited with status %s", result.ExitCode)
}

// stderrTailLines caps how much converter stderr the failure message quotes.
const stderrTailLines = 6

// stderrTail returns the last n non-empty lines of converter stderr.
func stderrTail(errOutput string, n int) string {
	lines := strings.Split(strings.TrimSpace(errOutput), "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			kept = append(kept, line)
		}
	}
	if len(kept) == 0 {
		return ""
	}
	if len(kept) > n {
		kept = kept[len(kept)-n:]
	}
	return strings.Join(kept, "\n")
}
