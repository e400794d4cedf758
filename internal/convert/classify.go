package convert

import "strings"

// exitCodeCommandNotFound is what POSIX shells exit with when the
// command they were asked to run does not exist.
const exitCodeCommandNotFound ExitCode = 127

// engineAbsenceIndicators mark converter output complaining about a
// missing PDF engine. Checked before the tool-absence indicators: a
// converter that reports "xelatex: not found" did run, so the engine
// is what is missing, not the tool.
var engineAbsenceIndicators = []string{
	"pdflatex",
	"xelatex",
	"lualatex",
	"wkhtmltopdf",
	"weasyprint",
	"prince",
}

// toolAbsenceIndicators mark shell or OS output complaining that the
// converter itself does not exist.
var toolAbsenceIndicators = []string{
	"command not found", // bash, zsh
	": not found",       // dash, busybox sh
	"not recognized",    // cmd.exe, PowerShell
}

// classifyOutcome maps an invocation's exit into the outcome taxonomy.
// A spawn error means the executable path itself was unusable. For a
// process that ran and failed, the combined stderr and error text is
// matched against the indicator lists.
func classifyOutcome(spawnErr error, code ExitCode, diagnostics string) Outcome {
	if spawnErr != nil {
		return OutcomeToolNotFound
	}
	if code.IsSuccess() {
		return OutcomeSuccess
	}

	lower := strings.ToLower(diagnostics)
	for _, indicator := range engineAbsenceIndicators {
		if strings.Contains(lower, indicator) {
			return OutcomeEngineMissing
		}
	}
	for _, indicator := range toolAbsenceIndicators {
		if strings.Contains(lower, indicator) {
			return OutcomeToolNotFound
		}
	}
	if code == exitCodeCommandNotFound {
		return OutcomeToolNotFound
	}
	return OutcomeOtherFailure
}
