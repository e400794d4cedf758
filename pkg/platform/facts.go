// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// Facts is a snapshot of the host environment taken for a single
// resolution or invocation call.
//
// INVARIANT: Facts must be recomputed per call, never cached across
// calls. PATH, the working directory, and the login shell can all
// change between invocations of the host process.
type Facts struct {
	// OS is the operating system family (one of Windows, Darwin, Linux).
	OS string
	// Arch is the CPU architecture (runtime.GOARCH).
	Arch string
	// Home is the current user's home directory ("" when unknown).
	Home string
	// WorkDir is the process working directory ("" when unknown).
	WorkDir string
	// PathList holds the entries of the PATH search variable, in order.
	PathList []string
	// Shell is the default shell for the platform.
	Shell string
}

// Current computes a fresh Facts snapshot from the host environment.
// Missing pieces (no home directory, no resolvable shell) degrade to
// empty fields rather than failing; callers treat "" as unknown.
func Current() Facts {
	home, _ := os.UserHomeDir()
	wd, _ := os.Getwd()
	return Facts{
		OS:       runtime.GOOS,
		Arch:     runtime.GOARCH,
		Home:     home,
		WorkDir:  wd,
		PathList: filepath.SplitList(os.Getenv("PATH")),
		Shell:    DefaultShell(runtime.GOOS),
	}
}

// IsWindows reports whether the facts describe a windows family host.
func (f Facts) IsWindows() bool {
	return f.OS == Windows
}

// IsDarwin reports whether the facts describe a macOS host.
func (f Facts) IsDarwin() bool {
	return f.OS == Darwin
}

// ExecutableSuffix returns the filename suffix executables carry on
// this platform (".exe" on windows, "" elsewhere).
func (f Facts) ExecutableSuffix() string {
	if f.IsWindows() {
		return ExeSuffix
	}
	return ""
}

// DefaultShell determines the default shell for the given OS family.
//
// On the windows family it prefers pwsh, then powershell, then cmd.
// Elsewhere it honors $SHELL, then falls back to bash and sh. When
// nothing resolves it returns a bare conventional name so that a
// spawn attempt still produces a meaningful "not found" error.
func DefaultShell(osName string) string {
	switch osName {
	case Windows:
		if pwsh, err := exec.LookPath("pwsh"); err == nil {
			return pwsh
		}
		if ps, err := exec.LookPath("powershell"); err == nil {
			return ps
		}
		if cmd, err := exec.LookPath("cmd"); err == nil {
			return cmd
		}
		return "cmd"
	default:
		if shell := os.Getenv("SHELL"); shell != "" {
			return shell
		}
		if bash, err := exec.LookPath("bash"); err == nil {
			return bash
		}
		if sh, err := exec.LookPath("sh"); err == nil {
			return sh
		}
		return "/bin/sh"
	}
}

// ShellCommandArgs returns the arguments that make the given shell
// execute a command string (e.g. ["-c"] for POSIX shells, ["/C"] for
// cmd, ["-NoProfile", "-Command"] for PowerShell).
func ShellCommandArgs(shell string) []string {
	base := strings.TrimSuffix(filepath.Base(shell), ExeSuffix)
	switch base {
	case "cmd":
		return []string{"/C"}
	case "powershell", "pwsh":
		return []string{"-NoProfile", "-Command"}
	default:
		return []string{"-c"}
	}
}
