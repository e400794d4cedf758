// SPDX-License-Identifier: MPL-2.0

package export

import (
	"context"
	"fmt"
	"os/exec"

	"docport-cli/pkg/platform"
)

// openWithPlatformOpener hands a produced file to the OS default
// handler: "start" through cmd on the windows family, "open" on macOS,
// "xdg-open" elsewhere. The opener processes themselves return once
// the handler is dispatched, so waiting on them does not block on the
// viewer.
func openWithPlatformOpener(ctx context.Context, facts platform.Facts, path string) error {
	var cmd *exec.Cmd
	switch {
	case facts.IsWindows():
		// The empty string is start's window title slot; without it a
		// quoted path would be consumed as the title.
		cmd = exec.CommandContext(ctx, "cmd", "/c", "start", "", path)
	case facts.IsDarwin():
		cmd = exec.CommandContext(ctx, "open", path)
	default:
		cmd = exec.CommandContext(ctx, "xdg-open", path)
	}
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	return nil
}
