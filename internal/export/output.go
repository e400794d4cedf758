// SPDX-License-Identifier: MPL-2.0

package export

import (
	"fmt"
	"os"
	"path/filepath"

	"docport-cli/internal/convert"
)

type (
	// OutputInfo describes one produced export artifact. It is a plain
	// value the caller renders or caches however it likes; the core
	// keeps no handle on any view of it.
	OutputInfo struct {
		// Path is the artifact location.
		Path string
		// SizeBytes is the artifact size.
		SizeBytes int64
		// Format is the export format inferred from the extension, or
		// empty when the extension is not one of the export targets.
		Format convert.Format
	}
)

// DescribeOutput stats one produced file and returns its summary.
func DescribeOutput(path string) (OutputInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return OutputInfo{}, fmt.Errorf("describing export output: %w", err)
	}
	return OutputInfo{
		Path:      path,
		SizeBytes: info.Size(),
		Format:    formatForExtension(filepath.Ext(path)),
	}, nil
}

// formatForExtension maps an output extension back to its format.
func formatForExtension(ext string) convert.Format {
	for _, f := range convert.Formats() {
		if f.Extension() == ext {
			return f
		}
	}
	return ""
}
