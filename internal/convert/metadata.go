// SPDX-License-Identifier: MPL-2.0

package convert

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// sidecarSuffix is appended to the document's extension-stripped path
// to form its metadata sidecar filename.
const sidecarSuffix = ".docport.toml"

// SidecarPath returns the metadata sidecar path for a document, e.g.
// "notes/report.md" -> "notes/report.docport.toml".
func SidecarPath(documentPath string) string {
	ext := filepath.Ext(documentPath)
	return strings.TrimSuffix(documentPath, ext) + sidecarSuffix
}

// LoadMetadataSidecar reads the document's TOML metadata sidecar and
// flattens it into the key=value pairs passed to the converter as
// --metadata flags. Nested tables flatten with dotted keys
// ("author.name"). A missing sidecar is not an error; it simply means
// no metadata.
func LoadMetadataSidecar(documentPath string) (map[string]string, error) {
	sidecar := SidecarPath(documentPath)

	data, err := os.ReadFile(sidecar)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading metadata sidecar %s: %w", sidecar, err)
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing metadata sidecar %s TOML: %w", sidecar, err)
	}

	meta := make(map[string]string, len(raw))
	flattenMetadata("", raw, meta)
	return meta, nil
}

// flattenMetadata folds a decoded TOML tree into dotted scalar keys.
// Arrays are joined with commas because the converter's --metadata
// flag takes one value per key.
func flattenMetadata(prefix string, raw map[string]any, out map[string]string) {
	for key, value := range raw {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}
		switch v := value.(type) {
		case map[string]any:
			flattenMetadata(full, v, out)
		case []any:
			parts := make([]string, 0, len(v))
			for _, item := range v {
				if _, nested := item.(map[string]any); nested {
					continue
				}
				parts = append(parts, fmt.Sprint(item))
			}
			out[full] = strings.Join(parts, ",")
		default:
			out[full] = fmt.Sprint(v)
		}
	}
}
