package media

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// StorageName derives the on-disk filename for an accepted upload: 128 bits
// of random hex plus the lowercased original extension. Nothing of the
// submitted name survives, so traversal attempts and collisions are a
// non-issue.
func StorageName(original string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(original), "."))
	id := strings.ReplaceAll(uuid.New().String(), "-", "")
	return id + "." + ext
}
