package notes

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

var unsafeKeyChars = regexp.MustCompile(`[^\p{L}\p{N}._-]+`)

// StorageKey builds a blob key of the form "<millis>_<filename>".
func StorageKey(stampMillis int64, filename string) string {
	return fmt.Sprintf("%d_%s", stampMillis, sanitizeFilename(filename))
}

func sanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, `\`, "/"))
	name = unsafeKeyChars.ReplaceAllString(name, "-")
	name = strings.Trim(name, "-.")
	if name == "" {
		return "image"
	}
	return name
}
