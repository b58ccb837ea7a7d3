package diff

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Filter returns the files whose destination path matches none of the
// given glob patterns. Patterns are trimmed of surrounding whitespace
// before matching; a deleted file matches against the empty string. An
// empty pattern list returns the input unchanged.
func Filter(files []File, patterns []string) []File {
	if len(patterns) == 0 {
		return files
	}

	kept := make([]File, 0, len(files))
	for _, file := range files {
		if matchesAny(file.Path, patterns) {
			continue
		}
		kept = append(kept, file)
	}
	return kept
}

func matchesAny(path string, patterns []string) bool {
	for _, pattern := range patterns {
		pattern = strings.TrimSpace(pattern)
		ok, err := doublestar.Match(pattern, path)
		if err != nil {
			// A malformed pattern excludes nothing.
			continue
		}
		if ok {
			return true
		}
	}
	return false
}
