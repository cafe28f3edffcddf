package violation

import (
	"path/filepath"
	"strings"
)

// DocumentationURL links a rule file to its published source. The rule path
// is made relative to rulesRoot and joined to base with forward slashes. A
// rule outside rulesRoot keeps its ".." segments. rulesRoot and rulePath
// should both be absolute or both relative to the same directory; when they
// cannot be related the rule path is used as given.
func DocumentationURL(base, rulesRoot, rulePath string) string {
	rel := filepath.ToSlash(rulePath)
	if rulesRoot != "" {
		if r, err := filepath.Rel(rulesRoot, rulePath); err == nil {
			rel = filepath.ToSlash(r)
		}
	}
	rel = strings.TrimLeft(strings.TrimPrefix(rel, "./"), "/")
	if base == "" {
		return rel
	}
	return strings.TrimRight(base, "/") + "/" + rel
}
