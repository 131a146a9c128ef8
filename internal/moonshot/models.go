package moonshot

import "strings"

const prefix = "moonshot/"

// knownModels are the identifiers that mark a session as belonging to this provider.
var knownModels = []string{
	"kimi-k2",
	"kimi-k2-thinking",
	"kimi-k2.5",
	"moonshot/kimi-k2",
	"moonshot/kimi-k2-thinking",
	"moonshot/kimi-k2.5",
}

// IsModel reports whether a session model name refers to a known model.
func IsModel(name string) bool {
	lower := strings.ToLower(name)
	for _, m := range knownModels {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

// Normalize strips the provider prefix.
func Normalize(name string) string {
	return strings.ReplaceAll(name, prefix, "")
}

// IsProviderModel reports whether a stored usage key belongs to this provider.
func IsProviderModel(name string) bool {
	return strings.HasPrefix(name, "kimi-") || strings.HasPrefix(name, prefix)
}
