package materializer

import (
	"regexp"
	"strings"
)

// CompilePatterns builds one expression matching any of the glob patterns below
// sourceRoot. A "*" matches one or more characters of any kind, "/" included.
func CompilePatterns(sourceRoot string, patterns []string) (*regexp.Regexp, error) {
	alternatives := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		alternatives = append(alternatives, globToRegexp(pattern))
	}
	expr := "^" + globToRegexp(strings.TrimSuffix(sourceRoot, "/")+"/") +
		"((" + strings.Join(alternatives, ")|(") + "))$"
	return regexp.Compile(expr)
}

func globToRegexp(glob string) string {
	parts := strings.Split(glob, "*")
	for i, part := range parts {
		parts[i] = regexp.QuoteMeta(part)
	}
	return strings.Join(parts, "(.+)")
}
