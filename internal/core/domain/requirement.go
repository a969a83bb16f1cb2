package domain

import (
	"regexp"
	"slices"
	"strings"
)

// platformPackagePattern matches runtime and extension pseudo-packages that are
// provided by the platform rather than installed by the solver.
var platformPackagePattern = regexp.MustCompile(
	`(?i)^(?:php(?:-64bit|-ipv6|-zts|-debug)?|hhvm|(?:ext|lib)-[a-z0-9](?:[_.-]?[a-z0-9]+)*|composer(?:-(?:plugin|runtime)-api)?)$`,
)

// reservedTokens are literal arguments the solver treats as commands rather than packages.
var reservedTokens = []string{"mirrors", "nothing"}

// Requirement is a canonical (name, constraint) pair.
// An empty Constraint means the solver chooses the version.
type Requirement struct {
	Name       string
	Constraint string
}

// String renders the requirement as "name" or "name:constraint".
func (r Requirement) String() string {
	if r.Constraint == "" {
		return r.Name
	}
	return r.Name + ":" + r.Constraint
}

// IsPlatformPackage reports whether name is a platform pseudo-package such as php or ext-json.
func IsPlatformPackage(name string) bool {
	return platformPackagePattern.MatchString(name)
}

// IsReservedToken reports whether token is one of the literal solver keywords.
func IsReservedToken(token string) bool {
	return slices.Contains(reservedTokens, token)
}

// ParseNameVersionPairs re-pairs tokens into requirements.
// "name:version", "name=version" and "name version" forms are accepted, and a bare
// name swallows the following token when that token looks like a version.
func ParseNameVersionPairs(tokens []string) []Requirement {
	result := make([]Requirement, 0, len(tokens))
	for i := 0; i < len(tokens); i++ {
		pair := splitPair(strings.TrimSpace(tokens[i]))
		if !strings.Contains(pair, " ") && i+1 < len(tokens) && looksLikeVersion(tokens[i+1]) {
			pair += " " + tokens[i+1]
			i++
		}

		if name, version, ok := strings.Cut(pair, " "); ok && name != "" {
			result = append(result, Requirement{Name: name, Constraint: version})
			continue
		}
		result = append(result, Requirement{Name: pair})
	}
	return result
}

// splitPair rewrites a leading "name:version" or "name=version" into "name version".
func splitPair(token string) string {
	idx := strings.IndexAny(token, "=: ")
	if idx <= 0 {
		return token
	}
	return token[:idx] + " " + token[idx+1:]
}

func looksLikeVersion(token string) bool {
	if strings.Contains(token, "/") {
		return false
	}
	if hasNameAdjacentWildcard(token) {
		return false
	}
	return !IsPlatformPackage(token)
}

// hasNameAdjacentWildcard reports whether a '*' touches a name character,
// which marks the token as a package wildcard like "vendor/*" rather than a version.
func hasNameAdjacentWildcard(token string) bool {
	for i := 0; i < len(token); i++ {
		if token[i] != '*' {
			continue
		}
		if i > 0 && isNameChar(token[i-1]) {
			return true
		}
		if i+1 < len(token) && isNameChar(token[i+1]) {
			return true
		}
	}
	return false
}

func isNameChar(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '_', c == '/', c == '-':
		return true
	default:
		return false
	}
}
