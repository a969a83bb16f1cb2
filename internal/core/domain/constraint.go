package domain

import (
	"regexp"
	"strings"
)

const modifier = `(?:[._-]?(?:(?:stable|beta|b|RC|alpha|a|patch|pl|p)(?:[.-]?\d+)*)?)?(?:[.-]?dev)?`

var (
	orSeparator      = regexp.MustCompile(`\s*\|\|?\s*`)
	andSeparator     = regexp.MustCompile(`[\s,]+`)
	hyphenRange      = regexp.MustCompile(`^(\S+) +- +(\S+)$`)
	hyphenBound      = regexp.MustCompile(`(?i)^v?\d+(?:\.\d+){0,3}` + modifier + `$`)
	stabilityFlag    = regexp.MustCompile(`(?i)^([^,\s]*?)@(stable|RC|beta|alpha|dev)$`)
	matchAll         = regexp.MustCompile(`^v?[xX*](?:\.[xX*])*$`)
	tildeRange       = regexp.MustCompile(`(?i)^~>?v?\d+(?:\.\d+){0,3}` + modifier + `$`)
	caretRange       = regexp.MustCompile(`(?i)^\^v?\d+(?:\.\d+){0,3}` + modifier + `$`)
	wildcardRange    = regexp.MustCompile(`^v?\d+(?:\.\d+){0,2}(?:\.[xX*])+$`)
	comparator       = regexp.MustCompile(`^(<>|!=|>=?|<=?|==?)?\s*(.*)$`)
	versionAlias     = regexp.MustCompile(`^(\S+) +as +(\S+)$`)
	defaultBranch    = regexp.MustCompile(`(?i)^(?:dev-)?(?:master|trunk|default)$`)
	classicalVersion = regexp.MustCompile(`(?i)^v?\d{1,5}(?:\.\d+)?(?:\.\d+)?(?:\.\d+)?` + modifier + `$`)
	dateVersion      = regexp.MustCompile(`(?i)^v?\d{4}(?:[.:-]?\d{2}){1,6}(?:[.:-]?\d{1,3}){0,2}` + modifier + `$`)
	devSuffix        = regexp.MustCompile(`(?i)[.-]?dev$`)
	numericVersion   = regexp.MustCompile(`^[\d.]+$`)
)

var operators = map[string]bool{
	"<>": true, "!=": true, ">": true, ">=": true, "<": true, "<=": true, "=": true, "==": true,
}

// ParseConstraint validates a version constraint expression such as "^1.2 || ~2.0@beta".
// It does not evaluate the constraint, it only reports whether the solver could parse it.
func ParseConstraint(expr string) error {
	trimmed := strings.TrimSpace(expr)
	if trimmed == "" {
		return &ConstraintParseError{Token: expr, Reason: "empty constraint"}
	}

	for _, alternative := range orSeparator.Split(trimmed, -1) {
		atoms := splitConjunction(alternative)
		if len(atoms) == 0 {
			return &ConstraintParseError{Token: expr, Reason: "empty alternative"}
		}
		for _, atom := range atoms {
			if !validAtom(atom) {
				return &ConstraintParseError{Token: expr, Reason: "invalid version string " + quote(atom)}
			}
		}
	}
	return nil
}

// splitConjunction splits an alternative into AND-ed atoms, keeping hyphen ranges,
// "x as y" aliases and detached operators (">= 1.0") together.
func splitConjunction(alternative string) []string {
	alternative = strings.TrimSpace(alternative)
	if m := hyphenRange.FindStringSubmatch(alternative); m != nil &&
		hyphenBound.MatchString(m[1]) && hyphenBound.MatchString(m[2]) {
		return []string{"*"}
	}

	fields := andSeparator.Split(alternative, -1)
	atoms := make([]string, 0, len(fields))
	for i := 0; i < len(fields); i++ {
		field := fields[i]
		if field == "" {
			continue
		}
		if operators[field] && i+1 < len(fields) {
			field += fields[i+1]
			i++
		}
		if i+2 < len(fields) && fields[i+1] == "as" {
			field += " as " + fields[i+2]
			i += 2
		}
		atoms = append(atoms, field)
	}
	return atoms
}

func validAtom(atom string) bool {
	if m := stabilityFlag.FindStringSubmatch(atom); m != nil {
		if m[1] == "" {
			return true
		}
		atom = m[1]
	}
	if strings.HasPrefix(strings.ToLower(atom), "dev-") {
		atom, _, _ = strings.Cut(atom, "#")
	}

	switch {
	case matchAll.MatchString(atom),
		tildeRange.MatchString(atom),
		caretRange.MatchString(atom),
		wildcardRange.MatchString(atom):
		return true
	}

	m := comparator.FindStringSubmatch(atom)
	if m == nil {
		return false
	}
	return validVersion(m[2])
}

func validVersion(version string) bool {
	version = strings.TrimSpace(version)
	if m := versionAlias.FindStringSubmatch(version); m != nil {
		version = m[1]
	}
	if m := stabilityFlag.FindStringSubmatch(version); m != nil {
		version = m[1]
	}
	if version == "" {
		return false
	}

	switch {
	case defaultBranch.MatchString(version):
		return true
	case strings.HasPrefix(strings.ToLower(version), "dev-"):
		return true
	case classicalVersion.MatchString(version), dateVersion.MatchString(version):
		return true
	case devSuffix.MatchString(version):
		return true
	default:
		return false
	}
}

// BestConstraint guesses a constraint from an installed version.
// It returns "" when no guess is possible and the solver should pick the latest version.
func BestConstraint(existingVersion string) string {
	switch {
	case existingVersion == "":
		return ""
	case strings.HasPrefix(existingVersion, "^"), strings.HasPrefix(existingVersion, "~"):
		return existingVersion
	case strings.Contains(strings.ToLower(existingVersion), "dev"):
		return existingVersion
	case numericVersion.MatchString(existingVersion):
		return "^" + existingVersion
	default:
		return ""
	}
}

func quote(s string) string {
	return `"` + s + `"`
}
