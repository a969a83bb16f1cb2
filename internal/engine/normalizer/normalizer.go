// Package normalizer turns loosely formatted command arguments into canonical requirements.
package normalizer

import (
	"strings"

	"go.trai.ch/recipe/internal/core/domain"
)

// Normalizer resolves package arguments against a read-only alias table.
type Normalizer struct {
	aliases map[string]string
}

// New creates a Normalizer. The alias table is not modified.
func New(aliases map[string]string) *Normalizer {
	return &Normalizer{aliases: aliases}
}

// Resolve returns the unique package names named by args, in first-occurrence order.
func (n *Normalizer) Resolve(args []string) ([]string, error) {
	reqs, err := n.ResolveRequirements(args)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(reqs))
	for _, req := range reqs {
		names = append(names, req.Name)
	}
	return names, nil
}

// ResolveRequirements returns the requirements named by args. Aliases are
// expanded and version constraints validated before anything is returned.
// Later duplicates of a name are dropped.
func (n *Normalizer) ResolveRequirements(args []string) ([]domain.Requirement, error) {
	tokens := split(args)

	for i, token := range tokens {
		if !isBareToken(token) {
			continue
		}
		if name, ok := n.aliases[token]; ok {
			tokens[i] = name
			continue
		}
		if err := domain.ParseConstraint(token); err != nil {
			return nil, err
		}
	}

	pairs := domain.ParseNameVersionPairs(tokens)
	seen := make(map[string]struct{}, len(pairs))
	out := make([]domain.Requirement, 0, len(pairs))
	for _, req := range pairs {
		if _, dup := seen[req.Name]; dup {
			continue
		}
		seen[req.Name] = struct{}{}
		out = append(out, req)
	}
	return out, nil
}

// split separates "name:constraint" and "name=constraint" arguments into two
// tokens. A colon takes precedence over an equals sign.
func split(args []string) []string {
	tokens := make([]string, 0, len(args))
	for _, arg := range args {
		idx := strings.IndexByte(arg, ':')
		if idx < 0 {
			idx = strings.IndexByte(arg, '=')
		}
		if idx < 0 {
			tokens = append(tokens, arg)
			continue
		}
		tokens = append(tokens, arg[:idx], arg[idx+1:])
	}
	return tokens
}

// isBareToken reports whether token is neither a vendor/name package, a
// platform package nor a reserved keyword.
func isBareToken(token string) bool {
	return !strings.Contains(token, "/") &&
		!domain.IsPlatformPackage(token) &&
		!domain.IsReservedToken(token)
}
