package unpacker

import "go.trai.ch/recipe/internal/core/domain"

// Result lists what an unpack run did with each target.
type Result struct {
	// Unpacked holds the recipes whose links were flattened into the manifest.
	Unpacked []*domain.Package

	// Required holds the "name[:version]" of every pass-through target.
	Required []string
}

// RequiredNames returns Required, or only sentinel when Required is empty so
// that a follow-up solver call always names at least one package.
func (r Result) RequiredNames(sentinel string) []string {
	if len(r.Required) == 0 {
		return []string{sentinel}
	}
	return r.Required
}

// UnpackedNames returns the names of the unpacked recipes.
func (r Result) UnpackedNames() []string {
	names := make([]string, 0, len(r.Unpacked))
	for _, pkg := range r.Unpacked {
		names = append(names, pkg.Name)
	}
	return names
}
