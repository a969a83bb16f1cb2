package domain

import (
	"bytes"
	"encoding/json"

	"go.trai.ch/zerr"
)

// Link is one declared dependency of a package.
type Link struct {
	Target     string
	Constraint string
}

// Links is an ordered list of dependency declarations.
// It decodes from a JSON object and keeps the key order of the document.
type Links []Link

// UnmarshalJSON decodes an object of name to constraint. An empty array decodes as no links.
func (l *Links) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) || bytes.Equal(data, []byte("[]")) {
		*l = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return zerr.With(ErrInvalidManifestJSON, "reason", "links must be an object")
	}

	var links Links
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := keyTok.(string)

		var constraint string
		if err := dec.Decode(&constraint); err != nil {
			return zerr.With(zerr.Wrap(err, "invalid link constraint"), "target", key)
		}
		links = append(links, Link{Target: key, Constraint: constraint})
	}
	*l = links
	return nil
}

// Find returns the link for target.
func (l Links) Find(target string) (Link, bool) {
	for _, link := range l {
		if link.Target == target {
			return link, true
		}
	}
	return Link{}, false
}

// Package is a package from the local package repository.
type Package struct {
	Name        string                     `json:"name"`
	Version     string                     `json:"version"`
	Type        string                     `json:"type"`
	Requires    Links                      `json:"require"`
	DevRequires Links                      `json:"require-dev"`
	Extra       map[string]json.RawMessage `json:"extra"`

	// InstallPath is the absolute directory the package is installed into.
	InstallPath string `json:"-"`
}

// IsRecipe reports whether the package has the given recipe type.
func (p *Package) IsRecipe(recipeType string) bool {
	return p != nil && p.Type == recipeType
}

// IsMarker reports whether the package declares no dependencies at all.
func (p *Package) IsMarker() bool {
	return len(p.Requires)+len(p.DevRequires) == 0
}

// ProjectFilePatterns returns the globs under extra.project-files.
func (p *Package) ProjectFilePatterns() []string {
	return p.extraStrings(ExtraProjectFiles)
}

// PublicFilePatterns returns the globs under extra.public-files.
func (p *Package) PublicFilePatterns() []string {
	return p.extraStrings(ExtraPublicFiles)
}

func (p *Package) extraStrings(key string) []string {
	raw, ok := p.Extra[key]
	if !ok {
		return nil
	}
	var values []string
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil
	}
	return values
}
