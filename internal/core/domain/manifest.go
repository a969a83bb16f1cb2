package domain

import (
	"bytes"
	"encoding/json"
	"maps"
	"slices"

	"go.trai.ch/zerr"
)

// Manifest sections the reconcilers touch.
const (
	SectionRequire    = "require"
	SectionRequireDev = "require-dev"
	SectionProvide    = "provide"
	SectionExtra      = "extra"
)

// StringMap is a name to string map that also accepts an empty JSON array.
type StringMap map[string]string

// UnmarshalJSON decodes an object, treating [] and null as empty.
func (m *StringMap) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) || bytes.Equal(data, []byte("[]")) {
		*m = StringMap{}
		return nil
	}
	var out map[string]string
	if err := json.Unmarshal(data, &out); err != nil {
		return err
	}
	*m = out
	return nil
}

// EditOp is the kind of a recorded manifest edit.
type EditOp int

const (
	// EditSet sets the value at a path, creating the parent section if needed.
	EditSet EditOp = iota
	// EditRemove deletes the member at a path.
	EditRemove
)

// ManifestEdit is one recorded mutation, replayed onto the raw document when saving.
type ManifestEdit struct {
	Op    EditOp
	Path  []string
	Value any
}

// Manifest is the decoded view of the project manifest plus a log of pending edits.
type Manifest struct {
	Path       string
	Raw        []byte
	Require    StringMap
	RequireDev StringMap
	Provide    StringMap
	Extra      map[string]json.RawMessage

	hasExtra bool
	edits    []ManifestEdit
}

type manifestDocument struct {
	Require    StringMap       `json:"require"`
	RequireDev StringMap       `json:"require-dev"`
	Provide    StringMap       `json:"provide"`
	Extra      json.RawMessage `json:"extra"`
}

// ParseManifest decodes raw manifest bytes.
func ParseManifest(path string, raw []byte) (*Manifest, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, zerr.With(ErrInvalidManifestJSON, "path", path)
	}

	var doc manifestDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, zerr.With(zerr.Wrap(err, ErrInvalidManifestJSON.Error()), "path", path)
	}

	extra := map[string]json.RawMessage{}
	if extraRaw := bytes.TrimSpace(doc.Extra); len(extraRaw) > 0 && extraRaw[0] == '{' {
		if err := json.Unmarshal(extraRaw, &extra); err != nil {
			return nil, zerr.With(zerr.Wrap(err, ErrInvalidManifestJSON.Error()), "path", path)
		}
	}

	m := &Manifest{
		Path:       path,
		Raw:        raw,
		Require:    nonNil(doc.Require),
		RequireDev: nonNil(doc.RequireDev),
		Provide:    nonNil(doc.Provide),
		Extra:      extra,
		hasExtra:   len(bytes.TrimSpace(doc.Extra)) > 0,
	}
	return m, nil
}

func nonNil(m StringMap) StringMap {
	if m == nil {
		return StringMap{}
	}
	return m
}

// Edits returns the recorded edits in order.
func (m *Manifest) Edits() []ManifestEdit {
	return m.edits
}

// Changed reports whether any edit has been recorded since the manifest was loaded or saved.
func (m *Manifest) Changed() bool {
	return len(m.edits) > 0
}

// Commit replaces the raw bytes after a save and clears the edit log.
func (m *Manifest) Commit(raw []byte) {
	m.Raw = raw
	m.edits = nil
}

func (m *Manifest) record(op EditOp, value any, path ...string) {
	m.edits = append(m.edits, ManifestEdit{Op: op, Path: path, Value: value})
}

// Requires reports whether name is declared in require or require-dev.
func (m *Manifest) Requires(name string) bool {
	_, runtime := m.Require[name]
	_, dev := m.RequireDev[name]
	return runtime || dev
}

// SetRequire declares name under require, or require-dev when dev is set.
func (m *Manifest) SetRequire(name, constraint string, dev bool) {
	section, target := SectionRequire, m.Require
	if dev {
		section, target = SectionRequireDev, m.RequireDev
	}
	if current, ok := target[name]; ok && current == constraint {
		return
	}
	target[name] = constraint
	m.record(EditSet, constraint, section, name)
}

// RemoveRequire drops name from require and require-dev. It reports whether anything was removed.
func (m *Manifest) RemoveRequire(name string) bool {
	removed := false
	if _, ok := m.Require[name]; ok {
		delete(m.Require, name)
		m.record(EditRemove, nil, SectionRequire, name)
		removed = true
	}
	if _, ok := m.RequireDev[name]; ok {
		delete(m.RequireDev, name)
		m.record(EditRemove, nil, SectionRequireDev, name)
		removed = true
	}
	return removed
}

// SetProvide declares name as provided at version.
func (m *Manifest) SetProvide(name, version string) {
	if current, ok := m.Provide[name]; ok && current == version {
		return
	}
	m.Provide[name] = version
	m.record(EditSet, version, SectionProvide, name)
}

// SetExtra stores value under extra.<key>.
func (m *Manifest) SetExtra(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return zerr.With(zerr.Wrap(err, ErrInvalidManifestJSON.Error()), "key", key)
	}
	if current, ok := m.Extra[key]; ok && jsonEqual(current, raw) {
		return nil
	}
	m.Extra[key] = raw
	m.hasExtra = true
	m.record(EditSet, value, SectionExtra, key)
	return nil
}

// RemoveExtra drops extra.<key>. It reports whether the key was present.
func (m *Manifest) RemoveExtra(key string) bool {
	if _, ok := m.Extra[key]; !ok {
		return false
	}
	delete(m.Extra, key)
	m.record(EditRemove, nil, SectionExtra, key)
	return true
}

// RemoveEmptyExtra drops the extra section when it has no keys left.
func (m *Manifest) RemoveEmptyExtra() bool {
	if len(m.Extra) > 0 || !m.hasExtra {
		return false
	}
	m.hasExtra = false
	m.record(EditRemove, nil, SectionExtra)
	return true
}

// DependencyLedger returns extra.project-dependencies-installed.
func (m *Manifest) DependencyLedger() map[string]string {
	ledger := map[string]string{}
	raw, ok := m.Extra[ExtraDependenciesInstalled]
	if !ok {
		return ledger
	}
	var decoded StringMap
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return ledger
	}
	maps.Copy(ledger, decoded)
	return ledger
}

// SetDependencyLedger writes extra.project-dependencies-installed with keys in sorted order.
func (m *Manifest) SetDependencyLedger(ledger map[string]string) error {
	return m.SetExtra(ExtraDependenciesInstalled, ledger)
}

// FileLedger returns the file ledger stored under extra.<key>.
func (m *Manifest) FileLedger(key string) FileLedger {
	raw, ok := m.Extra[key]
	if !ok {
		return nil
	}
	var paths []string
	if err := json.Unmarshal(raw, &paths); err != nil {
		return nil
	}
	return NewFileLedger(paths...)
}

// SetFileLedger writes a file ledger under extra.<key>.
func (m *Manifest) SetFileLedger(key string, ledger FileLedger) error {
	return m.SetExtra(key, []string(NewFileLedger(ledger...)))
}

// Validate checks that no package is both required and provided.
func (m *Manifest) Validate() error {
	for _, name := range slices.Sorted(maps.Keys(m.Provide)) {
		if m.Requires(name) {
			return zerr.With(ErrInconsistentManifest, "package", name)
		}
	}
	return nil
}

// FileLedger is a sorted, deduplicated list of relative paths already materialized.
type FileLedger []string

// NewFileLedger builds a normalized ledger from paths.
func NewFileLedger(paths ...string) FileLedger {
	out := append([]string{}, paths...)
	slices.Sort(out)
	return FileLedger(slices.Compact(out))
}

// Contains reports whether path is recorded.
func (l FileLedger) Contains(path string) bool {
	_, found := slices.BinarySearch(l, path)
	return found
}

// Add returns a ledger that also records path.
func (l FileLedger) Add(path string) FileLedger {
	idx, found := slices.BinarySearch(l, path)
	if found {
		return l
	}
	return slices.Insert(slices.Clone(l), idx, path)
}

func jsonEqual(a, b []byte) bool {
	var left, right any
	if json.Unmarshal(a, &left) != nil || json.Unmarshal(b, &right) != nil {
		return false
	}
	leftRaw, _ := json.Marshal(left)
	rightRaw, _ := json.Marshal(right)
	return bytes.Equal(leftRaw, rightRaw)
}
