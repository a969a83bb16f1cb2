package domain

import (
	"encoding/json"
	"slices"
)

// Lock file keys rewritten by the lock store.
const (
	LockKeyPackages    = "packages"
	LockKeyPackagesDev = "packages-dev"
	LockKeyContentHash = "content-hash"
)

// LockedPackage is one entry of the lock snapshot.
// Raw keeps the complete original entry so it can be written back untouched.
type LockedPackage struct {
	Name    string
	Version string
	Raw     json.RawMessage
}

// UnmarshalJSON keeps the original bytes alongside name and version.
func (p *LockedPackage) UnmarshalJSON(data []byte) error {
	var head struct {
		Name    string `json:"name"`
		Version string `json:"version"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return err
	}
	p.Name = head.Name
	p.Version = head.Version
	p.Raw = append(json.RawMessage(nil), data...)
	return nil
}

// MarshalJSON writes the original entry back.
func (p LockedPackage) MarshalJSON() ([]byte, error) {
	if len(p.Raw) > 0 {
		return p.Raw, nil
	}
	return json.Marshal(struct {
		Name    string `json:"name"`
		Version string `json:"version"`
	}{p.Name, p.Version})
}

// LockSnapshot is the solver's record of exactly which versions were selected.
type LockSnapshot struct {
	Path        string
	Raw         []byte
	Packages    []LockedPackage
	PackagesDev []LockedPackage
	ContentHash string
}

// Exists reports whether the snapshot was read from disk.
func (l *LockSnapshot) Exists() bool {
	return l != nil && len(l.Raw) > 0
}

// Find returns the locked entry for name from packages or packages-dev.
func (l *LockSnapshot) Find(name string) (LockedPackage, bool) {
	if l == nil {
		return LockedPackage{}, false
	}
	for _, list := range [][]LockedPackage{l.Packages, l.PackagesDev} {
		if idx := indexOf(list, name); idx >= 0 {
			return list[idx], true
		}
	}
	return LockedPackage{}, false
}

// IsDev reports whether name is locked as a dev package.
func (l *LockSnapshot) IsDev(name string) bool {
	return l != nil && indexOf(l.PackagesDev, name) >= 0
}

// Remove drops name from both package lists. It reports whether anything was removed.
func (l *LockSnapshot) Remove(name string) bool {
	if l == nil {
		return false
	}
	before := len(l.Packages) + len(l.PackagesDev)
	match := func(p LockedPackage) bool { return p.Name == name }
	l.Packages = slices.DeleteFunc(l.Packages, match)
	l.PackagesDev = slices.DeleteFunc(l.PackagesDev, match)
	return len(l.Packages)+len(l.PackagesDev) != before
}

// Versions maps every locked package name to its version.
func (l *LockSnapshot) Versions() map[string]string {
	out := map[string]string{}
	if l == nil {
		return out
	}
	for _, p := range l.Packages {
		out[p.Name] = p.Version
	}
	for _, p := range l.PackagesDev {
		out[p.Name] = p.Version
	}
	return out
}

func indexOf(list []LockedPackage, name string) int {
	return slices.IndexFunc(list, func(p LockedPackage) bool { return p.Name == name })
}
