package domain

// EventKind tags a package event.
type EventKind int

const (
	// EventInstall is emitted for a package that was not locked before.
	EventInstall EventKind = iota
	// EventUpdate is emitted for a package whose locked version changed.
	EventUpdate
)

func (k EventKind) String() string {
	switch k {
	case EventInstall:
		return "install"
	case EventUpdate:
		return "update"
	default:
		return "unknown"
	}
}

// PackageOperation is a change between two lock snapshots.
type PackageOperation struct {
	Kind            EventKind
	Name            string
	Version         string
	PreviousVersion string
}

// PackageEvent carries the package resulting from an install or update.
type PackageEvent struct {
	Kind    EventKind
	Package *Package
}

// DiffLocks lists the packages installed or updated between before and after,
// in the order they appear in after. Removed packages produce no operation.
func DiffLocks(before, after *LockSnapshot) []PackageOperation {
	if after == nil {
		return nil
	}
	previous := before.Versions()

	var ops []PackageOperation
	for _, list := range [][]LockedPackage{after.Packages, after.PackagesDev} {
		for _, p := range list {
			old, existed := previous[p.Name]
			switch {
			case !existed:
				ops = append(ops, PackageOperation{Kind: EventInstall, Name: p.Name, Version: p.Version})
			case old != p.Version:
				ops = append(ops, PackageOperation{
					Kind:            EventUpdate,
					Name:            p.Name,
					Version:         p.Version,
					PreviousVersion: old,
				})
			}
		}
	}
	return ops
}
