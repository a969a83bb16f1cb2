package inliner

import (
	"maps"

	"go.trai.ch/recipe/internal/core/domain"
)

// Outcome is what happened to one recipe dependency during a merge.
type Outcome int

const (
	// OutcomeUnchanged means require already holds the recipe's constraint.
	OutcomeUnchanged Outcome = iota
	// OutcomeUpdated means require held a different constraint, which is replaced.
	OutcomeUpdated
	// OutcomeNew means the dependency was never inlined before and is added.
	OutcomeNew
	// OutcomeRemoved means the dependency was inlined before and has since been
	// removed from require by hand. It is not added back.
	OutcomeRemoved
)

// Decision is the merge result for one dependency.
type Decision struct {
	Name       string
	Constraint string
	Previous   string
	Outcome    Outcome
}

// Plan is the outcome of merging a recipe's links into a manifest.
type Plan struct {
	Decisions []Decision

	// Ledger is the refreshed dependency ledger. Entries are never dropped.
	Ledger map[string]string
}

// Merge decides, for every link except runtimePackage, whether it is added to
// require. It does not modify its arguments.
func Merge(require domain.StringMap, ledger map[string]string, links domain.Links, runtimePackage string) Plan {
	plan := Plan{Ledger: maps.Clone(ledger)}
	if plan.Ledger == nil {
		plan.Ledger = map[string]string{}
	}

	for _, link := range links {
		if link.Target == runtimePackage {
			continue
		}

		d := Decision{Name: link.Target, Constraint: link.Constraint}
		current, required := require[link.Target]
		_, seen := ledger[link.Target]

		switch {
		case required && current == link.Constraint:
			d.Outcome = OutcomeUnchanged
		case required:
			d.Outcome = OutcomeUpdated
			d.Previous = current
		case seen:
			d.Outcome = OutcomeRemoved
		default:
			d.Outcome = OutcomeNew
		}

		plan.Decisions = append(plan.Decisions, d)
		plan.Ledger[link.Target] = link.Constraint
	}
	return plan
}
