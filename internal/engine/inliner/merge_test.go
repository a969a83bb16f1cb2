package inliner_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/recipe/internal/core/domain"
	"go.trai.ch/recipe/internal/engine/inliner"
)

func TestMerge(t *testing.T) {
	links := domain.Links{
		{Target: "php", Constraint: ">=8.1"},
		{Target: "vendor/a", Constraint: "^2.0"},
		{Target: "vendor/b", Constraint: "1.3.0"},
		{Target: "vendor/c", Constraint: "1.0.0"},
		{Target: "vendor/d", Constraint: "^5.0"},
	}
	require := domain.StringMap{"vendor/a": "^2.0", "vendor/b": "1.2.0"}
	ledger := map[string]string{"vendor/a": "^2.0", "vendor/c": "0.9.0"}

	plan := inliner.Merge(require, ledger, links, "php")

	assert.Equal(t, []inliner.Decision{
		{Name: "vendor/a", Constraint: "^2.0", Outcome: inliner.OutcomeUnchanged},
		{Name: "vendor/b", Constraint: "1.3.0", Previous: "1.2.0", Outcome: inliner.OutcomeUpdated},
		{Name: "vendor/c", Constraint: "1.0.0", Outcome: inliner.OutcomeRemoved},
		{Name: "vendor/d", Constraint: "^5.0", Outcome: inliner.OutcomeNew},
	}, plan.Decisions)

	assert.Equal(t, map[string]string{
		"vendor/a": "^2.0",
		"vendor/b": "1.3.0",
		"vendor/c": "1.0.0",
		"vendor/d": "^5.0",
	}, plan.Ledger)

	// Inputs are left alone.
	assert.Equal(t, map[string]string{"vendor/a": "^2.0", "vendor/c": "0.9.0"}, ledger)
	assert.Equal(t, domain.StringMap{"vendor/a": "^2.0", "vendor/b": "1.2.0"}, require)
}

func TestMerge_LedgerKeepsUnrelatedEntries(t *testing.T) {
	plan := inliner.Merge(domain.StringMap{}, map[string]string{"other/x": "1.0"}, nil, "php")

	assert.Empty(t, plan.Decisions)
	assert.Equal(t, map[string]string{"other/x": "1.0"}, plan.Ledger)
}

func TestMerge_NilLedger(t *testing.T) {
	plan := inliner.Merge(nil, nil, domain.Links{{Target: "vendor/a", Constraint: "^2.0"}}, "php")

	assert.Equal(t, inliner.OutcomeNew, plan.Decisions[0].Outcome)
	assert.Equal(t, map[string]string{"vendor/a": "^2.0"}, plan.Ledger)
}
