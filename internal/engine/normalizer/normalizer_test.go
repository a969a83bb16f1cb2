package normalizer_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/recipe/internal/core/domain"
	"go.trai.ch/recipe/internal/engine/normalizer"
)

var aliases = map[string]string{"core": "silverstripe/recipe-core"}

func TestNormalizer_Resolve(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "bare names",
			args: []string{"sample/blog", "vendor/a"},
			want: []string{"sample/blog", "vendor/a"},
		},
		{
			name: "colon pair",
			args: []string{"sample/blog:^1.0"},
			want: []string{"sample/blog"},
		},
		{
			name: "equals pair",
			args: []string{"sample/blog=1.0.0"},
			want: []string{"sample/blog"},
		},
		{
			name: "separate version token",
			args: []string{"sample/blog", "^1.0", "vendor/a"},
			want: []string{"sample/blog", "vendor/a"},
		},
		{
			name: "alias",
			args: []string{"core"},
			want: []string{"silverstripe/recipe-core"},
		},
		{
			name: "alias with constraint",
			args: []string{"core:^4.0"},
			want: []string{"silverstripe/recipe-core"},
		},
		{
			name: "platform package kept",
			args: []string{"php", "ext-json"},
			want: []string{"php", "ext-json"},
		},
		{
			name: "reserved tokens kept",
			args: []string{"nothing"},
			want: []string{"nothing"},
		},
		{
			name: "duplicates collapse",
			args: []string{"sample/blog", "sample/blog:^1.0", "core", "silverstripe/recipe-core"},
			want: []string{"sample/blog", "silverstripe/recipe-core"},
		},
		{
			name: "wildcard package is not a version",
			args: []string{"sample/blog", "vendor/*"},
			want: []string{"sample/blog", "vendor/*"},
		},
	}

	n := normalizer.New(aliases)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := n.Resolve(tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizer_ResolveRequirements(t *testing.T) {
	n := normalizer.New(aliases)

	got, err := n.ResolveRequirements([]string{"core", "^4.2 || ~5.0@beta", "sample/blog:1.0.0", "vendor/a"})
	require.NoError(t, err)
	assert.Equal(t, []domain.Requirement{
		{Name: "silverstripe/recipe-core", Constraint: "^4.2 || ~5.0@beta"},
		{Name: "sample/blog", Constraint: "1.0.0"},
		{Name: "vendor/a"},
	}, got)
}

func TestNormalizer_InvalidConstraint(t *testing.T) {
	n := normalizer.New(aliases)

	_, err := n.Resolve([]string{"sample/blog", "not-a-version!"})
	require.Error(t, err)

	var parseErr *domain.ConstraintParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "not-a-version!", parseErr.Token)
	assert.ErrorIs(t, err, domain.ErrConstraintParse)
}

func TestNormalizer_UnknownShortName(t *testing.T) {
	n := normalizer.New(aliases)

	_, err := n.Resolve([]string{"blog"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConstraintParse)
}

func TestNormalizer_AliasTableUntouched(t *testing.T) {
	table := map[string]string{"core": "silverstripe/recipe-core"}
	n := normalizer.New(table)

	_, err := n.Resolve([]string{"core"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"core": "silverstripe/recipe-core"}, table)
}
