package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/recipe/internal/adapters/store"
)

func TestContentHasher(t *testing.T) {
	tests := []struct {
		name     string
		manifest string
		want     string
	}{
		{
			name: "relevant keys sorted, empty object as list",
			manifest: `{
    "require": {"vendor/a": "^2.0"},
    "description": "not part of the hash",
    "name": "acme/site",
    "extra": {}
}`,
			want: "610cec4c203561369e0cbc312dcd8ad7",
		},
		{
			name: "platform config, unicode and numeric keys",
			manifest: `{
    "name": "café/x",
    "config": {"sort-packages": true, "platform": {"php": "8.1"}},
    "require": {"0": "a"}
}`,
			want: "8c4b640009c2f37cc415a5f7484d8ca6",
		},
	}

	h := store.NewContentHasher()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := h.ContentHash([]byte(tt.manifest))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestContentHasher_FormattingIndependent(t *testing.T) {
	h := store.NewContentHasher()

	a, err := h.ContentHash([]byte(`{"name":"acme/site","require":{"vendor/a":"^2.0"}}`))
	require.NoError(t, err)
	b, err := h.ContentHash([]byte("{\n    \"require\": {\n        \"vendor/a\": \"^2.0\"\n    },\n    \"name\": \"acme/site\"\n}\n"))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestContentHasher_Invalid(t *testing.T) {
	h := store.NewContentHasher()
	_, err := h.ContentHash([]byte(`[1, 2]`))
	assert.Error(t, err)
	_, err = h.ContentHash([]byte(`{`))
	assert.Error(t, err)
}
