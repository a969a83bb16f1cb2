package jsonedit_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/recipe/internal/adapters/jsonedit"
	"go.trai.ch/recipe/internal/core/domain"
)

const base = `{
    "name": "acme/site",
    "require": {
        "vendor/a": "^2.0"
    }
}
`

func TestSet(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		path  []string
		value any
		want  string
	}{
		{
			name:  "append to section",
			src:   base,
			path:  []string{"require", "vendor/b"},
			value: "1.3.0",
			want: `{
    "name": "acme/site",
    "require": {
        "vendor/a": "^2.0",
        "vendor/b": "1.3.0"
    }
}
`,
		},
		{
			name:  "replace in place",
			src:   base,
			path:  []string{"require", "vendor/a"},
			value: "^3.0",
			want: `{
    "name": "acme/site",
    "require": {
        "vendor/a": "^3.0"
    }
}
`,
		},
		{
			name:  "empty array section becomes object",
			src:   "{\n    \"require\": {},\n    \"provide\": []\n}\n",
			path:  []string{"provide", "sample/blog"},
			value: "1.0.0",
			want:  "{\n    \"require\": {},\n    \"provide\": {\n        \"sample/blog\": \"1.0.0\"\n    }\n}\n",
		},
		{
			name:  "empty object section",
			src:   "{\n    \"require\": {},\n    \"provide\": []\n}\n",
			path:  []string{"require", "vendor/a"},
			value: "^2.0",
			want:  "{\n    \"require\": {\n        \"vendor/a\": \"^2.0\"\n    },\n    \"provide\": []\n}\n",
		},
		{
			name:  "missing section is created",
			src:   "{\n    \"name\": \"acme/site\"\n}\n",
			path:  []string{"extra", "project-files-installed"},
			value: []string{"a.php"},
			want: `{
    "name": "acme/site",
    "extra": {
        "project-files-installed": [
            "a.php"
        ]
    }
}
`,
		},
		{
			name:  "two space indent is kept",
			src:   "{\n  \"name\": \"x\"\n}\n",
			path:  []string{"require", "a/a"},
			value: "1",
			want:  "{\n  \"name\": \"x\",\n  \"require\": {\n    \"a/a\": \"1\"\n  }\n}\n",
		},
		{
			name:  "top level key",
			src:   "{\n    \"name\": \"x\"\n}\n",
			path:  []string{"content-hash"},
			value: "abc",
			want:  "{\n    \"name\": \"x\",\n    \"content-hash\": \"abc\"\n}\n",
		},
		{
			name:  "no html escaping",
			src:   "{\n    \"require\": {}\n}\n",
			path:  []string{"require", "a/b"},
			value: "<1.0 || >=2.0 & ü",
			want:  "{\n    \"require\": {\n        \"a/b\": \"<1.0 || >=2.0 & ü\"\n    }\n}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := jsonedit.Set([]byte(tt.src), tt.path, tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
			assert.True(t, json.Valid(got))
		})
	}
}

func TestRemove(t *testing.T) {
	src := `{
    "require": {
        "a/a": "1",
        "b/b": "2",
        "c/c": "3"
    },
    "extra": {}
}
`
	tests := []struct {
		name string
		path []string
		want string
	}{
		{
			name: "middle member",
			path: []string{"require", "b/b"},
			want: "{\n    \"require\": {\n        \"a/a\": \"1\",\n        \"c/c\": \"3\"\n    },\n    \"extra\": {}\n}\n",
		},
		{
			name: "last member",
			path: []string{"require", "c/c"},
			want: "{\n    \"require\": {\n        \"a/a\": \"1\",\n        \"b/b\": \"2\"\n    },\n    \"extra\": {}\n}\n",
		},
		{
			name: "first member",
			path: []string{"require", "a/a"},
			want: "{\n    \"require\": {\n        \"b/b\": \"2\",\n        \"c/c\": \"3\"\n    },\n    \"extra\": {}\n}\n",
		},
		{
			name: "top level section",
			path: []string{"extra"},
			want: "{\n    \"require\": {\n        \"a/a\": \"1\",\n        \"b/b\": \"2\",\n        \"c/c\": \"3\"\n    }\n}\n",
		},
		{
			name: "missing member is ignored",
			path: []string{"require", "z/z"},
			want: src,
		},
		{
			name: "missing section is ignored",
			path: []string{"provide", "a/a"},
			want: src,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := jsonedit.Remove([]byte(src), tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestRemove_OnlyMember(t *testing.T) {
	got, err := jsonedit.Remove([]byte("{\n    \"require\": {\n        \"a/a\": \"1\"\n    }\n}"), []string{"require", "a/a"})
	require.NoError(t, err)
	assert.Equal(t, "{\n    \"require\": {}\n}", string(got))
}

func TestDocument_SequentialEdits(t *testing.T) {
	doc, err := jsonedit.Parse([]byte(`{"description": "a { b } \" c", "require": {}}`))
	require.NoError(t, err)

	require.NoError(t, doc.Set([]string{"require", "a/a"}, "1"))
	require.NoError(t, doc.Set([]string{"require", "b/b"}, "2"))
	require.NoError(t, doc.Remove([]string{"require", "a/a"}))

	var decoded struct {
		Description string            `json:"description"`
		Require     map[string]string `json:"require"`
	}
	require.NoError(t, json.Unmarshal(doc.Bytes(), &decoded))
	assert.Equal(t, `a { b } " c`, decoded.Description)
	assert.Equal(t, map[string]string{"b/b": "2"}, decoded.Require)
}

func TestErrors(t *testing.T) {
	_, err := jsonedit.Parse([]byte(`[]`))
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrPatchFailed.Error())

	_, err = jsonedit.Parse([]byte(`{"a": }`))
	require.Error(t, err)

	_, err = jsonedit.Set([]byte(`{"name": "x"}`), []string{"name", "y"}, "1")
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrPatchFailed.Error())

	_, err = jsonedit.Set([]byte(`{"a": [1]}`), []string{"a", "y"}, "1")
	require.Error(t, err)

	_, err = jsonedit.Set([]byte(`{}`), []string{"a", "b", "c"}, "1")
	require.Error(t, err)
}
