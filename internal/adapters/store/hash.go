package store

import (
	"bytes"
	"crypto/md5" //nolint:gosec // the lock format defines content-hash as md5
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strconv"
	"unicode/utf16"
	"unicode/utf8"

	"go.trai.ch/recipe/internal/core/domain"
	"go.trai.ch/recipe/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Hasher = (*ContentHasher)(nil)

// relevantKeys are the manifest keys that feed the lock's content-hash.
var relevantKeys = []string{
	"name",
	"version",
	"require",
	"require-dev",
	"conflict",
	"replace",
	"provide",
	"minimum-stability",
	"prefer-stable",
	"repositories",
	"extra",
}

// ContentHasher computes the content-hash the package solver stores in its lock file.
type ContentHasher struct{}

// NewContentHasher creates a new ContentHasher.
func NewContentHasher() *ContentHasher {
	return &ContentHasher{}
}

// ContentHash returns the md5 of the relevant manifest keys, encoded the way the
// solver encodes them. Objects keep document order, the top level is key sorted.
func (h *ContentHasher) ContentHash(manifestRaw []byte) (string, error) {
	root, err := decodeOrdered(manifestRaw)
	if err != nil {
		return "", zerr.Wrap(err, domain.ErrInvalidManifestJSON.Error())
	}
	obj, ok := root.(*orderedObject)
	if !ok {
		return "", zerr.With(domain.ErrInvalidManifestJSON, "reason", "manifest is not an object")
	}

	relevant := &orderedObject{}
	for _, key := range relevantKeys {
		if value, ok := obj.get(key); ok {
			relevant.set(key, value)
		}
	}
	if cfg, ok := obj.get("config"); ok {
		if cfgObj, ok := cfg.(*orderedObject); ok {
			if platform, ok := cfgObj.get("platform"); ok {
				relevant.set("config", &orderedObject{keys: []string{"platform"}, values: []any{platform}})
			}
		}
	}
	relevant.sortKeys()

	var buf bytes.Buffer
	encodePHP(&buf, relevant)

	sum := md5.Sum(buf.Bytes()) //nolint:gosec // see import
	return hex.EncodeToString(sum[:]), nil
}

// orderedObject is a JSON object that remembers key order.
type orderedObject struct {
	keys   []string
	values []any
}

func (o *orderedObject) get(key string) (any, bool) {
	if i := slices.Index(o.keys, key); i >= 0 {
		return o.values[i], true
	}
	return nil, false
}

func (o *orderedObject) set(key string, value any) {
	if i := slices.Index(o.keys, key); i >= 0 {
		o.values[i] = value
		return
	}
	o.keys = append(o.keys, key)
	o.values = append(o.values, value)
}

func (o *orderedObject) sortKeys() {
	idx := make([]int, len(o.keys))
	for i := range idx {
		idx[i] = i
	}
	slices.SortStableFunc(idx, func(a, b int) int {
		switch {
		case o.keys[a] < o.keys[b]:
			return -1
		case o.keys[a] > o.keys[b]:
			return 1
		default:
			return 0
		}
	})
	keys := make([]string, len(idx))
	values := make([]any, len(idx))
	for i, j := range idx {
		keys[i] = o.keys[j]
		values[i] = o.values[j]
	}
	o.keys, o.values = keys, values
}

// isList reports whether the keys are exactly "0".."n-1", which the solver's
// decoder turns into a plain list.
func (o *orderedObject) isList() bool {
	for i, key := range o.keys {
		if key != strconv.Itoa(i) {
			return false
		}
	}
	return true
}

func decodeOrdered(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	value, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected trailing data")
	}
	return value, nil
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}

	switch delim {
	case '{':
		obj := &orderedObject{}
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			value, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			obj.set(keyTok.(string), value)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return obj, nil
	case '[':
		list := []any{}
		for dec.More() {
			value, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			list = append(list, value)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return list, nil
	default:
		return nil, fmt.Errorf("unexpected delimiter %q", delim)
	}
}

// encodePHP writes value the way PHP's json_encode does with default flags:
// slashes and non-ASCII characters are escaped and empty objects become [].
func encodePHP(buf *bytes.Buffer, value any) {
	switch v := value.(type) {
	case nil:
		buf.WriteString("null")
	case bool:
		buf.WriteString(strconv.FormatBool(v))
	case json.Number:
		buf.WriteString(v.String())
	case string:
		encodePHPString(buf, v)
	case []any:
		buf.WriteByte('[')
		for i, item := range v {
			if i > 0 {
				buf.WriteByte(',')
			}
			encodePHP(buf, item)
		}
		buf.WriteByte(']')
	case *orderedObject:
		if v.isList() {
			encodePHP(buf, v.values)
			return
		}
		buf.WriteByte('{')
		for i, key := range v.keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			encodePHPString(buf, key)
			buf.WriteByte(':')
			encodePHP(buf, v.values[i])
		}
		buf.WriteByte('}')
	}
}

func encodePHPString(buf *bytes.Buffer, s string) {
	buf.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '/':
			buf.WriteString(`\/`)
		case '\b':
			buf.WriteString(`\b`)
		case '\f':
			buf.WriteString(`\f`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		default:
			switch {
			case r < 0x20:
				fmt.Fprintf(buf, `\u%04x`, r)
			case r < utf8.RuneSelf:
				buf.WriteRune(r)
			case r > 0xFFFF:
				hi, lo := utf16.EncodeRune(r)
				fmt.Fprintf(buf, `\u%04x\u%04x`, hi, lo)
			default:
				fmt.Fprintf(buf, `\u%04x`, r)
			}
		}
	}
	buf.WriteByte('"')
}
