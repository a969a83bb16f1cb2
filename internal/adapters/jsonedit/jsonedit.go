// Package jsonedit patches JSON documents in place, leaving every byte outside the
// edited member untouched so hand-written formatting and key order survive.
package jsonedit

import (
	"bytes"
	"encoding/json"
	"strings"

	"go.trai.ch/recipe/internal/core/domain"
	"go.trai.ch/zerr"
)

const defaultIndent = "    "

// member is one key/value pair of an object, as byte offsets into the document.
type member struct {
	key        string
	keyStart   int
	valueStart int
	valueEnd   int
}

// object is the byte span of an object and its members.
type object struct {
	open    int
	close   int
	members []member
}

func (o *object) find(key string) int {
	for i, m := range o.members {
		if m.key == key {
			return i
		}
	}
	return -1
}

// Document is a JSON object document being patched.
type Document struct {
	src     []byte
	indent  string
	newline string
}

// Parse prepares src for patching. src must hold a JSON object.
func Parse(src []byte) (*Document, error) {
	d := &Document{src: append([]byte(nil), src...)}
	if _, err := d.root(); err != nil {
		return nil, err
	}
	d.indent = d.detectIndent()
	d.newline = "\n"
	if bytes.Contains(src, []byte("\r\n")) {
		d.newline = "\r\n"
	}
	return d, nil
}

// Bytes returns the patched document.
func (d *Document) Bytes() []byte {
	return d.src
}

// Set stores value at path, where path names a top-level key or a key inside a
// top-level object. Missing sections are created. An empty array section is
// treated as an empty object.
func (d *Document) Set(path []string, value any) error {
	root, err := d.root()
	if err != nil {
		return err
	}

	switch len(path) {
	case 1:
		return d.setMember(root, path[0], value)
	case 2:
		idx := root.find(path[0])
		if idx < 0 {
			return d.setMember(root, path[0], map[string]any{path[1]: value})
		}
		section := root.members[idx]
		switch d.src[section.valueStart] {
		case '{':
			inner, err := d.parseObject(section.valueStart)
			if err != nil {
				return err
			}
			return d.setMember(inner, path[1], value)
		case '[':
			if !d.isEmptyArray(section.valueStart, section.valueEnd) {
				return patchError("section is not an object", path[0])
			}
			return d.setMember(root, path[0], map[string]any{path[1]: value})
		default:
			if string(d.src[section.valueStart:section.valueEnd]) == "null" {
				return d.setMember(root, path[0], map[string]any{path[1]: value})
			}
			return patchError("section is not an object", path[0])
		}
	default:
		return patchError("unsupported path depth", strings.Join(path, "."))
	}
}

// Remove deletes the member at path. Missing members are ignored.
func (d *Document) Remove(path []string) error {
	root, err := d.root()
	if err != nil {
		return err
	}

	switch len(path) {
	case 1:
		d.removeMember(root, root.find(path[0]))
		return nil
	case 2:
		idx := root.find(path[0])
		if idx < 0 {
			return nil
		}
		section := root.members[idx]
		if d.src[section.valueStart] != '{' {
			return nil
		}
		inner, err := d.parseObject(section.valueStart)
		if err != nil {
			return err
		}
		d.removeMember(inner, inner.find(path[1]))
		return nil
	default:
		return patchError("unsupported path depth", strings.Join(path, "."))
	}
}

// Set patches a single value into src.
func Set(src []byte, path []string, value any) ([]byte, error) {
	d, err := Parse(src)
	if err != nil {
		return nil, err
	}
	if err := d.Set(path, value); err != nil {
		return nil, err
	}
	return d.Bytes(), nil
}

// Remove deletes a single member from src.
func Remove(src []byte, path []string) ([]byte, error) {
	d, err := Parse(src)
	if err != nil {
		return nil, err
	}
	if err := d.Remove(path); err != nil {
		return nil, err
	}
	return d.Bytes(), nil
}

func (d *Document) root() (*object, error) {
	start := skipSpace(d.src, 0)
	if start >= len(d.src) || d.src[start] != '{' {
		return nil, patchError("document is not an object", "")
	}
	return d.parseObject(start)
}

func (d *Document) setMember(obj *object, key string, value any) error {
	if idx := obj.find(key); idx >= 0 {
		m := obj.members[idx]
		rendered, err := render(value, d.lineIndent(m.keyStart), d.indent)
		if err != nil {
			return err
		}
		d.splice(m.valueStart, m.valueEnd, rendered)
		return nil
	}

	var indent string
	if len(obj.members) > 0 {
		indent = d.lineIndent(obj.members[0].keyStart)
	} else {
		indent = d.lineIndent(obj.open) + d.indent
	}

	encodedKey, err := encode(key)
	if err != nil {
		return err
	}
	rendered, err := render(value, indent, d.indent)
	if err != nil {
		return err
	}
	entry := encodedKey + ": " + rendered

	if len(obj.members) == 0 {
		closing := d.newline + d.lineIndent(obj.open)
		d.splice(obj.open+1, obj.close, d.newline+indent+entry+closing)
		return nil
	}

	last := obj.members[len(obj.members)-1]
	d.splice(last.valueEnd, last.valueEnd, ","+d.newline+indent+entry)
	return nil
}

func (d *Document) removeMember(obj *object, idx int) {
	if idx < 0 {
		return
	}
	m := obj.members[idx]
	switch {
	case len(obj.members) == 1:
		d.splice(obj.open+1, obj.close, "")
	case idx == len(obj.members)-1:
		d.splice(obj.members[idx-1].valueEnd, m.valueEnd, "")
	default:
		d.splice(m.keyStart, obj.members[idx+1].keyStart, "")
	}
}

func (d *Document) splice(start, end int, text string) {
	out := make([]byte, 0, len(d.src)-(end-start)+len(text))
	out = append(out, d.src[:start]...)
	out = append(out, text...)
	out = append(out, d.src[end:]...)
	d.src = out
}

// lineIndent returns the whitespace between the start of the line holding pos and
// the first non-blank character of that line.
func (d *Document) lineIndent(pos int) string {
	lineStart := bytes.LastIndexByte(d.src[:pos], '\n') + 1
	end := lineStart
	for end < len(d.src) && (d.src[end] == ' ' || d.src[end] == '\t') {
		end++
	}
	return string(d.src[lineStart:end])
}

func (d *Document) detectIndent() string {
	root, err := d.root()
	if err != nil || len(root.members) == 0 {
		return defaultIndent
	}
	if indent := d.lineIndent(root.members[0].keyStart); indent != "" &&
		bytes.LastIndexByte(d.src[:root.members[0].keyStart], '\n') > root.open {
		return indent
	}
	return defaultIndent
}

func (d *Document) isEmptyArray(start, end int) bool {
	return len(bytes.TrimSpace(d.src[start+1:end-1])) == 0
}

func render(value any, prefix, indent string) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent(prefix, indent)
	if err := enc.Encode(value); err != nil {
		return "", zerr.Wrap(err, domain.ErrPatchFailed.Error())
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

func encode(s string) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return "", zerr.Wrap(err, domain.ErrPatchFailed.Error())
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

func patchError(reason, path string) error {
	err := zerr.With(domain.ErrPatchFailed, "reason", reason)
	if path != "" {
		err = zerr.With(err, "path", path)
	}
	return err
}
