package jsonedit

import (
	"encoding/json"
)

func skipSpace(src []byte, pos int) int {
	for pos < len(src) {
		switch src[pos] {
		case ' ', '\t', '\n', '\r':
			pos++
		default:
			return pos
		}
	}
	return pos
}

// parseObject scans the object opening at start and records its members.
func (d *Document) parseObject(start int) (*object, error) {
	src := d.src
	obj := &object{open: start}

	pos := skipSpace(src, start+1)
	if pos < len(src) && src[pos] == '}' {
		obj.close = pos
		return obj, nil
	}

	for {
		if pos >= len(src) || src[pos] != '"' {
			return nil, patchError("expected object key", "")
		}
		keyStart := pos
		keyEnd, err := skipString(src, pos)
		if err != nil {
			return nil, err
		}
		var key string
		if err := json.Unmarshal(src[keyStart:keyEnd], &key); err != nil {
			return nil, patchError("invalid object key", "")
		}

		pos = skipSpace(src, keyEnd)
		if pos >= len(src) || src[pos] != ':' {
			return nil, patchError("expected colon", key)
		}
		valueStart := skipSpace(src, pos+1)
		valueEnd, err := skipValue(src, valueStart)
		if err != nil {
			return nil, err
		}
		obj.members = append(obj.members, member{
			key:        key,
			keyStart:   keyStart,
			valueStart: valueStart,
			valueEnd:   valueEnd,
		})

		pos = skipSpace(src, valueEnd)
		if pos >= len(src) {
			return nil, patchError("unterminated object", "")
		}
		switch src[pos] {
		case ',':
			pos = skipSpace(src, pos+1)
		case '}':
			obj.close = pos
			return obj, nil
		default:
			return nil, patchError("expected comma or closing brace", key)
		}
	}
}

// skipString returns the offset just past the string starting at pos.
func skipString(src []byte, pos int) (int, error) {
	for i := pos + 1; i < len(src); i++ {
		switch src[i] {
		case '\\':
			i++
		case '"':
			return i + 1, nil
		}
	}
	return 0, patchError("unterminated string", "")
}

// skipValue returns the offset just past the value starting at pos.
func skipValue(src []byte, pos int) (int, error) {
	if pos >= len(src) {
		return 0, patchError("unexpected end of document", "")
	}

	switch src[pos] {
	case '"':
		return skipString(src, pos)
	case '{', '[':
		depth := 0
		for i := pos; i < len(src); i++ {
			switch src[i] {
			case '"':
				end, err := skipString(src, i)
				if err != nil {
					return 0, err
				}
				i = end - 1
			case '{', '[':
				depth++
			case '}', ']':
				depth--
				if depth == 0 {
					return i + 1, nil
				}
			}
		}
		return 0, patchError("unterminated container", "")
	default:
		end := pos
		for end < len(src) {
			switch src[end] {
			case ',', '}', ']', ' ', '\t', '\n', '\r':
				if end == pos {
					return 0, patchError("empty value", "")
				}
				return end, nil
			}
			end++
		}
		return end, nil
	}
}
