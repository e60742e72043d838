package scan

import (
	"bytes"
	"unicode"
	"unicode/utf16"
	"unicode/utf8"
)

// DefaultField is the record field the extractor looks for when no other
// field name is configured.
const DefaultField = "type"

// Status is the verdict of extracting the classification field from one line.
type Status uint8

const (
	StatusFound     Status = 0x1 // StatusFound means a value was extracted.
	StatusMissing   Status = 0x2 // StatusMissing means the object carries no such field.
	StatusMalformed Status = 0x3 // StatusMalformed means the line broke before a verdict.
)

func (s Status) String() string {
	switch s {
	case StatusFound:
		return "Found"
	case StatusMissing:
		return "Missing"
	case StatusMalformed:
		return "Malformed"
	default:
		return "Unknown"
	}
}

// TypeKey is the extracted value of the classification field.
//
// When the value contains no escape sequences the key borrows a subslice of
// the scanned line and performs no copy. When escapes had to be decoded the
// key points at a scratch buffer owned by the extractor. Either way the
// bytes are valid only until the next Extract call on the same extractor;
// consumers that outlive the call must copy them (stats.Partial.Record does).
//
// Key equality is by decoded content: "a\"b" and "a\u0022b" yield equal keys.
type TypeKey struct {
	raw   []byte
	owned bool
}

// Bytes returns the decoded key bytes.
func (k TypeKey) Bytes() []byte {
	return k.raw
}

// Owned reports whether the key was decoded into extractor-owned memory
// rather than borrowed from the line.
func (k TypeKey) Owned() bool {
	return k.owned
}

func (k TypeKey) String() string {
	return string(k.raw)
}

// Extractor pulls the value of a single top-level string field out of one
// JSON object line without building a document tree.
//
// The scan is a single left-to-right pass that tracks brace depth and string
// state. A string at depth 1 followed by a colon is a candidate key; when
// its bytes equal the configured field name, the value after the colon is
// read as a JSON string literal and returned. Strings nested deeper, string
// values, and keys inside sub-objects can never match. Scanning stops at the
// verdict, so bytes after the extracted value are not validated, and bytes
// between recognized tokens are only walked, not validated.
//
// The field name itself is matched on its raw spelling. An escaped spelling
// of the field name in the input ("\u0074ype") is not recognized; values
// always decode their escapes.
//
// An Extractor is not safe for concurrent use. Each worker owns one, which
// lets the escape decoder reuse a single scratch buffer across lines.
type Extractor struct {
	field   []byte
	scratch []byte
}

// NewExtractor creates an extractor matching the given field name.
// An empty name falls back to DefaultField.
func NewExtractor(field string) *Extractor {
	if field == "" {
		field = DefaultField
	}

	return &Extractor{field: []byte(field)}
}

// Extract scans one line and returns the field value and a verdict.
//
// Verdicts:
//   - StatusFound: the field was located and its string value decoded. The
//     returned key is valid until the next Extract call.
//   - StatusMissing: the top-level object closed without the field. The line
//     is counted as well formed but unclassifiable.
//   - StatusMalformed: the line is not an object, a string or the structure
//     ends before a verdict, the field value is not a string, an escape is
//     invalid, or the value is not valid UTF-8.
//
// The line must not contain the terminating newline.
func (e *Extractor) Extract(line []byte) (TypeKey, Status) {
	i := skipSpace(line, 0)
	if i >= len(line) || line[i] != '{' {
		return TypeKey{}, StatusMalformed
	}

	depth := 0
	for i < len(line) {
		switch line[i] {
		case '{', '[':
			depth++
			i++
		case '}', ']':
			depth--
			i++
			if depth == 0 {
				// Top-level object closed without the field
				return TypeKey{}, StatusMissing
			}
			if depth < 0 {
				return TypeKey{}, StatusMalformed
			}
		case '"':
			start := i + 1
			end, escaped, ok := scanString(line, start)
			if !ok {
				return TypeKey{}, StatusMalformed
			}
			i = end + 1

			// A candidate key: top-level string whose raw bytes equal the
			// field name. Escaped candidates are compared raw and thus never
			// match, see the type doc.
			if depth == 1 && !escaped && bytes.Equal(line[start:end], e.field) {
				j := skipSpace(line, i)
				if j < len(line) && line[j] == ':' {
					return e.value(line, j+1)
				}
			}
		default:
			i++
		}
	}

	// Ran off the end of the line with the structure still open
	return TypeKey{}, StatusMalformed
}

// value reads the JSON string literal after the key's colon.
func (e *Extractor) value(line []byte, i int) (TypeKey, Status) {
	i = skipSpace(line, i)
	if i >= len(line) || line[i] != '"' {
		// Truncated, or a non-string value (number, bool, null, object, array)
		return TypeKey{}, StatusMalformed
	}

	start := i + 1
	end, escaped, ok := scanString(line, start)
	if !ok {
		return TypeKey{}, StatusMalformed
	}

	raw := line[start:end]
	if !escaped {
		if !utf8.Valid(raw) {
			return TypeKey{}, StatusMalformed
		}

		return TypeKey{raw: raw}, StatusFound
	}

	decoded, ok := e.unescape(raw)
	if !ok {
		return TypeKey{}, StatusMalformed
	}

	return TypeKey{raw: decoded, owned: true}, StatusFound
}

// unescape decodes the JSON escape sequences in raw into the extractor's
// scratch buffer. It returns false for invalid escapes, broken surrogate
// pairs, and results that are not valid UTF-8.
func (e *Extractor) unescape(raw []byte) ([]byte, bool) {
	out := e.scratch[:0]

	for i := 0; i < len(raw); {
		c := raw[i]
		if c != '\\' {
			out = append(out, c)
			i++

			continue
		}

		i++
		if i >= len(raw) {
			return nil, false
		}

		switch raw[i] {
		case '"':
			out = append(out, '"')
			i++
		case '\\':
			out = append(out, '\\')
			i++
		case '/':
			out = append(out, '/')
			i++
		case 'b':
			out = append(out, '\b')
			i++
		case 'f':
			out = append(out, '\f')
			i++
		case 'n':
			out = append(out, '\n')
			i++
		case 'r':
			out = append(out, '\r')
			i++
		case 't':
			out = append(out, '\t')
			i++
		case 'u':
			r, next, ok := decodeHexRune(raw, i+1)
			if !ok {
				return nil, false
			}
			i = next

			if !utf16.IsSurrogate(r) {
				out = utf8.AppendRune(out, r)
				break
			}

			// A surrogate half must pair with an immediate \uXXXX low half
			if i+1 >= len(raw) || raw[i] != '\\' || raw[i+1] != 'u' {
				return nil, false
			}
			r2, next2, ok := decodeHexRune(raw, i+2)
			if !ok {
				return nil, false
			}
			combined := utf16.DecodeRune(r, r2)
			if combined == unicode.ReplacementChar {
				return nil, false
			}
			i = next2
			out = utf8.AppendRune(out, combined)
		default:
			return nil, false
		}
	}

	// Keep the grown scratch capacity for the next line
	e.scratch = out

	if !utf8.Valid(out) {
		return nil, false
	}

	return out, true
}

// scanString walks a JSON string body starting just after the opening quote
// and returns the index of the closing quote. escaped reports whether any
// backslash escape occurred. ok is false when the string never closes.
func scanString(b []byte, i int) (end int, escaped bool, ok bool) {
	for i < len(b) {
		switch b[i] {
		case '\\':
			escaped = true
			i += 2
		case '"':
			return i, escaped, true
		default:
			i++
		}
	}

	return 0, false, false
}

// decodeHexRune parses the 4 hex digits of a \uXXXX escape at b[i:].
func decodeHexRune(b []byte, i int) (rune, int, bool) {
	if i+4 > len(b) {
		return 0, 0, false
	}

	var r rune
	for _, c := range b[i : i+4] {
		var v rune
		switch {
		case c >= '0' && c <= '9':
			v = rune(c - '0')
		case c >= 'a' && c <= 'f':
			v = rune(c-'a') + 10
		case c >= 'A' && c <= 'F':
			v = rune(c-'A') + 10
		default:
			return 0, 0, false
		}
		r = r<<4 | v
	}

	return r, i + 4, true
}

func skipSpace(b []byte, i int) int {
	for i < len(b) {
		switch b[i] {
		case ' ', '\t', '\r':
			i++
		default:
			return i
		}
	}

	return i
}
