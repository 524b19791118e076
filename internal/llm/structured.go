package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SchemaValidator validates a parsed struct after JSON extraction.
// Returns nil if valid, or a descriptive error if invalid.
type SchemaValidator[T any] func(T) error

// ExtractJSON decodes the first JSON object in raw LLM output into T.
// If validator is non-nil, the decoded value is validated before return.
func ExtractJSON[T any](raw string, validator SchemaValidator[T]) (T, error) {
	var zero T

	obj, err := ExtractJSONObject(raw)
	if err != nil {
		return zero, err
	}

	var result T
	if err := json.Unmarshal([]byte(obj), &result); err != nil {
		return zero, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}

	if validator != nil {
		if err := validator(result); err != nil {
			return zero, fmt.Errorf("%w: validation failed: %v", ErrInvalidOutput, err)
		}
	}

	return result, nil
}

// ExtractJSONObject returns the first JSON object in raw LLM output as
// cleaned JSON text. Code fences, surrounding prose, comments, trailing
// commas and leading-dot decimals are tolerated.
func ExtractJSONObject(raw string) (string, error) {
	cleaned := stripCodeFences(raw)
	obj := extractJSONBlock(cleaned)
	if obj == "" {
		return "", fmt.Errorf("%w: no JSON object found in response", ErrInvalidOutput)
	}
	obj = cleanJSON(obj)
	if !json.Valid([]byte(obj)) {
		return "", fmt.Errorf("%w: response is not valid JSON", ErrInvalidOutput)
	}
	return obj, nil
}

// stripCodeFences drops markdown fence lines (```json, ```), keeping what
// was between them.
func stripCodeFences(s string) string {
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if !strings.HasPrefix(strings.TrimSpace(line), "```") {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

// extractJSONBlock returns the first balanced {...} block, ignoring braces
// inside string values.
func extractJSONBlock(s string) string {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return ""
	}
	depth := 0
	inString, escaped := false, false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			if depth--; depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}

// cleanJSON turns the loose JSON models tend to write into strict JSON in
// one pass. Comments are dropped, trailing commas removed and ".5" style
// numbers get a leading zero. String values are copied as-is.
func cleanJSON(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 8)

	var prev byte // last significant byte written outside strings
	inString, escaped := false, false

	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			b.WriteByte(c)
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
				prev = c
			}
			continue
		}

		switch {
		case c == '"':
			inString = true
		case isCommentStart(s, i):
			i = skipComment(s, i) - 1
			continue
		case c == ',':
			if next := nextSignificant(s, i+1); next == '}' || next == ']' {
				continue
			}
		case c == '.' && i+1 < len(s) && isDigit(s[i+1]) && isNumericBoundary(prev):
			b.WriteByte('0')
		}

		b.WriteByte(c)
		if !isSpace(c) {
			prev = c
		}
	}
	return b.String()
}

func isCommentStart(s string, i int) bool {
	return s[i] == '/' && i+1 < len(s) && (s[i+1] == '/' || s[i+1] == '*')
}

// skipComment returns the index just past the comment starting at i. Line
// comments end before their newline.
func skipComment(s string, i int) int {
	if s[i+1] == '/' {
		if nl := strings.IndexByte(s[i:], '\n'); nl >= 0 {
			return i + nl
		}
		return len(s)
	}
	if end := strings.Index(s[i+2:], "*/"); end >= 0 {
		return i + 2 + end + 2
	}
	return len(s)
}

// nextSignificant returns the next byte at or after i that is neither
// whitespace nor part of a comment, or 0 at the end of s.
func nextSignificant(s string, i int) byte {
	for i < len(s) {
		switch {
		case isSpace(s[i]):
			i++
		case isCommentStart(s, i):
			i = skipComment(s, i)
		default:
			return s[i]
		}
	}
	return 0
}

func isNumericBoundary(c byte) bool {
	switch c {
	case 0, ':', ',', '[', '{', '-':
		return true
	default:
		return false
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\n' || c == '\r' || c == '\t'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
