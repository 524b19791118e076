package importer

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/invopop/jsonschema"
)

var jsonNull = []byte("null")

// Text is a string field that remembers whether it was present and whether
// it held a JSON string.
type Text struct {
	Value string
	Set   bool
	Valid bool
}

func (t *Text) UnmarshalJSON(b []byte) error {
	*t = Text{}
	if bytes.Equal(bytes.TrimSpace(b), jsonNull) {
		return nil
	}
	t.Set = true
	if err := json.Unmarshal(b, &t.Value); err != nil {
		t.Value = ""
		return nil
	}
	t.Valid = true
	return nil
}

func (t Text) MarshalJSON() ([]byte, error) {
	if !t.Set {
		return jsonNull, nil
	}
	return json.Marshal(t.Value)
}

func (Text) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{Type: "string"}
}

// NewText returns a present, valid Text.
func NewText(s string) Text {
	return Text{Value: s, Set: true, Valid: true}
}

// Number is a numeric field. Generators sometimes emit amounts as strings
// such as "$1,250.00"; those are accepted. Anything else is kept as Raw
// with Valid false.
type Number struct {
	Value float64
	Raw   string
	Set   bool
	Valid bool
}

func (n *Number) UnmarshalJSON(b []byte) error {
	*n = Number{}
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, jsonNull) {
		return nil
	}
	n.Set = true
	n.Raw = string(b)

	if err := json.Unmarshal(b, &n.Value); err == nil {
		n.Valid = finite(n.Value)
		if !n.Valid {
			n.Value = 0
		}
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return nil
	}
	n.Raw = s
	if v, ok := parseAmount(s); ok {
		n.Value = v
		n.Valid = true
	}
	return nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Set {
		return jsonNull, nil
	}
	if !n.Valid {
		return json.Marshal(n.Raw)
	}
	return json.Marshal(n.Value)
}

func (Number) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		OneOf: []*jsonschema.Schema{
			{Type: "number"},
			{Type: "string", Pattern: `^\$?-?[0-9][0-9,]*(\.[0-9]+)?$`},
		},
	}
}

// NewNumber returns a present, valid Number.
func NewNumber(v float64) Number {
	return Number{Value: v, Raw: strconv.FormatFloat(v, 'f', -1, 64), Set: true, Valid: true}
}

// Or returns the value when valid, else fallback.
func (n Number) Or(fallback float64) float64 {
	if n.Valid {
		return n.Value
	}
	return fallback
}

func parseAmount(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || !finite(v) {
		return 0, false
	}
	return v, true
}

// finite rejects NaN and the infinities, which ParseFloat accepts as
// "NaN", "Inf" and "Infinity".
func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
