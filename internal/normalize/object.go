package normalize

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"

	"bounty-chat-backend/internal/types"
)

// object is a decoded JSON object whose fields are decoded lazily, one at a
// time, so a malformed field never hides the rest of the payload.
type object struct {
	raw    json.RawMessage
	fields map[string]json.RawMessage
}

func decodeObject(b []byte) (object, bool) {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return object{}, false
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return object{}, false
	}
	return object{raw: json.RawMessage(trimmed), fields: fields}, true
}

var errInvalidJSON = errors.New("invalid JSON")

// decodeValue decodes b keeping numbers as json.Number so large counts and
// ids survive the round trip to the UI unchanged.
func decodeValue(b []byte) (any, error) {
	if !json.Valid(b) {
		return nil, errInvalidJSON
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

func (o object) value() any {
	v, err := decodeValue(o.raw)
	if err != nil {
		return nil
	}
	return v
}

// str returns a non-empty string field.
func (o object) str(key string) (string, bool) {
	raw, ok := o.fields[key]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil || s == "" {
		return "", false
	}
	return s, true
}

// truthy mirrors how the webhook's own tooling treats optional fields:
// null, false, 0 and "" count as absent.
func (o object) truthy(key string) bool {
	raw, ok := o.fields[key]
	if !ok {
		return false
	}
	t := strings.TrimSpace(string(raw))
	switch t {
	case "", "null", "false", `""`:
		return false
	}
	if f, err := strconv.ParseFloat(t, 64); err == nil {
		return f != 0
	}
	return true
}

// entries decodes an array of entry objects. Arrays holding anything other
// than objects do not count as entry lists.
func (o object) entries(key string) ([]types.Entry, bool) {
	raw, ok := o.fields[key]
	if !ok {
		return nil, false
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, false
	}
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	var out []types.Entry
	if err := dec.Decode(&out); err != nil {
		return nil, false
	}
	if out == nil {
		out = []types.Entry{}
	}
	return out, true
}

// count reads a non-negative whole number, accepting numbers and numeric
// strings. Fractions and values outside int64 are rejected.
func (o object) count(key string) (int64, bool) {
	raw, ok := o.fields[key]
	if !ok || isNull(raw) {
		return 0, false
	}
	t := strings.TrimSpace(string(raw))
	if strings.HasPrefix(t, `"`) {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, false
		}
		t = strings.TrimSpace(s)
	}
	if n, err := strconv.ParseInt(t, 10, 64); err == nil {
		return n, n >= 0
	}
	f, err := strconv.ParseFloat(t, 64)
	if err != nil || f < 0 || f >= math.MaxInt64 || f != math.Trunc(f) {
		return 0, false
	}
	return int64(f), true
}

// field decodes a single field, returning nil when it is absent or null.
func (o object) field(key string) any {
	raw, ok := o.fields[key]
	if !ok || isNull(raw) {
		return nil
	}
	v, err := decodeValue(raw)
	if err != nil {
		return nil
	}
	return v
}

func isNull(raw json.RawMessage) bool {
	return strings.TrimSpace(string(raw)) == "null"
}
