// Package normalize turns whatever text the automation webhook answers with
// into the envelope the chat UI renders.
//
// The webhook is not under our control and its answers come in several
// forms: plain prose, a JSON document, or a JSON document wrapped in an
// "output" field whose text may embed a ```json fenced block. Normalize
// tries those interpretations in a fixed order and never fails: anything it
// cannot structure is shown as text.
package normalize

import (
	"encoding/json"
	"strings"

	"bounty-chat-backend/internal/extract"
	"bounty-chat-backend/internal/phrases"
	"bounty-chat-backend/internal/types"
)

type Normalizer struct {
	phrases phrases.Phrases
}

func New(p phrases.Phrases) *Normalizer {
	return &Normalizer{phrases: p}
}

// Normalize maps a raw webhook body to an envelope and reports which shape
// matched. The returned content is never empty.
func (n *Normalizer) Normalize(raw string) (types.ResponseEnvelope, Shape) {
	env, shape := n.normalize(raw)
	if strings.TrimSpace(env.Content) == "" {
		env.Content = raw
		if strings.TrimSpace(raw) == "" {
			env.Content = n.phrases.Apology
		}
	}
	return env, shape
}

func (n *Normalizer) normalize(raw string) (types.ResponseEnvelope, Shape) {
	doc, ok := extract.JSON(raw)
	if !ok {
		return types.ResponseEnvelope{Content: raw}, ShapePlain
	}

	o, ok := decodeObject(doc)
	if !ok {
		return n.nonObject(doc, raw)
	}

	if output, ok := outputText(o); ok {
		return n.fromOutput(output)
	}
	return n.firstMatch(topLevel, o)
}

// nonObject handles bodies that are valid JSON but not an object.
func (n *Normalizer) nonObject(doc json.RawMessage, raw string) (types.ResponseEnvelope, Shape) {
	v, err := decodeValue(doc)
	if err != nil {
		return types.ResponseEnvelope{Content: raw}, ShapePlain
	}
	switch val := v.(type) {
	case string:
		return types.ResponseEnvelope{Content: val}, ShapePlain
	case []any:
		return types.ResponseEnvelope{Content: indent(doc), Data: val}, ShapeRaw
	default:
		return types.ResponseEnvelope{Content: indent(doc)}, ShapeRaw
	}
}

// outputText returns the "output" field as text. The automation agent puts
// its whole answer there; a non-string value is kept as its JSON text.
func outputText(o object) (string, bool) {
	if s, ok := o.str("output"); ok {
		return s, true
	}
	if !o.truthy("output") {
		return "", false
	}
	return strings.TrimSpace(string(o.fields["output"])), true
}

func (n *Normalizer) fromOutput(output string) (types.ResponseEnvelope, Shape) {
	if body, ok := extract.FencedJSON(output); ok {
		if env, shape, ok := n.fromEmbedded([]byte(body)); ok {
			return env, shape
		}
		content := extract.StripFences(output)
		if content == "" {
			content = output
		}
		return types.ResponseEnvelope{Content: content}, ShapeOutputText
	}

	if env, shape, ok := n.fromEmbedded([]byte(output)); ok {
		return env, shape
	}
	return types.ResponseEnvelope{Content: output}, ShapeOutputText
}

// fromEmbedded reads JSON found in the output text. Objects go through the
// embedded shapes; any other non-null value is answered as is.
func (n *Normalizer) fromEmbedded(b []byte) (types.ResponseEnvelope, Shape, bool) {
	if o, ok := decodeObject(b); ok {
		env, shape := n.firstMatch(embedded, o)
		return env, shape, true
	}
	v, err := decodeValue(b)
	if err != nil || v == nil {
		return types.ResponseEnvelope{}, "", false
	}
	return types.ResponseEnvelope{Content: n.phrases.Results, Data: v}, ShapeAnswer, true
}
