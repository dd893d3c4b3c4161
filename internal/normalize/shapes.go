package normalize

import (
	"bytes"
	"encoding/json"

	"bounty-chat-backend/internal/types"
)

// Shape names the interpretation that produced an envelope.
type Shape string

const (
	ShapePlain      Shape = "plain"
	ShapeOutputText Shape = "output_text"
	ShapeResults    Shape = "results"
	ShapeSummary    Shape = "summary"
	ShapeAnswer     Shape = "answer"
	ShapeMessage    Shape = "message"
	ShapeRaw        Shape = "raw"
)

// A candidate decodes an object into one response shape and reports whether
// the object structurally matches it.
type candidate struct {
	shape  Shape
	decode func(n *Normalizer, o object) (types.ResponseEnvelope, bool)
}

// A shapeSet is tried in order; orElse builds the envelope when no
// candidate matches.
type shapeSet struct {
	candidates []candidate
	fallback   Shape
	orElse     func(n *Normalizer, o object) types.ResponseEnvelope
}

var (
	// topLevel is tried against the webhook's own JSON body.
	topLevel = shapeSet{
		candidates: []candidate{
			{ShapeResults, func(n *Normalizer, o object) (types.ResponseEnvelope, bool) {
				return n.decodeResults(o, "results", "entries")
			}},
			{ShapeSummary, (*Normalizer).decodeSummary},
			{ShapeMessage, (*Normalizer).decodeMessage},
		},
		fallback: ShapeRaw,
		orElse:   (*Normalizer).rawEnvelope,
	}
	// embedded is tried against JSON found inside the "output" text.
	embedded = shapeSet{
		candidates: []candidate{
			{ShapeResults, func(n *Normalizer, o object) (types.ResponseEnvelope, bool) {
				return n.decodeResults(o, "results")
			}},
			{ShapeSummary, (*Normalizer).decodeSummary},
		},
		fallback: ShapeAnswer,
		orElse:   (*Normalizer).answerEnvelope,
	}
)

func (n *Normalizer) firstMatch(set shapeSet, o object) (types.ResponseEnvelope, Shape) {
	for _, c := range set.candidates {
		if env, ok := c.decode(n, o); ok {
			return env, c.shape
		}
	}
	return set.orElse(n, o), set.fallback
}

// resultsShape is {"results": [...], "total_found"?, "message"?, "summary"?}.
type resultsShape struct {
	Results    []types.Entry
	TotalFound int64
	Message    string
	Summary    any
}

func (n *Normalizer) decodeResults(o object, keys ...string) (types.ResponseEnvelope, bool) {
	var s resultsShape
	found := false
	for _, key := range keys {
		if s.Results, found = o.entries(key); found {
			break
		}
	}
	if !found {
		return types.ResponseEnvelope{}, false
	}
	s.TotalFound = int64(len(s.Results))
	if total, ok := o.count("total_found"); ok {
		s.TotalFound = total
	}
	s.Message, _ = o.str("message")
	s.Summary = o.field("summary")

	content := s.Message
	if content == "" {
		content = n.phrases.FoundEntries(s.TotalFound, datasetLabel(s.Results, n.phrases.Labels))
	}
	return types.ResponseEnvelope{
		Content: content,
		Data: &types.ResultsData{
			Results:    s.Results,
			TotalFound: s.TotalFound,
			Summary:    s.Summary,
		},
	}, true
}

// summaryShape is an analytics answer: {"summary": {...}, "message"?}.
func (n *Normalizer) decodeSummary(o object) (types.ResponseEnvelope, bool) {
	if !o.truthy("summary") {
		return types.ResponseEnvelope{}, false
	}
	content, ok := o.str("message")
	if !ok {
		content = n.phrases.Analysis
	}
	return types.ResponseEnvelope{Content: content, Data: o.value()}, true
}

// answerEnvelope shows any other embedded object, labelled by its message.
func (n *Normalizer) answerEnvelope(o object) types.ResponseEnvelope {
	content, ok := o.str("message")
	if !ok {
		content = n.phrases.Results
	}
	return types.ResponseEnvelope{Content: content, Data: o.value()}
}

// messageShape is {"content"|"message": "...", "data"?}.
func (n *Normalizer) decodeMessage(o object) (types.ResponseEnvelope, bool) {
	content, ok := o.str("content")
	if !ok {
		content, ok = o.str("message")
	}
	if !ok {
		return types.ResponseEnvelope{}, false
	}
	return types.ResponseEnvelope{Content: content, Data: o.field("data")}, true
}

// rawEnvelope shows the object itself, indented, keeping key order.
func (n *Normalizer) rawEnvelope(o object) types.ResponseEnvelope {
	return types.ResponseEnvelope{Content: indent(o.raw), Data: o.value()}
}

func indent(raw json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}
