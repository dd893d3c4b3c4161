package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFencedJSON(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   string
		wantOK bool
	}{
		{
			name:   "block with prose around it",
			text:   "Here you go:\n```json\n{\"results\": []}\n```\nAnything else?",
			want:   `{"results": []}`,
			wantOK: true,
		},
		{
			name:   "block on one line",
			text:   "```json {\"a\":1} ```",
			want:   `{"a":1}`,
			wantOK: true,
		},
		{
			name:   "first of two blocks",
			text:   "```json\n{\"a\":1}\n```\n```json\n{\"b\":2}\n```",
			want:   `{"a":1}`,
			wantOK: true,
		},
		{name: "unlabelled block", text: "```\n{\"a\":1}\n```"},
		{name: "unterminated block", text: "```json\n{\"a\":1}"},
		{name: "no block", text: "just text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FencedJSON(tt.text)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBraceSpan(t *testing.T) {
	got, ok := BraceSpan(`Result: {"a": {"b": 1}} trailing`)
	assert.True(t, ok)
	assert.Equal(t, `{"a": {"b": 1}}`, got)

	got, ok = BraceSpan(`{"a":1} and {"b":2}`)
	assert.True(t, ok)
	assert.Equal(t, `{"a":1} and {"b":2}`, got)

	_, ok = BraceSpan("} backwards {")
	assert.False(t, ok)

	_, ok = BraceSpan("no braces")
	assert.False(t, ok)
}

func TestStripFences(t *testing.T) {
	text := "Intro\n```json\n{broken\n```\nMiddle\n```\ncode\n```\nOutro"
	assert.Equal(t, "Intro\n\nMiddle\n\nOutro", StripFences(text))
	assert.Equal(t, "", StripFences("  ```json\n{}\n```  "))
	assert.Equal(t, "plain", StripFences(" plain "))
}

func TestJSON(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   string
		wantOK bool
	}{
		{name: "whole text", text: ` {"a":1} `, want: `{"a":1}`, wantOK: true},
		{name: "array", text: `[1,2]`, want: `[1,2]`, wantOK: true},
		{name: "fenced object found by brace span", text: "see\n```json\n{\"a\":1}\n```", want: `{"a":1}`, wantOK: true},
		{name: "brace span", text: `Answer: {"a":1} done`, want: `{"a":1}`, wantOK: true},
		{name: "broken fence and brace span", text: "```json\n{\"a\":}\n``` {\"b\":2}", wantOK: false},
		{name: "plain text", text: "hello there"},
		{name: "empty", text: "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := JSON(tt.text)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.JSONEq(t, tt.want, string(got))
			}
		})
	}
}
