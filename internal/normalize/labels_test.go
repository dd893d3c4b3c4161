package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"bounty-chat-backend/internal/phrases"
	"bounty-chat-backend/internal/types"
)

func TestDatasetLabel(t *testing.T) {
	labels := phrases.Default().Labels

	tests := []struct {
		name    string
		entries []types.Entry
		want    string
	}{
		{name: "no entries", entries: nil, want: ""},
		{name: "instagram only", entries: []types.Entry{{"instagram_account": "@a", "country": "DE"}}, want: labels.Instagram},
		{name: "legacy instagram", entries: []types.Entry{{"instagram": "https://instagram.com/a"}}, want: labels.Instagram},
		{name: "email only", entries: []types.Entry{{"email": "a@x.io"}}, want: labels.Email},
		{name: "telegram only", entries: []types.Entry{{"telegram_username": "@t"}}, want: labels.Telegram},
		{name: "legacy telegram", entries: []types.Entry{{"telegram": "@t"}}, want: labels.Telegram},
		{name: "mixed identities", entries: []types.Entry{{"email": "a@x.io", "telegram_username": "@t"}}, want: ""},
		{name: "empty identity ignored", entries: []types.Entry{{"email": "a@x.io", "instagram_account": ""}}, want: labels.Email},
		{name: "only first entry counts", entries: []types.Entry{{"date": "2024-01-01"}, {"email": "a@x.io"}}, want: ""},
		{name: "nil first entry", entries: []types.Entry{nil, {"email": "a@x.io"}}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, datasetLabel(tt.entries, labels))
		})
	}
}
