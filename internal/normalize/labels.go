package normalize

import (
	"bounty-chat-backend/internal/phrases"
	"bounty-chat-backend/internal/types"
)

// Identity fields, current name first, older webhook revisions after.
var (
	instagramFields = []string{"instagram_account", "instagram"}
	emailFields     = []string{"email"}
	telegramFields  = []string{"telegram_username", "telegram"}
)

// datasetLabel guesses what a result list holds from the first entry. A
// label is only returned when exactly one kind of identity field is set.
func datasetLabel(entries []types.Entry, labels phrases.Labels) string {
	if len(entries) == 0 || entries[0] == nil {
		return ""
	}
	first := entries[0]
	instagram := hasAny(first, instagramFields)
	email := hasAny(first, emailFields)
	telegram := hasAny(first, telegramFields)

	switch {
	case instagram && !email && !telegram:
		return labels.Instagram
	case email && !instagram && !telegram:
		return labels.Email
	case telegram && !instagram && !email:
		return labels.Telegram
	}
	return ""
}

func hasAny(e types.Entry, keys []string) bool {
	for _, k := range keys {
		if e.Has(k) {
			return true
		}
	}
	return false
}
