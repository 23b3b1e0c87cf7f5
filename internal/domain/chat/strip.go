package chat

import (
	"encoding/json"
	"strings"
)

// StripStructuredPayload removes a trailing JSON object containing a
// "map_state" or "message" key from assistant text, guarding against the
// model leaking structured hints into prose. Best effort only: it inspects
// the text from the last "{" onward and guards just those two keys; anything
// that fails to decode is left untouched.
func StripStructuredPayload(text string) string {
	if text == "" {
		return text
	}
	trimmed := strings.TrimRight(text, " \t\r\n")
	lastBrace := strings.LastIndex(trimmed, "{")
	if lastBrace == -1 {
		return text
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal([]byte(trimmed[lastBrace:]), &payload); err != nil {
		return text
	}
	if _, ok := payload["map_state"]; !ok {
		if _, ok := payload["message"]; !ok {
			return text
		}
	}
	return strings.TrimRight(trimmed[:lastBrace], " \t\r\n")
}
