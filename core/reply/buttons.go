package reply

import (
	"encoding/json"

	"github.com/voximplant/kit-functions-sdk-sub000/core/state"
)

// Web-chat inline button limits.
const (
	MaxInlineButtons    = 13
	MaxInlineButtonText = 40
)

// InlineButton is one web-chat inline button. Data is optional and travels
// back verbatim when the button is pressed.
type InlineButton struct {
	Type string `json:"type"`
	Text string `json:"text"`
	Data string `json:"data,omitempty"`
}

// allowedButtonTypes is the button type whitelist.
var allowedButtonTypes = map[string]struct{}{
	"text": {},
	"url":  {},
}

// ValidateInlineButtons checks the whole button block: at most 13 buttons,
// each with a whitelisted type and non-empty text of at most 40 characters.
// An empty block is valid (it clears the buttons).
func ValidateInlineButtons(buttons []InlineButton) error {
	if len(buttons) > MaxInlineButtons {
		return state.NewValidationError("buttons", "at most 13 buttons are allowed")
	}
	for _, b := range buttons {
		if _, ok := allowedButtonTypes[b.Type]; !ok {
			return state.NewValidationError("buttons.type", "unknown button type "+b.Type)
		}
		if b.Text == "" {
			return state.NewValidationError("buttons.text", "must be a non-empty string")
		}
		if len([]rune(b.Text)) > MaxInlineButtonText {
			return state.NewValidationError("buttons.text", "must be at most 40 characters")
		}
	}
	return nil
}

// encodeCustomData JSON-encodes the custom-data value. Reports false when
// the value cannot be encoded.
func encodeCustomData(data any) (string, bool) {
	encoded, err := json.Marshal(data)
	if err != nil {
		return "", false
	}
	return string(encoded), true
}
