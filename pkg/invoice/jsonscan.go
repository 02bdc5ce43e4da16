package invoice

import (
	"encoding/json"
	"errors"
	"strings"
)

// ErrNoJSONObject is returned when a response contains no decodable JSON object.
var ErrNoJSONObject = errors.New("no JSON object in response")

// FindJSONObject returns the first complete JSON object embedded in text.
//
// Models asked for JSON often wrap it in prose or markdown fences. Each '{'
// is tried as the start of a value and the first one that decodes wins, so
// nested braces are handled by the decoder and a second object after the
// first is ignored.
func FindJSONObject(text string) ([]byte, error) {
	for i := 0; i < len(text); i++ {
		if text[i] != '{' {
			continue
		}
		var raw json.RawMessage
		if err := json.NewDecoder(strings.NewReader(text[i:])).Decode(&raw); err != nil {
			continue
		}
		return raw, nil
	}
	return nil, ErrNoJSONObject
}
