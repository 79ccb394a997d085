package upstream

import "encoding/json"

// envelope is the superset of response shapes the backend is known to emit.
// Older endpoints return fields at the top level, newer ones nest them under
// "data", and a few nest a named object under "data" again. unwrap flattens
// all of them so callers see exactly one shape.
type envelope struct {
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`

	// Known top-level fallbacks from older endpoints.
	User    json.RawMessage `json:"user"`
	Token   string          `json:"token"`
	Success bool            `json:"success"`
}

// unwrap returns the innermost payload of an envelope: the "data" member
// when present, else the raw body itself.
func unwrap(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 {
		return raw
	}
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &env); err == nil && len(env.Data) > 0 {
		return env.Data
	}
	return raw
}

// extractMessage pulls a human-readable error message out of an error body,
// whichever of the known fields carries it.
func extractMessage(raw []byte) string {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return ""
	}
	if env.Message != "" {
		return env.Message
	}
	return env.Error
}
