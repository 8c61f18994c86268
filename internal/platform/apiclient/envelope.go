package apiclient

import (
	"encoding/json"
	"fmt"
)

// Envelope is the uniform `{success, data, message}` wrapper every call
// returns. Backend responses that already carry the envelope pass through;
// bare payloads are wrapped so callers always see one shape.
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
}

// Decode unmarshals the envelope's data payload into out.
func (e *Envelope) Decode(out interface{}) error {
	if len(e.Data) == 0 {
		return fmt.Errorf("envelope has no data")
	}
	if err := json.Unmarshal(e.Data, out); err != nil {
		return fmt.Errorf("decode envelope data: %w", err)
	}
	return nil
}

// parseEnvelope interprets a response body. A body that already follows the
// envelope contract is returned as-is; anything else is wrapped with
// success derived from the HTTP status class.
func parseEnvelope(body []byte, ok bool) *Envelope {
	if len(body) == 0 {
		return &Envelope{Success: ok}
	}

	// Probe for an explicit success field before trusting the shape.
	var probe struct {
		Success *bool           `json:"success"`
		Data    json.RawMessage `json:"data"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(body, &probe); err == nil && probe.Success != nil {
		return &Envelope{Success: *probe.Success, Data: probe.Data, Message: probe.Message}
	}

	return &Envelope{Success: ok, Data: json.RawMessage(body)}
}
