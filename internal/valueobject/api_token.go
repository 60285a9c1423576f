package valueobject

import "encoding/json"

// APIToken is an opaque secret value (tracker API token, Hetzner API token).
// It is never re-validated beyond non-emptiness and deliberately has no
// String() method returning its value, to discourage accidental logging;
// use Reveal() at the one call site that needs the raw value.
type APIToken struct {
	value string
}

// NewAPIToken validates raw and returns the typed token.
func NewAPIToken(raw string) (APIToken, error) {
	if raw == "" {
		return APIToken{}, newValidationError("APIToken", raw, KindEmpty, "must not be empty")
	}
	return APIToken{value: raw}, nil
}

// Reveal returns the underlying secret value.
func (t APIToken) Reveal() string { return t.value }

// String never prints the secret, only its presence.
func (t APIToken) String() string {
	if t.value == "" {
		return "<unset>"
	}
	return "<redacted>"
}

func (t APIToken) MarshalJSON() ([]byte, error) { return json.Marshal(t.value) }

func (t *APIToken) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := NewAPIToken(raw)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
