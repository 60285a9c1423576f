package valueobject

import (
	"encoding/json"
	"regexp"
)

const maxEnvironmentNameLen = 63

var environmentNamePattern = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

// EnvironmentName identifies an environment. It is the aggregate's identity
// and the key used throughout the persistence layer.
type EnvironmentName struct {
	value string
}

// NewEnvironmentName validates raw and returns the typed name.
func NewEnvironmentName(raw string) (EnvironmentName, error) {
	if raw == "" {
		return EnvironmentName{}, newValidationError("EnvironmentName", raw, KindEmpty, "must not be empty")
	}
	if len(raw) > maxEnvironmentNameLen {
		return EnvironmentName{}, newValidationError("EnvironmentName", raw, KindTooLong, "must be at most 63 characters")
	}
	if !environmentNamePattern.MatchString(raw) {
		return EnvironmentName{}, newValidationError("EnvironmentName", raw, KindInvalidChar, "must match [a-z][a-z0-9-]*")
	}
	return EnvironmentName{value: raw}, nil
}

func (n EnvironmentName) String() string { return n.value }

func (n EnvironmentName) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.value)
}

func (n *EnvironmentName) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := NewEnvironmentName(raw)
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}
