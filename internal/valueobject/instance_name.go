package valueobject

import (
	"encoding/json"
	"fmt"
	"regexp"
)

const maxInstanceNameLen = 63

var instanceNamePattern = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

// InstanceName identifies the target VM/container instance.
type InstanceName struct {
	value string
}

// NewInstanceName validates raw and returns the typed name.
func NewInstanceName(raw string) (InstanceName, error) {
	if raw == "" {
		return InstanceName{}, newValidationError("InstanceName", raw, KindEmpty, "must not be empty")
	}
	if len(raw) > maxInstanceNameLen {
		return InstanceName{}, newValidationError("InstanceName", raw, KindTooLong, "must be at most 63 characters")
	}
	if !instanceNamePattern.MatchString(raw) {
		return InstanceName{}, newValidationError("InstanceName", raw, KindInvalidChar, "must match [a-z][a-z0-9-]*")
	}
	return InstanceName{value: raw}, nil
}

// DeriveInstanceName computes the default instance name for an environment:
// torrust-tracker-vm-{environment_name}. The derivation is pure and its
// output is guaranteed to be a valid InstanceName for any valid
// EnvironmentName.
func DeriveInstanceName(env EnvironmentName) InstanceName {
	name, err := NewInstanceName(fmt.Sprintf("torrust-tracker-vm-%s", env.String()))
	if err != nil {
		panic("derived instance name must always be valid: " + err.Error())
	}
	return name
}

func (n InstanceName) String() string { return n.value }

func (n InstanceName) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.value)
}

func (n *InstanceName) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := NewInstanceName(raw)
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}
