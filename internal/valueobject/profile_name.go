package valueobject

import (
	"encoding/json"
	"fmt"
	"regexp"
)

var profileNamePattern = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

// ProfileName identifies an Lxd profile.
type ProfileName struct {
	value string
}

// NewProfileName validates raw and returns the typed name.
func NewProfileName(raw string) (ProfileName, error) {
	if raw == "" {
		return ProfileName{}, newValidationError("ProfileName", raw, KindEmpty, "must not be empty")
	}
	if len(raw) > 63 {
		return ProfileName{}, newValidationError("ProfileName", raw, KindTooLong, "must be at most 63 characters")
	}
	if !profileNamePattern.MatchString(raw) {
		return ProfileName{}, newValidationError("ProfileName", raw, KindInvalidChar, "must match [a-z][a-z0-9-]*")
	}
	return ProfileName{value: raw}, nil
}

// DeriveProfileName computes the default Lxd profile name for an
// environment: torrust-profile-{environment_name}.
func DeriveProfileName(env EnvironmentName) ProfileName {
	name, err := NewProfileName(fmt.Sprintf("torrust-profile-%s", env.String()))
	if err != nil {
		panic("derived profile name must always be valid: " + err.Error())
	}
	return name
}

func (n ProfileName) String() string { return n.value }

func (n ProfileName) MarshalJSON() ([]byte, error) { return json.Marshal(n.value) }

func (n *ProfileName) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := NewProfileName(raw)
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}
