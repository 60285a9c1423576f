package valueobject

import (
	"encoding/json"
	"regexp"
	"strings"
)

var domainNamePattern = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?(\.[a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?)+$`)

// DomainName is a validated DNS domain name used for TLS/HTTPS configuration.
type DomainName struct {
	value string
}

// NewDomainName validates raw and returns the typed domain name.
func NewDomainName(raw string) (DomainName, error) {
	if raw == "" {
		return DomainName{}, newValidationError("DomainName", raw, KindEmpty, "must not be empty")
	}
	if len(raw) > 253 {
		return DomainName{}, newValidationError("DomainName", raw, KindTooLong, "must be at most 253 characters")
	}
	lower := strings.ToLower(raw)
	if !domainNamePattern.MatchString(lower) {
		return DomainName{}, newValidationError("DomainName", raw, KindInvalidChar, "must be a valid DNS domain name")
	}
	return DomainName{value: lower}, nil
}

func (d DomainName) String() string { return d.value }

func (d DomainName) MarshalJSON() ([]byte, error) { return json.Marshal(d.value) }

func (d *DomainName) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := NewDomainName(raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
