package valueobject

import (
	"encoding/json"
	"strconv"
)

// Port is a validated 16-bit TCP/UDP port number.
type Port struct {
	value uint16
}

// DefaultSSHPort is the default SSH port used when none is configured.
const DefaultSSHPort uint16 = 22

// NewPort validates raw (1-65535; 0 is rejected) and returns the typed port.
func NewPort(raw int) (Port, error) {
	if raw < 0 || raw > 65535 {
		return Port{}, newValidationError("Port", strconv.Itoa(raw), KindOutOfRange, "must be between 0 and 65535")
	}
	if raw == 0 {
		return Port{}, newValidationError("Port", strconv.Itoa(raw), KindOutOfRange, "port 0 is not assignable")
	}
	return Port{value: uint16(raw)}, nil
}

func (p Port) Uint16() uint16 { return p.value }

func (p Port) String() string { return strconv.Itoa(int(p.value)) }

func (p Port) MarshalJSON() ([]byte, error) { return json.Marshal(p.value) }

func (p *Port) UnmarshalJSON(data []byte) error {
	var raw uint16
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := NewPort(int(raw))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
