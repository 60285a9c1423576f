package environment

import (
	"encoding/json"

	"github.com/google/uuid"
)

// TraceID uniquely identifies a command execution's trace file.
type TraceID struct {
	value string
}

// NewTraceID generates a fresh, random TraceID.
func NewTraceID() TraceID {
	return TraceID{value: uuid.NewString()}
}

func (t TraceID) String() string { return t.value }

func (t TraceID) MarshalJSON() ([]byte, error) { return json.Marshal(t.value) }

func (t *TraceID) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	t.value = raw
	return nil
}
