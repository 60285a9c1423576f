package valueobject

import (
	"encoding/json"
	"regexp"
	"strings"
)

// cronFieldPattern is deliberately permissive (standard five-field cron with
// '*', ranges, steps, and lists); the backup maintenance job only needs a
// syntactically sane schedule, not full semantic validation.
var cronFieldPattern = regexp.MustCompile(`^(\*|[0-9]+)(-[0-9]+)?(/[0-9]+)?(,(\*|[0-9]+)(-[0-9]+)?(/[0-9]+)?)*$`)

// CronSchedule is a validated five-field cron expression.
type CronSchedule struct {
	value string
}

// NewCronSchedule validates raw and returns the typed schedule.
func NewCronSchedule(raw string) (CronSchedule, error) {
	if raw == "" {
		return CronSchedule{}, newValidationError("CronSchedule", raw, KindEmpty, "must not be empty")
	}
	fields := strings.Fields(raw)
	if len(fields) != 5 {
		return CronSchedule{}, newValidationError("CronSchedule", raw, KindInvalidChar, "must have exactly 5 whitespace-separated fields")
	}
	for _, f := range fields {
		if !cronFieldPattern.MatchString(f) {
			return CronSchedule{}, newValidationError("CronSchedule", raw, KindInvalidChar, "field "+f+" is not a valid cron field")
		}
	}
	return CronSchedule{value: raw}, nil
}

func (c CronSchedule) String() string { return c.value }

func (c CronSchedule) MarshalJSON() ([]byte, error) { return json.Marshal(c.value) }

func (c *CronSchedule) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := NewCronSchedule(raw)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
