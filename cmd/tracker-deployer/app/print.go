package app

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/torrust/tracker-deployer/internal/domain/environment"
	"github.com/torrust/tracker-deployer/internal/valueobject"
)

// parseEnvName wraps valueobject.NewEnvironmentName with the message shape
// every subcommand needs when the positional ENV argument is malformed.
func parseEnvName(raw string) (valueobject.EnvironmentName, error) {
	name, err := valueobject.NewEnvironmentName(raw)
	if err != nil {
		return valueobject.EnvironmentName{}, fmt.Errorf("invalid environment name %q: %w", raw, err)
	}
	return name, nil
}

// coreSummary is the shape `show`/`list` print: the fields an operator
// cares about without dumping the raw persisted document.
type coreSummary struct {
	Name       string `json:"name"`
	State      string `json:"state"`
	Instance   string `json:"instance_name"`
	InstanceIP string `json:"instance_ip,omitempty"`
	Provider   string `json:"provider"`
	CreatedAt  string `json:"created_at"`
}

func summarize(state environment.AnyEnvironmentState) coreSummary {
	core := state.Core()
	out := coreSummary{
		Name:      core.Name().String(),
		State:     string(state.StateName()),
		Instance:  core.InstanceName().String(),
		Provider:  string(core.ProviderConfig().Kind),
		CreatedAt: core.CreatedAt().Format("2006-01-02T15:04:05Z07:00"),
	}
	if ip := core.RuntimeOutputs().InstanceIP; ip != nil {
		out.InstanceIP = ip.String()
	}
	return out
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
