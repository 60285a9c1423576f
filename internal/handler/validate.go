package handler

import (
	"fmt"

	"github.com/torrust/tracker-deployer/internal/domain/environment"
)

// ValidateHandler implements `validate --env-file F`: parses and validates
// an env file through the same constructors `create environment` uses,
// without persisting anything. A clean run exercises every cross-field
// invariant Params.validate enforces (port uniqueness, Grafana requiring
// Prometheus, HTTPS requiring a TLS domain).
type ValidateHandler struct {
	Deps *Deps
}

func (h *ValidateHandler) Handle(envFilePath string) error {
	params, err := LoadParamsFromFile(envFilePath, h.Deps.Clock.Now())
	if err != nil {
		return ConfigurationError(fmt.Sprintf("invalid env file %s", envFilePath), err)
	}
	if _, err := environment.NewCreated(params); err != nil {
		return ConfigurationError(fmt.Sprintf("env file %s failed validation", envFilePath), err)
	}
	return nil
}
