package handler

import (
	"github.com/torrust/tracker-deployer/internal/domain/environment"
	"github.com/torrust/tracker-deployer/internal/valueobject"
)

// ShowHandler implements `show ENV`: loads and returns the persisted state
// for name, whatever lifecycle state it is in. No transition, no trace.
type ShowHandler struct {
	Deps *Deps
}

func (h *ShowHandler) Handle(name valueobject.EnvironmentName) (environment.AnyEnvironmentState, error) {
	return h.Deps.load(name)
}
