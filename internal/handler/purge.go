package handler

import (
	"fmt"
	"os"

	"github.com/torrust/tracker-deployer/internal/valueobject"
)

// PurgeHandler implements `purge ENV`: removes the persisted document and
// the rendered-artifact directory, regardless of lifecycle state.
// Idempotent (P6): purging an environment with no persisted document or no
// build directory succeeds.
type PurgeHandler struct {
	Deps *Deps
}

func (h *PurgeHandler) Handle(name valueobject.EnvironmentName) error {
	if err := h.Deps.Repo.Delete(name); err != nil {
		return IOError(fmt.Sprintf("purge environment %q: remove persisted document", name), err)
	}
	if err := os.RemoveAll(h.Deps.buildDir(name)); err != nil {
		return IOError(fmt.Sprintf("purge environment %q: remove build directory", name), err)
	}
	return nil
}
