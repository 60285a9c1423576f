package handler

import "github.com/torrust/tracker-deployer/internal/domain/environment"

// EnvironmentSummary is the per-row projection `list` prints: just enough
// to let an operator pick an environment to `show` without loading every
// document twice.
type EnvironmentSummary struct {
	Name  string
	State environment.StateName
}

// ListHandler implements `list`: enumerates every persisted environment
// under the repository's base directory with its current state.
type ListHandler struct {
	Deps *Deps
}

// Handle returns one summary per persisted environment, sorted by name as
// Names() returns them (directory listing order).
func (h *ListHandler) Handle() ([]EnvironmentSummary, error) {
	names, err := h.Deps.Repo.Names()
	if err != nil {
		return nil, IOError("list environments", err)
	}

	summaries := make([]EnvironmentSummary, 0, len(names))
	for _, name := range names {
		state, err := h.Deps.load(name)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, EnvironmentSummary{Name: name.String(), State: state.StateName()})
	}
	return summaries, nil
}
