package environment

import (
	"os"
	"path/filepath"
	"time"

	"github.com/torrust/tracker-deployer/internal/jsonrepo"
	"github.com/torrust/tracker-deployer/internal/valueobject"
)

// Repository is the domain-facing persistence wrapper (C6): it keys on
// EnvironmentName and serializes through AnyEnvironmentState, so every
// lifecycle state round-trips through the same on-disk document without
// widening jsonrepo's generic Repository[T] to a sum type itself.
type Repository struct {
	baseDir string
	repo    *jsonrepo.Repository[wireDocument]
}

// NewRepository returns a Repository rooted at baseDir (one subdirectory
// per environment, per spec.md §3.4), using lockTimeout for every
// save/load/delete (DefaultLockTimeout when non-positive).
func NewRepository(baseDir string, lockTimeout time.Duration) *Repository {
	return &Repository{baseDir: baseDir, repo: jsonrepo.New[wireDocument](lockTimeout)}
}

func (r *Repository) documentPath(name valueobject.EnvironmentName) string {
	return filepath.Join(r.baseDir, name.String(), "environment.json")
}

// DataDir returns {base}/{name}, the directory that holds the persisted
// document and its lock file. Trace files are not kept here.
func (r *Repository) DataDir(name valueobject.EnvironmentName) string {
	return filepath.Join(r.baseDir, name.String())
}

// Save serializes any through AnyEnvironmentState's wire representation and
// atomically writes it to {base}/{name}/environment.json.
func (r *Repository) Save(any AnyEnvironmentState) error {
	doc, err := toWireDocument(any)
	if err != nil {
		return err
	}
	return r.repo.Save(r.documentPath(any.Core().Name()), doc)
}

// Load returns the persisted AnyEnvironmentState for name, or a
// *jsonrepo.NotFoundError if no document exists.
func (r *Repository) Load(name valueobject.EnvironmentName) (AnyEnvironmentState, error) {
	doc, err := r.repo.Load(r.documentPath(name))
	if err != nil {
		return AnyEnvironmentState{}, err
	}
	return fromWireDocument(doc)
}

// Exists is a non-locking file-system check.
func (r *Repository) Exists(name valueobject.EnvironmentName) bool {
	return r.repo.Exists(r.documentPath(name))
}

// Delete removes the persisted document and its now-empty directory.
// Deleting an absent environment is not an error (purge idempotence, P6).
func (r *Repository) Delete(name valueobject.EnvironmentName) error {
	return r.repo.Delete(r.documentPath(name))
}

// Names lists every environment with a persisted document under baseDir,
// for `list` (C6 has no index file; this walks baseDir's immediate
// subdirectories). An absent baseDir yields an empty list, not an error.
func (r *Repository) Names() ([]valueobject.EnvironmentName, error) {
	entries, err := os.ReadDir(r.baseDir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var names []valueobject.EnvironmentName
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name, err := valueobject.NewEnvironmentName(entry.Name())
		if err != nil {
			continue
		}
		if _, err := os.Stat(r.documentPath(name)); err != nil {
			continue
		}
		names = append(names, name)
	}
	return names, nil
}

// The following typed helpers let command handlers persist a specific
// lifecycle state without spelling out IntoAny()/Save() at every call site.
// Recovering a specific lifecycle state from a loaded AnyEnvironmentState
// is done with its TryInto* methods, which return a StateTypeError on
// mismatch.

func (r *Repository) SaveCreated(e Created) error                 { return r.Save(e.IntoAny()) }
func (r *Repository) SaveProvisioning(e Provisioning) error       { return r.Save(e.IntoAny()) }
func (r *Repository) SaveProvisioned(e Provisioned) error         { return r.Save(e.IntoAny()) }
func (r *Repository) SaveProvisionFailed(e ProvisionFailed) error { return r.Save(e.IntoAny()) }
func (r *Repository) SaveConfiguring(e Configuring) error         { return r.Save(e.IntoAny()) }
func (r *Repository) SaveConfigured(e Configured) error           { return r.Save(e.IntoAny()) }
func (r *Repository) SaveConfigureFailed(e ConfigureFailed) error { return r.Save(e.IntoAny()) }
func (r *Repository) SaveReleasing(e Releasing) error              { return r.Save(e.IntoAny()) }
func (r *Repository) SaveReleased(e Released) error                { return r.Save(e.IntoAny()) }
func (r *Repository) SaveReleaseFailed(e ReleaseFailed) error      { return r.Save(e.IntoAny()) }
func (r *Repository) SaveRunning(e Running) error                  { return r.Save(e.IntoAny()) }
func (r *Repository) SaveRunFailed(e RunFailed) error               { return r.Save(e.IntoAny()) }
func (r *Repository) SaveDestroyFailed(e DestroyFailed) error       { return r.Save(e.IntoAny()) }
func (r *Repository) SaveDestroyed(e Destroyed) error               { return r.Save(e.IntoAny()) }
