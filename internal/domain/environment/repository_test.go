package environment

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/torrust/tracker-deployer/internal/jsonrepo"
	"github.com/torrust/tracker-deployer/internal/valueobject"
)

func TestRepositorySaveLoadRoundTrip(t *testing.T) {
	repo := NewRepository(t.TempDir(), time.Second)

	created, err := NewCreated(newTestParams(t, "repo-env"))
	if err != nil {
		t.Fatalf("NewCreated: %s", err)
	}
	if err := repo.SaveCreated(created); err != nil {
		t.Fatalf("SaveCreated: %s", err)
	}

	if !repo.Exists(created.Core().Name()) {
		t.Fatal("expected Exists to report true after Save")
	}

	loaded, err := repo.Load(created.Core().Name())
	if err != nil {
		t.Fatalf("Load: %s", err)
	}
	if loaded.Kind != KindCreated {
		t.Fatalf("expected KindCreated, got %q", loaded.Kind)
	}
}

func TestRepositoryLoadReportsNotFound(t *testing.T) {
	repo := NewRepository(t.TempDir(), time.Second)
	name, err := valueobject.NewEnvironmentName("absent-env")
	if err != nil {
		t.Fatalf("NewEnvironmentName: %s", err)
	}

	_, err = repo.Load(name)
	var notFound *jsonrepo.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected *jsonrepo.NotFoundError, got %v (%T)", err, err)
	}
}

func TestRepositoryDeleteIsIdempotent(t *testing.T) {
	repo := NewRepository(t.TempDir(), time.Second)
	created, err := NewCreated(newTestParams(t, "delete-env"))
	if err != nil {
		t.Fatalf("NewCreated: %s", err)
	}
	if err := repo.SaveCreated(created); err != nil {
		t.Fatalf("SaveCreated: %s", err)
	}

	if err := repo.Delete(created.Core().Name()); err != nil {
		t.Fatalf("first Delete: %s", err)
	}
	if err := repo.Delete(created.Core().Name()); err != nil {
		t.Fatalf("second Delete should be a no-op, got: %s", err)
	}
	if repo.Exists(created.Core().Name()) {
		t.Fatal("expected Exists to report false after Delete")
	}
}

func TestRepositoryNamesListsEveryPersistedEnvironment(t *testing.T) {
	base := t.TempDir()
	repo := NewRepository(base, time.Second)

	for _, n := range []string{"alpha", "beta"} {
		created, err := NewCreated(newTestParams(t, n))
		if err != nil {
			t.Fatalf("NewCreated(%s): %s", n, err)
		}
		if err := repo.SaveCreated(created); err != nil {
			t.Fatalf("SaveCreated(%s): %s", n, err)
		}
	}

	names, err := repo.Names()
	if err != nil {
		t.Fatalf("Names: %s", err)
	}
	if len(names) != 2 {
		t.Fatalf("expected 2 names, got %d: %v", len(names), names)
	}
}

func TestRepositoryNamesOnMissingBaseDirIsEmptyNotError(t *testing.T) {
	repo := NewRepository(filepath.Join(t.TempDir(), "never-created"), time.Second)

	names, err := repo.Names()
	if err != nil {
		t.Fatalf("Names: %s", err)
	}
	if len(names) != 0 {
		t.Fatalf("expected no names, got %v", names)
	}
}
