package project

import (
	_ "embed"
	"path/filepath"

	"github.com/torrust/tracker-deployer/internal/project/context"
	"github.com/torrust/tracker-deployer/internal/template"
)

//go:embed templates/inventory/inventory.ini.tmpl
var inventoryTemplate string

// InventoryProject renders the remote-configuration-management inventory
// file for the single host an environment targets.
type InventoryProject struct {
	inventory *template.Wrapper
}

func NewInventoryProject(engine *template.Engine, ctx context.InventoryContext) (*InventoryProject, error) {
	wrapper, err := template.NewWrapper(engine, "inventory.ini", inventoryTemplate, ctx)
	if err != nil {
		return nil, err
	}
	return &InventoryProject{inventory: wrapper}, nil
}

// Render writes inventory.ini under outputDir/ansible.
func (p *InventoryProject) Render(outputDir string) error {
	return p.inventory.Render(filepath.Join(outputDir, "ansible", "inventory.ini"))
}
