package services

import (
	"fmt"
	"os"

	"github.com/afterclass/commitgoblin/goblin/database/models"
	"gopkg.in/yaml.v3"
)

// catalogFile is the operator-maintained list of extra shop items.
type catalogFile struct {
	Items []catalogEntry `yaml:"items"`
}

type catalogEntry struct {
	ID            string `yaml:"id"`
	Name          string `yaml:"name"`
	Description   string `yaml:"description"`
	Cost          int    `yaml:"cost"`
	Type          string `yaml:"type"`
	RoleName      string `yaml:"role_name"`
	DurationHours int    `yaml:"duration_hours"`
	UsableCommand string `yaml:"usable_command"`
}

// LoadCatalog reads extra shop items from a YAML file. An empty path yields
// no items.
func LoadCatalog(path string) ([]*models.ShopItem, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return ParseCatalog(data)
}

func ParseCatalog(data []byte) ([]*models.ShopItem, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	seen := make(map[string]bool, len(file.Items))
	items := make([]*models.ShopItem, 0, len(file.Items))
	for i, e := range file.Items {
		if e.ID == "" {
			return nil, fmt.Errorf("catalog item %d: missing id", i)
		}
		if seen[e.ID] {
			return nil, fmt.Errorf("catalog item %q: duplicate id", e.ID)
		}
		if e.Cost < 0 {
			return nil, fmt.Errorf("catalog item %q: negative cost", e.ID)
		}
		kind, err := models.ParseItemKind(e.Type, e.RoleName, e.DurationHours, e.UsableCommand)
		if err != nil {
			return nil, fmt.Errorf("catalog item %q: %w", e.ID, err)
		}
		seen[e.ID] = true
		name := e.Name
		if name == "" {
			name = e.ID
		}
		items = append(items, &models.ShopItem{
			ID:          e.ID,
			Name:        name,
			Description: e.Description,
			Cost:        e.Cost,
			Kind:        kind,
		})
	}
	return items, nil
}
