package allowlist

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ppiankov/airwatch/internal/model"
)

// File is the on-disk allow-list format.
type File struct {
	Networks []string `yaml:"networks"`
}

// Load reads an allow-list from a YAML file. An empty path falls back to
// ~/.airwatch/allowlist.yaml; a missing file yields an empty list, which
// classifies every association as unauthorized.
func Load(path string) (*AllowList, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return New(nil), nil
		}
		path = filepath.Join(home, ".airwatch", "allowlist.yaml")
	}

	ids, err := LoadIDs(path)
	if err != nil {
		if os.IsNotExist(err) {
			return New(nil), nil
		}
		return nil, err
	}
	return New(ids), nil
}

// LoadIDs parses the identifiers from a YAML allow-list file, validating
// each against the identifier length bound.
func LoadIDs(path string) ([]model.NetworkID, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse allow-list %s: %w", path, err)
	}

	ids := make([]model.NetworkID, 0, len(f.Networks))
	for _, raw := range f.Networks {
		id, err := model.NewNetworkID(raw)
		if err != nil {
			return nil, fmt.Errorf("allow-list %s: %w", path, err)
		}
		if id == "" {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}
