package skills

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var defaultCatalog []byte

// Edge is a single "prerequisite before skill" relationship
type Edge struct {
	Skill        string `yaml:"skill"`
	Prerequisite string `yaml:"prerequisite"`
}

// Catalog is a bulk set of skills and prerequisite edges
type Catalog struct {
	Skills        []string `yaml:"skills"`
	Prerequisites []Edge   `yaml:"prerequisites"`
}

// DefaultCatalog returns the built-in tech-career catalog
func DefaultCatalog() (*Catalog, error) {
	return ParseCatalog(defaultCatalog)
}

// LoadCatalog reads a YAML catalog from path
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes a YAML catalog
func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return &c, nil
}

// Seed applies a catalog to g through the public add operations.
// It stops at the first rejected entry.
func Seed(g *Graph, c *Catalog) error {
	for _, name := range c.Skills {
		if err := g.AddSkill(name); err != nil {
			return fmt.Errorf("seed skill %q: %w", name, err)
		}
	}
	for _, e := range c.Prerequisites {
		if err := g.AddPrerequisite(e.Skill, e.Prerequisite); err != nil {
			return fmt.Errorf("seed prerequisite %q -> %q: %w", e.Prerequisite, e.Skill, err)
		}
	}
	return nil
}
