// File: database/repository/catalog/seed.go
package catalogRepo

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"clinicbook/models"
)

type catalogFile struct {
	Treatments []models.TreatmentOption `yaml:"treatments"`
}

// LoadCatalogFile reads a YAML treatment catalog.
func LoadCatalogFile(path string) ([]models.TreatmentOption, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes and validates a YAML treatment catalog.
func ParseCatalog(data []byte) ([]models.TreatmentOption, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	seen := make(map[string]bool, len(file.Treatments))
	for _, t := range file.Treatments {
		if t.Name == "" {
			return nil, errors.New("catalog entry without a name")
		}
		if seen[t.Name] {
			return nil, fmt.Errorf("duplicate treatment %q", t.Name)
		}
		seen[t.Name] = true

		slots := make(map[string]bool, len(t.Slots))
		for _, s := range t.Slots {
			if slots[s] {
				return nil, fmt.Errorf("treatment %q lists slot %q twice", t.Name, s)
			}
			slots[s] = true
		}
	}
	return file.Treatments, nil
}

// Seed upserts every option by name.
func Seed(ctx context.Context, repo CatalogRepository, options []models.TreatmentOption) error {
	for _, opt := range options {
		if err := repo.Upsert(ctx, opt); err != nil {
			return err
		}
	}
	return nil
}
