// Package content loads the concept tables cards are dealt from.
package content

import (
	_ "embed"
	"fmt"

	"github.com/phrazzld/scry-match/internal/domain"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

//go:embed concepts.yaml
var defaultConcepts []byte

type table struct {
	Concepts []domain.ConceptRecord `yaml:"concepts"`
}

// Parse decodes a YAML concept table. Every record must be valid and ids
// must be unique.
func Parse(data []byte) ([]domain.ConceptRecord, error) {
	var t table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidConcept, err)
	}

	seen := make(map[string]bool, len(t.Concepts))
	for i, c := range t.Concepts {
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("concept %d: %w", i, err)
		}
		if seen[c.ID] {
			return nil, fmt.Errorf("%w: duplicate id %q", domain.ErrInvalidConcept, c.ID)
		}
		seen[c.ID] = true
	}
	return t.Concepts, nil
}

// Default returns the built-in table of machine learning concepts.
func Default() []domain.ConceptRecord {
	concepts, err := Parse(defaultConcepts)
	if err != nil {
		panic(fmt.Sprintf("embedded concepts are invalid: %v", err))
	}
	return concepts
}

// Load reads the concept table at path from fsys, or returns Default when
// path is empty.
func Load(fsys afero.Fs, path string) ([]domain.ConceptRecord, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read content file %s: %w", path, err)
	}

	concepts, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse content file %s: %w", path, err)
	}
	return concepts, nil
}
