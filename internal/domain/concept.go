package domain

import (
	"fmt"
	"strings"
)

// ConceptRecord is one entry of the content table: a term and its definition.
// The game only relies on the ID being stable and the two texts being
// displayable; records are never modified after loading.
type ConceptRecord struct {
	ID    string `json:"id" yaml:"id"`
	Front string `json:"front" yaml:"front"`
	Back  string `json:"back" yaml:"back"`
	Icon  string `json:"icon,omitempty" yaml:"icon"`

	// Explanation and Example are study material for browsing the concepts
	// before playing. Both are optional and never dealt onto cards.
	Explanation string `json:"explanation,omitempty" yaml:"explanation"`
	Example     string `json:"example,omitempty" yaml:"example"`
}

// Validate checks that the record has an ID and both faces.
func (c ConceptRecord) Validate() error {
	switch {
	case strings.TrimSpace(c.ID) == "":
		return fmt.Errorf("%w: id is required", ErrInvalidConcept)
	case strings.TrimSpace(c.Front) == "":
		return fmt.Errorf("%w: front text is required for %q", ErrInvalidConcept, c.ID)
	case strings.TrimSpace(c.Back) == "":
		return fmt.Errorf("%w: back text is required for %q", ErrInvalidConcept, c.ID)
	}
	return nil
}
