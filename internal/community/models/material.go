package models

import (
	"strings"

	"finca/pkg/domain"
	dErrors "finca/pkg/domain-errors"
)

// Material is a flat catalog entry, independently reusable across audits.
type Material struct {
	ID    domain.MaterialID `json:"id"`
	Name  string            `json:"name"`
	Price float64           `json:"price"`
}

func NewMaterial(id domain.MaterialID, name string, price float64) (*Material, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "material name cannot be empty")
	}
	return &Material{ID: id, Name: name, Price: price}, nil
}

// Update replaces the mutable fields.
func (m *Material) Update(name string, price float64) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return dErrors.New(dErrors.CodeInvariantViolation, "material name cannot be empty")
	}
	m.Name = name
	m.Price = price
	return nil
}
