package models

import (
	"regexp"
	"strings"

	"finca/pkg/domain"
	dErrors "finca/pkg/domain-errors"
)

// phonePattern matches the optional nine-digit phone number.
var phonePattern = regexp.MustCompile(`^[0-9]{9}$`)

// Resident is a community member tracked by national id.
//
// Invariants:
//   - ID is a normalized national id and never changes
//   - FullName is non-empty and immutable after registration
//   - Phone, when present, is exactly nine digits
//
// Address, postal code, city and phone are mutable contact data.
type Resident struct {
	ID         domain.ResidentID `json:"id"`
	FullName   string            `json:"full_name"`
	Address    string            `json:"address"`
	PostalCode string            `json:"postal_code"`
	City       string            `json:"city"`
	Phone      string            `json:"phone,omitempty"`
}

// NewResident constructs a resident, enforcing field invariants.
func NewResident(id domain.ResidentID, fullName, address, postalCode, city, phone string) (*Resident, error) {
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "full name cannot be empty")
	}
	phone = strings.TrimSpace(phone)
	if err := validatePhone(phone); err != nil {
		return nil, err
	}
	return &Resident{
		ID:         id,
		FullName:   fullName,
		Address:    strings.TrimSpace(address),
		PostalCode: strings.TrimSpace(postalCode),
		City:       strings.TrimSpace(city),
		Phone:      phone,
	}, nil
}

// UpdateContact replaces the mutable contact fields. Identity and full name
// are untouched.
func (r *Resident) UpdateContact(address, postalCode, city, phone string) error {
	phone = strings.TrimSpace(phone)
	if err := validatePhone(phone); err != nil {
		return err
	}
	r.Address = strings.TrimSpace(address)
	r.PostalCode = strings.TrimSpace(postalCode)
	r.City = strings.TrimSpace(city)
	r.Phone = phone
	return nil
}

// validatePhone accepts an empty phone; the field is optional.
func validatePhone(phone string) error {
	if phone == "" {
		return nil
	}
	if !phonePattern.MatchString(phone) {
		return dErrors.New(dErrors.CodeInvariantViolation, "phone must have exactly 9 digits")
	}
	return nil
}
