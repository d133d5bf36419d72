package models

import (
	"strings"

	"finca/pkg/domain"
	dErrors "finca/pkg/domain-errors"
)

// Auditor is a third-party reviewer, not an employee. The company fields
// describe the firm the auditor works for.
type Auditor struct {
	ID             domain.AuditorID `json:"id"`
	Name           string           `json:"name"`
	Surname        string           `json:"surname"`
	CompanyTaxID   string           `json:"company_tax_id"`
	CompanyName    string           `json:"company_name"`
	CompanyAddress string           `json:"company_address"`
	Phone          string           `json:"phone"`
}

func NewAuditor(id domain.AuditorID, name, surname, companyTaxID, companyName, companyAddress, phone string) (*Auditor, error) {
	name = strings.TrimSpace(name)
	surname = strings.TrimSpace(surname)
	if name == "" || surname == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "auditor name and surname are required")
	}
	return &Auditor{
		ID:             id,
		Name:           name,
		Surname:        surname,
		CompanyTaxID:   strings.TrimSpace(companyTaxID),
		CompanyName:    strings.TrimSpace(companyName),
		CompanyAddress: strings.TrimSpace(companyAddress),
		Phone:          strings.TrimSpace(phone),
	}, nil
}

// Update replaces the mutable fields.
func (a *Auditor) Update(name, surname, companyTaxID, companyName, companyAddress, phone string) error {
	name = strings.TrimSpace(name)
	surname = strings.TrimSpace(surname)
	if name == "" || surname == "" {
		return dErrors.New(dErrors.CodeInvariantViolation, "auditor name and surname are required")
	}
	a.Name = name
	a.Surname = surname
	a.CompanyTaxID = strings.TrimSpace(companyTaxID)
	a.CompanyName = strings.TrimSpace(companyName)
	a.CompanyAddress = strings.TrimSpace(companyAddress)
	a.Phone = strings.TrimSpace(phone)
	return nil
}

func (a *Auditor) FullName() string {
	return strings.TrimSpace(a.Name + " " + a.Surname)
}
