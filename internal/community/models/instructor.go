package models

import (
	"strings"

	"finca/pkg/domain"
	dErrors "finca/pkg/domain-errors"
)

// Instructor teaches course subjects. All fields beyond the id are mutable.
type Instructor struct {
	ID      domain.InstructorID `json:"id"`
	Name    string              `json:"name"`
	Surname string              `json:"surname"`
	Address string              `json:"address"`
	Phone   string              `json:"phone"`
	Salary  float64             `json:"salary"`
}

func NewInstructor(id domain.InstructorID, name, surname, address, phone string, salary float64) (*Instructor, error) {
	name = strings.TrimSpace(name)
	surname = strings.TrimSpace(surname)
	if name == "" || surname == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "instructor name and surname are required")
	}
	return &Instructor{
		ID:      id,
		Name:    name,
		Surname: surname,
		Address: strings.TrimSpace(address),
		Phone:   strings.TrimSpace(phone),
		Salary:  salary,
	}, nil
}

// Update replaces the mutable fields.
func (i *Instructor) Update(name, surname, address, phone string, salary float64) error {
	name = strings.TrimSpace(name)
	surname = strings.TrimSpace(surname)
	if name == "" || surname == "" {
		return dErrors.New(dErrors.CodeInvariantViolation, "instructor name and surname are required")
	}
	i.Name = name
	i.Surname = surname
	i.Address = strings.TrimSpace(address)
	i.Phone = strings.TrimSpace(phone)
	i.Salary = salary
	return nil
}

func (i *Instructor) FullName() string {
	return strings.TrimSpace(i.Name + " " + i.Surname)
}
