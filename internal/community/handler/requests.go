package handler

import (
	"time"

	"finca/pkg/domain"
)

// Request bodies for the community endpoints. Dates use RFC 3339. All
// semantic validation lives in the service; these are pure transport shapes.

type RegisterResidentRequest struct {
	NationalID string `json:"national_id"`
	FullName   string `json:"full_name"`
	Address    string `json:"address"`
	PostalCode string `json:"postal_code"`
	City       string `json:"city"`
	Phone      string `json:"phone"`
}

type UpdateContactRequest struct {
	Address    string `json:"address"`
	PostalCode string `json:"postal_code"`
	City       string `json:"city"`
	Phone      string `json:"phone"`
}

type CreateVisitRequest struct {
	ResidentID    string    `json:"resident_id"`
	Date          time.Time `json:"date"`
	Description   string    `json:"description"`
	Amount        float64   `json:"amount"`
	Administrator string    `json:"administrator"`
}

type CreateInvoiceRequest struct {
	ResidentID string    `json:"resident_id"`
	Date       time.Time `json:"date"`
}

type InstructorRequest struct {
	Name    string  `json:"name"`
	Surname string  `json:"surname"`
	Address string  `json:"address"`
	Phone   string  `json:"phone"`
	Salary  float64 `json:"salary"`
}

type AuditorRequest struct {
	Name           string `json:"name"`
	Surname        string `json:"surname"`
	CompanyTaxID   string `json:"company_tax_id"`
	CompanyName    string `json:"company_name"`
	CompanyAddress string `json:"company_address"`
	Phone          string `json:"phone"`
}

type MaterialRequest struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type CreateCourseRequest struct {
	Name         string    `json:"name"`
	Price        float64   `json:"price"`
	MaxResidents int       `json:"max_residents"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
}

type CapacityRequest struct {
	MaxResidents int `json:"max_residents"`
}

type AddSubjectRequest struct {
	Name         string `json:"name"`
	Hours        int    `json:"hours"`
	InstructorID string `json:"instructor_id"`
}

type ReassignInstructorRequest struct {
	InstructorID string `json:"instructor_id"`
}

type EnrollRequest struct {
	ResidentID string `json:"resident_id"`
}

type CreateAuditRequest struct {
	AuditorID string    `json:"auditor_id"`
	CreatedOn time.Time `json:"created_on"`
}

type AssignVisitsRequest struct {
	VisitIDs []domain.VisitID `json:"visit_ids"`
}

type AssignMaterialRequest struct {
	MaterialID string `json:"material_id"`
}

type CloseAuditRequest struct {
	EndDate time.Time `json:"end_date"`
}
