package models

import (
	"strings"
	"time"

	"finca/pkg/domain"
	dErrors "finca/pkg/domain-errors"
)

// PaymentStatus is the controlled payment state of a visit.
type PaymentStatus string

const (
	PaymentStatusUnpaid PaymentStatus = "unpaid"
	PaymentStatusPaid   PaymentStatus = "paid"
)

// Visit records an administrator's intervention at a resident's home.
//
// Invariants:
//   - id, resident, date, description, amount and administrator are immutable
//   - amount is never negative
//   - Status only ever transitions unpaid → paid, via the invoicing workflow
type Visit struct {
	ID            domain.VisitID    `json:"id"`
	ResidentID    domain.ResidentID `json:"resident_id"`
	Date          time.Time         `json:"date"`
	Description   string            `json:"description"`
	Amount        float64           `json:"amount"`
	Administrator string            `json:"administrator"`
	Status        PaymentStatus     `json:"status"`
}

// NewVisit constructs a visit in the unpaid state.
func NewVisit(id domain.VisitID, residentID domain.ResidentID, date time.Time, description string, amount float64, administrator string) (*Visit, error) {
	if date.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "visit date is required")
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "description cannot be empty")
	}
	administrator = strings.TrimSpace(administrator)
	if administrator == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "administrator name cannot be empty")
	}
	if amount < 0 {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "amount cannot be negative")
	}
	return &Visit{
		ID:            id,
		ResidentID:    residentID,
		Date:          date,
		Description:   description,
		Amount:        amount,
		Administrator: administrator,
		Status:        PaymentStatusUnpaid,
	}, nil
}

func (v *Visit) IsPaid() bool { return v.Status == PaymentStatusPaid }

// MarkPaid transitions the visit to paid. Paid visits stay paid; the
// transition is never reversed.
func (v *Visit) MarkPaid() { v.Status = PaymentStatusPaid }
