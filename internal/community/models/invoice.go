package models

import (
	"time"

	"finca/pkg/domain"
	dErrors "finca/pkg/domain-errors"
)

// Invoice consolidates a resident's unpaid visits into one payable document.
// It is immutable after creation and always references at least one visit.
// The total is never stored; it is recomputed from the referenced visits.
type Invoice struct {
	ID         domain.InvoiceID  `json:"id"`
	CreatedOn  time.Time         `json:"created_on"`
	ResidentID domain.ResidentID `json:"resident_id"`
	VisitIDs   []domain.VisitID  `json:"visit_ids"`
}

// NewInvoice constructs an invoice over the given visits, in their creation
// order. The visit list is copied so later caller mutations cannot reach it.
func NewInvoice(id domain.InvoiceID, createdOn time.Time, residentID domain.ResidentID, visitIDs []domain.VisitID) (*Invoice, error) {
	if createdOn.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "invoice date is required")
	}
	if len(visitIDs) == 0 {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "an invoice must reference at least one visit")
	}
	return &Invoice{
		ID:         id,
		CreatedOn:  createdOn,
		ResidentID: residentID,
		VisitIDs:   append([]domain.VisitID(nil), visitIDs...),
	}, nil
}

// Clone returns a deep copy safe to hand out to callers.
func (i *Invoice) Clone() Invoice {
	c := *i
	c.VisitIDs = append([]domain.VisitID(nil), i.VisitIDs...)
	return c
}
