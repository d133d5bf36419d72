package service

import (
	"time"

	"finca/internal/community/models"
	"finca/pkg/domain"
	dErrors "finca/pkg/domain-errors"
)

// InvoiceDetails pairs an invoice with its derived total. The total is never
// stored; it is always the sum of the referenced visit amounts.
type InvoiceDetails struct {
	Invoice models.Invoice `json:"invoice"`
	Total   float64        `json:"total"`
}

// CreateInvoice consolidates every pending visit of a resident into one
// invoice and marks them paid. The workflow is atomic: everything is
// validated before the first visit is touched, so a failure leaves no visit
// paid and no id consumed.
func (s *Service) CreateInvoice(rawResidentID string, invoiceDate time.Time) (InvoiceDetails, error) {
	start := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	residentID, err := domain.ParseResidentID(rawResidentID)
	if err != nil {
		return InvoiceDetails{}, asValidation(err)
	}
	if _, err := s.store.Resident(residentID); err != nil {
		return InvoiceDetails{}, asNotFound(err, "resident")
	}
	if invoiceDate.IsZero() {
		return InvoiceDetails{}, dErrors.New(dErrors.CodeValidation, "invoice date is required")
	}

	pending := s.pendingVisits(residentID)
	if len(pending) == 0 {
		return InvoiceDetails{}, dErrors.New(dErrors.CodeBusinessRule, "resident has no pending visits")
	}

	// Validation complete; mutate.
	visitIDs := make([]domain.VisitID, 0, len(pending))
	total := 0.0
	for _, v := range pending {
		v.MarkPaid()
		visitIDs = append(visitIDs, v.ID)
		total += v.Amount
	}

	invoice, err := models.NewInvoice(s.store.NextInvoiceID, invoiceDate, residentID, visitIDs)
	if err != nil {
		// Unreachable: date and visit list were validated above.
		return InvoiceDetails{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to build invoice")
	}
	s.store.AllocateInvoiceID()
	s.store.Invoices = append(s.store.Invoices, invoice)

	s.logInfo("invoice issued",
		"invoice_id", invoice.ID,
		"resident_id", residentID,
		"visits", len(visitIDs),
		"total", total,
	)
	s.countInvoiceIssued()
	if s.metrics != nil {
		s.metrics.ObserveInvoice(start)
	}

	return InvoiceDetails{Invoice: invoice.Clone(), Total: total}, nil
}

// Invoices returns all invoices in creation order with their derived totals,
// as a snapshot.
func (s *Service) Invoices() []InvoiceDetails {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]InvoiceDetails, 0, len(s.store.Invoices))
	for _, inv := range s.store.Invoices {
		out = append(out, InvoiceDetails{
			Invoice: inv.Clone(),
			Total:   s.visitTotal(inv.VisitIDs),
		})
	}
	return out
}
