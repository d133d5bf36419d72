package models

import (
	"time"

	"finca/pkg/domain"
	dErrors "finca/pkg/domain-errors"
)

// CompensationRate is the auditor's share of the reviewed visit amounts.
const CompensationRate = 0.20

// Compensation is the auditor's pay for an audit: recomputed live while the
// audit is open, captured and frozen when it closes.
type Compensation struct {
	Amount float64 `json:"amount"`
	Frozen bool    `json:"frozen"`
}

// Audit is a third-party review engagement over a set of visits and consumed
// materials.
//
// Invariants:
//   - id, creation date and auditor are immutable
//   - assigned visit/material lists are append-only while open, frozen after
//     close
//   - EndDate, once set, is strictly after CreatedOn and never changes
//   - the frozen compensation never changes after close
type Audit struct {
	ID                 domain.AuditID      `json:"id"`
	CreatedOn          time.Time           `json:"created_on"`
	AuditorID          domain.AuditorID    `json:"auditor_id"`
	EndDate            *time.Time          `json:"end_date,omitempty"`
	VisitIDs           []domain.VisitID    `json:"visit_ids"`
	MaterialIDs        []domain.MaterialID `json:"material_ids"`
	FrozenCompensation *float64            `json:"frozen_compensation,omitempty"`
}

// NewAudit constructs an open audit with no assignments.
func NewAudit(id domain.AuditID, auditorID domain.AuditorID, createdOn time.Time) (*Audit, error) {
	if createdOn.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "audit creation date is required")
	}
	return &Audit{ID: id, CreatedOn: createdOn, AuditorID: auditorID}, nil
}

func (a *Audit) IsClosed() bool { return a.EndDate != nil }

// AssignVisit appends a visit reference. Closed audits reject assignment.
func (a *Audit) AssignVisit(id domain.VisitID) error {
	if a.IsClosed() {
		return dErrors.New(dErrors.CodeBusinessRule, "audit is closed: no more visits can be assigned")
	}
	a.VisitIDs = append(a.VisitIDs, id)
	return nil
}

// AssignMaterial appends a material reference. Closed audits reject
// assignment.
func (a *Audit) AssignMaterial(id domain.MaterialID) error {
	if a.IsClosed() {
		return dErrors.New(dErrors.CodeBusinessRule, "audit is closed: no more materials can be assigned")
	}
	a.MaterialIDs = append(a.MaterialIDs, id)
	return nil
}

// Close ends the audit, freezing the compensation computed from the assigned
// visit total. Closing an already closed audit is a no-op; the end date is
// validated either way.
func (a *Audit) Close(endDate time.Time, visitTotal float64) error {
	if endDate.IsZero() {
		return dErrors.New(dErrors.CodeInvariantViolation, "audit end date is required")
	}
	if !endDate.After(a.CreatedOn) {
		return dErrors.New(dErrors.CodeInvariantViolation, "end date must be after the creation date")
	}
	if a.IsClosed() {
		return nil
	}
	frozen := visitTotal * CompensationRate
	a.EndDate = &endDate
	a.FrozenCompensation = &frozen
	return nil
}

// CompensationFrom derives the compensation for this audit given the current
// total amount of its assigned visits. After close the frozen value wins and
// the argument is ignored.
func (a *Audit) CompensationFrom(visitTotal float64) Compensation {
	if a.FrozenCompensation != nil {
		return Compensation{Amount: *a.FrozenCompensation, Frozen: true}
	}
	return Compensation{Amount: visitTotal * CompensationRate}
}

// Clone returns a deep copy safe to hand out to callers.
func (a *Audit) Clone() Audit {
	out := *a
	out.VisitIDs = append([]domain.VisitID(nil), a.VisitIDs...)
	out.MaterialIDs = append([]domain.MaterialID(nil), a.MaterialIDs...)
	if a.EndDate != nil {
		end := *a.EndDate
		out.EndDate = &end
	}
	if a.FrozenCompensation != nil {
		frozen := *a.FrozenCompensation
		out.FrozenCompensation = &frozen
	}
	return out
}
