package service

import (
	"time"

	"finca/internal/community/models"
	"finca/pkg/domain"
	dErrors "finca/pkg/domain-errors"
)

// AuditDetails pairs an audit with its derived compensation: live while the
// audit is open, frozen once it closes.
type AuditDetails struct {
	Audit        models.Audit        `json:"audit"`
	Compensation models.Compensation `json:"compensation"`
}

// CreateAudit opens a new audit engagement for an auditor.
func (s *Service) CreateAudit(rawAuditorID string, createdOn time.Time) (models.Audit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	auditor, err := s.auditorByRawID(rawAuditorID)
	if err != nil {
		return models.Audit{}, err
	}

	audit, err := models.NewAudit(s.store.NextAuditID, auditor.ID, createdOn)
	if err != nil {
		return models.Audit{}, asValidation(err)
	}
	s.store.AllocateAuditID()
	s.store.Audits = append(s.store.Audits, audit)

	s.logInfo("audit created", "audit_id", audit.ID, "auditor_id", auditor.ID)
	return audit.Clone(), nil
}

// Audits returns all audits in creation order with their derived
// compensation, as a snapshot.
func (s *Service) Audits() []AuditDetails {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]AuditDetails, 0, len(s.store.Audits))
	for _, a := range s.store.Audits {
		out = append(out, AuditDetails{
			Audit:        a.Clone(),
			Compensation: a.CompensationFrom(s.visitTotal(a.VisitIDs)),
		})
	}
	return out
}

// AuditCompensation derives the compensation of one audit.
func (s *Service) AuditCompensation(id domain.AuditID) (models.Compensation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	audit, err := s.store.Audit(id)
	if err != nil {
		return models.Compensation{}, asNotFound(err, "audit")
	}
	return audit.CompensationFrom(s.visitTotal(audit.VisitIDs)), nil
}

// AssignVisitsToAudit appends visits to an open audit. The whole batch is
// validated before any element is appended: a closed audit or an unknown
// visit rejects the batch atomically.
func (s *Service) AssignVisitsToAudit(id domain.AuditID, visitIDs []domain.VisitID) (models.Audit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	audit, err := s.store.Audit(id)
	if err != nil {
		return models.Audit{}, asNotFound(err, "audit")
	}
	if audit.IsClosed() {
		return models.Audit{}, dErrors.New(dErrors.CodeBusinessRule, "audit is closed: no more visits can be assigned")
	}
	for _, visitID := range visitIDs {
		if _, err := s.store.Visit(visitID); err != nil {
			return models.Audit{}, asNotFound(err, "visit")
		}
	}

	for _, visitID := range visitIDs {
		if err := audit.AssignVisit(visitID); err != nil {
			// Unreachable: the audit was verified open above.
			return models.Audit{}, err
		}
	}

	s.logInfo("visits assigned to audit", "audit_id", audit.ID, "visits", len(visitIDs))
	return audit.Clone(), nil
}

// AssignMaterialToAudit appends one material to an open audit.
func (s *Service) AssignMaterialToAudit(id domain.AuditID, rawMaterialID string) (models.Audit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	audit, err := s.store.Audit(id)
	if err != nil {
		return models.Audit{}, asNotFound(err, "audit")
	}
	material, err := s.materialByRawID(rawMaterialID)
	if err != nil {
		return models.Audit{}, err
	}
	if err := audit.AssignMaterial(material.ID); err != nil {
		return models.Audit{}, err
	}

	s.logInfo("material assigned to audit", "audit_id", audit.ID, "material_id", material.ID)
	return audit.Clone(), nil
}

// CloseAudit ends an audit, freezing its compensation. Closing an already
// closed audit is a no-op: the first end date and frozen value stand.
func (s *Service) CloseAudit(id domain.AuditID, endDate time.Time) (AuditDetails, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	audit, err := s.store.Audit(id)
	if err != nil {
		return AuditDetails{}, asNotFound(err, "audit")
	}

	wasClosed := audit.IsClosed()
	if err := audit.Close(endDate, s.visitTotal(audit.VisitIDs)); err != nil {
		return AuditDetails{}, asValidation(err)
	}
	if !wasClosed {
		s.logInfo("audit closed", "audit_id", audit.ID, "compensation", *audit.FrozenCompensation)
		s.countAuditClosed()
	}

	return AuditDetails{
		Audit:        audit.Clone(),
		Compensation: audit.CompensationFrom(0),
	}, nil
}
