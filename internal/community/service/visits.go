package service

import (
	"time"

	"finca/internal/community/models"
	"finca/pkg/domain"
)

// CreateVisit records a maintenance visit against a resident, in the unpaid
// state. The visit id is allocated only after every validation passes, so
// failed calls never consume ids.
func (s *Service) CreateVisit(rawResidentID string, date time.Time, description string, amount float64, administrator string) (models.Visit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	residentID, err := domain.ParseResidentID(rawResidentID)
	if err != nil {
		return models.Visit{}, asValidation(err)
	}
	if _, err := s.store.Resident(residentID); err != nil {
		return models.Visit{}, asNotFound(err, "resident")
	}

	visit, err := models.NewVisit(s.store.NextVisitID, residentID, date, description, amount, administrator)
	if err != nil {
		return models.Visit{}, asValidation(err)
	}

	s.store.AllocateVisitID()
	s.store.Visits = append(s.store.Visits, visit)

	s.logInfo("visit created", "visit_id", visit.ID, "resident_id", residentID, "amount", amount)
	s.countVisitCreated()

	return *visit, nil
}

// Visits returns all visits in creation order, as a snapshot.
func (s *Service) Visits() []models.Visit {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Visit, 0, len(s.store.Visits))
	for _, v := range s.store.Visits {
		out = append(out, *v)
	}
	return out
}
