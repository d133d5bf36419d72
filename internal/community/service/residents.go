package service

import (
	"errors"

	"finca/internal/community/models"
	"finca/pkg/domain"
	dErrors "finca/pkg/domain-errors"
	"finca/pkg/platform/sentinel"
)

// RegisterResident validates and stores a new resident. The national id is
// normalized to upper case; registering an id that already exists, in any
// letter case, is a conflict.
func (s *Service) RegisterResident(rawID, fullName, address, postalCode, city, phone string) (models.Resident, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := domain.ParseResidentID(rawID)
	if err != nil {
		return models.Resident{}, asValidation(err)
	}

	resident, err := models.NewResident(id, fullName, address, postalCode, city, phone)
	if err != nil {
		return models.Resident{}, asValidation(err)
	}

	if err := s.store.PutResident(resident); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return models.Resident{}, dErrors.New(dErrors.CodeConflict, "a resident with this national id already exists")
		}
		return models.Resident{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store resident")
	}

	s.logInfo("resident registered", "resident_id", id)
	s.countResidentRegistered()

	return *resident, nil
}

// FindResident looks a resident up by national id, case-insensitively.
func (s *Service) FindResident(rawID string) (models.Resident, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := domain.ParseResidentID(rawID)
	if err != nil {
		return models.Resident{}, asValidation(err)
	}
	resident, err := s.store.Resident(id)
	if err != nil {
		return models.Resident{}, asNotFound(err, "resident")
	}
	return *resident, nil
}

// UpdateResidentContact replaces a resident's mutable contact fields.
// Identity and full name never change.
func (s *Service) UpdateResidentContact(rawID, address, postalCode, city, phone string) (models.Resident, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := domain.ParseResidentID(rawID)
	if err != nil {
		return models.Resident{}, asValidation(err)
	}
	resident, err := s.store.Resident(id)
	if err != nil {
		return models.Resident{}, asNotFound(err, "resident")
	}
	if err := resident.UpdateContact(address, postalCode, city, phone); err != nil {
		return models.Resident{}, asValidation(err)
	}

	s.logInfo("resident contact updated", "resident_id", id)
	return *resident, nil
}

// Residents returns all residents in registration order. The result is a
// snapshot; mutating it never affects the store.
func (s *Service) Residents() []models.Resident {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := s.store.OrderedResidents()
	out := make([]models.Resident, 0, len(stored))
	for _, r := range stored {
		out = append(out, *r)
	}
	return out
}

// PendingVisits returns a resident's unpaid visits in creation order.
func (s *Service) PendingVisits(rawID string) ([]models.Visit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := domain.ParseResidentID(rawID)
	if err != nil {
		return nil, asValidation(err)
	}
	if _, err := s.store.Resident(id); err != nil {
		return nil, asNotFound(err, "resident")
	}

	pending := s.pendingVisits(id)
	out := make([]models.Visit, 0, len(pending))
	for _, v := range pending {
		out = append(out, *v)
	}
	return out, nil
}
