package service

import (
	"finca/internal/community/models"
	"finca/pkg/domain"
	dErrors "finca/pkg/domain-errors"
)

// Instructor, auditor and material registries: plain create/read/update/
// delete over the store. Deletion is refused while another entity still
// references the record, so the store never holds dangling ids.

func (s *Service) RegisterInstructor(name, surname, address, phone string, salary float64) (models.Instructor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	instructor, err := models.NewInstructor(domain.NewInstructorID(), name, surname, address, phone, salary)
	if err != nil {
		return models.Instructor{}, asValidation(err)
	}
	s.store.Instructors = append(s.store.Instructors, instructor)

	s.logInfo("instructor registered", "instructor_id", instructor.ID)
	return *instructor, nil
}

func (s *Service) Instructors() []models.Instructor {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Instructor, 0, len(s.store.Instructors))
	for _, i := range s.store.Instructors {
		out = append(out, *i)
	}
	return out
}

func (s *Service) UpdateInstructor(rawID, name, surname, address, phone string, salary float64) (models.Instructor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	instructor, err := s.instructorByRawID(rawID)
	if err != nil {
		return models.Instructor{}, err
	}
	if err := instructor.Update(name, surname, address, phone, salary); err != nil {
		return models.Instructor{}, asValidation(err)
	}

	s.logInfo("instructor updated", "instructor_id", instructor.ID)
	return *instructor, nil
}

func (s *Service) DeleteInstructor(rawID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	instructor, err := s.instructorByRawID(rawID)
	if err != nil {
		return err
	}
	for _, c := range s.store.Courses {
		if c.UsesInstructor(instructor.ID) {
			return dErrors.Newf(dErrors.CodeBusinessRule, "instructor is assigned to a subject of course %q", c.Name)
		}
	}
	if err := s.store.RemoveInstructor(instructor.ID); err != nil {
		return asNotFound(err, "instructor")
	}

	s.logInfo("instructor deleted", "instructor_id", instructor.ID)
	return nil
}

func (s *Service) RegisterAuditor(name, surname, companyTaxID, companyName, companyAddress, phone string) (models.Auditor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	auditor, err := models.NewAuditor(domain.NewAuditorID(), name, surname, companyTaxID, companyName, companyAddress, phone)
	if err != nil {
		return models.Auditor{}, asValidation(err)
	}
	s.store.Auditors = append(s.store.Auditors, auditor)

	s.logInfo("auditor registered", "auditor_id", auditor.ID)
	return *auditor, nil
}

func (s *Service) Auditors() []models.Auditor {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Auditor, 0, len(s.store.Auditors))
	for _, a := range s.store.Auditors {
		out = append(out, *a)
	}
	return out
}

func (s *Service) UpdateAuditor(rawID, name, surname, companyTaxID, companyName, companyAddress, phone string) (models.Auditor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	auditor, err := s.auditorByRawID(rawID)
	if err != nil {
		return models.Auditor{}, err
	}
	if err := auditor.Update(name, surname, companyTaxID, companyName, companyAddress, phone); err != nil {
		return models.Auditor{}, asValidation(err)
	}

	s.logInfo("auditor updated", "auditor_id", auditor.ID)
	return *auditor, nil
}

func (s *Service) DeleteAuditor(rawID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	auditor, err := s.auditorByRawID(rawID)
	if err != nil {
		return err
	}
	for _, a := range s.store.Audits {
		if a.AuditorID == auditor.ID {
			return dErrors.Newf(dErrors.CodeBusinessRule, "auditor is engaged on audit #%d", a.ID)
		}
	}
	if err := s.store.RemoveAuditor(auditor.ID); err != nil {
		return asNotFound(err, "auditor")
	}

	s.logInfo("auditor deleted", "auditor_id", auditor.ID)
	return nil
}

func (s *Service) RegisterMaterial(name string, price float64) (models.Material, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	material, err := models.NewMaterial(domain.NewMaterialID(), name, price)
	if err != nil {
		return models.Material{}, asValidation(err)
	}
	s.store.Materials = append(s.store.Materials, material)

	s.logInfo("material registered", "material_id", material.ID, "name", material.Name)
	return *material, nil
}

func (s *Service) Materials() []models.Material {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Material, 0, len(s.store.Materials))
	for _, m := range s.store.Materials {
		out = append(out, *m)
	}
	return out
}

func (s *Service) UpdateMaterial(rawID, name string, price float64) (models.Material, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	material, err := s.materialByRawID(rawID)
	if err != nil {
		return models.Material{}, err
	}
	if err := material.Update(name, price); err != nil {
		return models.Material{}, asValidation(err)
	}

	s.logInfo("material updated", "material_id", material.ID)
	return *material, nil
}

func (s *Service) DeleteMaterial(rawID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	material, err := s.materialByRawID(rawID)
	if err != nil {
		return err
	}
	for _, a := range s.store.Audits {
		for _, id := range a.MaterialIDs {
			if id == material.ID {
				return dErrors.Newf(dErrors.CodeBusinessRule, "material is assigned to audit #%d", a.ID)
			}
		}
	}
	if err := s.store.RemoveMaterial(material.ID); err != nil {
		return asNotFound(err, "material")
	}

	s.logInfo("material deleted", "material_id", material.ID)
	return nil
}

// auditorByRawID parses and resolves an auditor id. Callers hold the lock.
func (s *Service) auditorByRawID(raw string) (*models.Auditor, error) {
	id, err := domain.ParseAuditorID(raw)
	if err != nil {
		return nil, asValidation(err)
	}
	auditor, err := s.store.Auditor(id)
	if err != nil {
		return nil, asNotFound(err, "auditor")
	}
	return auditor, nil
}

// materialByRawID parses and resolves a material id. Callers hold the lock.
func (s *Service) materialByRawID(raw string) (*models.Material, error) {
	id, err := domain.ParseMaterialID(raw)
	if err != nil {
		return nil, asValidation(err)
	}
	material, err := s.store.Material(id)
	if err != nil {
		return nil, asNotFound(err, "material")
	}
	return material, nil
}
