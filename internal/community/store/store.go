// Package store holds the domain store: one serializable aggregate with every
// community collection and the three id counters. It is pure data plus
// lookups; all mutation and invariant enforcement lives in the service
// façade. A persistence adapter may serialize the whole store and replace it
// wholesale with a previously captured snapshot.
package store

import (
	"finca/internal/community/models"
	"finca/pkg/domain"
	"finca/pkg/platform/sentinel"
)

// Store is the aggregate. Exported fields make it serializable as one
// self-contained document; ResidentOrder preserves registration order for the
// resident map.
type Store struct {
	Residents     map[domain.ResidentID]*models.Resident `json:"residents"`
	ResidentOrder []domain.ResidentID                    `json:"resident_order"`
	Visits        []*models.Visit                        `json:"visits"`
	Invoices      []*models.Invoice                      `json:"invoices"`
	Courses       []*models.Course                       `json:"courses"`
	Instructors   []*models.Instructor                   `json:"instructors"`
	Auditors      []*models.Auditor                      `json:"auditors"`
	Audits        []*models.Audit                        `json:"audits"`
	Materials     []*models.Material                     `json:"materials"`

	NextVisitID   domain.VisitID   `json:"next_visit_id"`
	NextInvoiceID domain.InvoiceID `json:"next_invoice_id"`
	NextAuditID   domain.AuditID   `json:"next_audit_id"`
}

// New returns an empty store with all counters at their starting value.
func New() *Store {
	return &Store{
		Residents:     make(map[domain.ResidentID]*models.Resident),
		NextVisitID:   1,
		NextInvoiceID: 1,
		NextAuditID:   1,
	}
}

// Normalize repairs the zero values a decoded snapshot may carry so lookups
// and allocations behave identically to a freshly built store.
func (s *Store) Normalize() {
	if s.Residents == nil {
		s.Residents = make(map[domain.ResidentID]*models.Resident)
	}
	if s.NextVisitID < 1 {
		s.NextVisitID = 1
	}
	if s.NextInvoiceID < 1 {
		s.NextInvoiceID = 1
	}
	if s.NextAuditID < 1 {
		s.NextAuditID = 1
	}
}

// Counter allocation. Counters only ever move forward; an allocated id is
// never reused even if the created entity is never referenced again.

func (s *Store) AllocateVisitID() domain.VisitID {
	id := s.NextVisitID
	s.NextVisitID++
	return id
}

func (s *Store) AllocateInvoiceID() domain.InvoiceID {
	id := s.NextInvoiceID
	s.NextInvoiceID++
	return id
}

func (s *Store) AllocateAuditID() domain.AuditID {
	id := s.NextAuditID
	s.NextAuditID++
	return id
}

// Lookups return sentinel.ErrNotFound for missing records; the service
// translates that into a coded domain error.

func (s *Store) Resident(id domain.ResidentID) (*models.Resident, error) {
	if r, ok := s.Residents[id]; ok {
		return r, nil
	}
	return nil, sentinel.ErrNotFound
}

// PutResident stores a new resident, preserving registration order.
// Uniqueness is a fact about the store, reported as a sentinel conflict.
func (s *Store) PutResident(r *models.Resident) error {
	if _, exists := s.Residents[r.ID]; exists {
		return sentinel.ErrConflict
	}
	s.Residents[r.ID] = r
	s.ResidentOrder = append(s.ResidentOrder, r.ID)
	return nil
}

// OrderedResidents returns residents in registration order.
func (s *Store) OrderedResidents() []*models.Resident {
	out := make([]*models.Resident, 0, len(s.ResidentOrder))
	for _, id := range s.ResidentOrder {
		if r, ok := s.Residents[id]; ok {
			out = append(out, r)
		}
	}
	return out
}

func (s *Store) Visit(id domain.VisitID) (*models.Visit, error) {
	for _, v := range s.Visits {
		if v.ID == id {
			return v, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *Store) Course(id domain.CourseID) (*models.Course, error) {
	for _, c := range s.Courses {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *Store) Instructor(id domain.InstructorID) (*models.Instructor, error) {
	for _, i := range s.Instructors {
		if i.ID == id {
			return i, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *Store) Auditor(id domain.AuditorID) (*models.Auditor, error) {
	for _, a := range s.Auditors {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *Store) Audit(id domain.AuditID) (*models.Audit, error) {
	for _, a := range s.Audits {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *Store) Material(id domain.MaterialID) (*models.Material, error) {
	for _, m := range s.Materials {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

// Removals drop a record by identity, preserving the order of the rest.

func (s *Store) RemoveInstructor(id domain.InstructorID) error {
	for i, in := range s.Instructors {
		if in.ID == id {
			s.Instructors = append(s.Instructors[:i], s.Instructors[i+1:]...)
			return nil
		}
	}
	return sentinel.ErrNotFound
}

func (s *Store) RemoveAuditor(id domain.AuditorID) error {
	for i, a := range s.Auditors {
		if a.ID == id {
			s.Auditors = append(s.Auditors[:i], s.Auditors[i+1:]...)
			return nil
		}
	}
	return sentinel.ErrNotFound
}

func (s *Store) RemoveMaterial(id domain.MaterialID) error {
	for i, m := range s.Materials {
		if m.ID == id {
			s.Materials = append(s.Materials[:i], s.Materials[i+1:]...)
			return nil
		}
	}
	return sentinel.ErrNotFound
}
