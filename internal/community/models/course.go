package models

import (
	"strings"
	"time"

	"finca/pkg/domain"
	dErrors "finca/pkg/domain-errors"
)

// Subject is one taught unit of a course. It belongs to exactly one course
// and is taught by exactly one instructor, who can be re-assigned.
type Subject struct {
	Name         string              `json:"name"`
	Hours        int                 `json:"hours"`
	InstructorID domain.InstructorID `json:"instructor_id"`
}

// NewSubject constructs a subject, enforcing field invariants.
func NewSubject(name string, hours int, instructorID domain.InstructorID) (Subject, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Subject{}, dErrors.New(dErrors.CodeInvariantViolation, "subject name cannot be empty")
	}
	if hours <= 0 {
		return Subject{}, dErrors.New(dErrors.CodeInvariantViolation, "subject hours must be greater than zero")
	}
	return Subject{Name: name, Hours: hours, InstructorID: instructorID}, nil
}

// Course is a training offering.
//
// Invariants:
//   - Name, price and date range are immutable
//   - EndDate is never before StartDate
//   - enrollment count never exceeds MaxResidents
//   - a resident enrolls at most once; order of enrollment is preserved
type Course struct {
	ID           domain.CourseID     `json:"id"`
	Name         string              `json:"name"`
	Price        float64             `json:"price"`
	MaxResidents int                 `json:"max_residents"`
	StartDate    time.Time           `json:"start_date"`
	EndDate      time.Time           `json:"end_date"`
	Subjects     []Subject           `json:"subjects"`
	Enrolled     []domain.ResidentID `json:"enrolled"`
}

// NewCourse constructs a course, enforcing field invariants.
func NewCourse(id domain.CourseID, name string, price float64, maxResidents int, start, end time.Time) (*Course, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "course name cannot be empty")
	}
	if maxResidents <= 0 {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "maximum residents must be greater than zero")
	}
	if start.IsZero() || end.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "start and end dates are required")
	}
	if end.Before(start) {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "end date cannot be before start date")
	}
	return &Course{
		ID:           id,
		Name:         name,
		Price:        price,
		MaxResidents: maxResidents,
		StartDate:    start,
		EndDate:      end,
	}, nil
}

// TotalHours is the derived course duration: sum of subject hours.
func (c *Course) TotalHours() int {
	total := 0
	for _, s := range c.Subjects {
		total += s.Hours
	}
	return total
}

func (c *Course) IsEnrolled(id domain.ResidentID) bool {
	for _, e := range c.Enrolled {
		if e == id {
			return true
		}
	}
	return false
}

// Enroll adds a resident to the course. Re-enrolling an already enrolled
// resident is a silent no-op; a full course rejects new residents.
func (c *Course) Enroll(id domain.ResidentID) error {
	if c.IsEnrolled(id) {
		return nil
	}
	if len(c.Enrolled) >= c.MaxResidents {
		return dErrors.New(dErrors.CodeBusinessRule, "course is full: no more residents can enroll")
	}
	c.Enrolled = append(c.Enrolled, id)
	return nil
}

// SetMaxResidents changes the enrollment capacity. It can never drop below
// the current enrollment count, or the capacity invariant would break.
func (c *Course) SetMaxResidents(max int) error {
	if max <= 0 {
		return dErrors.New(dErrors.CodeInvariantViolation, "maximum residents must be greater than zero")
	}
	if max < len(c.Enrolled) {
		return dErrors.Newf(dErrors.CodeBusinessRule, "capacity %d is below current enrollment of %d", max, len(c.Enrolled))
	}
	c.MaxResidents = max
	return nil
}

// AddSubject appends a subject to the course. Duration is derived lazily, so
// nothing else updates.
func (c *Course) AddSubject(s Subject) {
	c.Subjects = append(c.Subjects, s)
}

// SubjectByName finds a subject by its name. The returned pointer aliases the
// course's own list so the caller can re-assign its instructor.
func (c *Course) SubjectByName(name string) (*Subject, bool) {
	for i := range c.Subjects {
		if c.Subjects[i].Name == name {
			return &c.Subjects[i], true
		}
	}
	return nil, false
}

// UsesInstructor reports whether any subject references the instructor.
func (c *Course) UsesInstructor(id domain.InstructorID) bool {
	for _, s := range c.Subjects {
		if s.InstructorID == id {
			return true
		}
	}
	return false
}

// Clone returns a deep copy safe to hand out to callers.
func (c *Course) Clone() Course {
	out := *c
	out.Subjects = append([]Subject(nil), c.Subjects...)
	out.Enrolled = append([]domain.ResidentID(nil), c.Enrolled...)
	return out
}
