package service

import (
	"time"

	"finca/internal/community/models"
	"finca/pkg/domain"
	"finca/pkg/platform/sentinel"
)

// CreateCourse registers a new training offering.
func (s *Service) CreateCourse(name string, price float64, maxResidents int, start, end time.Time) (models.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	course, err := models.NewCourse(domain.NewCourseID(), name, price, maxResidents, start, end)
	if err != nil {
		return models.Course{}, asValidation(err)
	}
	s.store.Courses = append(s.store.Courses, course)

	s.logInfo("course created", "course_id", course.ID, "name", course.Name)
	return course.Clone(), nil
}

// Courses returns all courses in creation order, as a snapshot.
func (s *Service) Courses() []models.Course {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Course, 0, len(s.store.Courses))
	for _, c := range s.store.Courses {
		out = append(out, c.Clone())
	}
	return out
}

// SetCourseCapacity changes a course's maximum enrollment. Capacity can
// never drop below the current enrollment count.
func (s *Service) SetCourseCapacity(rawCourseID string, max int) (models.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	course, err := s.courseByRawID(rawCourseID)
	if err != nil {
		return models.Course{}, err
	}
	if err := course.SetMaxResidents(max); err != nil {
		return models.Course{}, asValidation(err)
	}

	s.logInfo("course capacity changed", "course_id", course.ID, "max_residents", max)
	return course.Clone(), nil
}

// AddSubjectToCourse appends a taught unit to a course. The instructor must
// exist; the course's derived duration updates implicitly.
func (s *Service) AddSubjectToCourse(rawCourseID, subjectName string, hours int, rawInstructorID string) (models.Subject, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	course, err := s.courseByRawID(rawCourseID)
	if err != nil {
		return models.Subject{}, err
	}
	instructor, err := s.instructorByRawID(rawInstructorID)
	if err != nil {
		return models.Subject{}, err
	}

	subject, err := models.NewSubject(subjectName, hours, instructor.ID)
	if err != nil {
		return models.Subject{}, asValidation(err)
	}
	course.AddSubject(subject)

	s.logInfo("subject added", "course_id", course.ID, "subject", subject.Name, "hours", hours)
	return subject, nil
}

// ReassignSubjectInstructor points an existing subject at a different
// instructor. A subject always has exactly one instructor.
func (s *Service) ReassignSubjectInstructor(rawCourseID, subjectName, rawInstructorID string) (models.Subject, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	course, err := s.courseByRawID(rawCourseID)
	if err != nil {
		return models.Subject{}, err
	}
	instructor, err := s.instructorByRawID(rawInstructorID)
	if err != nil {
		return models.Subject{}, err
	}
	subject, ok := course.SubjectByName(subjectName)
	if !ok {
		return models.Subject{}, asNotFound(sentinel.ErrNotFound, "subject")
	}
	subject.InstructorID = instructor.ID

	s.logInfo("subject instructor reassigned", "course_id", course.ID, "subject", subject.Name, "instructor_id", instructor.ID)
	return *subject, nil
}

// EnrollResidentInCourse adds a resident to a course. Re-enrolling an
// already enrolled resident succeeds silently; a full course rejects new
// residents.
func (s *Service) EnrollResidentInCourse(rawResidentID, rawCourseID string) (models.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	residentID, err := domain.ParseResidentID(rawResidentID)
	if err != nil {
		return models.Course{}, asValidation(err)
	}
	if _, err := s.store.Resident(residentID); err != nil {
		return models.Course{}, asNotFound(err, "resident")
	}
	course, err := s.courseByRawID(rawCourseID)
	if err != nil {
		return models.Course{}, err
	}
	if err := course.Enroll(residentID); err != nil {
		return models.Course{}, err
	}

	s.logInfo("resident enrolled", "course_id", course.ID, "resident_id", residentID)
	return course.Clone(), nil
}

// courseByRawID parses and resolves a course id. Callers hold the lock.
func (s *Service) courseByRawID(raw string) (*models.Course, error) {
	id, err := domain.ParseCourseID(raw)
	if err != nil {
		return nil, asValidation(err)
	}
	course, err := s.store.Course(id)
	if err != nil {
		return nil, asNotFound(err, "course")
	}
	return course, nil
}

// instructorByRawID parses and resolves an instructor id. Callers hold the
// lock.
func (s *Service) instructorByRawID(raw string) (*models.Instructor, error) {
	id, err := domain.ParseInstructorID(raw)
	if err != nil {
		return nil, asValidation(err)
	}
	instructor, err := s.store.Instructor(id)
	if err != nil {
		return nil, asNotFound(err, "instructor")
	}
	return instructor, nil
}
