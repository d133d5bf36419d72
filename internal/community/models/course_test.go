package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finca/pkg/domain"
	dErrors "finca/pkg/domain-errors"
)

func newCourse(t *testing.T, max int) *Course {
	t.Helper()
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	course, err := NewCourse(domain.NewCourseID(), "Gardening", 50, max, start, start.AddDate(0, 2, 0))
	require.NoError(t, err)
	return course
}

func TestNewCourse(t *testing.T) {
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	t.Run("rejects end before start", func(t *testing.T) {
		_, err := NewCourse(domain.NewCourseID(), "Gardening", 50, 10, start, start.AddDate(0, 0, -1))
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	t.Run("accepts same-day start and end", func(t *testing.T) {
		_, err := NewCourse(domain.NewCourseID(), "Gardening", 50, 10, start, start)
		require.NoError(t, err)
	})

	t.Run("rejects non-positive capacity", func(t *testing.T) {
		_, err := NewCourse(domain.NewCourseID(), "Gardening", 50, 0, start, start)
		require.Error(t, err)
	})
}

func TestCourseEnrollment(t *testing.T) {
	t.Run("full course rejects new residents", func(t *testing.T) {
		course := newCourse(t, 1)
		require.NoError(t, course.Enroll("11111111A"))

		err := course.Enroll("22222222B")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeBusinessRule))
		assert.Len(t, course.Enrolled, 1)
	})

	t.Run("re-enrolling is a silent no-op, even when full", func(t *testing.T) {
		course := newCourse(t, 1)
		require.NoError(t, course.Enroll("11111111A"))
		require.NoError(t, course.Enroll("11111111A"))
		assert.Len(t, course.Enrolled, 1)
	})

	t.Run("enrollment preserves insertion order", func(t *testing.T) {
		course := newCourse(t, 3)
		require.NoError(t, course.Enroll("11111111A"))
		require.NoError(t, course.Enroll("22222222B"))
		require.NoError(t, course.Enroll("33333333C"))
		assert.Equal(t, []domain.ResidentID{"11111111A", "22222222B", "33333333C"}, course.Enrolled)
	})
}

func TestCourseCapacityChange(t *testing.T) {
	course := newCourse(t, 3)
	require.NoError(t, course.Enroll("11111111A"))
	require.NoError(t, course.Enroll("22222222B"))

	t.Run("cannot drop below current enrollment", func(t *testing.T) {
		err := course.SetMaxResidents(1)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeBusinessRule))
		assert.Equal(t, 3, course.MaxResidents)
	})

	t.Run("can shrink to current enrollment", func(t *testing.T) {
		require.NoError(t, course.SetMaxResidents(2))
		assert.Equal(t, 2, course.MaxResidents)
	})
}

func TestCourseDerivedDuration(t *testing.T) {
	course := newCourse(t, 5)
	assert.Equal(t, 0, course.TotalHours())

	instructor := domain.NewInstructorID()
	course.AddSubject(Subject{Name: "Soil", Hours: 12, InstructorID: instructor})
	course.AddSubject(Subject{Name: "Pruning", Hours: 8, InstructorID: instructor})
	assert.Equal(t, 20, course.TotalHours())
}
