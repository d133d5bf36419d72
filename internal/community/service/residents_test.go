package service

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"finca/internal/community/store"
	"finca/pkg/domain"
	dErrors "finca/pkg/domain-errors"
)

type ResidentSuite struct {
	suite.Suite
	service *Service
}

func TestResidentSuite(t *testing.T) {
	suite.Run(t, new(ResidentSuite))
}

func (s *ResidentSuite) SetupTest() {
	s.service = New(store.New())
}

func (s *ResidentSuite) TestRegistration() {
	s.Run("normalizes the national id to upper case", func() {
		r, err := s.service.RegisterResident("12345678a", "Ana Ruiz", "Calle Mayor 1", "28001", "Madrid", "")
		s.Require().NoError(err)
		s.Equal(domain.ResidentID("12345678A"), r.ID)
	})

	s.Run("re-registering the same id in any case is a conflict", func() {
		before := len(s.service.Residents())

		_, err := s.service.RegisterResident("12345678A", "Otro Nombre", "", "", "", "")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))

		_, err = s.service.RegisterResident(" 12345678a ", "Otro Nombre", "", "", "", "")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))

		s.Len(s.service.Residents(), before)
	})
}

// Scenario: malformed ids and phones are validation errors; an empty phone is
// fine because the field is optional.
func (s *ResidentSuite) TestRegistrationValidation() {
	s.Run("seven-digit id fails", func() {
		_, err := s.service.RegisterResident("1234567A", "Ana Ruiz", "", "", "", "")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("short phone fails", func() {
		_, err := s.service.RegisterResident("22222222B", "Ana Ruiz", "", "", "", "12345")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("empty phone succeeds", func() {
		r, err := s.service.RegisterResident("22222222B", "Ana Ruiz", "", "", "", "")
		s.Require().NoError(err)
		s.Empty(r.Phone)
	})

	s.Run("empty full name fails", func() {
		_, err := s.service.RegisterResident("33333333C", "   ", "", "", "", "")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func (s *ResidentSuite) TestFindResident() {
	_, err := s.service.RegisterResident("12345678A", "Ana Ruiz", "", "", "", "")
	s.Require().NoError(err)

	s.Run("finds case-insensitively", func() {
		r, err := s.service.FindResident("12345678a")
		s.Require().NoError(err)
		s.Equal("Ana Ruiz", r.FullName)
	})

	s.Run("unknown id is not found", func() {
		_, err := s.service.FindResident("99999999Z")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("malformed id is a validation error", func() {
		_, err := s.service.FindResident("nope")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func (s *ResidentSuite) TestUpdateContact() {
	_, err := s.service.RegisterResident("12345678A", "Ana Ruiz", "Calle Mayor 1", "28001", "Madrid", "")
	s.Require().NoError(err)

	s.Run("updates mutable fields only", func() {
		r, err := s.service.UpdateResidentContact("12345678A", "Av. Sol 2", "28002", "Getafe", "600112233")
		s.Require().NoError(err)
		s.Equal("Av. Sol 2", r.Address)
		s.Equal("600112233", r.Phone)
		s.Equal("Ana Ruiz", r.FullName)
	})

	s.Run("invalid phone leaves the resident unchanged", func() {
		_, err := s.service.UpdateResidentContact("12345678A", "Otra 3", "28003", "Madrid", "12")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))

		r, err := s.service.FindResident("12345678A")
		s.Require().NoError(err)
		s.Equal("Av. Sol 2", r.Address)
	})
}

// Returned slices are snapshots; mutating them must not reach the store.
func (s *ResidentSuite) TestDefensiveCopies() {
	_, err := s.service.RegisterResident("12345678A", "Ana Ruiz", "", "", "", "")
	s.Require().NoError(err)

	residents := s.service.Residents()
	s.Require().Len(residents, 1)
	residents[0].FullName = "Hacked"

	again, err := s.service.FindResident("12345678A")
	s.Require().NoError(err)
	s.Equal("Ana Ruiz", again.FullName)
}
