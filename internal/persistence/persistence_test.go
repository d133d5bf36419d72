package persistence

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finca/internal/community/service"
	"finca/internal/community/store"
	"finca/pkg/domain"
)

// buildPopulatedStore drives the façade through every workflow so the
// snapshot covers frozen and live audits, paid and pending visits, and
// advanced counters.
func buildPopulatedStore(t *testing.T) *store.Store {
	t.Helper()
	st := store.New()
	svc := service.New(st)
	date := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	_, err := svc.RegisterResident("12345678A", "Ana Ruiz", "Calle Mayor 1", "28001", "Madrid", "600112233")
	require.NoError(t, err)
	_, err = svc.CreateVisit("12345678A", date, "pipe repair", 30, "Carlos Vega")
	require.NoError(t, err)
	_, err = svc.CreateVisit("12345678A", date, "boiler check", 45, "Carlos Vega")
	require.NoError(t, err)
	_, err = svc.CreateInvoice("12345678A", date.AddDate(0, 0, 5))
	require.NoError(t, err)
	// A pending visit survives alongside the invoiced ones.
	_, err = svc.CreateVisit("12345678A", date, "follow-up", 10, "Carlos Vega")
	require.NoError(t, err)

	instructor, err := svc.RegisterInstructor("Marta", "Sanz", "", "", 1500)
	require.NoError(t, err)
	course, err := svc.CreateCourse("Gardening", 45, 10, date, date.AddDate(0, 2, 0))
	require.NoError(t, err)
	_, err = svc.AddSubjectToCourse(course.ID.String(), "Soil", 12, instructor.ID.String())
	require.NoError(t, err)
	_, err = svc.EnrollResidentInCourse("12345678A", course.ID.String())
	require.NoError(t, err)

	auditor, err := svc.RegisterAuditor("Elena", "Mora", "B12345678", "Auditores SL", "", "")
	require.NoError(t, err)
	closedAudit, err := svc.CreateAudit(auditor.ID.String(), date)
	require.NoError(t, err)
	material, err := svc.RegisterMaterial("Ladder", 75)
	require.NoError(t, err)
	_, err = svc.AssignVisitsToAudit(closedAudit.ID, []domain.VisitID{1})
	require.NoError(t, err)
	_, err = svc.AssignMaterialToAudit(closedAudit.ID, material.ID.String())
	require.NoError(t, err)
	_, err = svc.CloseAudit(closedAudit.ID, date.AddDate(0, 1, 0))
	require.NoError(t, err)
	// A second audit stays open so the snapshot holds both states.
	_, err = svc.CreateAudit(auditor.ID.String(), date)
	require.NoError(t, err)

	return st
}

// Restoring a snapshot must produce a store observationally identical to the
// original: same entities, same derived values, same counters.
func TestRoundTrip(t *testing.T) {
	st := buildPopulatedStore(t)
	path := filepath.Join(t.TempDir(), "community.json")

	require.NoError(t, Save(path, st))
	restored, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, st.NextVisitID, restored.NextVisitID)
	assert.Equal(t, st.NextInvoiceID, restored.NextInvoiceID)
	assert.Equal(t, st.NextAuditID, restored.NextAuditID)
	assert.Equal(t, st.ResidentOrder, restored.ResidentOrder)
	assert.Equal(t, st.Residents, restored.Residents)
	assert.Equal(t, st.Visits, restored.Visits)
	assert.Equal(t, st.Invoices, restored.Invoices)
	assert.Equal(t, st.Courses, restored.Courses)
	assert.Equal(t, st.Instructors, restored.Instructors)
	assert.Equal(t, st.Auditors, restored.Auditors)
	assert.Equal(t, st.Materials, restored.Materials)
	assert.Equal(t, st.Audits, restored.Audits)

	// Derived values behave identically through a restored façade.
	svc := service.New(restored)
	invoices := svc.Invoices()
	require.Len(t, invoices, 1)
	assert.InDelta(t, 75.0, invoices[0].Total, 1e-9)

	audits := svc.Audits()
	require.Len(t, audits, 2)
	assert.True(t, audits[0].Compensation.Frozen)
	assert.InDelta(t, 6.0, audits[0].Compensation.Amount, 1e-9)
	assert.False(t, audits[1].Compensation.Frozen)
}

// Ids allocated before a save are never reused after a restore.
func TestCountersSurviveRestore(t *testing.T) {
	st := buildPopulatedStore(t)
	path := filepath.Join(t.TempDir(), "community.json")
	require.NoError(t, Save(path, st))

	restored, err := Load(path)
	require.NoError(t, err)
	svc := service.New(restored)

	v, err := svc.CreateVisit("12345678A", time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), "new visit", 5, "Carlos Vega")
	require.NoError(t, err)
	assert.Equal(t, domain.VisitID(4), v.ID)
}

func TestLoadMissingFileStartsFresh(t *testing.T) {
	st, err := Load(filepath.Join(t.TempDir(), "does-not-exist.json"))
	require.NoError(t, err)
	assert.Empty(t, st.Residents)
	assert.Equal(t, domain.VisitID(1), st.NextVisitID)
}

func TestLoadRejectsCorruptSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "community.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

// Export snapshots through the façade's exclusion, so a save sees a
// consistent view.
func TestExportThroughService(t *testing.T) {
	st := buildPopulatedStore(t)
	svc := service.New(st)
	path := filepath.Join(t.TempDir(), "community.json")

	require.NoError(t, svc.Export(func(s *store.Store) error {
		return Save(path, s)
	}))

	restored, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, st.NextAuditID, restored.NextAuditID)
}
