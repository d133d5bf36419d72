package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finca/internal/community/service"
	"finca/internal/community/store"
)

func newRouter(t *testing.T, snapshot func() error) http.Handler {
	t.Helper()
	svc := service.New(store.New())
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	h := New(svc, logger, snapshot)
	r := chi.NewRouter()
	h.Register(r)
	return r
}

func doJSON(t *testing.T, router http.Handler, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func registerResident(t *testing.T, router http.Handler, nationalID string) {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/residents", map[string]string{
		"national_id": nationalID,
		"full_name":   "Ana Ruiz",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
}

// Each error kind renders as its own status: validation 400, not found 404,
// conflict 409, business rule 422.
func TestErrorStatusMapping(t *testing.T) {
	router := newRouter(t, nil)

	t.Run("malformed national id is 400", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/residents", map[string]string{
			"national_id": "not-a-dni",
			"full_name":   "Ana Ruiz",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown resident is 404", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/residents/99999999Z", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("duplicate national id is 409", func(t *testing.T) {
		registerResident(t, router, "12345678A")
		rec := doJSON(t, router, http.MethodPost, "/residents", map[string]string{
			"national_id": "12345678a",
			"full_name":   "Otra Persona",
		})
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("invoice with no pending visits is 422", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/invoices", map[string]any{
			"resident_id": "12345678A",
			"date":        "2026-04-01T00:00:00Z",
		})
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		var body map[string]string
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, "business_rule", body["error"])
		assert.NotEmpty(t, body["error_description"])
	})

	t.Run("garbage body is 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/visits", bytes.NewBufferString("{not json"))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("non-integer audit id is 400", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/audits/abc/close", map[string]string{
			"end_date": "2026-05-01T00:00:00Z",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

// Happy path over HTTP: two visits consolidate into one invoice with the
// summed total, and the pending list empties.
func TestInvoiceFlow(t *testing.T) {
	router := newRouter(t, nil)
	registerResident(t, router, "12345678A")

	for _, amount := range []float64{30, 45} {
		rec := doJSON(t, router, http.MethodPost, "/visits", map[string]any{
			"resident_id":   "12345678A",
			"date":          "2026-03-01T00:00:00Z",
			"description":   "repair",
			"amount":        amount,
			"administrator": "Carlos Vega",
		})
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := doJSON(t, router, http.MethodPost, "/invoices", map[string]any{
		"resident_id": "12345678A",
		"date":        "2026-04-01T00:00:00Z",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		Invoice struct {
			ID       int   `json:"id"`
			VisitIDs []int `json:"visit_ids"`
		} `json:"invoice"`
		Total float64 `json:"total"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	assert.Equal(t, 1, created.Invoice.ID)
	assert.Len(t, created.Invoice.VisitIDs, 2)
	assert.InDelta(t, 75.0, created.Total, 1e-9)

	pending := doJSON(t, router, http.MethodGet, "/residents/12345678A/visits/pending", nil)
	require.Equal(t, http.StatusOK, pending.Code)
	var visits []json.RawMessage
	require.NoError(t, json.NewDecoder(pending.Body).Decode(&visits))
	assert.Empty(t, visits)
}

// The audit lifecycle works end to end with integer ids in the path.
func TestAuditFlow(t *testing.T) {
	router := newRouter(t, nil)
	registerResident(t, router, "12345678A")

	rec := doJSON(t, router, http.MethodPost, "/visits", map[string]any{
		"resident_id":   "12345678A",
		"date":          "2026-03-01T00:00:00Z",
		"description":   "inspection",
		"amount":        100.0,
		"administrator": "Carlos Vega",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/auditors", map[string]string{
		"name":    "Elena",
		"surname": "Mora",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var auditor struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&auditor))

	rec = doJSON(t, router, http.MethodPost, "/audits", map[string]any{
		"auditor_id": auditor.ID,
		"created_on": "2026-03-01T00:00:00Z",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/audits/1/visits", map[string]any{
		"visit_ids": []int{1},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/audits/1/close", map[string]string{
		"end_date": "2026-04-01T00:00:00Z",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var closed struct {
		Compensation struct {
			Amount float64 `json:"amount"`
			Frozen bool    `json:"frozen"`
		} `json:"compensation"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&closed))
	assert.True(t, closed.Compensation.Frozen)
	assert.InDelta(t, 20.0, closed.Compensation.Amount, 1e-9)
}

func TestSnapshotEndpoint(t *testing.T) {
	t.Run("saves on demand", func(t *testing.T) {
		calls := 0
		router := newRouter(t, func() error {
			calls++
			return nil
		})
		rec := doJSON(t, router, http.MethodPost, "/snapshot", nil)
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, 1, calls)
	})

	t.Run("save failure is 500 without details", func(t *testing.T) {
		router := newRouter(t, func() error {
			return errors.New("disk full")
		})
		rec := doJSON(t, router, http.MethodPost, "/snapshot", nil)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)

		var body map[string]string
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, "internal_error", body["error"])
		assert.Empty(t, body["error_description"])
	})
}
