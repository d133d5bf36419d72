// Package service implements the community façade: the single entry point
// for every mutation and query over the domain store. It owns all validation
// and invariant enforcement; every operation validates completely before
// mutating anything, so a failed call never leaves partial state behind.
package service

import (
	"errors"
	"io"
	"log/slog"
	"sync"

	"finca/internal/community/metrics"
	"finca/internal/community/models"
	"finca/internal/community/store"
	"finca/pkg/domain"
	dErrors "finca/pkg/domain-errors"
	"finca/pkg/platform/sentinel"
)

// Service orchestrates residents, billing, training and audit engagements.
// Operations are synchronous and guarded by one coarse lock: cross-entity
// invariants (course capacity, invoice consolidation) need consistent reads
// across collections, and call latency is dominated by in-memory work.
type Service struct {
	mu      sync.Mutex
	store   *store.Store
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// New constructs a Service over the given store.
func New(st *store.Store, opts ...Option) *Service {
	s := &Service{
		store:  st,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Export runs fn against the live store under the façade's exclusion. The
// persistence adapter uses it to snapshot a consistent view; the façade
// itself performs no I/O.
func (s *Service) Export(fn func(*store.Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.store)
}

// Restore replaces the active store wholesale with a previously captured
// snapshot.
func (s *Service) Restore(st *store.Store) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st.Normalize()
	s.store = st
}

// asValidation converts invariant violations and parse failures into the
// caller-correctable validation error kind. Other codes pass through.
func asValidation(err error) error {
	if dErrors.HasCode(err, dErrors.CodeInvariantViolation) || dErrors.HasCode(err, dErrors.CodeInvalidInput) {
		return dErrors.New(dErrors.CodeValidation, err.Error())
	}
	return err
}

// asNotFound translates the store's not-found sentinel into a coded error
// naming the entity kind.
func asNotFound(err error, what string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.Newf(dErrors.CodeNotFound, "%s not found", what)
	}
	return err
}

// pendingVisits returns a resident's unpaid visits in creation order.
// Callers hold the lock.
func (s *Service) pendingVisits(id domain.ResidentID) []*models.Visit {
	var pending []*models.Visit
	for _, v := range s.store.Visits {
		if v.ResidentID == id && !v.IsPaid() {
			pending = append(pending, v)
		}
	}
	return pending
}

// visitTotal sums the amounts of the referenced visits. Callers hold the
// lock.
func (s *Service) visitTotal(ids []domain.VisitID) float64 {
	total := 0.0
	for _, id := range ids {
		if v, err := s.store.Visit(id); err == nil {
			total += v.Amount
		}
	}
	return total
}

func (s *Service) logInfo(msg string, args ...any) {
	s.logger.Info(msg, args...)
}

func (s *Service) countResidentRegistered() {
	if s.metrics != nil {
		s.metrics.ResidentsRegistered.Inc()
	}
}

func (s *Service) countVisitCreated() {
	if s.metrics != nil {
		s.metrics.VisitsCreated.Inc()
	}
}

func (s *Service) countInvoiceIssued() {
	if s.metrics != nil {
		s.metrics.InvoicesIssued.Inc()
	}
}

func (s *Service) countAuditClosed() {
	if s.metrics != nil {
		s.metrics.AuditsClosed.Inc()
	}
}
