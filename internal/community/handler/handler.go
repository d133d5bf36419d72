// Package handler exposes the community service over HTTP as JSON
// endpoints. It owns no business rules: it decodes requests, calls the
// façade and renders results or coded errors.
package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"finca/internal/community/service"
	"finca/pkg/domain"
	dErrors "finca/pkg/domain-errors"
	"finca/pkg/platform/httputil"
)

// Handler wires community endpoints to the service façade.
type Handler struct {
	service  *service.Service
	logger   *slog.Logger
	snapshot func() error
}

// New constructs a handler. snapshot persists the store on demand; pass nil
// to disable the endpoint.
func New(svc *service.Service, logger *slog.Logger, snapshot func() error) *Handler {
	return &Handler{service: svc, logger: logger, snapshot: snapshot}
}

// Register mounts every community endpoint on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/residents", h.handleRegisterResident)
	r.Get("/residents", h.handleListResidents)
	r.Get("/residents/{id}", h.handleFindResident)
	r.Put("/residents/{id}/contact", h.handleUpdateResidentContact)
	r.Get("/residents/{id}/visits/pending", h.handlePendingVisits)

	r.Post("/visits", h.handleCreateVisit)
	r.Get("/visits", h.handleListVisits)

	r.Post("/invoices", h.handleCreateInvoice)
	r.Get("/invoices", h.handleListInvoices)

	r.Post("/instructors", h.handleRegisterInstructor)
	r.Get("/instructors", h.handleListInstructors)
	r.Put("/instructors/{id}", h.handleUpdateInstructor)
	r.Delete("/instructors/{id}", h.handleDeleteInstructor)

	r.Post("/auditors", h.handleRegisterAuditor)
	r.Get("/auditors", h.handleListAuditors)
	r.Put("/auditors/{id}", h.handleUpdateAuditor)
	r.Delete("/auditors/{id}", h.handleDeleteAuditor)

	r.Post("/materials", h.handleRegisterMaterial)
	r.Get("/materials", h.handleListMaterials)
	r.Put("/materials/{id}", h.handleUpdateMaterial)
	r.Delete("/materials/{id}", h.handleDeleteMaterial)

	r.Post("/courses", h.handleCreateCourse)
	r.Get("/courses", h.handleListCourses)
	r.Put("/courses/{id}/capacity", h.handleSetCourseCapacity)
	r.Post("/courses/{id}/subjects", h.handleAddSubject)
	r.Put("/courses/{id}/subjects/{name}/instructor", h.handleReassignInstructor)
	r.Post("/courses/{id}/enrollments", h.handleEnroll)

	r.Post("/audits", h.handleCreateAudit)
	r.Get("/audits", h.handleListAudits)
	r.Post("/audits/{id}/visits", h.handleAssignVisits)
	r.Post("/audits/{id}/materials", h.handleAssignMaterial)
	r.Post("/audits/{id}/close", h.handleCloseAudit)

	r.Post("/snapshot", h.handleSnapshot)
}

// fail logs the failure and renders the coded error.
func (h *Handler) fail(r *http.Request, w http.ResponseWriter, err error) {
	h.logger.Error("request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"error", err,
	)
	httputil.WriteError(w, err)
}

// auditIDParam parses the integer audit id from the URL.
func auditIDParam(r *http.Request) (domain.AuditID, error) {
	raw := chi.URLParam(r, "id")
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, dErrors.Newf(dErrors.CodeValidation, "audit id %q must be an integer", raw)
	}
	return domain.AuditID(n), nil
}

func (h *Handler) handleRegisterResident(w http.ResponseWriter, r *http.Request) {
	req, err := httputil.Decode[RegisterResidentRequest](r)
	if err != nil {
		h.fail(r, w, err)
		return
	}
	resident, err := h.service.RegisterResident(req.NationalID, req.FullName, req.Address, req.PostalCode, req.City, req.Phone)
	if err != nil {
		h.fail(r, w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, resident)
}

func (h *Handler) handleListResidents(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, h.service.Residents())
}

func (h *Handler) handleFindResident(w http.ResponseWriter, r *http.Request) {
	resident, err := h.service.FindResident(chi.URLParam(r, "id"))
	if err != nil {
		h.fail(r, w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, resident)
}

func (h *Handler) handleUpdateResidentContact(w http.ResponseWriter, r *http.Request) {
	req, err := httputil.Decode[UpdateContactRequest](r)
	if err != nil {
		h.fail(r, w, err)
		return
	}
	resident, err := h.service.UpdateResidentContact(chi.URLParam(r, "id"), req.Address, req.PostalCode, req.City, req.Phone)
	if err != nil {
		h.fail(r, w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, resident)
}

func (h *Handler) handlePendingVisits(w http.ResponseWriter, r *http.Request) {
	visits, err := h.service.PendingVisits(chi.URLParam(r, "id"))
	if err != nil {
		h.fail(r, w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, visits)
}

func (h *Handler) handleCreateVisit(w http.ResponseWriter, r *http.Request) {
	req, err := httputil.Decode[CreateVisitRequest](r)
	if err != nil {
		h.fail(r, w, err)
		return
	}
	visit, err := h.service.CreateVisit(req.ResidentID, req.Date, req.Description, req.Amount, req.Administrator)
	if err != nil {
		h.fail(r, w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, visit)
}

func (h *Handler) handleListVisits(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, h.service.Visits())
}

func (h *Handler) handleCreateInvoice(w http.ResponseWriter, r *http.Request) {
	req, err := httputil.Decode[CreateInvoiceRequest](r)
	if err != nil {
		h.fail(r, w, err)
		return
	}
	details, err := h.service.CreateInvoice(req.ResidentID, req.Date)
	if err != nil {
		h.fail(r, w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, details)
}

func (h *Handler) handleListInvoices(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, h.service.Invoices())
}

func (h *Handler) handleRegisterInstructor(w http.ResponseWriter, r *http.Request) {
	req, err := httputil.Decode[InstructorRequest](r)
	if err != nil {
		h.fail(r, w, err)
		return
	}
	instructor, err := h.service.RegisterInstructor(req.Name, req.Surname, req.Address, req.Phone, req.Salary)
	if err != nil {
		h.fail(r, w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, instructor)
}

func (h *Handler) handleListInstructors(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, h.service.Instructors())
}

func (h *Handler) handleUpdateInstructor(w http.ResponseWriter, r *http.Request) {
	req, err := httputil.Decode[InstructorRequest](r)
	if err != nil {
		h.fail(r, w, err)
		return
	}
	instructor, err := h.service.UpdateInstructor(chi.URLParam(r, "id"), req.Name, req.Surname, req.Address, req.Phone, req.Salary)
	if err != nil {
		h.fail(r, w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, instructor)
}

func (h *Handler) handleDeleteInstructor(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteInstructor(chi.URLParam(r, "id")); err != nil {
		h.fail(r, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleRegisterAuditor(w http.ResponseWriter, r *http.Request) {
	req, err := httputil.Decode[AuditorRequest](r)
	if err != nil {
		h.fail(r, w, err)
		return
	}
	auditor, err := h.service.RegisterAuditor(req.Name, req.Surname, req.CompanyTaxID, req.CompanyName, req.CompanyAddress, req.Phone)
	if err != nil {
		h.fail(r, w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, auditor)
}

func (h *Handler) handleListAuditors(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, h.service.Auditors())
}

func (h *Handler) handleUpdateAuditor(w http.ResponseWriter, r *http.Request) {
	req, err := httputil.Decode[AuditorRequest](r)
	if err != nil {
		h.fail(r, w, err)
		return
	}
	auditor, err := h.service.UpdateAuditor(chi.URLParam(r, "id"), req.Name, req.Surname, req.CompanyTaxID, req.CompanyName, req.CompanyAddress, req.Phone)
	if err != nil {
		h.fail(r, w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, auditor)
}

func (h *Handler) handleDeleteAuditor(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteAuditor(chi.URLParam(r, "id")); err != nil {
		h.fail(r, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleRegisterMaterial(w http.ResponseWriter, r *http.Request) {
	req, err := httputil.Decode[MaterialRequest](r)
	if err != nil {
		h.fail(r, w, err)
		return
	}
	material, err := h.service.RegisterMaterial(req.Name, req.Price)
	if err != nil {
		h.fail(r, w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, material)
}

func (h *Handler) handleListMaterials(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, h.service.Materials())
}

func (h *Handler) handleUpdateMaterial(w http.ResponseWriter, r *http.Request) {
	req, err := httputil.Decode[MaterialRequest](r)
	if err != nil {
		h.fail(r, w, err)
		return
	}
	material, err := h.service.UpdateMaterial(chi.URLParam(r, "id"), req.Name, req.Price)
	if err != nil {
		h.fail(r, w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, material)
}

func (h *Handler) handleDeleteMaterial(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteMaterial(chi.URLParam(r, "id")); err != nil {
		h.fail(r, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleCreateCourse(w http.ResponseWriter, r *http.Request) {
	req, err := httputil.Decode[CreateCourseRequest](r)
	if err != nil {
		h.fail(r, w, err)
		return
	}
	course, err := h.service.CreateCourse(req.Name, req.Price, req.MaxResidents, req.StartDate, req.EndDate)
	if err != nil {
		h.fail(r, w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, course)
}

func (h *Handler) handleListCourses(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, h.service.Courses())
}

func (h *Handler) handleSetCourseCapacity(w http.ResponseWriter, r *http.Request) {
	req, err := httputil.Decode[CapacityRequest](r)
	if err != nil {
		h.fail(r, w, err)
		return
	}
	course, err := h.service.SetCourseCapacity(chi.URLParam(r, "id"), req.MaxResidents)
	if err != nil {
		h.fail(r, w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, course)
}

func (h *Handler) handleAddSubject(w http.ResponseWriter, r *http.Request) {
	req, err := httputil.Decode[AddSubjectRequest](r)
	if err != nil {
		h.fail(r, w, err)
		return
	}
	subject, err := h.service.AddSubjectToCourse(chi.URLParam(r, "id"), req.Name, req.Hours, req.InstructorID)
	if err != nil {
		h.fail(r, w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, subject)
}

func (h *Handler) handleReassignInstructor(w http.ResponseWriter, r *http.Request) {
	req, err := httputil.Decode[ReassignInstructorRequest](r)
	if err != nil {
		h.fail(r, w, err)
		return
	}
	subject, err := h.service.ReassignSubjectInstructor(chi.URLParam(r, "id"), chi.URLParam(r, "name"), req.InstructorID)
	if err != nil {
		h.fail(r, w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, subject)
}

func (h *Handler) handleEnroll(w http.ResponseWriter, r *http.Request) {
	req, err := httputil.Decode[EnrollRequest](r)
	if err != nil {
		h.fail(r, w, err)
		return
	}
	course, err := h.service.EnrollResidentInCourse(req.ResidentID, chi.URLParam(r, "id"))
	if err != nil {
		h.fail(r, w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, course)
}

func (h *Handler) handleCreateAudit(w http.ResponseWriter, r *http.Request) {
	req, err := httputil.Decode[CreateAuditRequest](r)
	if err != nil {
		h.fail(r, w, err)
		return
	}
	audit, err := h.service.CreateAudit(req.AuditorID, req.CreatedOn)
	if err != nil {
		h.fail(r, w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, audit)
}

func (h *Handler) handleListAudits(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, h.service.Audits())
}

func (h *Handler) handleAssignVisits(w http.ResponseWriter, r *http.Request) {
	id, err := auditIDParam(r)
	if err != nil {
		h.fail(r, w, err)
		return
	}
	req, err := httputil.Decode[AssignVisitsRequest](r)
	if err != nil {
		h.fail(r, w, err)
		return
	}
	audit, err := h.service.AssignVisitsToAudit(id, req.VisitIDs)
	if err != nil {
		h.fail(r, w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, audit)
}

func (h *Handler) handleAssignMaterial(w http.ResponseWriter, r *http.Request) {
	id, err := auditIDParam(r)
	if err != nil {
		h.fail(r, w, err)
		return
	}
	req, err := httputil.Decode[AssignMaterialRequest](r)
	if err != nil {
		h.fail(r, w, err)
		return
	}
	audit, err := h.service.AssignMaterialToAudit(id, req.MaterialID)
	if err != nil {
		h.fail(r, w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, audit)
}

func (h *Handler) handleCloseAudit(w http.ResponseWriter, r *http.Request) {
	id, err := auditIDParam(r)
	if err != nil {
		h.fail(r, w, err)
		return
	}
	req, err := httputil.Decode[CloseAuditRequest](r)
	if err != nil {
		h.fail(r, w, err)
		return
	}
	details, err := h.service.CloseAudit(id, req.EndDate)
	if err != nil {
		h.fail(r, w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, details)
}

func (h *Handler) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	if h.snapshot == nil {
		h.fail(r, w, dErrors.New(dErrors.CodeBusinessRule, "snapshots are not configured"))
		return
	}
	if err := h.snapshot(); err != nil {
		h.fail(r, w, dErrors.Wrap(err, dErrors.CodeInternal, "snapshot failed"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
