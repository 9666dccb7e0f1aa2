package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/blockedby/hiretrack/internal/models"
	"github.com/blockedby/hiretrack/internal/validation"
)

// JobRolesHandler handles job-role-related HTTP requests.
type JobRolesHandler struct {
	svc JobRoleService
}

// NewJobRolesHandler creates a new JobRolesHandler.
func NewJobRolesHandler(svc JobRoleService) *JobRolesHandler {
	return &JobRolesHandler{svc: svc}
}

// List returns job roles with optional search and pagination.
// GET /api/job-roles?search=&limit=&offset=
func (h *JobRolesHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	search := r.URL.Query().Get("search")

	list, err := h.svc.GetAllJobRoles(r.Context(), limit, offset, search)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, list, "")
}

// GetByID returns a single job role.
// GET /api/job-roles/{id}
func (h *JobRolesHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	job, err := h.svc.GetJobRoleByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if job == nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(envelope{Success: false, Error: "Job role not found"})
		return
	}

	writeJSON(w, http.StatusOK, job, "")
}

// ListByStatus returns job roles filtered by status.
// GET /api/job-roles/status/{status}
func (h *JobRolesHandler) ListByStatus(w http.ResponseWriter, r *http.Request) {
	status := models.JobRoleStatus(chi.URLParam(r, "status"))

	jobs, err := h.svc.GetJobRolesByStatus(r.Context(), status)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, jobs, "")
}

// Create creates a new job role.
// POST /api/job-roles
func (h *JobRolesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input validation.CreateJobRoleInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeBadRequest(w, "invalid request payload")
		return
	}

	job, err := h.svc.CreateJobRole(r.Context(), &input)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, job, "Job role created successfully")
}

// Update applies a partial update to a job role.
// PUT /api/job-roles/{id}
func (h *JobRolesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	var input validation.UpdateJobRoleInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeBadRequest(w, "invalid request payload")
		return
	}

	job, err := h.svc.UpdateJobRole(r.Context(), id, &input)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, job, "Job role updated successfully")
}

// Delete removes a job role and its applications.
// DELETE /api/job-roles/{id}?force=true
func (h *JobRolesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	force := r.URL.Query().Get("force") == "true"

	result, err := h.svc.DeleteJobRole(r.Context(), id, force)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result, "Job role deleted successfully")
}

// parseID extracts a positive integer URL parameter, answering 400 when it
// does not parse.
func parseID(w http.ResponseWriter, r *http.Request, param string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil {
		writeBadRequest(w, "invalid "+param)
		return 0, false
	}
	return id, true
}
