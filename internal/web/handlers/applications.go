package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/blockedby/hiretrack/internal/service"
	"github.com/blockedby/hiretrack/internal/validation"
)

// ApplicationsHandler handles application-related HTTP requests.
type ApplicationsHandler struct {
	svc ApplicationService
}

// NewApplicationsHandler creates a new ApplicationsHandler.
func NewApplicationsHandler(svc ApplicationService) *ApplicationsHandler {
	return &ApplicationsHandler{svc: svc}
}

// createApplicationPayload is the JSON body for creating an application.
// The CV file, when present, was already stored by the upload middleware.
type createApplicationPayload struct {
	JobRoleID int64              `json:"jobRoleId"`
	UserID    int64              `json:"userId"`
	CVText    string             `json:"cvText,omitempty"`
	CVFile    *validation.CVFile `json:"cvFile,omitempty"`
}

// Create submits a new application.
// POST /api/applications
func (h *ApplicationsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload createApplicationPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeBadRequest(w, "invalid request payload")
		return
	}

	app, err := h.svc.CreateApplication(r.Context(), &service.CreateApplicationInput{
		JobRoleID: payload.JobRoleID,
		UserID:    payload.UserID,
		CVText:    payload.CVText,
		CVFile:    payload.CVFile,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, app, "Application submitted successfully")
}

// GetByID returns a single application.
// GET /api/applications/{id}
func (h *ApplicationsHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	app, err := h.svc.GetApplicationByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if app == nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(envelope{Success: false, Error: "Application not found"})
		return
	}

	writeJSON(w, http.StatusOK, app, "")
}

// ListByJobRole returns applications for a job role.
// GET /api/job-roles/{id}/applications
func (h *ApplicationsHandler) ListByJobRole(w http.ResponseWriter, r *http.Request) {
	jobRoleID, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	apps, err := h.svc.GetApplicationsByJobRole(r.Context(), jobRoleID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, apps, "")
}

// ListByUser returns applications submitted by a user.
// GET /api/applications/user/{userId}
func (h *ApplicationsHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseID(w, r, "userId")
	if !ok {
		return
	}

	apps, err := h.svc.GetApplicationsByUserID(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, apps, "")
}

// Hire marks an applicant hired.
// PUT /api/applications/{id}/hire
func (h *ApplicationsHandler) Hire(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	result, err := h.svc.HireApplicant(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result, "Applicant hired successfully")
}

// Reject marks an applicant rejected.
// PUT /api/applications/{id}/reject
func (h *ApplicationsHandler) Reject(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	app, err := h.svc.RejectApplicant(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, app, "Applicant rejected")
}

// Delete removes an application along with its stored CV.
// DELETE /api/applications/{id}
func (h *ApplicationsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	app, err := h.svc.DeleteApplication(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, app, "Application deleted")
}
