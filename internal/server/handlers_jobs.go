package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/interview-prep/internal/server/middleware"
	"github.com/jonathan/interview-prep/internal/storage"
	"github.com/jonathan/interview-prep/internal/types"
)

func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	jobs, err := s.store.ListJobs(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, jobs)
}

func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var job types.Job
	if err := json.NewDecoder(r.Body).Decode(&job); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if job.Company == "" || job.Title == "" {
		writeError(w, &ErrValidation{Field: "company/title", Message: "required"})
		return
	}
	if job.Status != "" && !job.Status.IsValid() {
		writeError(w, &ErrValidation{Field: "status", Message: "unknown status"})
		return
	}
	job.UserID = userID

	created, err := s.store.CreateJob(r.Context(), job)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	userID, jobID, ok := userAndPathID(w, r)
	if !ok {
		return
	}

	job, err := s.store.GetJob(r.Context(), userID, jobID)
	if err != nil {
		writeError(w, err)
		return
	}
	if job == nil {
		writeError(w, &ErrNotFound{Resource: "job", ID: jobID.String()})
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func (s *Server) handleUpdateJob(w http.ResponseWriter, r *http.Request) {
	userID, jobID, ok := userAndPathID(w, r)
	if !ok {
		return
	}

	var job types.Job
	if err := json.NewDecoder(r.Body).Decode(&job); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if job.Status != "" && !job.Status.IsValid() {
		writeError(w, &ErrValidation{Field: "status", Message: "unknown status"})
		return
	}
	job.ID = jobID
	job.UserID = userID

	updated, err := s.store.UpdateJob(r.Context(), job)
	if err != nil {
		writeError(w, err)
		return
	}
	if updated == nil {
		writeError(w, &ErrNotFound{Resource: "job", ID: jobID.String()})
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteJob(w http.ResponseWriter, r *http.Request) {
	userID, jobID, ok := userAndPathID(w, r)
	if !ok {
		return
	}

	deleted, err := s.store.DeleteJob(r.Context(), userID, jobID)
	if err != nil {
		writeError(w, err)
		return
	}
	if !deleted {
		writeError(w, &ErrNotFound{Resource: "job", ID: jobID.String()})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleUploadCoverLetter stores a cover letter against a job and records the
// download URL on the job row.
func (s *Server) handleUploadCoverLetter(w http.ResponseWriter, r *http.Request) {
	userID, jobID, ok := userAndPathID(w, r)
	if !ok {
		return
	}
	if s.blobs == nil {
		http.Error(w, "File storage is not configured", http.StatusServiceUnavailable)
		return
	}

	job, err := s.store.GetJob(r.Context(), userID, jobID)
	if err != nil {
		writeError(w, err)
		return
	}
	if job == nil {
		writeError(w, &ErrNotFound{Resource: "job", ID: jobID.String()})
		return
	}

	data, filename, ok := readUpload(w, r, "cover_letter")
	if !ok {
		return
	}

	url, err := s.blobs.Upload(r.Context(), storage.ObjectKey(userID.String(), filename), data, "application/pdf")
	if err != nil {
		writeError(w, err)
		return
	}

	job.CoverLetterURL = url
	updated, err := s.store.UpdateJob(r.Context(), *job)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// userAndPathID resolves the authenticated user and the {id} path segment.
func userAndPathID(w http.ResponseWriter, r *http.Request) (userID, pathID uuid.UUID, ok bool) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return uuid.Nil, uuid.Nil, false
	}

	pathID, err = uuid.Parse(r.PathValue("id"))
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return uuid.Nil, uuid.Nil, false
	}
	return userID, pathID, true
}
