package server

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/jonathan/interview-prep/internal/extraction"
	"github.com/jonathan/interview-prep/internal/merge"
	"github.com/jonathan/interview-prep/internal/server/middleware"
	"github.com/jonathan/interview-prep/internal/storage"
	"github.com/jonathan/interview-prep/internal/types"
)

// maxUploadBytes caps resume and cover letter uploads.
const maxUploadBytes = 10 << 20

// handleGetProfile returns the caller's profile. A user who has never saved
// one gets an empty profile, not a 404.
func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	profile, err := s.store.GetProfile(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	if profile == nil {
		profile = &types.Profile{UserID: userID.String()}
		profile.EnsureCollections()
	}

	writeJSON(w, http.StatusOK, profile)
}

// handleUpdateProfile replaces the caller's profile document.
func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var profile types.Profile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := s.store.UpsertProfile(r.Context(), userID, profile); err != nil {
		writeError(w, err)
		return
	}

	stored, err := s.store.GetProfile(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stored)
}

// handleImportResume runs the resume pipeline: extract text from the uploaded
// PDF, ask the gateway for structured fields, fill them into the current
// profile and persist the result. A gateway failure degrades to a no-op merge
// rather than failing the request; unreadable PDFs are reported to the user.
func (s *Server) handleImportResume(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	data, filename, ok := readUpload(w, r, "resume")
	if !ok {
		return
	}

	text := extraction.ExtractText(data)
	if extraction.IsExtractionError(text) {
		http.Error(w, text, http.StatusUnprocessableEntity)
		return
	}

	candidate, err := s.ai.ExtractResume(r.Context(), text)
	if err != nil {
		// Empty candidate merges as a no-op; the upload itself still succeeds.
		log.Printf("Resume extraction degraded for user %s: %v", userID, err)
	}

	current, err := s.store.GetProfile(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	if current == nil {
		current = &types.Profile{UserID: userID.String()}
		current.EnsureCollections()
	}

	merged := merge.FillProfile(*current, candidate)
	if err := s.store.UpsertProfile(r.Context(), userID, merged); err != nil {
		writeError(w, err)
		return
	}

	resumeURL := ""
	if s.blobs != nil {
		url, err := s.blobs.Upload(r.Context(), storage.ObjectKey(userID.String(), filename), data, "application/pdf")
		if err != nil {
			log.Printf("Resume blob upload failed for user %s: %v", userID, err)
		} else {
			resumeURL = url
		}
	}

	stored, err := s.store.GetProfile(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"profile":   stored,
		"resumeUrl": resumeURL,
	})
}

// handleUploadResume stores the raw resume file and returns its URL, without
// running extraction.
func (s *Server) handleUploadResume(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	if s.blobs == nil {
		http.Error(w, "File storage is not configured", http.StatusServiceUnavailable)
		return
	}

	data, filename, ok := readUpload(w, r, "resume")
	if !ok {
		return
	}

	url, err := s.blobs.Upload(r.Context(), storage.ObjectKey(userID.String(), filename), data, "application/pdf")
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}

// handleBeautifyProfile runs the enhancement call and applies the result over
// the stored profile. Unlike resume import this path may overwrite fields.
func (s *Server) handleBeautifyProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	current, err := s.store.GetProfile(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	if current == nil {
		http.Error(w, "No profile to enhance", http.StatusNotFound)
		return
	}

	enhanced, err := s.ai.BeautifyProfile(r.Context(), *current)
	if err != nil {
		// Nothing usable came back; the profile stays as it was.
		log.Printf("Profile enhancement failed for user %s: %v", userID, err)
		writeJSON(w, http.StatusOK, current)
		return
	}

	merged := merge.ApplyEnhancement(*current, enhanced)
	if err := s.store.UpsertProfile(r.Context(), userID, merged); err != nil {
		writeError(w, err)
		return
	}

	stored, err := s.store.GetProfile(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stored)
}

// readUpload pulls one file out of a multipart form, enforcing the size cap.
// It writes the error response itself and reports success via ok.
func readUpload(w http.ResponseWriter, r *http.Request, field string) (data []byte, filename string, ok bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "Invalid multipart form", http.StatusBadRequest)
		return nil, "", false
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		http.Error(w, "Missing file field: "+field, http.StatusBadRequest)
		return nil, "", false
	}
	defer file.Close()

	data, err = io.ReadAll(file)
	if err != nil {
		http.Error(w, "Failed to read upload", http.StatusBadRequest)
		return nil, "", false
	}
	return data, header.Filename, true
}
