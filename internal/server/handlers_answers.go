package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/interview-prep/internal/server/middleware"
)

// handleListAnswers returns the caller's answer library, optionally filtered
// by job via ?job_id=.
func (s *Server) handleListAnswers(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if jobParam := r.URL.Query().Get("job_id"); jobParam != "" {
		jobID, err := uuid.Parse(jobParam)
		if err != nil {
			http.Error(w, "Invalid job_id", http.StatusBadRequest)
			return
		}
		answers, err := s.store.ListAnswersByJob(r.Context(), userID, jobID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, answers)
		return
	}

	answers, err := s.store.ListAnswers(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, answers)
}

type updateAnswerRequest struct {
	AnswerText *string  `json:"answerText,omitempty"`
	Feedback   *string  `json:"feedback,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	IsFavorite *bool    `json:"isFavorite,omitempty"`
}

// handleUpdateAnswer patches an answer's mutable fields. Absent fields keep
// their stored values.
func (s *Server) handleUpdateAnswer(w http.ResponseWriter, r *http.Request) {
	userID, answerID, ok := userAndPathID(w, r)
	if !ok {
		return
	}

	var req updateAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	answer, err := s.store.GetAnswer(r.Context(), userID, answerID)
	if err != nil {
		writeError(w, err)
		return
	}
	if answer == nil {
		writeError(w, &ErrNotFound{Resource: "answer", ID: answerID.String()})
		return
	}

	if req.AnswerText != nil {
		answer.AnswerText = *req.AnswerText
	}
	if req.Feedback != nil {
		answer.Feedback = *req.Feedback
	}
	if req.Tags != nil {
		answer.Tags = req.Tags
	}
	if req.IsFavorite != nil {
		answer.IsFavorite = *req.IsFavorite
	}

	updated, err := s.store.UpdateAnswer(r.Context(), *answer)
	if err != nil {
		writeError(w, err)
		return
	}
	if updated == nil {
		writeError(w, &ErrNotFound{Resource: "answer", ID: answerID.String()})
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteAnswer(w http.ResponseWriter, r *http.Request) {
	userID, answerID, ok := userAndPathID(w, r)
	if !ok {
		return
	}

	deleted, err := s.store.DeleteAnswer(r.Context(), userID, answerID)
	if err != nil {
		writeError(w, err)
		return
	}
	if !deleted {
		writeError(w, &ErrNotFound{Resource: "answer", ID: answerID.String()})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
