package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/interview-prep/internal/server/middleware"
	"github.com/jonathan/interview-prep/internal/session"
	"github.com/jonathan/interview-prep/internal/types"
)

// sessionView is the API shape for a practice session: the stored fields plus
// the derived state and the question under the cursor.
type sessionView struct {
	*types.PracticeSession
	State           types.SessionState `json:"state"`
	CurrentQuestion *types.Question    `json:"currentQuestion,omitempty"`
	TotalQuestions  int                `json:"totalQuestions"`
}

func newSessionView(s *types.PracticeSession) sessionView {
	return sessionView{
		PracticeSession: s,
		State:           s.State(),
		CurrentQuestion: s.CurrentQuestion(),
		TotalQuestions:  len(s.Questions),
	}
}

type createSessionRequest struct {
	JobID      *uuid.UUID               `json:"jobId,omitempty"`
	Categories []types.QuestionCategory `json:"categories"`
}

// handleCreateSession creates a session and runs generation before replying,
// so the client always receives an active session.
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	sess, err := s.sessions.Start(r.Context(), userID, req.JobID, req.Categories)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, newSessionView(sess))
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	sessions, err := s.store.ListSessions(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	views := make([]sessionView, len(sessions))
	for i := range sessions {
		views[i] = newSessionView(&sessions[i])
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	userID, sessionID, ok := userAndPathID(w, r)
	if !ok {
		return
	}

	sess, err := s.sessions.Load(r.Context(), userID, sessionID)
	if err != nil {
		writeSessionError(w, err, sessionID)
		return
	}
	writeJSON(w, http.StatusOK, newSessionView(sess))
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	userID, sessionID, ok := userAndPathID(w, r)
	if !ok {
		return
	}

	deleted, err := s.store.DeleteSession(r.Context(), userID, sessionID)
	if err != nil {
		writeError(w, err)
		return
	}
	if !deleted {
		writeError(w, &ErrNotFound{Resource: "session", ID: sessionID.String()})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleNextQuestion advances the cursor, or reports completion once the list
// is exhausted.
func (s *Server) handleNextQuestion(w http.ResponseWriter, r *http.Request) {
	userID, sessionID, ok := userAndPathID(w, r)
	if !ok {
		return
	}

	res, err := s.sessions.Next(r.Context(), userID, sessionID)
	if err != nil {
		writeSessionError(w, err, sessionID)
		return
	}

	view := newSessionView(res.Session)
	if res.Completed {
		view.State = types.SessionCompleted
		view.CurrentQuestion = nil
	}
	writeJSON(w, http.StatusOK, view)
}

type saveAnswerRequest struct {
	AnswerText string   `json:"answerText"`
	Tags       []string `json:"tags,omitempty"`
}

func (s *Server) handleSaveAnswer(w http.ResponseWriter, r *http.Request) {
	userID, sessionID, ok := userAndPathID(w, r)
	if !ok {
		return
	}

	var req saveAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.AnswerText == "" {
		writeError(w, &ErrValidation{Field: "answerText", Message: "required"})
		return
	}

	answer, err := s.sessions.SaveAnswer(r.Context(), userID, sessionID, req.AnswerText, req.Tags)
	if err != nil {
		writeSessionError(w, err, sessionID)
		return
	}
	writeJSON(w, http.StatusCreated, answer)
}

type feedbackRequest struct {
	AnswerText string `json:"answerText"`
}

type feedbackResponse struct {
	Feedback      string   `json:"feedback"`
	SuggestedTags []string `json:"suggestedTags"`
}

// handleFeedback critiques an answer to the session's current question and
// suggests tags for saving it. Both calls degrade independently: feedback
// falls back to a stock apology, tags to an empty list.
func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	userID, sessionID, ok := userAndPathID(w, r)
	if !ok {
		return
	}

	var req feedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.AnswerText == "" {
		writeError(w, &ErrValidation{Field: "answerText", Message: "required"})
		return
	}

	sess, err := s.sessions.Load(r.Context(), userID, sessionID)
	if err != nil {
		writeSessionError(w, err, sessionID)
		return
	}
	q := sess.CurrentQuestion()
	if q == nil {
		writeError(w, &ErrValidation{Field: "session", Message: "no current question"})
		return
	}

	feedback, err := s.sessions.Feedback(r.Context(), userID, sessionID, req.AnswerText)
	if err != nil {
		log.Printf("Feedback degraded for session %s: %v", sessionID, err)
	}

	var job *types.Job
	if sess.JobID != nil {
		if job, err = s.store.GetJob(r.Context(), userID, *sess.JobID); err != nil {
			log.Printf("Job lookup for session %s failed, suggesting tags without job context: %v", sessionID, err)
		}
	}

	tags, err := s.ai.SuggestTags(r.Context(), q.Text, req.AnswerText, job)
	if err != nil {
		log.Printf("Tag suggestion degraded for session %s: %v", sessionID, err)
		tags = []string{}
	}

	writeJSON(w, http.StatusOK, feedbackResponse{Feedback: feedback, SuggestedTags: tags})
}

func writeSessionError(w http.ResponseWriter, err error, sessionID uuid.UUID) {
	if errors.Is(err, session.ErrSessionNotFound) {
		writeError(w, &ErrNotFound{Resource: "session", ID: sessionID.String()})
		return
	}
	writeError(w, err)
}
