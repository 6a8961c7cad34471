package server

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/jonathan/interview-prep/internal/session"
	"github.com/jonathan/interview-prep/internal/types"
)

// fakeDataStore is an in-memory DataStore for handler tests.
type fakeDataStore struct {
	profiles map[uuid.UUID]*types.Profile
	jobs     map[uuid.UUID]*types.Job
	answers  map[uuid.UUID]*types.Answer
	sessions map[uuid.UUID]*types.PracticeSession
	failWith error
}

func newFakeDataStore() *fakeDataStore {
	return &fakeDataStore{
		profiles: map[uuid.UUID]*types.Profile{},
		jobs:     map[uuid.UUID]*types.Job{},
		answers:  map[uuid.UUID]*types.Answer{},
		sessions: map[uuid.UUID]*types.PracticeSession{},
	}
}

func (f *fakeDataStore) GetProfile(_ context.Context, userID uuid.UUID) (*types.Profile, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	p, ok := f.profiles[userID]
	if !ok {
		return nil, nil
	}
	copied := *p
	return &copied, nil
}

func (f *fakeDataStore) UpsertProfile(_ context.Context, userID uuid.UUID, profile types.Profile) error {
	if f.failWith != nil {
		return f.failWith
	}
	profile.UserID = userID.String()
	profile.EnsureCollections()
	f.profiles[userID] = &profile
	return nil
}

func (f *fakeDataStore) CreateJob(_ context.Context, job types.Job) (*types.Job, error) {
	job.ID = uuid.New()
	if job.Status == "" {
		job.Status = types.JobDrafted
	}
	f.jobs[job.ID] = &job
	return &job, nil
}

func (f *fakeDataStore) GetJob(_ context.Context, userID, jobID uuid.UUID) (*types.Job, error) {
	j, ok := f.jobs[jobID]
	if !ok || j.UserID != userID {
		return nil, nil
	}
	copied := *j
	return &copied, nil
}

func (f *fakeDataStore) ListJobs(_ context.Context, userID uuid.UUID) ([]types.Job, error) {
	jobs := []types.Job{}
	for _, j := range f.jobs {
		if j.UserID == userID {
			jobs = append(jobs, *j)
		}
	}
	return jobs, nil
}

func (f *fakeDataStore) UpdateJob(_ context.Context, job types.Job) (*types.Job, error) {
	existing, ok := f.jobs[job.ID]
	if !ok || existing.UserID != job.UserID {
		return nil, nil
	}
	f.jobs[job.ID] = &job
	return &job, nil
}

func (f *fakeDataStore) DeleteJob(_ context.Context, userID, jobID uuid.UUID) (bool, error) {
	j, ok := f.jobs[jobID]
	if !ok || j.UserID != userID {
		return false, nil
	}
	delete(f.jobs, jobID)
	return true, nil
}

func (f *fakeDataStore) ListAnswers(_ context.Context, userID uuid.UUID) ([]types.Answer, error) {
	answers := []types.Answer{}
	for _, a := range f.answers {
		if a.UserID == userID {
			answers = append(answers, *a)
		}
	}
	return answers, nil
}

func (f *fakeDataStore) ListAnswersByJob(_ context.Context, userID, jobID uuid.UUID) ([]types.Answer, error) {
	answers := []types.Answer{}
	for _, a := range f.answers {
		if a.UserID == userID && a.JobID != nil && *a.JobID == jobID {
			answers = append(answers, *a)
		}
	}
	return answers, nil
}

func (f *fakeDataStore) GetAnswer(_ context.Context, userID, answerID uuid.UUID) (*types.Answer, error) {
	a, ok := f.answers[answerID]
	if !ok || a.UserID != userID {
		return nil, nil
	}
	copied := *a
	return &copied, nil
}

func (f *fakeDataStore) UpdateAnswer(_ context.Context, answer types.Answer) (*types.Answer, error) {
	existing, ok := f.answers[answer.ID]
	if !ok || existing.UserID != answer.UserID {
		return nil, nil
	}
	answer.NormalizeTags()
	f.answers[answer.ID] = &answer
	return &answer, nil
}

func (f *fakeDataStore) DeleteAnswer(_ context.Context, userID, answerID uuid.UUID) (bool, error) {
	a, ok := f.answers[answerID]
	if !ok || a.UserID != userID {
		return false, nil
	}
	delete(f.answers, answerID)
	return true, nil
}

func (f *fakeDataStore) ListSessions(_ context.Context, userID uuid.UUID) ([]types.PracticeSession, error) {
	sessions := []types.PracticeSession{}
	for _, s := range f.sessions {
		if s.UserID == userID {
			sessions = append(sessions, *s)
		}
	}
	return sessions, nil
}

func (f *fakeDataStore) DeleteSession(_ context.Context, userID, sessionID uuid.UUID) (bool, error) {
	s, ok := f.sessions[sessionID]
	if !ok || s.UserID != userID {
		return false, nil
	}
	delete(f.sessions, sessionID)
	return true, nil
}

// fakeAIService stubs the gateway surface for handler tests.
type fakeAIService struct {
	extracted  types.ExtractedProfile
	enhanced   types.ExtractedProfile
	tags       []string
	tagJobSeen *types.Job
	err        error
}

func (f *fakeAIService) ExtractResume(_ context.Context, _ string) (types.ExtractedProfile, error) {
	return f.extracted, f.err
}

func (f *fakeAIService) BeautifyProfile(_ context.Context, _ types.Profile) (types.ExtractedProfile, error) {
	return f.enhanced, f.err
}

func (f *fakeAIService) SuggestTags(_ context.Context, _, _ string, job *types.Job) ([]string, error) {
	f.tagJobSeen = job
	if f.err != nil {
		return []string{}, f.err
	}
	return f.tags, nil
}

// fakeSessionService stubs the orchestrator for handler tests.
type fakeSessionService struct {
	session  *types.PracticeSession
	next     *session.NextResult
	answer   *types.Answer
	feedback string
	err      error
}

func (f *fakeSessionService) Start(_ context.Context, _ uuid.UUID, _ *uuid.UUID, _ []types.QuestionCategory) (*types.PracticeSession, error) {
	return f.session, f.err
}

func (f *fakeSessionService) Load(_ context.Context, _, _ uuid.UUID) (*types.PracticeSession, error) {
	return f.session, f.err
}

func (f *fakeSessionService) Next(_ context.Context, _, _ uuid.UUID) (*session.NextResult, error) {
	return f.next, f.err
}

func (f *fakeSessionService) SaveAnswer(_ context.Context, _, _ uuid.UUID, _ string, _ []string) (*types.Answer, error) {
	return f.answer, f.err
}

func (f *fakeSessionService) Feedback(_ context.Context, _, _ uuid.UUID, _ string) (string, error) {
	return f.feedback, f.err
}

var errStoreDown = errors.New("store down")

func testServer(store DataStore, aiSvc AIService, sessions SessionService) *Server {
	return &Server{store: store, ai: aiSvc, sessions: sessions}
}
