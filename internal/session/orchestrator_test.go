package session

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/interview-prep/internal/types"
)

type fakeStore struct {
	sessions    map[uuid.UUID]*types.PracticeSession
	profile     *types.Profile
	jobs        map[uuid.UUID]*types.Job
	saved       []types.Answer
	attachCalls int
	raceWinner  []types.Question // landed by a concurrent writer just before our conditional update
	indexWrites []int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		sessions: map[uuid.UUID]*types.PracticeSession{},
		jobs:     map[uuid.UUID]*types.Job{},
	}
}

func (f *fakeStore) CreateSession(_ context.Context, userID uuid.UUID, jobID *uuid.UUID, categories []types.QuestionCategory) (uuid.UUID, error) {
	id := uuid.New()
	f.sessions[id] = &types.PracticeSession{
		ID: id, UserID: userID, JobID: jobID,
		Categories: categories, Questions: []types.Question{},
	}
	return id, nil
}

func (f *fakeStore) GetSession(_ context.Context, userID, sessionID uuid.UUID) (*types.PracticeSession, error) {
	s, ok := f.sessions[sessionID]
	if !ok || s.UserID != userID {
		return nil, nil
	}
	copied := *s
	copied.Questions = append([]types.Question(nil), s.Questions...)
	return &copied, nil
}

func (f *fakeStore) AttachQuestions(_ context.Context, sessionID uuid.UUID, questions []types.Question) (bool, error) {
	f.attachCalls++
	s, ok := f.sessions[sessionID]
	if !ok {
		return false, errors.New("no such session")
	}
	if f.raceWinner != nil {
		// The other writer's list lands first; the conditional update loses.
		s.Questions = append([]types.Question(nil), f.raceWinner...)
		s.CurrentQuestionIndex = 0
		return false, nil
	}
	if len(s.Questions) > 0 {
		return false, nil
	}
	s.Questions = append([]types.Question(nil), questions...)
	s.CurrentQuestionIndex = 0
	return true, nil
}

func (f *fakeStore) UpdateSessionIndex(_ context.Context, sessionID uuid.UUID, index int) error {
	s, ok := f.sessions[sessionID]
	if !ok {
		return errors.New("no such session")
	}
	s.CurrentQuestionIndex = index
	f.indexWrites = append(f.indexWrites, index)
	return nil
}

func (f *fakeStore) GetProfile(_ context.Context, _ uuid.UUID) (*types.Profile, error) {
	return f.profile, nil
}

func (f *fakeStore) GetJob(_ context.Context, _, jobID uuid.UUID) (*types.Job, error) {
	return f.jobs[jobID], nil
}

func (f *fakeStore) SaveAnswer(_ context.Context, answer types.Answer) (*types.Answer, error) {
	answer.ID = uuid.New()
	f.saved = append(f.saved, answer)
	return &answer, nil
}

type fakeGenerator struct {
	questions   []types.Question
	genErr      error
	calls       int
	lastProfile types.Profile
	lastJob     *types.Job
	feedback    string
	feedbackErr error
}

func (f *fakeGenerator) GenerateQuestions(_ context.Context, profile types.Profile, categories []types.QuestionCategory, _ int, job *types.Job) ([]types.Question, error) {
	f.calls++
	f.lastProfile = profile
	f.lastJob = job
	if f.questions != nil {
		return f.questions, f.genErr
	}
	// Mimic the gateway contract: always a usable list, placeholders on error.
	qs := make([]types.Question, len(categories))
	for i, c := range categories {
		qs[i] = types.Question{ID: uuid.NewString(), Text: "Q" + string(c), Category: c}
	}
	return qs, f.genErr
}

func (f *fakeGenerator) AnswerFeedback(_ context.Context, _, _ string, _ types.Profile, _ *types.Job) (string, error) {
	return f.feedback, f.feedbackErr
}

func questionsN(n int) []types.Question {
	qs := make([]types.Question, n)
	for i := range qs {
		qs[i] = types.Question{ID: uuid.NewString(), Text: "question", Category: types.CategoryBehavioral}
	}
	return qs
}

func TestStart_GeneratesQuestionsOnce(t *testing.T) {
	store := newFakeStore()
	gen := &fakeGenerator{}
	orch := New(store, gen)
	userID := uuid.New()

	s, err := orch.Start(context.Background(), userID, nil,
		[]types.QuestionCategory{types.CategoryBehavioral, types.CategoryTechnical})

	require.NoError(t, err)
	assert.Len(t, s.Questions, 2)
	assert.Equal(t, 0, s.CurrentQuestionIndex)
	assert.Equal(t, types.SessionActive, s.State())
	assert.Equal(t, 1, gen.calls)

	// A second load finds questions and never calls the generator again.
	again, err := orch.Load(context.Background(), userID, s.ID)
	require.NoError(t, err)
	assert.Equal(t, s.Questions, again.Questions)
	assert.Equal(t, 1, gen.calls)
}

func TestStart_DefaultsToAllCategories(t *testing.T) {
	store := newFakeStore()
	gen := &fakeGenerator{}
	orch := New(store, gen)

	s, err := orch.Start(context.Background(), uuid.New(), nil, nil)

	require.NoError(t, err)
	assert.Len(t, s.Questions, len(types.AllCategories))
}

func TestStart_RejectsUnknownCategory(t *testing.T) {
	orch := New(newFakeStore(), &fakeGenerator{})

	_, err := orch.Start(context.Background(), uuid.New(), nil,
		[]types.QuestionCategory{"Trivia"})

	assert.Error(t, err)
}

func TestLoad_GenerationFailureStillYieldsUsableSession(t *testing.T) {
	store := newFakeStore()
	gen := &fakeGenerator{genErr: errors.New("gateway down")}
	orch := New(store, gen)

	s, err := orch.Start(context.Background(), uuid.New(), nil,
		[]types.QuestionCategory{types.CategoryMotivational})

	// Degraded, not broken: the placeholder list is attached and the session
	// is active.
	require.NoError(t, err)
	require.Len(t, s.Questions, 1)
	assert.Equal(t, types.SessionActive, s.State())
}

func TestLoad_LostRaceKeepsExistingQuestions(t *testing.T) {
	store := newFakeStore()
	gen := &fakeGenerator{}
	orch := New(store, gen)
	userID := uuid.New()

	id, err := store.CreateSession(context.Background(), userID, nil,
		[]types.QuestionCategory{types.CategoryBehavioral})
	require.NoError(t, err)

	// Another writer fills the session between our read and our conditional
	// write; the fake injects its list when our write arrives, so the update
	// sees a non-empty row and loses.
	winner := questionsN(3)
	store.raceWinner = winner

	s, err := orch.Load(context.Background(), userID, id)

	require.NoError(t, err)
	assert.Equal(t, winner, s.Questions)
	assert.Equal(t, 1, store.attachCalls)
	assert.Equal(t, 1, gen.calls)
}

func TestLoad_RepairsOutOfRangeIndex(t *testing.T) {
	store := newFakeStore()
	orch := New(store, &fakeGenerator{})
	userID := uuid.New()

	id, _ := store.CreateSession(context.Background(), userID, nil,
		[]types.QuestionCategory{types.CategoryBehavioral})
	store.sessions[id].Questions = questionsN(3)
	store.sessions[id].CurrentQuestionIndex = 99

	s, err := orch.Load(context.Background(), userID, id)

	require.NoError(t, err)
	assert.Equal(t, 0, s.CurrentQuestionIndex)
	assert.Equal(t, []int{0}, store.indexWrites)

	store.sessions[id].CurrentQuestionIndex = -2
	s, err = orch.Load(context.Background(), userID, id)
	require.NoError(t, err)
	assert.Equal(t, 0, s.CurrentQuestionIndex)
}

func TestLoad_UnknownSession(t *testing.T) {
	orch := New(newFakeStore(), &fakeGenerator{})

	_, err := orch.Load(context.Background(), uuid.New(), uuid.New())

	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestNext_AdvancesAndPersists(t *testing.T) {
	store := newFakeStore()
	orch := New(store, &fakeGenerator{})
	userID := uuid.New()

	id, _ := store.CreateSession(context.Background(), userID, nil,
		[]types.QuestionCategory{types.CategoryBehavioral})
	store.sessions[id].Questions = questionsN(3)

	res, err := orch.Next(context.Background(), userID, id)

	require.NoError(t, err)
	assert.False(t, res.Completed)
	require.NotNil(t, res.Question)
	assert.Equal(t, 1, res.Session.CurrentQuestionIndex)
	assert.Equal(t, 1, store.sessions[id].CurrentQuestionIndex)
}

func TestNext_CompletionDoesNotPersistOutOfRangeIndex(t *testing.T) {
	store := newFakeStore()
	orch := New(store, &fakeGenerator{})
	userID := uuid.New()

	id, _ := store.CreateSession(context.Background(), userID, nil,
		[]types.QuestionCategory{types.CategoryBehavioral})
	store.sessions[id].Questions = questionsN(2)
	store.sessions[id].CurrentQuestionIndex = 1 // last question

	res, err := orch.Next(context.Background(), userID, id)

	require.NoError(t, err)
	assert.True(t, res.Completed)
	assert.Nil(t, res.Question)
	// The stored cursor stays on the final question.
	assert.Equal(t, 1, store.sessions[id].CurrentQuestionIndex)
	assert.Empty(t, store.indexWrites)

	// Reloading lands on the final question, not a broken cursor.
	s, err := orch.Load(context.Background(), userID, id)
	require.NoError(t, err)
	assert.Equal(t, types.SessionActive, s.State())
	assert.Equal(t, 1, s.CurrentQuestionIndex)
}

func TestSaveAnswer_CopiesQuestionAndDefaultsTags(t *testing.T) {
	store := newFakeStore()
	orch := New(store, &fakeGenerator{})
	userID := uuid.New()
	jobID := uuid.New()

	id, _ := store.CreateSession(context.Background(), userID, &jobID,
		[]types.QuestionCategory{types.CategoryBehavioral})
	store.sessions[id].Questions = []types.Question{
		{ID: "q1", Text: "Tell me about a conflict.", Category: types.CategoryBehavioral},
	}

	answer, err := orch.SaveAnswer(context.Background(), userID, id, "I talked it out.", nil)

	require.NoError(t, err)
	assert.Equal(t, "q1", answer.QuestionID)
	assert.Equal(t, "Tell me about a conflict.", answer.QuestionText)
	assert.Equal(t, types.CategoryBehavioral, answer.Category)
	assert.Equal(t, []string{types.DefaultAnswerTag}, answer.Tags)
	require.NotNil(t, answer.JobID)
	assert.Equal(t, jobID, *answer.JobID)
}

func TestFeedback_UsesCurrentQuestionAndJob(t *testing.T) {
	store := newFakeStore()
	gen := &fakeGenerator{feedback: "Add a concrete outcome."}
	orch := New(store, gen)
	userID := uuid.New()
	jobID := uuid.New()
	store.jobs[jobID] = &types.Job{ID: jobID, Title: "Engineer", Company: "Acme"}

	id, _ := store.CreateSession(context.Background(), userID, &jobID,
		[]types.QuestionCategory{types.CategoryBehavioral})
	store.sessions[id].Questions = questionsN(1)

	feedback, err := orch.Feedback(context.Background(), userID, id, "my answer")

	require.NoError(t, err)
	assert.Equal(t, "Add a concrete outcome.", feedback)
}
