package generate_occurrences_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueService/internal/domain"
	eventRepo "github.com/m04kA/SMC-VenueService/internal/infra/storage/event"
	"github.com/m04kA/SMC-VenueService/internal/service/recurrence"
	"github.com/m04kA/SMC-VenueService/internal/usecase/generate_occurrences"
	"github.com/m04kA/SMC-VenueService/pkg/ptr"
)

type fakeEventRepo struct {
	template *domain.EventTemplate
	saveErr  error

	savedTemplateID int64
	savedDrafts     []domain.EventDraft
	saveCalls       int
}

func (f *fakeEventRepo) GetTemplateByID(_ context.Context, id int64) (*domain.EventTemplate, error) {
	if f.template == nil || f.template.ID != id {
		return nil, eventRepo.ErrTemplateNotFound
	}
	return f.template, nil
}

func (f *fakeEventRepo) SaveDrafts(_ context.Context, templateID int64, drafts []domain.EventDraft) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saveCalls++
	f.savedTemplateID = templateID
	f.savedDrafts = drafts
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func weeklyTemplate() *domain.EventTemplate {
	start := time.Date(2026, time.September, 7, 10, 0, 0, 0, time.UTC)
	return &domain.EventTemplate{
		ID:          3,
		Title:       "Йога по понедельникам",
		VenueID:     10,
		OrganizerID: 1,
		StartTime:   start,
		EndTime:     start.Add(time.Hour),
		Recurrence: &domain.RecurrenceRule{
			Pattern:  domain.PatternWeekly,
			Interval: 1,
		},
		Active: true,
	}
}

func newUseCase(repo *fakeEventRepo, maxDrafts int) *generate_occurrences.UseCase {
	return generate_occurrences.NewUseCase(
		repo,
		recurrence.NewGenerator(),
		fakeTxManager{},
		maxDrafts,
		nil,
		nopLogger{},
	)
}

func TestExecute_WeeklySeries(t *testing.T) {
	repo := &fakeEventRepo{template: weeklyTemplate()}
	uc := newUseCase(repo, 52)

	resp, err := uc.Execute(context.Background(), &generate_occurrences.Request{
		TemplateID: 3,
		Limit:      ptr.Ptr(4),
	})
	require.NoError(t, err)
	require.Len(t, resp.Drafts, 4)

	assert.Equal(t, int64(3), repo.savedTemplateID)
	require.Len(t, repo.savedDrafts, 4)

	// Еженедельные вхождения сохраняют время и длительность шаблона
	anchor := weeklyTemplate().StartTime
	for i, d := range resp.Drafts {
		assert.Equal(t, i+1, d.Sequence)
		assert.Equal(t, anchor.AddDate(0, 0, 7*(i+1)), d.StartTime)
		assert.Equal(t, d.StartTime.Add(time.Hour), d.EndTime)
		assert.Equal(t, domain.DraftStatus, d.Status)
	}
}

// Повторная генерация заменяет серию, а не дописывает к ней
func TestExecute_RegenerationReplacesSeries(t *testing.T) {
	repo := &fakeEventRepo{template: weeklyTemplate()}
	uc := newUseCase(repo, 52)

	_, err := uc.Execute(context.Background(), &generate_occurrences.Request{TemplateID: 3, Limit: ptr.Ptr(6)})
	require.NoError(t, err)

	resp, err := uc.Execute(context.Background(), &generate_occurrences.Request{TemplateID: 3, Limit: ptr.Ptr(2)})
	require.NoError(t, err)

	assert.Equal(t, 2, repo.saveCalls)
	assert.Len(t, resp.Drafts, 2)
	assert.Len(t, repo.savedDrafts, 2)
}

func TestExecute_LimitClampedToConfiguredMax(t *testing.T) {
	repo := &fakeEventRepo{template: weeklyTemplate()}
	uc := newUseCase(repo, 3)

	resp, err := uc.Execute(context.Background(), &generate_occurrences.Request{
		TemplateID: 3,
		Limit:      ptr.Ptr(100),
	})
	require.NoError(t, err)
	assert.Len(t, resp.Drafts, 3)
}

func TestExecute_TemplateNotFound(t *testing.T) {
	uc := newUseCase(&fakeEventRepo{}, 52)

	_, err := uc.Execute(context.Background(), &generate_occurrences.Request{TemplateID: 3})
	assert.ErrorIs(t, err, generate_occurrences.ErrTemplateNotFound)
}

func TestExecute_NoRecurrenceRule(t *testing.T) {
	template := weeklyTemplate()
	template.Recurrence = nil
	uc := newUseCase(&fakeEventRepo{template: template}, 52)

	_, err := uc.Execute(context.Background(), &generate_occurrences.Request{TemplateID: 3})
	assert.ErrorIs(t, err, generate_occurrences.ErrNoRecurrence)
}

func TestExecute_InvalidRule(t *testing.T) {
	template := weeklyTemplate()
	template.Recurrence.Interval = 0
	uc := newUseCase(&fakeEventRepo{template: template}, 52)

	_, err := uc.Execute(context.Background(), &generate_occurrences.Request{TemplateID: 3})
	assert.ErrorIs(t, err, generate_occurrences.ErrInvalidRule)
}

func TestExecute_InvalidLimit(t *testing.T) {
	uc := newUseCase(&fakeEventRepo{template: weeklyTemplate()}, 52)

	_, err := uc.Execute(context.Background(), &generate_occurrences.Request{
		TemplateID: 3,
		Limit:      ptr.Ptr(0),
	})
	assert.ErrorIs(t, err, generate_occurrences.ErrInvalidInput)
}
