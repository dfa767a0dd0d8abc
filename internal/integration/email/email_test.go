package email

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zakat-calculator/backend/internal/application/adapter"
	"github.com/zakat-calculator/backend/internal/domain/entity"
	"github.com/zakat-calculator/backend/internal/integration/email/templates"
)

type memoryQueue struct {
	mu   sync.Mutex
	jobs []*entity.EmailJob
}

func (q *memoryQueue) Create(_ context.Context, job *entity.EmailJob) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.jobs = append(q.jobs, job)
	return nil
}

func (q *memoryQueue) GetPendingJobs(_ context.Context, limit int) ([]*entity.EmailJob, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	var out []*entity.EmailJob
	for _, j := range q.jobs {
		if j.IsReadyToProcess() && len(out) < limit {
			out = append(out, j)
		}
	}
	return out, nil
}

func (q *memoryQueue) Update(context.Context, *entity.EmailJob) error { return nil }

func (q *memoryQueue) GetByID(_ context.Context, id uuid.UUID) (*entity.EmailJob, error) {
	for _, j := range q.jobs {
		if j.ID == id {
			return j, nil
		}
	}
	return nil, errors.New("not found")
}

func (q *memoryQueue) GetByRecipient(_ context.Context, email string) ([]*entity.EmailJob, error) {
	var out []*entity.EmailJob
	for _, j := range q.jobs {
		if j.RecipientEmail == email {
			out = append(out, j)
		}
	}
	return out, nil
}

func (q *memoryQueue) ExistsForReference(_ context.Context, id uuid.UUID) (bool, error) {
	for _, j := range q.jobs {
		if j.ReferenceID != nil && *j.ReferenceID == id && j.Status != entity.EmailStatusFailed {
			return true, nil
		}
	}
	return false, nil
}

func (q *memoryQueue) DeleteOldSentJobs(context.Context, int) (int64, error) { return 0, nil }

func newWorker(t *testing.T, queue adapter.EmailQueueRepository, sender adapter.EmailSender) *Worker {
	t.Helper()
	renderer, err := templates.NewRenderer()
	require.NoError(t, err)
	return NewWorker(queue, sender, renderer, DefaultWorkerConfig())
}

func TestQueueWelcomeEmail_RendersAndSends(t *testing.T) {
	ctx := context.Background()
	queue := &memoryQueue{}
	sender := NewMockEmailSender()
	service := NewService(queue, "https://zakat.example")

	require.NoError(t, service.QueueWelcomeEmail(ctx, adapter.QueueWelcomeInput{
		UserEmail:   "amina@example.com",
		UserName:    "Amina",
		NisabMethod: "SILVER",
		Currency:    "GBP",
	}))
	require.Len(t, queue.jobs, 1)
	assert.Equal(t, entity.TemplateWelcome, queue.jobs[0].TemplateType)

	newWorker(t, queue, sender).ProcessNow(ctx)

	sent := sender.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "amina@example.com", sent[0].To)
	assert.Contains(t, sent[0].HTML, "Amina")
	assert.Contains(t, sent[0].HTML, "SILVER")
	assert.Contains(t, sent[0].Text, "GBP")
	assert.Equal(t, entity.EmailStatusSent, queue.jobs[0].Status)
}

func TestQueueReminderEmail_DeduplicatesByReminder(t *testing.T) {
	ctx := context.Background()
	queue := &memoryQueue{}
	service := NewService(queue, "https://zakat.example")
	reminderID := uuid.New()

	input := adapter.QueueReminderInput{
		UserEmail:     "amina@example.com",
		UserName:      "Amina",
		Subject:       "Zakat due",
		Message:       "Your savings completed a lunar year.",
		ScheduledDate: "1446-08-13H",
		ReminderID:    reminderID.String(),
	}
	require.NoError(t, service.QueueReminderEmail(ctx, input))
	require.NoError(t, service.QueueReminderEmail(ctx, input))

	require.Len(t, queue.jobs, 1)
	require.NotNil(t, queue.jobs[0].ReferenceID)
	assert.Equal(t, reminderID, *queue.jobs[0].ReferenceID)

	sender := NewMockEmailSender()
	newWorker(t, queue, sender).ProcessNow(ctx)
	sent := sender.Sent()
	require.Len(t, sent, 1)
	assert.Contains(t, sent[0].HTML, "1446-08-13H")
	assert.Contains(t, sent[0].Text, "https://zakat.example/reminders")
}

func TestQueueReminderEmail_InvalidReminderID(t *testing.T) {
	service := NewService(&memoryQueue{}, "")
	err := service.QueueReminderEmail(context.Background(), adapter.QueueReminderInput{
		UserEmail:  "amina@example.com",
		ReminderID: "not-a-uuid",
	})
	assert.Error(t, err)
}

func TestWorker_PermanentFailureStopsRetries(t *testing.T) {
	ctx := context.Background()
	queue := &memoryQueue{}
	sender := NewMockEmailSender()
	sender.SetFailure(errors.New("422 validation"), true)

	require.NoError(t, NewService(queue, "").QueueWelcomeEmail(ctx, adapter.QueueWelcomeInput{
		UserEmail: "amina@example.com",
		UserName:  "Amina",
	}))
	newWorker(t, queue, sender).ProcessNow(ctx)

	assert.Equal(t, entity.EmailStatusFailed, queue.jobs[0].Status)
	assert.Empty(t, sender.Sent())
}

func TestWorker_TemporaryFailureRetries(t *testing.T) {
	ctx := context.Background()
	queue := &memoryQueue{}
	sender := NewMockEmailSender()
	sender.SetFailure(errors.New("timeout"), false)

	require.NoError(t, NewService(queue, "").QueueWelcomeEmail(ctx, adapter.QueueWelcomeInput{
		UserEmail: "amina@example.com",
	}))
	newWorker(t, queue, sender).ProcessNow(ctx)

	assert.Equal(t, entity.EmailStatusPending, queue.jobs[0].Status)
	assert.Equal(t, 1, queue.jobs[0].Attempts)
}

func TestWorker_UnknownTemplateFailsPermanently(t *testing.T) {
	ctx := context.Background()
	queue := &memoryQueue{}
	job := entity.NewEmailJob("newsletter", "amina@example.com", "Amina", "News", nil)
	require.NoError(t, queue.Create(ctx, job))

	newWorker(t, queue, NewMockEmailSender()).ProcessNow(ctx)

	assert.Equal(t, entity.EmailStatusFailed, job.Status)
}

func TestIsPermanentError(t *testing.T) {
	assert.True(t, isPermanentError(errors.New("401 Unauthorized")))
	assert.True(t, isPermanentError(errors.New("validation_error: invalid `to` field")))
	assert.False(t, isPermanentError(errors.New("connection reset by peer")))
	assert.False(t, isPermanentError(nil))
}
