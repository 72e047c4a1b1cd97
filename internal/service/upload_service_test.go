package service

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accessgate/internal/cancel"
	"accessgate/internal/detect"
	"accessgate/internal/domain"
	"accessgate/internal/parser"
	"accessgate/internal/processor"
	"accessgate/internal/queue"
	"accessgate/internal/realtime"
	"accessgate/internal/repository"
	"accessgate/internal/validator"
)

type fakeRecordStore struct {
	mu       sync.Mutex
	inserted int
	insertFn func(row domain.ParsedRow) error
}

func (s *fakeRecordStore) Insert(_ context.Context, _ domain.TableType, row domain.ParsedRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.insertFn != nil {
		if err := s.insertFn(row); err != nil {
			return err
		}
	}
	s.inserted++
	return nil
}

type fakeHistory struct {
	mu      sync.Mutex
	records []domain.UploadHistoryRecord
}

func (h *fakeHistory) Record(ctx context.Context, rec *domain.UploadHistoryRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, *rec)
	return nil
}

func (h *fakeHistory) List(_ context.Context, userID string, _, _ int) ([]domain.UploadHistoryRecord, int, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	var out []domain.UploadHistoryRecord
	for _, rec := range h.records {
		if rec.UserID == userID {
			out = append(out, rec)
		}
	}
	return out, len(out), nil
}

type eventRecorder struct {
	mu        sync.Mutex
	started   []realtime.JobStarted
	updates   []realtime.ProgressUpdate
	completed []realtime.JobCompleted
	failures  []realtime.JobError
}

func (r *eventRecorder) PublishStarted(e realtime.JobStarted) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.started = append(r.started, e)
}

func (r *eventRecorder) PublishUpdate(e realtime.ProgressUpdate) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates = append(r.updates, e)
}

func (r *eventRecorder) PublishCompleted(e realtime.JobCompleted) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.completed = append(r.completed, e)
}

func (r *eventRecorder) PublishError(e realtime.JobError) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures = append(r.failures, e)
}

type testFixture struct {
	store    *fakeRecordStore
	history  *fakeHistory
	events   *eventRecorder
	registry *cancel.Registry
	svc      *UploadService
}

func newFixture() *testFixture {
	store := &fakeRecordStore{}
	history := &fakeHistory{}
	events := &eventRecorder{}
	registry := cancel.NewRegistry()
	proc := processor.New(store, validator.NewValidator(), detect.NewDetector(), events, 1)
	q := queue.NewService(proc, history, events, registry)
	return &testFixture{
		store:    store,
		history:  history,
		events:   events,
		registry: registry,
		svc:      NewUploadService(proc, history, events, registry, q),
	}
}

func employeesCSV(n int) []byte {
	out := "employee_id,email,full_name\n"
	for i := 0; i < n; i++ {
		out += fmt.Sprintf("E%d,user%d@example.com,User %d\n", 1000+i, i, i)
	}
	return []byte(out)
}

func TestUploadDirect(t *testing.T) {
	f := newFixture()

	result, err := f.svc.UploadDirect(context.Background(),
		UploadFile{Name: "staff.csv", Data: employeesCSV(3)},
		UploadOptions{UserID: "u1"},
	)
	require.NoError(t, err)
	assert.Equal(t, 3, result.ProcessedRecords)
	assert.Equal(t, domain.TableEmployees, result.Table)
	assert.Equal(t, 3, f.store.inserted)

	// History is written synchronously.
	records, total, err := f.history.List(context.Background(), "u1", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "completed", records[0].Status)

	// Direct uploads never publish progress events.
	assert.Empty(t, f.events.updates)
	assert.Empty(t, f.events.completed)
}

func TestUploadDirect_StructuralFailure(t *testing.T) {
	f := newFixture()

	result, err := f.svc.UploadDirect(context.Background(),
		UploadFile{Name: "staff.pdf", Data: []byte("nope")},
		UploadOptions{UserID: "u1"},
	)
	require.Error(t, err)
	assert.True(t, processor.IsStructural(err))
	require.Len(t, result.Errors, 1)

	records, _, _ := f.history.List(context.Background(), "u1", 1, 10)
	require.Len(t, records, 1)
	assert.Equal(t, "failed", records[0].Status)
	require.NotNil(t, records[0].ErrorDetail)
}

func TestUploadMultiple(t *testing.T) {
	t.Run("stops at first failed file", func(t *testing.T) {
		f := newFixture()

		agg, err := f.svc.UploadMultiple(context.Background(), []UploadFile{
			{Name: "one.csv", Data: employeesCSV(2)},
			{Name: "two.pdf", Data: []byte("nope")},
			{Name: "three.csv", Data: employeesCSV(2)},
		}, UploadOptions{UserID: "u1"})
		require.NoError(t, err)

		assert.Equal(t, 3, agg.TotalFiles)
		assert.Equal(t, 1, agg.ProcessedFiles)
		assert.Equal(t, 1, agg.FailedFiles)
		// The third file was never attempted.
		require.Len(t, agg.Files, 2)
		assert.Equal(t, "two.pdf", agg.Files[1].FileName)
		assert.Equal(t, 2, f.store.inserted)
	})

	t.Run("continue on error attempts every file", func(t *testing.T) {
		f := newFixture()

		agg, err := f.svc.UploadMultiple(context.Background(), []UploadFile{
			{Name: "one.csv", Data: employeesCSV(2)},
			{Name: "two.pdf", Data: []byte("nope")},
			{Name: "three.csv", Data: employeesCSV(2)},
		}, UploadOptions{UserID: "u1", ContinueOnError: true})
		require.NoError(t, err)

		assert.Equal(t, 2, agg.ProcessedFiles)
		assert.Equal(t, 1, agg.FailedFiles)
		require.Len(t, agg.Files, 3)
		assert.Equal(t, 4, agg.ProcessedRecords)
		assert.Equal(t, 4, f.store.inserted)
	})

	t.Run("infrastructure failure stops even with continue on error", func(t *testing.T) {
		f := newFixture()
		f.store.insertFn = func(domain.ParsedRow) error {
			return fmt.Errorf("%w: pool closed", repository.ErrUnavailable)
		}

		agg, err := f.svc.UploadMultiple(context.Background(), []UploadFile{
			{Name: "one.csv", Data: employeesCSV(2)},
			{Name: "two.csv", Data: employeesCSV(2)},
		}, UploadOptions{UserID: "u1", ContinueOnError: true})
		assert.ErrorIs(t, err, repository.ErrUnavailable)
		assert.Equal(t, 1, agg.FailedFiles)
		require.Len(t, agg.Files, 1)
	})
}

func TestUploadWithProgress(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		f := newFixture()

		jobID, result, err := f.svc.UploadWithProgress(context.Background(),
			UploadFile{Name: "staff.csv", Data: employeesCSV(3)},
			UploadOptions{UserID: "u1"},
		)
		require.NoError(t, err)
		require.NotEmpty(t, jobID)
		assert.Equal(t, 3, result.ProcessedRecords)

		require.Len(t, f.events.started, 1)
		assert.Equal(t, jobID, f.events.started[0].JobID)
		assert.Positive(t, f.events.started[0].EstimatedTotalRecords)
		assert.NotEmpty(t, f.events.updates)
		require.Len(t, f.events.completed, 1)
		assert.True(t, f.events.completed[0].Success)

		// The registry entry is gone once the call returns.
		assert.False(t, f.svc.CancelJob(jobID))
	})

	t.Run("row failures flip the terminal event", func(t *testing.T) {
		f := newFixture()

		data := []byte("employee_id,email,full_name\nE1,a@example.com,Alice\nE2,broken,Bob\n")
		_, result, err := f.svc.UploadWithProgress(context.Background(),
			UploadFile{Name: "staff.csv", Data: data},
			UploadOptions{UserID: "u1", IgnoreRowErrors: true},
		)
		require.NoError(t, err)
		assert.Equal(t, 1, result.FailedRecords)
		require.Len(t, f.events.completed, 1)
		assert.False(t, f.events.completed[0].Success)
	})

	t.Run("duplicate job id rejected", func(t *testing.T) {
		f := newFixture()
		_, err := f.registry.Create(context.Background(), "job-1")
		require.NoError(t, err)

		_, _, err = f.svc.UploadWithProgress(context.Background(),
			UploadFile{Name: "staff.csv", Data: employeesCSV(1)},
			UploadOptions{UserID: "u1", JobID: "job-1"},
		)
		assert.Error(t, err)
	})

	t.Run("cancelled mid run", func(t *testing.T) {
		f := newFixture()
		cancelled := false
		f.store.insertFn = func(domain.ParsedRow) error {
			if !cancelled {
				cancelled = true
				f.svc.CancelJob("job-2")
			}
			return nil
		}

		jobID, result, err := f.svc.UploadWithProgress(context.Background(),
			UploadFile{Name: "staff.csv", Data: employeesCSV(5)},
			UploadOptions{UserID: "u1", JobID: "job-2"},
		)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, "job-2", jobID)
		assert.True(t, result.Cancelled)
		assert.Equal(t, 1, result.ProcessedRecords)

		require.Len(t, f.events.completed, 1)
		assert.Equal(t, "Job cancelled", f.events.completed[0].Message)

		// The durable row is written even though the job context is cancelled.
		records, _, listErr := f.history.List(context.Background(), "u1", 1, 10)
		require.NoError(t, listErr)
		require.Len(t, records, 1)
		assert.Equal(t, "cancelled", records[0].Status)
	})

	t.Run("infrastructure failure publishes error event", func(t *testing.T) {
		f := newFixture()
		f.store.insertFn = func(domain.ParsedRow) error {
			return fmt.Errorf("%w: pool closed", repository.ErrUnavailable)
		}

		_, _, err := f.svc.UploadWithProgress(context.Background(),
			UploadFile{Name: "staff.csv", Data: employeesCSV(1)},
			UploadOptions{UserID: "u1"},
		)
		assert.ErrorIs(t, err, repository.ErrUnavailable)
		assert.Empty(t, f.events.completed)
		require.Len(t, f.events.failures, 1)

		records, _, listErr := f.history.List(context.Background(), "u1", 1, 10)
		require.NoError(t, listErr)
		require.Len(t, records, 1)
		assert.Equal(t, "failed", records[0].Status)
	})
}

func TestUploadQueued(t *testing.T) {
	t.Run("accepts supported extensions", func(t *testing.T) {
		f := newFixture()

		queued, err := f.svc.UploadQueued(context.Background(), []UploadFile{
			{Name: "a.csv", Data: employeesCSV(1)},
			{Name: "b.json", Data: []byte(`[{"employee_id":"E9","email":"z@example.com","full_name":"Zed"}]`)},
		}, UploadOptions{UserID: "u1"})
		require.NoError(t, err)
		assert.NotEmpty(t, queued.JobID)
		assert.Equal(t, 2, queued.TotalFiles)
	})

	t.Run("rejects unsupported extension before enqueueing", func(t *testing.T) {
		f := newFixture()

		_, err := f.svc.UploadQueued(context.Background(), []UploadFile{
			{Name: "a.csv", Data: employeesCSV(1)},
			{Name: "b.exe", Data: []byte("nope")},
		}, UploadOptions{UserID: "u1"})
		assert.ErrorIs(t, err, parser.ErrUnsupportedFormat)
		assert.Contains(t, err.Error(), "b.exe")
	})

	t.Run("rejects empty batch", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.UploadQueued(context.Background(), nil, UploadOptions{UserID: "u1"})
		assert.ErrorIs(t, err, queue.ErrNoFiles)
	})
}

func TestHistoryPassthrough(t *testing.T) {
	f := newFixture()

	_, err := f.svc.UploadDirect(context.Background(),
		UploadFile{Name: "staff.csv", Data: employeesCSV(1)},
		UploadOptions{UserID: "u1"},
	)
	require.NoError(t, err)

	records, total, err := f.svc.History(context.Background(), "u1", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, records, 1)
	assert.Equal(t, "staff.csv", records[0].FileName)

	other, total, err := f.svc.History(context.Background(), "someone-else", 1, 20)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, other)
}
