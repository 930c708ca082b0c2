package worker

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/vteach/qa-backend/internal/config"
	"github.com/vteach/qa-backend/internal/domain/qamodel"
	"github.com/vteach/qa-backend/internal/job"
	"github.com/vteach/qa-backend/pkg/logger_i"
)

// MockIndexer tracks how many lectures were indexed
type MockIndexer struct {
	IndexedCount int32
}

func (m *MockIndexer) IndexLecture(ctx context.Context, lecture qamodel.Lecture) (int, error) {
	atomic.AddInt32(&m.IndexedCount, 1)
	return 3, nil
}

type MockJobStore struct {
	mu   sync.Mutex
	jobs map[string]qamodel.IndexJob
}

func (m *MockJobStore) SaveJob(ctx context.Context, j qamodel.IndexJob) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.jobs == nil {
		m.jobs = make(map[string]qamodel.IndexJob)
	}
	m.jobs[j.Id] = j
	return nil
}

func (m *MockJobStore) GetJob(ctx context.Context, jobId string) (qamodel.IndexJob, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.jobs[jobId]
	return j, ok
}

func (m *MockJobStore) DeleteJob(ctx context.Context, jobId string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.jobs, jobId)
}

type MockLectureStore struct {
	lectures []qamodel.Lecture
}

func (m *MockLectureStore) ListLectures(ctx context.Context) ([]qamodel.Lecture, error) {
	return m.lectures, nil
}

func (m *MockLectureStore) GetLecture(ctx context.Context, id int) (qamodel.Lecture, bool, error) {
	for _, lec := range m.lectures {
		if lec.Id == id {
			return lec, true, nil
		}
	}
	return qamodel.Lecture{}, false, nil
}

func (m *MockLectureStore) UpsertLecture(ctx context.Context, title, content string) (int, error) {
	return 0, nil
}

func TestWorkerPool_Flow(t *testing.T) {
	jobStore := &MockJobStore{}
	jobSvc := job.InitJobService(job.ServiceConfig{
		JobChannel:        make(chan qamodel.IndexJob, 10),
		DispatcherChannel: make(chan bool, 10),
		JobStore:          jobStore,
	})
	mockIndexer := &MockIndexer{}
	lectures := &MockLectureStore{lectures: []qamodel.Lecture{
		{Id: 1, Content: "lecture one"},
		{Id: 2, Content: "lecture two"},
	}}
	stopChan := make(chan bool)
	wg := &sync.WaitGroup{}

	InitServices(jobSvc, mockIndexer, lectures)
	InitWorkerPool(stopChan, wg)

	t.Run("Worker processes a full reindex job", func(t *testing.T) {
		jobSvc.JobChannel <- qamodel.IndexJob{Id: "test-1", Scope: qamodel.ScopeAllLectures}

		time.Sleep(100 * time.Millisecond)

		indexed := atomic.LoadInt32(&mockIndexer.IndexedCount)
		if indexed != 2 {
			t.Errorf("Expected 2 lectures indexed, got %d", indexed)
		}

		saved, found := jobStore.GetJob(context.Background(), "test-1")
		if !found {
			t.Fatal("Job state was never saved")
		}
		if saved.Status != qamodel.JobStatusComplete {
			t.Errorf("Status got %s, want %s", saved.Status, qamodel.JobStatusComplete)
		}
		if saved.Lectures != 2 || saved.Chunks != 6 {
			t.Errorf("Counters got lectures=%d chunks=%d, want 2 and 6", saved.Lectures, saved.Chunks)
		}
	})

	t.Run("Single lecture scope indexes one lecture", func(t *testing.T) {
		before := atomic.LoadInt32(&mockIndexer.IndexedCount)
		jobSvc.JobChannel <- qamodel.IndexJob{Id: "test-2", Scope: qamodel.ScopeOneLecture, LectureId: 2}

		time.Sleep(100 * time.Millisecond)

		if got := atomic.LoadInt32(&mockIndexer.IndexedCount) - before; got != 1 {
			t.Errorf("Expected 1 lecture indexed, got %d", got)
		}
	})

	t.Run("Missing lecture fails the job", func(t *testing.T) {
		jobSvc.JobChannel <- qamodel.IndexJob{Id: "test-3", Scope: qamodel.ScopeOneLecture, LectureId: 99}

		time.Sleep(100 * time.Millisecond)

		saved, found := jobStore.GetJob(context.Background(), "test-3")
		if !found {
			t.Fatal("Job state was never saved")
		}
		if saved.Status != qamodel.JobStatusError {
			t.Errorf("Status got %s, want %s", saved.Status, qamodel.JobStatusError)
		}
		if saved.Error.Code == 0 || saved.Error.Message == "" {
			t.Errorf("Error detail missing: %+v", saved.Error)
		}
	})

	t.Run("Stop signal retires workers", func(t *testing.T) {
		close(stopChan)

		done := make(chan struct{})
		go func() {
			wg.Wait()
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Error("Workers did not stop within timeout")
		}
	})
}

func TestWorker_IdleTimeout(t *testing.T) {
	atomic.StoreInt64(&currentWorkerCount, 0)
	atomic.StoreInt64(&minWorkerCount, 1)
	logger = logger_i.NewLogger("TestWorkerPool")
	jobSvc := job.InitJobService(job.ServiceConfig{
		JobChannel: make(chan qamodel.IndexJob),
		JobStore:   &MockJobStore{},
	})
	InitServices(jobSvc, &MockIndexer{}, &MockLectureStore{})

	wg := &sync.WaitGroup{}
	stopChan := make(chan bool)
	workerWaitGroup = wg
	stopWorkerChannel = stopChan

	createWorker()
	createWorker()
	time.Sleep(config.IdleWorkerTimeout)
	time.Sleep(200 * time.Millisecond)

	// Only the worker above the floor retires; the minimum keeps polling.
	count := atomic.LoadInt64(&currentWorkerCount)
	if count != 1 {
		t.Errorf("Idle pool should shrink to the minimum of 1, but count is %d", count)
	}

	close(stopChan)
	wg.Wait()
	if got := atomic.LoadInt64(&currentWorkerCount); got != 0 {
		t.Errorf("Stop signal should retire the remaining worker, but count is %d", got)
	}
}
