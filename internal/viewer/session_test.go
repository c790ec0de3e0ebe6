package viewer

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"job-listing/internal/domain/job"
	"job-listing/internal/search"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLoader struct {
	jobs  []*job.Job
	err   error
	block chan struct{}
}

func (f fakeLoader) LoadJobs(ctx context.Context) ([]*job.Job, error) {
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.jobs, f.err
}

func waitReady(t *testing.T, s *Session) {
	t.Helper()
	select {
	case <-s.Ready():
	case <-time.After(time.Second):
		t.Fatal("session never finished loading")
	}
}

func TestSession_StartLoadsJobs(t *testing.T) {
	s := NewSession(uuid.New(), time.Hour, nil)
	require.Equal(t, StatusLoading, s.State().Status)

	s.Start(context.Background(), fakeLoader{jobs: twoJobs()})
	waitReady(t, s)

	st := s.State()
	assert.Equal(t, StatusSuccess, st.Status)
	assert.Len(t, st.Jobs, 2)
	assert.Len(t, st.Filtered, 2)
}

func TestSession_StartFailure(t *testing.T) {
	s := NewSession(uuid.New(), time.Hour, nil)

	s.Start(context.Background(), fakeLoader{err: errors.New("HTTP error! Status: 502")})
	waitReady(t, s)

	st := s.State()
	assert.Equal(t, StatusError, st.Status)
	assert.Equal(t, "HTTP error! Status: 502", st.Err)
}

func TestSession_StartWithoutLoaderFails(t *testing.T) {
	s := NewSession(uuid.New(), time.Hour, nil)

	s.Start(context.Background(), nil)
	waitReady(t, s)

	assert.Equal(t, StatusError, s.State().Status)
}

func TestSession_InputIsDebounced(t *testing.T) {
	s := NewSession(uuid.New(), 20*time.Millisecond, nil)
	s.Start(context.Background(), fakeLoader{jobs: twoJobs()})
	waitReady(t, s)

	var mu sync.Mutex
	var queries []string
	s.Subscribe(func(st State) {
		mu.Lock()
		queries = append(queries, st.Criteria.SearchQuery)
		mu.Unlock()
	})

	s.Input("s")
	s.Input("sa")
	s.Input("Sales")

	assert.Eventually(t, func() bool {
		return s.State().Criteria.SearchQuery == "sales"
	}, time.Second, 5*time.Millisecond)

	time.Sleep(50 * time.Millisecond)
	mu.Lock()
	assert.Equal(t, []string{"sales"}, queries)
	mu.Unlock()
	assert.Len(t, s.State().Filtered, 1)
}

func TestSession_FlushInput(t *testing.T) {
	s := NewSession(uuid.New(), time.Hour, nil)
	s.Start(context.Background(), fakeLoader{jobs: twoJobs()})
	waitReady(t, s)

	s.Input("engineer")
	st := s.FlushInput()

	assert.Equal(t, "engineer", st.Criteria.SearchQuery)
	assert.Len(t, st.Filtered, 1)
}

func TestSession_ResetDropsPendingInput(t *testing.T) {
	s := NewSession(uuid.New(), 20*time.Millisecond, nil)
	s.Start(context.Background(), fakeLoader{jobs: twoJobs()})
	waitReady(t, s)

	s.SetCategory("Sales")
	s.SetJobType("Part-time")
	s.SetRemoteOnly(true)
	s.Input("pending")
	st := s.Reset()

	assert.Equal(t, search.DefaultCriteria(), st.Criteria)
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, "", s.State().Criteria.SearchQuery)
}

func TestSession_SetCriteriaAndToggle(t *testing.T) {
	s := NewSession(uuid.New(), time.Hour, nil)
	s.Start(context.Background(), fakeLoader{jobs: twoJobs()})
	waitReady(t, s)

	st := s.SetCriteria(search.Criteria{RemoteOnly: true})
	assert.Equal(t, job.SentinelAll, st.Criteria.Category)
	require.Len(t, st.Filtered, 1)

	st = s.Toggle("2")
	assert.True(t, st.IsExpanded("2"))
	st = s.Toggle("nope")
	assert.Len(t, st.Expanded, 1)
}

func TestSession_CloseCancelsFetchAndStopsNotifying(t *testing.T) {
	block := make(chan struct{})
	s := NewSession(uuid.New(), time.Hour, nil)

	notified := 0
	s.Subscribe(func(State) { notified++ })
	s.Start(context.Background(), fakeLoader{jobs: twoJobs(), block: block})
	s.Close()
	waitReady(t, s)

	assert.True(t, s.Closed())
	assert.Equal(t, StatusLoading, s.State().Status)
	assert.Zero(t, notified)
}

func TestSession_Unsubscribe(t *testing.T) {
	s := NewSession(uuid.New(), time.Hour, nil)
	s.Start(context.Background(), fakeLoader{jobs: twoJobs()})
	waitReady(t, s)

	count := 0
	unsubscribe := s.Subscribe(func(State) { count++ })
	s.SetRemoteOnly(true)
	unsubscribe()
	s.SetRemoteOnly(false)

	assert.Equal(t, 1, count)
}

func TestSession_ListenersSeeChangesInCommitOrder(t *testing.T) {
	s := NewSession(uuid.New(), time.Hour, nil)
	s.Start(context.Background(), fakeLoader{jobs: twoJobs()})
	waitReady(t, s)

	entered := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	var mu sync.Mutex
	var delivered []string
	s.Subscribe(func(st State) {
		once.Do(func() {
			close(entered)
			<-release
		})
		mu.Lock()
		delivered = append(delivered, st.Criteria.Category)
		mu.Unlock()
	})

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		s.SetCategory("Sales")
	}()
	<-entered
	go func() {
		defer wg.Done()
		s.SetCategory("Engineering")
	}()
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"Sales", "Engineering"}, delivered)
	assert.Equal(t, s.State().Criteria.Category, delivered[len(delivered)-1])
}
