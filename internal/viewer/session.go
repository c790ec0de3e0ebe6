package viewer

import (
	"context"
	"log"
	"sync"
	"time"

	"job-listing/internal/domain/job"
	"job-listing/internal/search"

	"github.com/google/uuid"
)

type JobsLoader interface {
	LoadJobs(ctx context.Context) ([]*job.Job, error)
}

type Listener func(State)

// Session is one user's live listing view: the state container, the
// debounced search box and the listeners that want each committed change.
type Session struct {
	ID uuid.UUID

	// notifyMu orders fan-outs so listeners see changes in commit order.
	// It is always taken before mu.
	notifyMu   sync.Mutex
	mu         sync.Mutex
	state      State
	debouncer  *Debouncer
	listeners  map[uint64]Listener
	nextListen uint64
	lastActive time.Time
	closed     bool
	cancel     context.CancelFunc
	ready      chan struct{}
	logger     *log.Logger
	now        func() time.Time
}

func NewSession(id uuid.UUID, debounce time.Duration, logger *log.Logger) *Session {
	s := &Session{
		ID:        id,
		state:     NewState(),
		listeners: map[uint64]Listener{},
		ready:     make(chan struct{}),
		logger:    logger,
		now:       time.Now,
	}
	s.lastActive = s.now()
	s.debouncer = NewDebouncer(debounce, func(q string) {
		s.apply(func(st State) State { return st.WithSearchQuery(q) })
	})
	return s
}

// Start fetches the job page in the background. The session moves from
// loading to success or error exactly once; Ready is closed afterwards.
func (s *Session) Start(ctx context.Context, loader JobsLoader) {
	s.mu.Lock()
	if s.cancel != nil || s.closed {
		s.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.mu.Unlock()

	go func() {
		defer close(s.ready)
		if loader == nil {
			s.apply(func(st State) State { return st.Failed(errNoLoader) })
			return
		}
		jobs, err := loader.LoadJobs(ctx)
		if err != nil {
			if s.logger != nil {
				s.logger.Printf("[Viewer] session=%s load error: %v", s.ID, err)
			}
			s.apply(func(st State) State { return st.Failed(err) })
			return
		}
		if s.logger != nil {
			s.logger.Printf("[Viewer] session=%s loaded jobs=%d", s.ID, len(jobs))
		}
		s.apply(func(st State) State { return st.Loaded(jobs) })
	}()
}

func (s *Session) Ready() <-chan struct{} {
	return s.ready
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Input records free-text typed into the search box. The query is applied
// once typing has paused for the debounce period.
func (s *Session) Input(text string) {
	s.touch()
	s.debouncer.Push(text)
}

// FlushInput applies a pending search input immediately.
func (s *Session) FlushInput() State {
	s.debouncer.Flush()
	return s.State()
}

func (s *Session) SetCriteria(c search.Criteria) State {
	s.debouncer.Stop()
	return s.apply(func(st State) State { return st.WithCriteria(c) })
}

func (s *Session) SetCategory(category string) State {
	return s.apply(func(st State) State { return st.WithCategory(category) })
}

func (s *Session) SetJobType(jobType string) State {
	return s.apply(func(st State) State { return st.WithJobType(jobType) })
}

func (s *Session) SetRemoteOnly(remote bool) State {
	return s.apply(func(st State) State { return st.WithRemoteOnly(remote) })
}

// Reset clears every criterion and drops any search input still waiting
// on the debouncer.
func (s *Session) Reset() State {
	s.debouncer.Stop()
	return s.apply(func(st State) State { return st.Reset() })
}

func (s *Session) Toggle(jobID string) State {
	return s.apply(func(st State) State { return st.ToggleExpanded(jobID) })
}

// Subscribe registers fn for every committed change and returns a function
// that removes it.
func (s *Session) Subscribe(fn Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || fn == nil {
		return func() {}
	}
	id := s.nextListen
	s.nextListen++
	s.listeners[id] = fn
	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Close cancels an in-flight fetch and drops pending input and listeners.
func (s *Session) Close() {
	s.debouncer.Stop()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	if s.cancel != nil {
		s.cancel()
	}
	s.listeners = map[uint64]Listener{}
}

func (s *Session) touch() {
	s.mu.Lock()
	s.lastActive = s.now()
	s.mu.Unlock()
}

// apply commits a transition and delivers the result to every listener
// before the next transition can be delivered. Listeners must not call back
// into the session's mutating methods.
func (s *Session) apply(fn func(State) State) State {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	if s.closed {
		st := s.state
		s.mu.Unlock()
		return st
	}
	s.state = fn(s.state)
	s.lastActive = s.now()
	st := s.state
	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(st)
	}
	return st
}
