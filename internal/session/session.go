// Package session holds the in-memory view of the current prompt and keeps it
// in step with the persisted slot.
//
// A Session moves between four states:
//
//	Idle    --Submit--> Loading
//	Loading --success--> Ready   (prompt saved)
//	Loading --failure--> Error   (slot untouched)
//	Ready   --Clear-->   Idle    (slot cleared)
//	Ready   --Submit--> Loading
//	Error   --Submit--> Loading
//
// Submit while Loading is ignored.
package session

import (
	"context"
	"strings"
	"sync"

	"github.com/joestump/ambient-prompt/internal/promptclient"
)

// Status names a session state.
type Status int

const (
	Idle Status = iota
	Loading
	Ready
	Error
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// State is a snapshot of the session. Prompt is set only when Ready; Kind and
// Message only when Error.
type State struct {
	Status  Status
	Prompt  string
	Kind    promptclient.ErrorKind
	Message string
}

// Requester issues one prompt request. Failures should be *promptclient.Error.
type Requester interface {
	RequestPrompt(ctx context.Context, seed string) (string, error)
}

// Store is the persisted single-slot capability. Its methods never fail.
type Store interface {
	Save(prompt string)
	Load() (string, bool)
	Clear()
}

// Session coordinates a Requester and a Store. It is safe for concurrent use,
// but listeners registered with Watch must not call back into the Session.
type Session struct {
	requester Requester
	store     Store

	mu        sync.Mutex
	state     State
	gen       uint64
	cancel    context.CancelFunc
	settled   chan struct{}
	closed    bool
	listeners []func(State)
}

// New creates a Session seeded from the store: Ready when a prompt was
// persisted earlier, Idle otherwise.
func New(requester Requester, store Store) *Session {
	s := &Session{requester: requester, store: store}
	if prompt, ok := store.Load(); ok {
		s.state = State{Status: Ready, Prompt: prompt}
	}
	return s
}

// State returns the current snapshot.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Watch registers fn to receive every state the session enters, in order.
func (s *Session) Watch(fn func(State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Submit starts generating a prompt for seed. It reports false and changes
// nothing when seed is blank, a request is already in flight, or the session
// is closed.
func (s *Session) Submit(ctx context.Context, seed string) bool {
	seed = strings.TrimSpace(seed)
	if seed == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.state.Status == Loading {
		return false
	}

	reqCtx, cancel := context.WithCancel(ctx)
	s.gen++
	s.cancel = cancel
	s.settled = make(chan struct{})
	s.setLocked(State{Status: Loading})

	go s.run(reqCtx, cancel, s.gen, seed)
	return true
}

func (s *Session) run(ctx context.Context, cancel context.CancelFunc, gen uint64, seed string) {
	defer cancel()
	prompt, err := s.requester.RequestPrompt(ctx, seed)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || gen != s.gen {
		return
	}

	if err != nil {
		s.setLocked(State{
			Status:  Error,
			Kind:    promptclient.KindOf(err),
			Message: promptclient.MessageOf(err),
		})
	} else {
		s.store.Save(prompt)
		s.setLocked(State{Status: Ready, Prompt: prompt})
	}
	s.finishLocked()
}

// Clear drops a Ready prompt and empties the slot. From any other state it
// does nothing and reports false.
func (s *Session) Clear() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.state.Status != Ready {
		return false
	}
	s.store.Clear()
	s.setLocked(State{Status: Idle})
	return true
}

// Wait blocks until no request is in flight and returns the resulting state.
func (s *Session) Wait(ctx context.Context) (State, error) {
	s.mu.Lock()
	settled := s.settled
	s.mu.Unlock()

	if settled != nil {
		select {
		case <-settled:
		case <-ctx.Done():
			return s.State(), ctx.Err()
		}
	}
	return s.State(), nil
}

// Close cancels any pending request. No transition happens afterwards.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.gen++
	s.finishLocked()
}

func (s *Session) setLocked(st State) {
	s.state = st
	for _, fn := range s.listeners {
		fn(st)
	}
}

// finishLocked releases the pending request's cancel func and wakes waiters.
func (s *Session) finishLocked() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	if s.settled != nil {
		close(s.settled)
		s.settled = nil
	}
}
