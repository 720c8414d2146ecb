// Package session tracks one planner client moving between the home screen,
// the request form and the itinerary view.
package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"tripplanner/planner"
)

type State string

const (
	Home       State = "home"
	Collecting State = "collecting"
	Reviewing  State = "reviewing"
)

type Event string

const (
	Start         Event = "start"
	SubmitSuccess Event = "submit-success"
	SubmitFailure Event = "submit-failure"
	Back          Event = "back"
)

var ErrInvalidTransition = errors.New("invalid session transition")

var transitions = map[State]map[Event]State{
	Home: {
		Start: Collecting,
	},
	Collecting: {
		SubmitSuccess: Reviewing,
		SubmitFailure: Collecting,
		Back:          Home,
	},
	Reviewing: {
		Back: Collecting,
	},
}

// Next returns the state reached from s on e.
func Next(s State, e Event) (State, error) {
	if to, ok := transitions[s][e]; ok {
		return to, nil
	}
	return s, fmt.Errorf("%w: %s on %s", ErrInvalidTransition, e, s)
}

// Synthesizer produces a plan for a request. *planner.Engine implements it.
type Synthesizer interface {
	Synthesize(req planner.TripRequest) (*planner.TripPlan, error)
}

// Session is safe for concurrent use.
type Session struct {
	mu        sync.Mutex
	id        string
	state     State
	request   *planner.TripRequest
	plan      *planner.TripPlan
	lastError string
	createdAt time.Time
	updatedAt time.Time
}

// Snapshot is a copy of a session's fields taken under its lock.
type Snapshot struct {
	ID        string               `json:"id"`
	State     State                `json:"state"`
	Request   *planner.TripRequest `json:"request,omitempty"`
	Plan      *planner.TripPlan    `json:"plan,omitempty"`
	LastError string               `json:"last_error,omitempty"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
}

func New(id string) *Session {
	now := time.Now()
	return &Session{id: id, state: Home, createdAt: now, updatedAt: now}
}

func (s *Session) ID() string { return s.id }

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Plan returns the reviewed plan, or nil outside the Reviewing state.
func (s *Session) Plan() *planner.TripPlan {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.plan
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		ID:        s.id,
		State:     s.state,
		Request:   s.request,
		Plan:      s.plan,
		LastError: s.lastError,
		CreatedAt: s.createdAt,
		UpdatedAt: s.updatedAt,
	}
}

// Start opens the request form.
func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fire(Start)
}

// Submit runs synth on req. On success the session moves to Reviewing and
// holds the plan; on failure it stays in Collecting and the error is returned.
func (s *Session) Submit(req planner.TripRequest, synth Synthesizer) (*planner.TripPlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Collecting {
		return nil, fmt.Errorf("%w: submit on %s", ErrInvalidTransition, s.state)
	}

	s.request = &req
	plan, err := synth.Synthesize(req)
	if err != nil {
		s.lastError = err.Error()
		if ferr := s.fire(SubmitFailure); ferr != nil {
			return nil, ferr
		}
		return nil, err
	}

	s.lastError = ""
	if err := s.fire(SubmitSuccess); err != nil {
		return nil, err
	}
	s.plan = plan
	return plan, nil
}

// Back leaves the current screen. Leaving Reviewing discards the plan.
func (s *Session) Back() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fire(Back); err != nil {
		return err
	}
	s.plan = nil
	if s.state == Home {
		s.request = nil
		s.lastError = ""
	}
	return nil
}

func (s *Session) fire(e Event) error {
	to, err := Next(s.state, e)
	if err != nil {
		return err
	}
	s.state = to
	s.updatedAt = time.Now()
	return nil
}
