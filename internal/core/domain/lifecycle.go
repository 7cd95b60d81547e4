package domain

import (
	"errors"
	"time"
)

// State represents the publication state shared by resumes and vacancies.
type State string

const (
	StateDraft     State = "DRAFT"
	StatePublished State = "PUBLISHED"
	StateHidden    State = "HIDDEN"
)

// Action names a lifecycle operation. It is recorded in the audit trail.
type Action string

const (
	ActionCreate  Action = "create"
	ActionUpdate  Action = "update"
	ActionPublish Action = "publish"
	ActionHide    Action = "hide"
)

// validTransitions defines the allowed state machine transitions.
// HIDDEN is terminal: there is no republish.
var validTransitions = map[State][]State{
	StateDraft:     {StatePublished},
	StatePublished: {StateHidden},
}

// ErrWrongState is returned by Lifecycle when an action is not allowed in the
// current state. Services translate it into the resource specific error.
var ErrWrongState = errors.New("wrong lifecycle state")

// Valid reports whether s is one of the known states.
func (s State) Valid() bool {
	switch s {
	case StateDraft, StatePublished, StateHidden:
		return true
	}
	return false
}

// CanTransitionTo reports whether a transition from current state to next is valid.
func (s State) CanTransitionTo(next State) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Lifecycle is embedded by every publishable aggregate.
type Lifecycle struct {
	State       State
	CreatedAt   time.Time
	PublishedAt *time.Time
}

// NewLifecycle returns the initial DRAFT lifecycle.
func NewLifecycle(now time.Time) Lifecycle {
	return Lifecycle{State: StateDraft, CreatedAt: now}
}

// Publish moves DRAFT to PUBLISHED and stamps published_at.
func (l *Lifecycle) Publish(now time.Time) error {
	if !l.State.CanTransitionTo(StatePublished) {
		return ErrWrongState
	}
	l.State = StatePublished
	l.PublishedAt = &now
	return nil
}

// Hide moves PUBLISHED to HIDDEN and clears published_at.
func (l *Lifecycle) Hide() error {
	if !l.State.CanTransitionTo(StateHidden) {
		return ErrWrongState
	}
	l.State = StateHidden
	l.PublishedAt = nil
	return nil
}

// EnsureEditable fails unless fields may still be changed.
func (l *Lifecycle) EnsureEditable() error {
	if l.State != StateDraft {
		return ErrWrongState
	}
	return nil
}

// Publishable is implemented by aggregates driven by the lifecycle engine.
type Publishable interface {
	ResourceID() int64
	LifecycleState() *Lifecycle
}

// Resource identifies a publishable aggregate type together with the errors
// reported for it.
type Resource struct {
	Name       string
	NotFound   error
	WrongState error
}

var (
	ResumeResource  = Resource{Name: "resume", NotFound: ErrResumeNotFound, WrongState: ErrResumeWrongState}
	VacancyResource = Resource{Name: "vacancy", NotFound: ErrVacancyNotFound, WrongState: ErrVacancyWrongState}
)
