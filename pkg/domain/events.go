package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventRunStart    EventType = "run_start"
	EventRunComplete EventType = "run_complete"
	EventBuildFailed EventType = "build_failed"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp  time.Time `json:"timestamp"`
	Type       EventType `json:"type"`
	DocumentID string    `json:"document_id,omitempty"`
}

// RunEvent describes a simulation request.
type RunEvent struct {
	EventBase
	Input         string        `json:"input"`
	Symbols       int           `json:"symbols"`
	Accepted      bool          `json:"accepted"`
	Configuration []string      `json:"configuration,omitempty"`
	Duration      time.Duration `json:"duration,omitempty"`
}

// BuildEvent describes an automaton that failed validation.
type BuildEvent struct {
	EventBase
	Kind string `json:"kind"`
	Err  error  `json:"-"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnRunStart    func(context.Context, *RunEvent)
	OnRunComplete func(context.Context, *RunEvent)
	OnBuildFailed func(context.Context, *BuildEvent)
}

// ChainHooks combines several hook sets; each callback runs in argument order.
func ChainHooks(all ...LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnRunStart: func(ctx context.Context, e *RunEvent) {
			for _, h := range all {
				if h.OnRunStart != nil {
					h.OnRunStart(ctx, e)
				}
			}
		},
		OnRunComplete: func(ctx context.Context, e *RunEvent) {
			for _, h := range all {
				if h.OnRunComplete != nil {
					h.OnRunComplete(ctx, e)
				}
			}
		},
		OnBuildFailed: func(ctx context.Context, e *BuildEvent) {
			for _, h := range all {
				if h.OnBuildFailed != nil {
					h.OnBuildFailed(ctx, e)
				}
			}
		},
	}
}
