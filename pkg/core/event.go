package core

import "context"

// EventKind is the kind of a build lifecycle event.
type EventKind string

// EventKind values.
const (
	EventBuildStarted            EventKind = "buildStarted"
	EventBuildFinished           EventKind = "buildFinished"
	EventBuildInterrupted        EventKind = "buildInterrupted"
	EventBuildFailureDetected    EventKind = "buildFailureDetected"
	EventBuildMarkedAsSuccessful EventKind = "buildMarkedAsSuccessful"
)

// LifecycleEvent is a build lifecycle event emitted by the CI engine.
type LifecycleEvent struct {
	ID              string      `json:"id"`
	Kind            EventKind   `json:"kind" binding:"required,oneof=buildStarted buildFinished buildInterrupted buildFailureDetected buildMarkedAsSuccessful"`
	BuildTypeID     string      `json:"build_type_id"`
	Build           *Build      `json:"build" binding:"required"`
	Revisions       []*Revision `json:"revisions" binding:"required,min=1,dive"`
	BuildInProgress bool        `json:"build_in_progress"`
}

// EventDispatcher routes lifecycle events to the publishers configured for the build.
type EventDispatcher interface {
	// Dispatch delivers event to every publisher and revision of the build.
	Dispatch(ctx context.Context, event *LifecycleEvent) error
}

// RoutingBuildTypeID returns the build configuration the event is routed by.
// The CI engine sets BuildTypeID even when the configuration has been removed.
func (e *LifecycleEvent) RoutingBuildTypeID() string {
	if e.BuildTypeID != "" {
		return e.BuildTypeID
	}
	return e.Build.BuildTypeID()
}

// QueueConsumer consumes a kafka topic until its context is cancelled.
type QueueConsumer interface {
	// Run blocks, handling messages one at a time.
	Run(ctx context.Context)
	// Close closes the underlying reader.
	Close() error
}

type eventIDKey struct{}

// WithEventID returns a copy of ctx carrying the ID of the lifecycle event being dispatched.
func WithEventID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, eventIDKey{}, id)
}

// EventIDFromContext returns the lifecycle event ID carried by ctx, if any.
func EventIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(eventIDKey{}).(string)
	return id
}
