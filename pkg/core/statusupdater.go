package core

import "context"

// StatusHandler reports build state for one VCS root and one set of publisher params.
// Callers must check the capability before invoking the matching report action.
type StatusHandler interface {
	// ShouldReportOnStart reports whether a started build is published.
	ShouldReportOnStart() bool
	// ShouldReportOnFinish reports whether a finished build is published.
	ShouldReportOnFinish() bool
	// ReportStarted publishes the started state of build for revision.
	ReportStarted(ctx context.Context, revision *Revision, build *Build) error
	// ReportCompleted publishes the terminal state of build for revision.
	ReportCompleted(ctx context.Context, revision *Revision, build *Build) error
}

// ChangeStatusUpdater creates status handlers.
type ChangeStatusUpdater interface {
	// GetUpdateHandler returns the handler for root configured by params on behalf of publisher.
	GetUpdateHandler(root *VcsRoot, params *PublisherParams, publisher CommitStatusPublisher) StatusHandler
}

// StatusScheduler accepts status updates for delivery.
type StatusScheduler interface {
	// Schedule hands update over for delivery.
	Schedule(ctx context.Context, update *StatusUpdate) error
}
