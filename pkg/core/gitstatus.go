package core

import (
	"context"
	"fmt"
	"time"
)

// StatusState is the state of a commit status.
type StatusState string

// StatusState values.
const (
	StatusPending  StatusState = "pending"
	StatusRunning  StatusState = "running"
	StatusSuccess  StatusState = "success"
	StatusFailure  StatusState = "failure"
	StatusError    StatusState = "error"
	StatusCanceled StatusState = "canceled"
)

// StatusUpdate is a commit status waiting to be delivered to the git SCM provider.
type StatusUpdate struct {
	ID          string      `json:"id"`
	EventID     string      `json:"event_id"`
	FeatureID   string      `json:"feature_id"`
	PublisherID string      `json:"publisher_id"`
	BuildID     string      `json:"build_id"`
	Driver      SCMDriver   `json:"driver"`
	ServerURL   string      `json:"server_url"`
	TokenPath   string      `json:"token_path"`
	RepoSlug    string      `json:"repo_slug"`
	CommitID    string      `json:"commit_id"`
	State       StatusState `json:"state"`
	Label       string      `json:"label"`
	Desc        string      `json:"desc"`
	Target      string      `json:"target"`
	Created     time.Time   `json:"created_at"`
}

// Key identifies the update for de-duplication. Replays of one lifecycle event
// share a key, while a later event reporting the same state again does not.
// Updates created outside of an event are keyed by their own ID.
func (u *StatusUpdate) Key() string {
	origin := u.EventID
	if origin == "" {
		origin = u.ID
	}
	return fmt.Sprintf("status:%s:%s:%s:%s:%s", origin, u.FeatureID, u.RepoSlug, u.CommitID, u.Label)
}

// GitStatusService sends the commit status to an external
// git SCM provider.
type GitStatusService interface {
	// Deliver posts update to the git SCM provider.
	Deliver(ctx context.Context, update *StatusUpdate) error
}

// StatusCache remembers the status updates already delivered.
type StatusCache interface {
	// Acquire marks key as in flight, returns false if it was already marked.
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	// Release forgets key.
	Release(ctx context.Context, key string) error
}
