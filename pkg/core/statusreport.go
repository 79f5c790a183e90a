package core

import (
	"context"
	"time"

	"gopkg.in/guregu/null.v4/zero"
)

// StatusReport is the record of one delivery attempt of a StatusUpdate.
type StatusReport struct {
	ID          string      `db:"id" json:"id"`
	UpdateID    string      `db:"update_id" json:"update_id"`
	FeatureID   string      `db:"feature_id" json:"feature_id"`
	BuildID     string      `db:"build_id" json:"build_id"`
	Driver      SCMDriver   `db:"driver" json:"driver"`
	RepoSlug    string      `db:"repo_slug" json:"repo_slug"`
	CommitID    string      `db:"commit_id" json:"commit_id"`
	Context     string      `db:"context" json:"context"`
	State       StatusState `db:"state" json:"state"`
	Description string      `db:"description" json:"description"`
	TargetURL   string      `db:"target_url" json:"target_url"`
	Delivered   bool        `db:"delivered" json:"delivered"`
	Attempts    int         `db:"attempts" json:"attempts"`
	Error       zero.String `db:"error" json:"error,omitempty"`
	Created     time.Time   `db:"created_at" json:"created_at"`
	DeliveredAt zero.Time   `db:"delivered_at" json:"delivered_at,omitempty"`
}

// StatusReportStore defines datastore operation for working with status reports.
type StatusReportStore interface {
	// Create persists a new status report.
	Create(ctx context.Context, report *StatusReport) error
	// FindByCommit returns the reports of a commit, most recent first.
	FindByCommit(ctx context.Context, repoSlug, commitID string) ([]*StatusReport, error)
}
