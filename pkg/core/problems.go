package core

import (
	"context"
	"time"
)

// Problem is a failure of a build feature to publish a commit status.
type Problem struct {
	FeatureID   string    `json:"feature_id"`
	PublisherID string    `json:"publisher_id"`
	BuildID     string    `json:"build_id"`
	Message     string    `json:"message"`
	ReportedAt  time.Time `json:"reported_at"`
}

// PublisherProblems keeps track of the publication problems of builds.
type PublisherProblems interface {
	// ReportProblem records problem, replacing the previous problem of the same build feature.
	ReportProblem(ctx context.Context, problem *Problem) error
	// ClearProblem removes the problem of featureID for buildID.
	ClearProblem(ctx context.Context, buildID, featureID string) error
	// FindByBuild returns the problems of buildID.
	FindByBuild(ctx context.Context, buildID string) ([]*Problem, error)
}
