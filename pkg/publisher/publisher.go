// Package publisher decides which build lifecycle events are reported as
// commit statuses and with which context.
package publisher

import (
	"context"

	"github.com/LambdaTest/herald/pkg/core"
	errs "github.com/LambdaTest/herald/pkg/errors"
	"github.com/LambdaTest/herald/pkg/lumber"
)

// GitHubPublisher reports build state to the GitHub commit status API.
// It keeps no state between callbacks and is safe for concurrent use.
type GitHubPublisher struct {
	params   *core.PublisherParams
	updater  core.ChangeStatusUpdater
	resolver core.ParameterResolver
	logger   lumber.Logger
}

// New returns a GitHubPublisher for the build feature described by params.
func New(params *core.PublisherParams,
	updater core.ChangeStatusUpdater,
	resolver core.ParameterResolver,
	logger lumber.Logger) *GitHubPublisher {
	return &GitHubPublisher{
		params:   params.Clone(),
		updater:  updater,
		resolver: resolver,
		logger:   logger,
	}
}

func (p *GitHubPublisher) String() string {
	return "github"
}

// ID returns the publisher kind.
func (p *GitHubPublisher) ID() string {
	return core.GitHubPublisherID
}

// FeatureID returns the build feature the publisher is configured for.
func (p *GitHubPublisher) FeatureID() string {
	return p.params.FeatureID
}

// ServerURL returns the GitHub API endpoint statuses are published to.
func (p *GitHubPublisher) ServerURL() string {
	return p.params.ServerURL
}

// BuildStarted reports the build as started.
func (p *GitHubPublisher) BuildStarted(ctx context.Context, build *core.Build, revision *core.Revision) (bool, error) {
	p.logger.Debugf("buildStarted: %s", build.ID)
	if err := p.updateBuildStatus(ctx, build, revision, true); err != nil {
		return false, err
	}
	return true, nil
}

// BuildFinished reports the final state of a build that completed with success or failure.
func (p *GitHubPublisher) BuildFinished(ctx context.Context, build *core.Build, revision *core.Revision) (bool, error) {
	p.logger.Debugf("buildFinished: %s %s", build.ID, build.Status)
	if err := p.updateBuildStatus(ctx, build, revision, false); err != nil {
		return false, err
	}
	return true, nil
}

// BuildInterrupted reports the final state of a cancelled build.
func (p *GitHubPublisher) BuildInterrupted(ctx context.Context, build *core.Build, revision *core.Revision) (bool, error) {
	p.logger.Debugf("buildInterrupted: %s %s", build.ID, build.Status)
	if err := p.updateBuildStatus(ctx, build, revision, false); err != nil {
		return false, err
	}
	return true, nil
}

// BuildFailureDetected never reports. The event fires for composite builds
// before the failing part has finished, often because its agent was preempted,
// and a terminal status published here would be premature.
func (p *GitHubPublisher) BuildFailureDetected(ctx context.Context, build *core.Build, revision *core.Revision) (bool, error) {
	p.logger.Debugf("buildFailureDetected: %s %s", build.ID, build.Status)
	return true, nil
}

// BuildMarkedAsSuccessful is called when a failed build is overridden to success
// and when a sub-build is retried. A build still in progress is reported as started.
func (p *GitHubPublisher) BuildMarkedAsSuccessful(ctx context.Context,
	build *core.Build,
	revision *core.Revision,
	buildInProgress bool) (bool, error) {
	p.logger.Debugf("buildMarkedAsSuccessful: %s %s %t", build.ID, build.Status, buildInProgress)
	if err := p.updateBuildStatus(ctx, build, revision, buildInProgress); err != nil {
		return false, err
	}
	return true, nil
}

func (p *GitHubPublisher) updateBuildStatus(ctx context.Context, build *core.Build, revision *core.Revision, isStarting bool) error {
	h := p.updater.GetUpdateHandler(revision.Root, p.resolveParams(build), p)

	if isStarting && !h.ShouldReportOnStart() {
		return nil
	}
	if !isStarting && !h.ShouldReportOnFinish() {
		return nil
	}

	if revision.Root.VcsName != core.VcsGit {
		p.logger.Warnf("No revisions were found to update GitHub status for build %s, VCS root %s is of kind %q. Please check you have Git VCS roots in the build configuration",
			build.ID, revision.Root.ID, revision.Root.VcsName)
		return nil
	}

	var err error
	if isStarting {
		err = h.ReportStarted(ctx, revision, build)
	} else {
		err = h.ReportCompleted(ctx, revision, build)
	}
	if err != nil {
		return errs.NewPublicationError(p.ID(), build.ID, revision.Revision, err)
	}
	return nil
}
