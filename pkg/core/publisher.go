package core

import "context"

// Keys and fixed values shared by commit status publishers.
const (
	// GitHubPublisherID is the identity the CI engine uses to route build feature settings.
	GitHubPublisherID = "githubStatusPublisher"
	// GitHubCustomContextBuildParam is the build parameter overriding the default status context.
	GitHubCustomContextBuildParam = "commitStatusPublisher.githubContext"
	// RemovedBuildTypeContext is the status context used when the build configuration no longer exists.
	RemovedBuildTypeContext = "<Removed build configuration>"
)

// CommitStatusPublisher receives build lifecycle callbacks for one build feature
// and decides whether a commit status report is emitted.
// Every callback returns true once the event has been processed; a failed
// report action is returned as an *errors.PublicationError.
type CommitStatusPublisher interface {
	// ID returns the publisher kind.
	ID() string
	// FeatureID returns the build feature this publisher instance is configured for.
	FeatureID() string
	// BuildStarted is called when a build is kicked off.
	BuildStarted(ctx context.Context, build *Build, revision *Revision) (bool, error)
	// BuildFinished is called when a build completes either with success or failure.
	BuildFinished(ctx context.Context, build *Build, revision *Revision) (bool, error)
	// BuildInterrupted is called when a build is cancelled.
	BuildInterrupted(ctx context.Context, build *Build, revision *Revision) (bool, error)
	// BuildFailureDetected is called on an early failure of a composite build.
	BuildFailureDetected(ctx context.Context, build *Build, revision *Revision) (bool, error)
	// BuildMarkedAsSuccessful is called when a failed build is overridden to success or a sub-build is retried.
	BuildMarkedAsSuccessful(ctx context.Context, build *Build, revision *Revision, buildInProgress bool) (bool, error)
}

// PublisherParams holds the build feature settings a publisher is configured with.
type PublisherParams struct {
	FeatureID      string    `json:"feature_id"`
	Driver         SCMDriver `json:"driver"`
	ServerURL      string    `json:"server_url"`
	TokenPath      string    `json:"token_path"`
	ReportOnStart  bool      `json:"report_on_start"`
	ReportOnFinish bool      `json:"report_on_finish"`
	// Context is derived per build by the publisher and is empty in the configured settings.
	Context string `json:"context"`
	// Extra carries passthrough keys the publisher does not interpret.
	Extra map[string]string `json:"extra,omitempty"`
}

// Clone returns a deep copy of p.
func (p *PublisherParams) Clone() *PublisherParams {
	c := *p
	if p.Extra != nil {
		c.Extra = make(map[string]string, len(p.Extra))
		for k, v := range p.Extra {
			c.Extra[k] = v
		}
	}
	return &c
}

// ParameterResolver resolves parameter references contained in a value.
type ParameterResolver interface {
	// Resolve expands the references in value against params.
	Resolve(value string, params map[string]string) (string, error)
}

// PublisherRegistry returns the publishers configured for a build configuration.
type PublisherRegistry interface {
	// PublishersFor returns the publishers of the build type, nil if none are configured.
	PublishersFor(buildTypeID string) []CommitStatusPublisher
}
