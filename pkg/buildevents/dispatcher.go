// Package buildevents routes the build lifecycle events of the CI engine to
// the commit status publishers of the build.
package buildevents

import (
	"context"
	"errors"
	"time"

	"github.com/LambdaTest/herald/pkg/core"
	errs "github.com/LambdaTest/herald/pkg/errors"
	"github.com/LambdaTest/herald/pkg/lumber"
	"github.com/LambdaTest/herald/pkg/metrics"
	"github.com/LambdaTest/herald/pkg/utils"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/multierr"
)

const tracerName = "github.com/LambdaTest/herald/pkg/buildevents"

type dispatcher struct {
	registry core.PublisherRegistry
	problems core.PublisherProblems
	metrics  *metrics.Metrics
	logger   lumber.Logger
}

// New returns the EventDispatcher routing events through registry.
func New(registry core.PublisherRegistry,
	problems core.PublisherProblems,
	m *metrics.Metrics,
	logger lumber.Logger) core.EventDispatcher {
	return &dispatcher{
		registry: registry,
		problems: problems,
		metrics:  m,
		logger:   logger,
	}
}

// Dispatch invokes the callback matching the event kind on every publisher and
// revision. Every pair is attempted; the failures are combined in the returned error.
func (d *dispatcher) Dispatch(ctx context.Context, event *core.LifecycleEvent) error {
	if event.ID == "" {
		event.ID = utils.GenerateUUID()
	}
	ctx = core.WithEventID(ctx, event.ID)
	ctx, span := otel.Tracer(tracerName).Start(ctx, "buildevents.Dispatch")
	defer span.End()
	span.SetAttributes(
		attribute.String("build.id", event.Build.ID),
		attribute.String("event.id", event.ID),
		attribute.String("event.kind", string(event.Kind)),
	)

	if !knownKind(event.Kind) {
		d.metrics.IncEvent(string(event.Kind), metrics.OutcomeFailure)
		return errs.ErrUnknownEventKind
	}
	publishers := d.registry.PublishersFor(event.RoutingBuildTypeID())
	if len(publishers) == 0 {
		d.logger.Debugf("no commit status publishers for build %s of build configuration %q", event.Build.ID, event.RoutingBuildTypeID())
		d.metrics.IncEvent(string(event.Kind), metrics.OutcomeSkipped)
		return nil
	}

	var err error
	for _, p := range publishers {
		for _, revision := range event.Revisions {
			err = multierr.Append(err, d.publish(ctx, p, event, revision))
		}
	}
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		d.metrics.IncEvent(string(event.Kind), metrics.OutcomeFailure)
		return err
	}
	d.metrics.IncEvent(string(event.Kind), metrics.OutcomeSuccess)
	return nil
}

func (d *dispatcher) publish(ctx context.Context,
	p core.CommitStatusPublisher,
	event *core.LifecycleEvent,
	revision *core.Revision) error {
	processed, err := invoke(ctx, p, event, revision)
	if err != nil {
		d.metrics.IncPublication(p.ID(), metrics.OutcomeFailure)
		d.logger.Errorf("publisher %s of feature %s failed on %s of build %s: %v", p.ID(), p.FeatureID(), event.Kind, event.Build.ID, err)
		var pubErr *errs.PublicationError
		if errors.As(err, &pubErr) {
			d.reportProblem(ctx, p, event.Build.ID, pubErr)
		}
		return err
	}
	if !processed {
		d.metrics.IncPublication(p.ID(), metrics.OutcomeSkipped)
		return nil
	}
	d.metrics.IncPublication(p.ID(), metrics.OutcomeSuccess)
	return nil
}

func (d *dispatcher) reportProblem(ctx context.Context, p core.CommitStatusPublisher, buildID string, pubErr *errs.PublicationError) {
	problem := &core.Problem{
		FeatureID:   p.FeatureID(),
		PublisherID: pubErr.PublisherID,
		BuildID:     buildID,
		Message:     pubErr.Error(),
		ReportedAt:  time.Now(),
	}
	if err := d.problems.ReportProblem(ctx, problem); err != nil {
		d.logger.Errorf("failed to report problem of feature %s for build %s: %v", p.FeatureID(), buildID, err)
	}
}

func invoke(ctx context.Context,
	p core.CommitStatusPublisher,
	event *core.LifecycleEvent,
	revision *core.Revision) (bool, error) {
	switch event.Kind {
	case core.EventBuildStarted:
		return p.BuildStarted(ctx, event.Build, revision)
	case core.EventBuildFinished:
		return p.BuildFinished(ctx, event.Build, revision)
	case core.EventBuildInterrupted:
		return p.BuildInterrupted(ctx, event.Build, revision)
	case core.EventBuildFailureDetected:
		return p.BuildFailureDetected(ctx, event.Build, revision)
	case core.EventBuildMarkedAsSuccessful:
		return p.BuildMarkedAsSuccessful(ctx, event.Build, revision, event.BuildInProgress)
	default:
		return false, errs.ErrUnknownEventKind
	}
}

func knownKind(kind core.EventKind) bool {
	switch kind {
	case core.EventBuildStarted,
		core.EventBuildFinished,
		core.EventBuildInterrupted,
		core.EventBuildFailureDetected,
		core.EventBuildMarkedAsSuccessful:
		return true
	}
	return false
}
