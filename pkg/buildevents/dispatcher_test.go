package buildevents

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/LambdaTest/herald/pkg/core"
	errs "github.com/LambdaTest/herald/pkg/errors"
	"github.com/LambdaTest/herald/pkg/lumber"
	"github.com/LambdaTest/herald/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

type call struct {
	method     string
	revision   string
	inProgress bool
	eventID    string
}

type fakePublisher struct {
	featureID string
	failOn    string

	mu    sync.Mutex
	calls []call
}

func (p *fakePublisher) ID() string        { return core.GitHubPublisherID }
func (p *fakePublisher) FeatureID() string { return p.featureID }

func (p *fakePublisher) record(ctx context.Context, method string, build *core.Build, revision *core.Revision, inProgress bool) (bool, error) {
	p.mu.Lock()
	p.calls = append(p.calls, call{method: method, revision: revision.Revision, inProgress: inProgress, eventID: core.EventIDFromContext(ctx)})
	p.mu.Unlock()
	if revision.Revision == p.failOn {
		return false, errs.NewPublicationError(p.ID(), build.ID, revision.Revision, errors.New("github: 502"))
	}
	return true, nil
}

func (p *fakePublisher) BuildStarted(ctx context.Context, b *core.Build, r *core.Revision) (bool, error) {
	return p.record(ctx, "started", b, r, false)
}

func (p *fakePublisher) BuildFinished(ctx context.Context, b *core.Build, r *core.Revision) (bool, error) {
	return p.record(ctx, "finished", b, r, false)
}

func (p *fakePublisher) BuildInterrupted(ctx context.Context, b *core.Build, r *core.Revision) (bool, error) {
	return p.record(ctx, "interrupted", b, r, false)
}

func (p *fakePublisher) BuildFailureDetected(ctx context.Context, b *core.Build, r *core.Revision) (bool, error) {
	return p.record(ctx, "failureDetected", b, r, false)
}

func (p *fakePublisher) BuildMarkedAsSuccessful(ctx context.Context, b *core.Build, r *core.Revision, inProgress bool) (bool, error) {
	return p.record(ctx, "markedAsSuccessful", b, r, inProgress)
}

type fakeRegistry map[string][]core.CommitStatusPublisher

func (r fakeRegistry) PublishersFor(buildTypeID string) []core.CommitStatusPublisher {
	return r[buildTypeID]
}

type fakeProblems struct {
	mu       sync.Mutex
	problems []*core.Problem
}

func (f *fakeProblems) ReportProblem(ctx context.Context, problem *core.Problem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.problems = append(f.problems, problem)
	return nil
}

func (f *fakeProblems) ClearProblem(ctx context.Context, buildID, featureID string) error { return nil }

func (f *fakeProblems) FindByBuild(ctx context.Context, buildID string) ([]*core.Problem, error) {
	return f.problems, nil
}

func newLogger(t *testing.T) lumber.Logger {
	logger, err := lumber.NewLogger(&lumber.LoggingConfig{EnableConsole: true, ConsoleLevel: lumber.Debug}, false, lumber.InstanceZapLogger)
	require.NoError(t, err)
	return logger
}

func gitRevision(sha string) *core.Revision {
	return &core.Revision{
		Root:     &core.VcsRoot{ID: "root", VcsName: core.VcsGit, URL: "https://github.com/LambdaTest/herald.git"},
		Revision: sha,
	}
}

func newEvent(kind core.EventKind) *core.LifecycleEvent {
	return &core.LifecycleEvent{
		ID:   "e1",
		Kind: kind,
		Build: &core.Build{
			ID:        "B1",
			Status:    core.BuildSuccess,
			BuildType: &core.BuildType{ID: "Infra_Deploy", Name: "Deploy", Project: core.Project{Name: "Infra"}},
		},
		Revisions: []*core.Revision{gitRevision("aaa"), gitRevision("bbb")},
	}
}

func TestDispatchRoutesKinds(t *testing.T) {
	tests := []struct {
		kind       core.EventKind
		method     string
		inProgress bool
	}{
		{core.EventBuildStarted, "started", false},
		{core.EventBuildFinished, "finished", false},
		{core.EventBuildInterrupted, "interrupted", false},
		{core.EventBuildFailureDetected, "failureDetected", false},
		{core.EventBuildMarkedAsSuccessful, "markedAsSuccessful", true},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			p1 := &fakePublisher{featureID: "f1"}
			p2 := &fakePublisher{featureID: "f2"}
			d := New(fakeRegistry{"Infra_Deploy": {p1, p2}}, &fakeProblems{}, metrics.New(prometheus.NewRegistry()), newLogger(t))

			event := newEvent(tt.kind)
			event.BuildInProgress = tt.inProgress
			require.NoError(t, d.Dispatch(context.Background(), event))

			want := []call{
				{method: tt.method, revision: "aaa", inProgress: tt.inProgress, eventID: "e1"},
				{method: tt.method, revision: "bbb", inProgress: tt.inProgress, eventID: "e1"},
			}
			assert.Equal(t, want, p1.calls)
			assert.Equal(t, want, p2.calls)
		})
	}
}

func TestDispatchCollectsFailures(t *testing.T) {
	failing := &fakePublisher{featureID: "f1", failOn: "aaa"}
	healthy := &fakePublisher{featureID: "f2"}
	problems := &fakeProblems{}
	d := New(fakeRegistry{"Infra_Deploy": {failing, healthy}}, problems, metrics.New(prometheus.NewRegistry()), newLogger(t))

	err := d.Dispatch(context.Background(), newEvent(core.EventBuildFinished))
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 1)
	var pubErr *errs.PublicationError
	require.True(t, errors.As(err, &pubErr))
	assert.Equal(t, "aaa", pubErr.Revision)

	// the failure does not stop the remaining revisions and publishers
	assert.Len(t, failing.calls, 2)
	assert.Len(t, healthy.calls, 2)

	require.Len(t, problems.problems, 1)
	assert.Equal(t, "f1", problems.problems[0].FeatureID)
	assert.Equal(t, "B1", problems.problems[0].BuildID)
	assert.Equal(t, core.GitHubPublisherID, problems.problems[0].PublisherID)
}

func TestDispatchAssignsEventID(t *testing.T) {
	p := &fakePublisher{featureID: "f1"}
	d := New(fakeRegistry{"Infra_Deploy": {p}}, &fakeProblems{}, nil, newLogger(t))

	event := newEvent(core.EventBuildStarted)
	event.ID = ""
	require.NoError(t, d.Dispatch(context.Background(), event))
	require.NotEmpty(t, event.ID)
	require.Len(t, p.calls, 2)
	assert.Equal(t, event.ID, p.calls[0].eventID)
	assert.Equal(t, event.ID, p.calls[1].eventID)
}

func TestDispatchWithoutPublishers(t *testing.T) {
	d := New(fakeRegistry{}, &fakeProblems{}, nil, newLogger(t))
	assert.NoError(t, d.Dispatch(context.Background(), newEvent(core.EventBuildStarted)))
}

func TestDispatchRemovedBuildType(t *testing.T) {
	p := &fakePublisher{featureID: "f1"}
	d := New(fakeRegistry{"Infra_Deploy": {p}}, &fakeProblems{}, nil, newLogger(t))

	event := newEvent(core.EventBuildFinished)
	event.Build.BuildType = nil
	event.BuildTypeID = "Infra_Deploy"
	require.NoError(t, d.Dispatch(context.Background(), event))
	assert.Len(t, p.calls, 2)
}

func TestDispatchUnknownKind(t *testing.T) {
	p := &fakePublisher{featureID: "f1"}
	d := New(fakeRegistry{"Infra_Deploy": {p}}, &fakeProblems{}, nil, newLogger(t))

	err := d.Dispatch(context.Background(), newEvent("buildQueued"))
	assert.ErrorIs(t, err, errs.ErrUnknownEventKind)
	assert.Empty(t, p.calls)
}
