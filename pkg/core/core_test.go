package core

import (
	"context"
	"testing"

	errs "github.com/LambdaTest/herald/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestVerifyDriver(t *testing.T) {
	for _, d := range []SCMDriver{DriverGithub, DriverGitlab, DriverBitbucket} {
		assert.NoError(t, d.VerifyDriver(), d)
		assert.NotEmpty(t, d.PublicEndpoint(), d)
	}
	assert.ErrorIs(t, SCMDriver("gitea").VerifyDriver(), errs.ErrInvalidDriver)
	assert.Empty(t, SCMDriver("gitea").PublicEndpoint())
}

func TestRoutingBuildTypeID(t *testing.T) {
	build := &Build{ID: "B1", BuildType: &BuildType{ID: "Infra_Deploy"}}
	assert.Equal(t, "Infra_Deploy", (&LifecycleEvent{Build: build}).RoutingBuildTypeID())
	assert.Equal(t, "Infra_Release", (&LifecycleEvent{Build: build, BuildTypeID: "Infra_Release"}).RoutingBuildTypeID())
	assert.Empty(t, (&LifecycleEvent{Build: &Build{ID: "B1"}}).RoutingBuildTypeID())
}

func TestPublisherParamsClone(t *testing.T) {
	p := &PublisherParams{FeatureID: "f1", Extra: map[string]string{"owner": "infra"}}
	c := p.Clone()
	c.Context = "ci/lint"
	c.Extra["owner"] = "web"
	assert.Empty(t, p.Context)
	assert.Equal(t, "infra", p.Extra["owner"])
	assert.Nil(t, (&PublisherParams{}).Clone().Extra)
}

func TestStatusUpdateKey(t *testing.T) {
	u := &StatusUpdate{ID: "u1", EventID: "e1", FeatureID: "f1", BuildID: "B1", RepoSlug: "LambdaTest/herald", CommitID: "6dcb09b", Label: "Deploy (Infra)", State: StatusPending}
	replay := *u
	replay.ID = "u2"
	assert.Equal(t, u.Key(), replay.Key())

	retried := *u
	retried.ID = "u3"
	retried.EventID = "e3"
	assert.NotEqual(t, u.Key(), retried.Key())

	otherRevision := *u
	otherRevision.CommitID = "a1b2c3d"
	assert.NotEqual(t, u.Key(), otherRevision.Key())

	direct := &StatusUpdate{ID: "u4", FeatureID: "f1"}
	again := &StatusUpdate{ID: "u5", FeatureID: "f1"}
	assert.NotEqual(t, direct.Key(), again.Key())
}

func TestEventIDContext(t *testing.T) {
	assert.Empty(t, EventIDFromContext(context.Background()))
	assert.Equal(t, "e1", EventIDFromContext(WithEventID(context.Background(), "e1")))
}
