package settings

import (
	"testing"

	"github.com/LambdaTest/herald/config"
	"github.com/LambdaTest/herald/pkg/core"
	errs "github.com/LambdaTest/herald/pkg/errors"
	"github.com/LambdaTest/herald/pkg/lumber"
	"github.com/LambdaTest/herald/pkg/publisher"
	"github.com/LambdaTest/herald/pkg/resolver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLogger(t *testing.T) lumber.Logger {
	logger, err := lumber.NewLogger(&lumber.LoggingConfig{EnableConsole: true}, false, lumber.InstanceZapLogger)
	require.NoError(t, err)
	return logger
}

func githubFeature(id string, buildTypes ...string) config.PublisherFeature {
	return config.PublisherFeature{
		FeatureID:      id,
		Publisher:      core.GitHubPublisherID,
		BuildTypes:     buildTypes,
		ServerURL:      "https://api.github.com",
		ReportOnStart:  true,
		ReportOnFinish: true,
	}
}

func TestPublishersFor(t *testing.T) {
	features := []config.PublisherFeature{
		githubFeature("f1", "Infra_Deploy", "Infra_Lint"),
		githubFeature("f2", "Infra_Deploy"),
	}
	r, err := New(features, nil, resolver.New(), newLogger(t))
	require.NoError(t, err)

	deploy := r.PublishersFor("Infra_Deploy")
	require.Len(t, deploy, 2)
	assert.Equal(t, "f1", deploy[0].FeatureID())
	assert.Equal(t, "f2", deploy[1].FeatureID())
	assert.Equal(t, core.GitHubPublisherID, deploy[0].ID())

	gh, ok := deploy[0].(*publisher.GitHubPublisher)
	require.True(t, ok)
	assert.Equal(t, "https://api.github.com", gh.ServerURL())

	assert.Len(t, r.PublishersFor("Infra_Lint"), 1)
	assert.Empty(t, r.PublishersFor("Unknown"))
}

func TestNewErrors(t *testing.T) {
	noServer := githubFeature("f1", "Infra_Deploy")
	noServer.ServerURL = ""
	unknown := githubFeature("f1", "Infra_Deploy")
	unknown.Publisher = "slackNotifier"
	badDriver := githubFeature("f1", "Infra_Deploy")
	badDriver.Driver = "perforce"

	tests := []struct {
		name     string
		features []config.PublisherFeature
		want     error
	}{
		{"missing feature id", []config.PublisherFeature{githubFeature("", "Infra_Deploy")}, errs.ErrMissingFeatureID},
		{"duplicate feature id", []config.PublisherFeature{githubFeature("f1"), githubFeature("f1")}, errs.ErrDuplicateFeatureID},
		{"missing server url", []config.PublisherFeature{noServer}, errs.ErrMissingServerURL},
		{"unknown publisher", []config.PublisherFeature{unknown}, errs.ErrUnknownPublisher},
		{"invalid driver", []config.PublisherFeature{badDriver}, errs.ErrInvalidDriver},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.features, nil, resolver.New(), newLogger(t))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
