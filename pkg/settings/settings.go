// Package settings builds the commit status publishers of the configured build features.
package settings

import (
	"fmt"

	"github.com/LambdaTest/herald/config"
	"github.com/LambdaTest/herald/pkg/core"
	errs "github.com/LambdaTest/herald/pkg/errors"
	"github.com/LambdaTest/herald/pkg/lumber"
	"github.com/LambdaTest/herald/pkg/publisher"
)

// Factory creates the publisher of one build feature.
type Factory func(params *core.PublisherParams,
	updater core.ChangeStatusUpdater,
	resolver core.ParameterResolver,
	logger lumber.Logger) core.CommitStatusPublisher

// Factories maps publisher kinds to their factory.
var Factories = map[string]Factory{
	core.GitHubPublisherID: func(params *core.PublisherParams,
		updater core.ChangeStatusUpdater,
		resolver core.ParameterResolver,
		logger lumber.Logger) core.CommitStatusPublisher {
		return publisher.New(params, updater, resolver, logger)
	},
}

// Registry holds the publishers of every build configuration.
type Registry struct {
	byBuildType map[string][]core.CommitStatusPublisher
}

// New validates features and creates their publishers.
func New(features []config.PublisherFeature,
	updater core.ChangeStatusUpdater,
	resolver core.ParameterResolver,
	logger lumber.Logger) (*Registry, error) {
	r := &Registry{byBuildType: make(map[string][]core.CommitStatusPublisher)}
	seen := make(map[string]struct{}, len(features))
	for i := range features {
		feature := &features[i]
		if feature.FeatureID == "" {
			return nil, errs.ErrMissingFeatureID
		}
		if _, ok := seen[feature.FeatureID]; ok {
			return nil, fmt.Errorf("feature %s: %w", feature.FeatureID, errs.ErrDuplicateFeatureID)
		}
		seen[feature.FeatureID] = struct{}{}

		params, err := toParams(feature)
		if err != nil {
			return nil, fmt.Errorf("feature %s: %w", feature.FeatureID, err)
		}
		factory, ok := Factories[feature.Publisher]
		if !ok {
			return nil, fmt.Errorf("feature %s, publisher %q: %w", feature.FeatureID, feature.Publisher, errs.ErrUnknownPublisher)
		}
		p := factory(params, updater, resolver, logger.WithFields(lumber.Fields{
			"feature_id": feature.FeatureID,
			"publisher":  feature.Publisher,
		}))
		for _, buildType := range feature.BuildTypes {
			r.byBuildType[buildType] = append(r.byBuildType[buildType], p)
		}
		logger.Infof("registered %s publisher for feature %s on %d build configurations",
			feature.Publisher, feature.FeatureID, len(feature.BuildTypes))
	}
	return r, nil
}

// PublishersFor returns the publishers of the build configuration.
func (r *Registry) PublishersFor(buildTypeID string) []core.CommitStatusPublisher {
	return r.byBuildType[buildTypeID]
}

func toParams(feature *config.PublisherFeature) (*core.PublisherParams, error) {
	driver := core.SCMDriver(feature.Driver)
	if driver == "" {
		driver = core.DriverGithub
	}
	if err := driver.VerifyDriver(); err != nil {
		return nil, err
	}
	if feature.Publisher == core.GitHubPublisherID && feature.ServerURL == "" {
		return nil, errs.ErrMissingServerURL
	}
	return &core.PublisherParams{
		FeatureID:      feature.FeatureID,
		Driver:         driver,
		ServerURL:      feature.ServerURL,
		TokenPath:      feature.TokenPath,
		ReportOnStart:  feature.ReportOnStart,
		ReportOnFinish: feature.ReportOnFinish,
		Extra:          feature.Extra,
	}, nil
}
