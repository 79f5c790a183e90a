package publisher

import (
	"fmt"

	"github.com/LambdaTest/herald/pkg/core"
)

// resolveParams returns a copy of the publisher params carrying the status context of build.
func (p *GitHubPublisher) resolveParams(build *core.Build) *core.PublisherParams {
	label, ok := p.customContext(build)
	if !ok {
		label = defaultContext(build)
	}
	params := p.params.Clone()
	params.Context = label
	return params
}

func defaultContext(build *core.Build) string {
	if build.BuildType == nil {
		return core.RemovedBuildTypeContext
	}
	return fmt.Sprintf("%s (%s)", build.BuildType.Name, build.BuildType.Project.Name)
}

func (p *GitHubPublisher) customContext(build *core.Build) (string, bool) {
	value, ok := build.Parameters[core.GitHubCustomContextBuildParam]
	if !ok {
		return "", false
	}
	resolved, err := p.resolver.Resolve(value, build.Parameters)
	if err != nil {
		p.logger.Debugf("failed to resolve status context %q of build %s, using default context: %v", value, build.ID, err)
		return "", false
	}
	if resolved == "" {
		return "", false
	}
	return resolved, true
}
