// Package gitscm builds the go-scm clients commit statuses are posted with.
package gitscm

import (
	"net/http"
	"strings"
	"sync"

	"github.com/LambdaTest/herald/pkg/core"
	errs "github.com/LambdaTest/herald/pkg/errors"
	"github.com/LambdaTest/herald/pkg/lumber"
	"github.com/drone/go-scm/scm"
	"github.com/drone/go-scm/scm/driver/bitbucket"
	"github.com/drone/go-scm/scm/driver/github"
	"github.com/drone/go-scm/scm/driver/gitlab"
	"github.com/drone/go-scm/scm/transport/oauth2"
	"github.com/hashicorp/go-cleanhttp"
)

type clientKey struct {
	driver    core.SCMDriver
	serverURL string
}

// gitClientProvider provides the git scm clients, one per driver and server.
type gitClientProvider struct {
	logger  lumber.Logger
	base    http.RoundTripper
	mu      sync.Mutex
	clients map[clientKey]*core.SCM
}

// New initializes GitClientProvider
func New(logger lumber.Logger) core.SCMProvider {
	return &gitClientProvider{
		logger:  logger,
		base:    cleanhttp.DefaultPooledTransport(),
		clients: make(map[clientKey]*core.SCM),
	}
}

func (g *gitClientProvider) GetClient(driver core.SCMDriver, serverURL string) (*core.SCM, error) {
	if err := driver.VerifyDriver(); err != nil {
		return nil, err
	}
	key := clientKey{driver: driver, serverURL: strings.TrimSuffix(serverURL, "/")}

	g.mu.Lock()
	defer g.mu.Unlock()
	if c, ok := g.clients[key]; ok {
		return c, nil
	}
	client, err := g.newClient(key)
	if err != nil {
		g.logger.Errorf("failed to create %s client for server %s, error: %v", driver, serverURL, err)
		return nil, err
	}
	c := &core.SCM{Client: client, Name: driver.String(), SelfHosted: key.serverURL != "" && !isPublicEndpoint(key)}
	g.clients[key] = c
	g.logger.Debugf("created %s client for server %q", driver, key.serverURL)
	return c, nil
}

func (g *gitClientProvider) newClient(key clientKey) (*scm.Client, error) {
	var (
		client *scm.Client
		err    error
	)
	switch key.driver {
	case core.DriverGithub:
		if isPublicEndpoint(key) {
			client = github.NewDefault()
		} else {
			client, err = github.New(key.serverURL)
		}
	case core.DriverGitlab:
		if isPublicEndpoint(key) {
			client = gitlab.NewDefault()
		} else {
			client, err = gitlab.New(key.serverURL)
		}
	case core.DriverBitbucket:
		if isPublicEndpoint(key) {
			client = bitbucket.NewDefault()
		} else {
			client, err = bitbucket.New(key.serverURL)
		}
	default:
		return nil, errs.ErrInvalidDriver
	}
	if err != nil {
		return nil, err
	}
	client.Client = &http.Client{
		Transport: &oauth2.Transport{
			Source: oauth2.ContextTokenSource(),
			Base:   g.base,
		},
	}
	return client, nil
}

func isPublicEndpoint(key clientKey) bool {
	return key.serverURL == "" || key.serverURL == key.driver.PublicEndpoint()
}
