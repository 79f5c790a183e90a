package core

import (
	errs "github.com/LambdaTest/herald/pkg/errors"
	"github.com/drone/go-scm/scm"
)

// SCMDriver identifies the git SCM provider a commit status is posted to.
type SCMDriver string

// SCMDriver values.
const (
	DriverGithub    SCMDriver = "github"
	DriverGitlab    SCMDriver = "gitlab"
	DriverBitbucket SCMDriver = "bitbucket"
)

var publicEndpoints = map[SCMDriver]string{
	DriverGithub:    "https://api.github.com",
	DriverGitlab:    "https://gitlab.com",
	DriverBitbucket: "https://api.bitbucket.org",
}

// VerifyDriver returns ErrInvalidDriver unless d is a supported provider.
func (d SCMDriver) VerifyDriver() error {
	if _, ok := publicEndpoints[d]; !ok {
		return errs.ErrInvalidDriver
	}
	return nil
}

// PublicEndpoint returns the API root of the hosted offering of d.
func (d SCMDriver) PublicEndpoint() string {
	return publicEndpoints[d]
}

func (d SCMDriver) String() string {
	return string(d)
}

// SCM is a go-scm client bound to one provider endpoint.
type SCM struct {
	Client *scm.Client
	// SelfHosted is set for enterprise or on-premise endpoints.
	SelfHosted bool
	Name       string
}

// SCMProvider hands out the clients statuses are posted with.
type SCMProvider interface {
	// GetClient returns the client of driver talking to serverURL, the public endpoint if serverURL is empty.
	GetClient(driver SCMDriver, serverURL string) (*SCM, error)
}
