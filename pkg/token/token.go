// Package token provides the git tokens commit statuses are posted with.
package token

import (
	"context"
	"time"

	"github.com/LambdaTest/herald/config"
	"github.com/LambdaTest/herald/pkg/core"
	errs "github.com/LambdaTest/herald/pkg/errors"
	"github.com/LambdaTest/herald/pkg/lumber"
)

type gitTokenHandler struct {
	vaultStore core.Vault
	static     map[core.SCMDriver]string
	logger     lumber.Logger
}

// New returns a token handler reading tokens from vaultStore, falling back to
// the static token of the driver when a publisher has no token path.
// vaultStore may be nil when only static tokens are configured.
func New(cfg *config.Config, vaultStore core.Vault, logger lumber.Logger) core.GitTokenHandler {
	return &gitTokenHandler{
		vaultStore: vaultStore,
		logger:     logger,
		static: map[core.SCMDriver]string{
			core.DriverGithub:    cfg.Tokens.GitHub,
			core.DriverGitlab:    cfg.Tokens.GitLab,
			core.DriverBitbucket: cfg.Tokens.Bitbucket,
		},
	}
}

func (g *gitTokenHandler) GetToken(ctx context.Context, driver core.SCMDriver, tokenPath string) (*core.Token, error) {
	if err := driver.VerifyDriver(); err != nil {
		return nil, err
	}
	if tokenPath == "" {
		accessToken := g.static[driver]
		if accessToken == "" {
			return nil, errs.ErrMissingToken
		}
		return &core.Token{AccessToken: accessToken}, nil
	}
	if g.vaultStore == nil {
		g.logger.Errorf("token path %s configured for driver %s but vault is not configured", tokenPath, driver)
		return nil, errs.ErrMissingToken
	}

	secret, err := g.vaultStore.ReadSecret(tokenPath)
	if err != nil {
		g.logger.Errorf("failed to read secret for path %s, error %v", tokenPath, err)
		return nil, err
	}
	token, err := getTokenFromSecret(secret)
	if err != nil {
		g.logger.Errorf("error while parsing secret for token from path %s, %v", tokenPath, err)
		return nil, err
	}
	if !token.Expiry.IsZero() && token.Expiry.Before(time.Now()) {
		g.logger.Warnf("token at path %s expired at %s", tokenPath, token.Expiry)
	}
	return token, nil
}

// getTokenFromSecret parses secret to get token, refresh token and expiry are optional.
func getTokenFromSecret(secret map[string]interface{}) (*core.Token, error) {
	accessToken, ok := secret["access_token"].(string)
	if !ok || accessToken == "" {
		return nil, errs.ErrTypeAssertionFailed
	}
	token := &core.Token{AccessToken: accessToken}

	if refreshToken, ok := secret["refresh_token"].(string); ok {
		token.RefreshToken = refreshToken
	}
	if expiryStr, ok := secret["expiry"].(string); ok && expiryStr != "" {
		expiry, err := time.Parse(time.RFC3339, expiryStr)
		if err != nil {
			return nil, err
		}
		token.Expiry = expiry
	}
	return token, nil
}
