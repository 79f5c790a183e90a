package token

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/LambdaTest/herald/config"
	"github.com/LambdaTest/herald/pkg/core"
	errs "github.com/LambdaTest/herald/pkg/errors"
	"github.com/LambdaTest/herald/pkg/lumber"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVault struct {
	secrets map[string]map[string]interface{}
}

func (v *fakeVault) ReadSecret(path string) (map[string]interface{}, error) {
	secret, ok := v.secrets[path]
	if !ok {
		return nil, errs.ErrSecretNotFound
	}
	return secret, nil
}

func newHandler(t *testing.T, vault core.Vault) core.GitTokenHandler {
	logger, err := lumber.NewLogger(&lumber.LoggingConfig{EnableConsole: true}, false, lumber.InstanceZapLogger)
	require.NoError(t, err)
	cfg := &config.Config{Tokens: config.TokenConfig{GitHub: "ghp_static"}}
	return New(cfg, vault, logger)
}

func TestGetToken(t *testing.T) {
	expiry := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
	vault := &fakeVault{secrets: map[string]map[string]interface{}{
		"secret/github/infra": {"access_token": "gho_vault", "refresh_token": "ghr_vault", "expiry": expiry.Format(time.RFC3339)},
		"secret/github/short": {"access_token": "gho_short"},
		"secret/github/bad":   {"access_token": 42},
		"secret/github/date":  {"access_token": "gho_date", "expiry": "yesterday"},
	}}
	h := newHandler(t, vault)

	tests := []struct {
		name    string
		driver  core.SCMDriver
		path    string
		want    *core.Token
		wantErr error
	}{
		{name: "vault token", driver: core.DriverGithub, path: "secret/github/infra",
			want: &core.Token{AccessToken: "gho_vault", RefreshToken: "ghr_vault", Expiry: expiry}},
		{name: "vault token without expiry", driver: core.DriverGithub, path: "secret/github/short",
			want: &core.Token{AccessToken: "gho_short"}},
		{name: "static token", driver: core.DriverGithub, want: &core.Token{AccessToken: "ghp_static"}},
		{name: "no static token", driver: core.DriverGitlab, wantErr: errs.ErrMissingToken},
		{name: "invalid driver", driver: "svn", wantErr: errs.ErrInvalidDriver},
		{name: "missing secret", driver: core.DriverGithub, path: "secret/none", wantErr: errs.ErrSecretNotFound},
		{name: "malformed secret", driver: core.DriverGithub, path: "secret/github/bad", wantErr: errs.ErrTypeAssertionFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := h.GetToken(context.Background(), tt.driver, tt.path)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := h.GetToken(context.Background(), core.DriverGithub, "secret/github/date")
	assert.Error(t, err)
}

func TestGetTokenWithoutVault(t *testing.T) {
	h := newHandler(t, nil)
	_, err := h.GetToken(context.Background(), core.DriverGithub, "secret/github/infra")
	assert.ErrorIs(t, err, errs.ErrMissingToken)
}
