package vault

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/LambdaTest/herald/config"
	errs "github.com/LambdaTest/herald/pkg/errors"
	"github.com/LambdaTest/herald/pkg/lumber"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T, handler http.HandlerFunc) *store {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	logger, err := lumber.NewLogger(&lumber.LoggingConfig{EnableConsole: true}, false, lumber.InstanceZapLogger)
	require.NoError(t, err)
	v, err := New(&config.Config{Vault: config.VaultConfig{Address: srv.URL, Token: "root"}}, logger)
	require.NoError(t, err)
	return v.(*store)
}

func TestReadSecretKV2(t *testing.T) {
	s := newStore(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/secret/data/github/herald", r.URL.Path)
		assert.Equal(t, "root", r.Header.Get("X-Vault-Token"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"data":{"access_token":"gho_abc"},"metadata":{"version":1}}}`))
	})
	secret, err := s.ReadSecret("secret/data/github/herald")
	require.NoError(t, err)
	assert.Equal(t, "gho_abc", secret["access_token"])
}

func TestReadSecretKV1(t *testing.T) {
	s := newStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"access_token":"gho_abc"}}`))
	})
	secret, err := s.ReadSecret("kv/github/herald")
	require.NoError(t, err)
	assert.Equal(t, "gho_abc", secret["access_token"])
}

func TestReadSecretMissing(t *testing.T) {
	s := newStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"errors":[]}`))
	})
	_, err := s.ReadSecret("secret/data/missing")
	assert.ErrorIs(t, err, errs.ErrSecretNotFound)
}
