// Package vault reads the git tokens of commit status publishers from a vault kv store.
package vault

import (
	"github.com/LambdaTest/herald/config"
	"github.com/LambdaTest/herald/pkg/constants"
	"github.com/LambdaTest/herald/pkg/core"
	errs "github.com/LambdaTest/herald/pkg/errors"
	"github.com/LambdaTest/herald/pkg/lumber"
	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/vault/api"
)

type store struct {
	logical *api.Logical
	logger  lumber.Logger
}

// New returns a vault store for the configured server.
func New(cfg *config.Config, logger lumber.Logger) (core.Vault, error) {
	vaultCfg := api.DefaultConfig()
	vaultCfg.HttpClient = cleanhttp.DefaultPooledClient()
	if cfg.Vault.Address != "" {
		vaultCfg.Address = cfg.Vault.Address
	}
	client, err := api.NewClient(vaultCfg)
	if err != nil {
		return nil, err
	}
	if cfg.Vault.Token != "" {
		client.SetToken(cfg.Vault.Token)
	}
	namespace := cfg.Vault.Namespace
	if namespace == "" {
		namespace = constants.DefaultVaultNamespace
	}
	client.SetNamespace(namespace)
	logger.Infof("vault client created for %s", vaultCfg.Address)
	return &store{logical: client.Logical(), logger: logger}, nil
}

// ReadSecret returns the data of the secret at path. Both kv v1 and v2 layouts are supported.
func (s *store) ReadSecret(path string) (map[string]interface{}, error) {
	secret, err := s.logical.Read(path)
	if err != nil {
		s.logger.Errorf("failed to read secret at path %s, error: %v", path, err)
		return nil, err
	}
	if secret == nil || secret.Data == nil {
		return nil, errs.ErrSecretNotFound
	}
	if data, ok := secret.Data["data"].(map[string]interface{}); ok {
		return data, nil
	}
	return secret.Data, nil
}
