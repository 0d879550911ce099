package secrets

import (
	"fmt"

	"github.com/hashicorp/vault/api"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// VaultConfig holds configuration for connecting to HashiCorp Vault.
type VaultConfig struct {
	Address   string `yaml:"address" toml:"address"`
	Token     string `yaml:"token" toml:"token"`
	Path      string `yaml:"path" toml:"path"`
	Namespace string `yaml:"namespace,omitempty" toml:"namespace,omitempty"`
}

// Validate checks if the VaultConfig has all required fields set.
func (v VaultConfig) Validate() error {
	if v.Address == "" {
		return errors.New("Vault address is required")
	}
	if v.Token == "" {
		return errors.New("Vault token is required")
	}
	if v.Path == "" {
		return errors.New("Vault path is required")
	}
	return nil
}

// CreateClient creates and configures a Vault API client from this config.
func (v VaultConfig) CreateClient() (*api.Client, error) {
	if err := v.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid Vault configuration")
	}

	config := api.DefaultConfig()
	config.Address = v.Address

	client, err := api.NewClient(config)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create Vault client")
	}

	client.SetToken(v.Token)

	if v.Namespace != "" {
		client.SetNamespace(v.Namespace)
	}

	return client, nil
}

// VaultSource retrieves secret values from HashiCorp Vault. Variable names
// are looked up as keys of the secret at the configured path. Supports both
// KV v1 and KV v2 secret engines.
type VaultSource struct {
	logical *api.Logical
	path    string
}

// NewVaultSource creates a new Vault-backed source.
//
// Parameters:
//   - client: Configured Vault API client
//   - path: The Vault path to read secrets from (e.g., "secret/data/myapp")
func NewVaultSource(client *api.Client, path string) *VaultSource {
	return &VaultSource{
		logical: client.Logical(),
		path:    path,
	}
}

// Fetch reads the secret at the configured path and looks the variable name
// up in its data. A name missing from the secret's data is a clean miss.
func (v *VaultSource) Fetch(name string) (string, bool, error) {
	secret, err := v.logical.Read(v.path)
	if err != nil {
		return "", false, errors.Wrapf(err, "failed to read secret from Vault path %q", v.path)
	}

	if secret == nil || secret.Data == nil {
		return "", false, errors.Errorf("no secret found at Vault path %q", v.path)
	}

	// Handle both KV v1 and KV v2 formats
	var data map[string]interface{}
	if secret.Data["data"] != nil {
		// KV v2 format
		if dataMap, ok := secret.Data["data"].(map[string]interface{}); ok {
			data = dataMap
		} else {
			return "", false, fmt.Errorf("unexpected data format in KV v2 secret")
		}
	} else {
		// KV v1 format
		data = secret.Data
	}

	if strValue, ok := data[name].(string); ok {
		log.Debug().
			Str("secret_name", name).
			Str("vault_path", v.path).
			Msg("Retrieved secret from Vault")
		return strValue, true, nil
	}

	return "", false, nil
}

// Name returns the source name
func (v *VaultSource) Name() string {
	return "Vault"
}
