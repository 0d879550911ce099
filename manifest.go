package envmap

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/lucasyvas/envmap/pkg/secrets"
)

type (
	// Manifest is a declarative description of the environment variables a
	// process needs: required names, optional defaults, and optionally the
	// secret backends to consult for required variables absent from the
	// environment.
	Manifest struct {
		Required []string          `yaml:"required,omitempty" toml:"required,omitempty"`
		Defaults map[string]string `yaml:"defaults,omitempty" toml:"defaults,omitempty"`
		Secrets  *SecretsConfig    `yaml:"secrets,omitempty" toml:"secrets,omitempty"`
	}

	// SecretsConfig configures the fallback secret sources. Sources are
	// consulted in field order: file, then Vault, then AWS.
	SecretsConfig struct {
		File  *secrets.FileConfig  `yaml:"file,omitempty" toml:"file,omitempty"`
		Vault *secrets.VaultConfig `yaml:"vault,omitempty" toml:"vault,omitempty"`
		AWS   *secrets.AWSConfig   `yaml:"aws,omitempty" toml:"aws,omitempty"`
	}
)

// LoadManifest reads and parses a manifest file. The format is chosen by
// extension: .yaml/.yml or .toml.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read manifest %q", path)
	}

	var manifest Manifest
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &manifest)
	case ".toml":
		err = toml.Unmarshal(data, &manifest)
	default:
		return nil, errors.Errorf("unsupported manifest format %q", ext)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse manifest %q", path)
	}

	if err := manifest.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid manifest %q", path)
	}
	return &manifest, nil
}

// Validate checks the manifest for empty or conflicting variable names.
func (m *Manifest) Validate() error {
	seen := make(map[string]bool, len(m.Required))
	for _, name := range m.Required {
		if name == "" {
			return errors.New("required variable name must not be empty")
		}
		if seen[name] {
			return errors.Errorf("variable %q listed as required more than once", name)
		}
		seen[name] = true
	}
	for name := range m.Defaults {
		if name == "" {
			return errors.New("defaulted variable name must not be empty")
		}
		if seen[name] {
			return errors.Errorf("variable %q is both required and defaulted", name)
		}
	}
	return nil
}

// Request builds the resolution request described by the manifest.
func (m *Manifest) Request() Request {
	req := make(Request, len(m.Required)+len(m.Defaults))
	for _, name := range m.Required {
		req[name] = nil
	}
	for name, value := range m.Defaults {
		req[name] = Default(value)
	}
	return req
}

// Sources builds the fallback sources configured in the secrets block, in
// consultation order. A manifest without a secrets block yields none.
func (m *Manifest) Sources() ([]Source, error) {
	if m.Secrets == nil {
		return nil, nil
	}

	var sources []Source

	if cfg := m.Secrets.File; cfg != nil {
		if err := cfg.Validate(); err != nil {
			return nil, errors.Wrap(err, "invalid file secrets configuration")
		}
		source, err := secrets.NewFileSource(cfg.SecretsDir)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create file secret source")
		}
		sources = append(sources, source)
	}

	if cfg := m.Secrets.Vault; cfg != nil {
		client, err := cfg.CreateClient()
		if err != nil {
			return nil, errors.Wrap(err, "failed to create Vault client")
		}
		sources = append(sources, secrets.NewVaultSource(client, cfg.Path))
	}

	if cfg := m.Secrets.AWS; cfg != nil {
		if err := cfg.Validate(); err != nil {
			return nil, errors.Wrap(err, "invalid AWS secrets configuration")
		}
		client, err := cfg.CreateClient()
		if err != nil {
			return nil, errors.Wrap(err, "failed to create AWS Secrets Manager client")
		}
		sources = append(sources, secrets.NewAWSSource(client, cfg.SecretName))
	}

	return sources, nil
}
