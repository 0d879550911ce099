// Package secrets provides fallback value sources for environment
// resolution: file-per-secret directories, HashiCorp Vault and AWS Secrets
// Manager. Each source satisfies the envmap.Source interface.
package secrets

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// FileConfig holds configuration for the file-based source.
type FileConfig struct {
	SecretsDir string `yaml:"secrets_dir" toml:"secrets_dir"`
}

// Validate checks if the FileConfig has all required fields set.
func (f FileConfig) Validate() error {
	if f.SecretsDir == "" {
		return errors.New("secrets_dir is required for file source")
	}

	info, err := os.Stat(f.SecretsDir)
	if os.IsNotExist(err) {
		return errors.Errorf("secrets_dir %q does not exist", f.SecretsDir)
	}
	if err != nil {
		return errors.Wrapf(err, "error accessing secrets_dir %q", f.SecretsDir)
	}
	if !info.IsDir() {
		return errors.Errorf("secrets_dir %q is not a directory", f.SecretsDir)
	}
	return nil
}

// FileSource reads secret values from files in a configured directory, one
// file per variable name. Useful for Docker secrets, Kubernetes secrets, or
// local development.
//
// The file contents are trimmed of whitespace.
type FileSource struct {
	secretsDir string
}

// NewFileSource creates a new file-based source rooted at secretsDir.
func NewFileSource(secretsDir string) (*FileSource, error) {
	if secretsDir == "" {
		return nil, errors.New("no secrets directory configured")
	}

	absSecretsDir, err := filepath.Abs(secretsDir)
	if err != nil {
		return nil, errors.Wrap(err, "failed to resolve absolute path for secrets directory")
	}

	return &FileSource{secretsDir: absSecretsDir}, nil
}

// Fetch reads the secret file named after the variable. A missing file is a
// clean miss; names escaping the secrets directory are rejected.
func (f *FileSource) Fetch(name string) (string, bool, error) {
	if name == "" {
		return "", false, errors.New("no file specified for file secret")
	}

	if filepath.IsAbs(name) {
		return "", false, errors.New("invalid secret name: absolute paths not allowed")
	}

	// Sanitize the name to prevent path traversal
	cleanName := filepath.Clean(name)
	if strings.Contains(cleanName, "..") {
		return "", false, errors.New("invalid secret name: path traversal detected")
	}

	absFilePath := filepath.Join(f.secretsDir, cleanName)
	if !strings.HasPrefix(absFilePath, f.secretsDir+string(filepath.Separator)) {
		return "", false, errors.New("invalid secret name: outside secrets directory")
	}

	// #nosec G304 -- Path traversal is prevented by validation above
	content, err := os.ReadFile(absFilePath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, errors.Wrapf(err, "failed to read secret file %q", absFilePath)
	}

	secret := strings.TrimSpace(string(content))
	log.Debug().Str("file", absFilePath).Msg("Retrieved secret from file")
	return secret, true, nil
}

// Name returns the source name
func (f *FileSource) Name() string {
	return "File"
}
