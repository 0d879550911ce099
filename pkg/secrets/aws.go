package secrets

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// AWSConfig holds configuration for AWS Secrets Manager.
type AWSConfig struct {
	Region          string `yaml:"region" toml:"region"`
	AccessKeyID     string `yaml:"access_key_id,omitempty" toml:"access_key_id,omitempty"`
	SecretAccessKey string `yaml:"secret_access_key,omitempty" toml:"secret_access_key,omitempty"`
	SecretName      string `yaml:"secret_name" toml:"secret_name"`
	Endpoint        string `yaml:"endpoint,omitempty" toml:"endpoint,omitempty"` // Optional: for LocalStack or custom endpoints
}

// Validate checks if the AWSConfig has all required fields set.
func (a AWSConfig) Validate() error {
	if a.Region == "" {
		return errors.New("AWS region is required")
	}
	if a.SecretName == "" {
		return errors.New("AWS secret name is required")
	}
	// AccessKeyID and SecretAccessKey are optional - if not provided, will use IAM role or default credentials
	return nil
}

// CreateClient creates and configures an AWS Secrets Manager client from
// this config.
func (a AWSConfig) CreateClient() (*secretsmanager.Client, error) {
	ctx := context.Background()

	configOpts := []func(*config.LoadOptions) error{
		config.WithRegion(a.Region),
	}

	// Custom endpoint for LocalStack or compatible services
	if a.Endpoint != "" {
		configOpts = append(configOpts, config.WithBaseEndpoint(a.Endpoint))
	}

	// Static credentials if provided; otherwise the default credential chain
	// (IAM role, env vars, etc.) applies
	if a.AccessKeyID != "" && a.SecretAccessKey != "" {
		configOpts = append(configOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				a.AccessKeyID,
				a.SecretAccessKey,
				"",
			),
		))
	}

	cfg, err := config.LoadDefaultConfig(ctx, configOpts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load AWS configuration")
	}

	return secretsmanager.NewFromConfig(cfg), nil
}

// AWSSource retrieves secret values from AWS Secrets Manager. The configured
// secret is expected to hold a JSON object mapping variable names to values;
// a plain-string secret is not keyed by name and never matches.
type AWSSource struct {
	client     *secretsmanager.Client
	secretName string
}

// NewAWSSource creates a new AWS Secrets Manager-backed source.
//
// Parameters:
//   - client: Configured AWS Secrets Manager client
//   - secretName: The name of the secret in AWS Secrets Manager
func NewAWSSource(client *secretsmanager.Client, secretName string) *AWSSource {
	return &AWSSource{
		client:     client,
		secretName: secretName,
	}
}

// Fetch reads the configured secret and looks the variable name up in its
// JSON payload. A name missing from the payload is a clean miss.
func (a *AWSSource) Fetch(name string) (string, bool, error) {
	ctx := context.Background()

	input := &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(a.secretName),
	}

	result, err := a.client.GetSecretValue(ctx, input)
	if err != nil {
		return "", false, errors.Wrapf(err, "failed to read secret from AWS Secrets Manager: %q", a.secretName)
	}

	if result.SecretString == nil {
		return "", false, errors.Errorf("secret %q has no string value", a.secretName)
	}

	var secretData map[string]interface{}
	if err := json.Unmarshal([]byte(*result.SecretString), &secretData); err != nil {
		log.Debug().
			Str("secret_name", a.secretName).
			Msg("AWS secret is not a JSON object, skipping")
		return "", false, nil
	}

	if value, ok := secretData[name].(string); ok {
		log.Debug().
			Str("secret_name", a.secretName).
			Str("key", name).
			Msg("Retrieved secret from AWS Secrets Manager")
		return value, true, nil
	}

	return "", false, nil
}

// Name returns the source name
func (a *AWSSource) Name() string {
	return "AWS"
}
