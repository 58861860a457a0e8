package credentials

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/redshift"
	"github.com/aws/aws-sdk-go/service/secretsmanager"
)

const (
	SecretsManagerSource = "secrets_manager"
	IAMSource            = "iam"

	DefaultSecretIDTemplate = "redshift/{cluster}/{user}"
	DefaultDurationSec      = 900
)

//Credential is a resolved database login
type Credential struct {
	Username string
	Password string
}

//Provider resolves a secret for the database user at invocation time
type Provider interface {
	GetCredential(ctx context.Context, clusterIdentifier, dbUser string) (*Credential, error)
}

//Config is a dto for credentials provider configuration
type Config struct {
	Source           string `mapstructure:"source" json:"source,omitempty" yaml:"source,omitempty"`
	SecretIDTemplate string `mapstructure:"secret_id_template" json:"secret_id_template,omitempty" yaml:"secret_id_template,omitempty"`
	DurationSec      int64  `mapstructure:"duration_sec" json:"duration_sec,omitempty" yaml:"duration_sec,omitempty"`
	Region           string `mapstructure:"region" json:"region,omitempty" yaml:"region,omitempty"`
	Endpoint         string `mapstructure:"endpoint" json:"endpoint,omitempty" yaml:"endpoint,omitempty"`
}

//Validate returns err if invalid and sets default values
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("Credentials config is required")
	}
	if c.Source == "" {
		c.Source = SecretsManagerSource
	}

	switch c.Source {
	case SecretsManagerSource:
		if c.SecretIDTemplate == "" {
			c.SecretIDTemplate = DefaultSecretIDTemplate
		}
	case IAMSource:
		if c.DurationSec == 0 {
			c.DurationSec = DefaultDurationSec
		}
		//GetClusterCredentials limits
		if c.DurationSec < 900 || c.DurationSec > 3600 {
			return fmt.Errorf("credentials duration_sec must be in [900, 3600] range, got: %d", c.DurationSec)
		}
	default:
		return fmt.Errorf("Unknown credentials source: %q. Supported: [%s, %s]", c.Source, SecretsManagerSource, IAMSource)
	}

	return nil
}

//NewProvider returns Provider according to config source
func NewProvider(config *Config) (Provider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	awsConfig := aws.NewConfig()
	if config.Region != "" {
		awsConfig.WithRegion(config.Region)
	}
	if config.Endpoint != "" {
		awsConfig.WithEndpoint(config.Endpoint)
	}
	awsSession, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("Error creating AWS session: %v", err)
	}

	switch config.Source {
	case IAMSource:
		return NewClusterCredentials(redshift.New(awsSession), config.DurationSec), nil
	default:
		return NewSecretsManager(secretsmanager.New(awsSession), config.SecretIDTemplate), nil
	}
}

//secretID builds secret identifier from template with {cluster} and {user} placeholders
func secretID(template, clusterIdentifier, dbUser string) string {
	return strings.NewReplacer("{cluster}", clusterIdentifier, "{user}", dbUser).Replace(template)
}
