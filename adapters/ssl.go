package adapters

import (
	"fmt"
	"strings"
)

const (
	SSLModeRequire    SSLMode = "require"
	SSLModeDisable    SSLMode = "disable"
	SSLModeVerifyCA   SSLMode = "verify-ca"
	SSLModeVerifyFull SSLMode = "verify-full"

	Unknown SSLMode = ""
)

type SSLMode string

func (s SSLMode) String() string {
	return string(s)
}

//FromString returns SSLMode from string (case insensitive) or Unknown
func FromString(sslMode string) SSLMode {
	switch strings.TrimSpace(strings.ToLower(sslMode)) {
	case SSLModeRequire.String():
		return SSLModeRequire
	case SSLModeDisable.String():
		return SSLModeDisable
	case SSLModeVerifyCA.String():
		return SSLModeVerifyCA
	case SSLModeVerifyFull.String():
		return SSLModeVerifyFull
	default:
		return Unknown
	}
}

//SSLConfig is a dto for deserialized SSL configuration of a Redshift session
type SSLConfig struct {
	Mode     SSLMode `mapstructure:"mode,omitempty" json:"mode,omitempty" yaml:"mode,omitempty"`
	ServerCA string  `mapstructure:"server_ca,omitempty" json:"server_ca,omitempty" yaml:"server_ca,omitempty"`
}

//Validate returns err if the ssl configuration is invalid
func (sc *SSLConfig) Validate() error {
	if sc.Mode == Unknown {
		return fmt.Errorf("'ssl.mode' must be one of [%s, %s, %s, %s]", SSLModeDisable, SSLModeRequire, SSLModeVerifyCA, SSLModeVerifyFull)
	}

	return nil
}

//apply enriches lib/pq connection parameters. Redshift root CA bundle path might be provided as server_ca
func (sc *SSLConfig) apply(parameters map[string]string) {
	parameters["sslmode"] = sc.Mode.String()
	if sc.Mode != SSLModeDisable && sc.ServerCA != "" {
		parameters["sslrootcert"] = sc.ServerCA
	}
}
