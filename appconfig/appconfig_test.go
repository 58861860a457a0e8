package appconfig

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jitsucom/redshift-table-setup/adapters"
	"github.com/jitsucom/redshift-table-setup/credentials"
	"github.com/jitsucom/redshift-table-setup/logging"
	"github.com/jitsucom/redshift-table-setup/provisioning"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func resetViper(t *testing.T) {
	viper.Reset()
	t.Cleanup(func() {
		viper.Reset()
		if Instance != nil {
			Instance.Close()
			Instance = nil
		}
	})
}

func TestInitDefaults(t *testing.T) {
	resetViper(t)
	t.Setenv("AWS_REGION", "eu-west-1")

	require.NoError(t, Read(""))
	require.NoError(t, Init())

	require.Equal(t, &provisioning.Config{
		Domain:             "redshift.amazonaws.com",
		Port:               5439,
		SSLMode:            adapters.SSLModeRequire,
		ConnectTimeoutSec:  10,
		Idempotency:        provisioning.IdempotencyNone,
		PhysicalResourceID: "RedshiftTableSetup",
	}, Instance.Provisioning)
	require.Equal(t, &credentials.Config{
		Source:           credentials.SecretsManagerSource,
		SecretIDTemplate: "redshift/{cluster}/{user}",
		DurationSec:      900,
		Region:           "eu-west-1",
	}, Instance.Credentials)
	require.Nil(t, Instance.DDLLogsWriter)
	require.Equal(t, logging.INFO, logging.LogLevel)
}

func TestInitEnvOverrides(t *testing.T) {
	resetViper(t)
	t.Setenv("REDSHIFT_DOMAIN", "abc123.eu-west-1.redshift.amazonaws.com")
	t.Setenv("REDSHIFT_IDEMPOTENCY", "drop_and_recreate")
	t.Setenv("SQL_DEBUG_LOG_DDL_PATH", "global")

	require.NoError(t, Read(""))
	require.NoError(t, Init())

	require.Equal(t, "abc123.eu-west-1.redshift.amazonaws.com", Instance.Provisioning.Domain)
	require.Equal(t, provisioning.IdempotencyDropAndRecreate, Instance.Provisioning.Idempotency)
	require.NotNil(t, Instance.DDLLogsWriter)
}

func TestReadYAMLFile(t *testing.T) {
	resetViper(t)
	t.Setenv("TEST_REDSHIFT_DOMAIN", "cn-north-1.redshift.amazonaws.com.cn")

	require.NoError(t, Read("test_data/config.yaml"))
	require.NoError(t, Init())

	require.Equal(t, "cn-north-1.redshift.amazonaws.com.cn", Instance.Provisioning.Domain)
	require.Equal(t, provisioning.IdempotencyIfNotExists, Instance.Provisioning.Idempotency)
	require.Equal(t, adapters.SSLModeVerifyFull, Instance.Provisioning.SSLMode)
	require.Equal(t, credentials.IAMSource, Instance.Credentials.Source)
	require.Equal(t, int64(1800), Instance.Credentials.DurationSec)
	require.Equal(t, logging.DEBUG, logging.LogLevel)
}

func TestReadPlaceholders(t *testing.T) {
	tests := []struct {
		name     string
		envs     map[string]string
		config   string
		expected map[string]interface{}
	}{
		{
			"default value",
			nil,
			"test_data/config.yaml",
			map[string]interface{}{"redshift.domain": "redshift.amazonaws.com", "credentials.source": "iam"},
		},
		{
			"first found alternative",
			map[string]string{"TEST_SECRET_TEMPLATE": "prod/{cluster}/{user}"},
			`{"credentials": {"secret_id_template": "${env.TEST_UNDEFINED_TEMPLATE|env.TEST_SECRET_TEMPLATE}"}, "redshift": {"port": 5440}}`,
			map[string]interface{}{"credentials.secret_id_template": "prod/{cluster}/{user}", "redshift.port": float64(5440)},
		},
		{
			"embedded placeholder",
			map[string]string{"TEST_REGION": "eu-west-1"},
			`{"aws": {"endpoint": "https://secretsmanager.${env.TEST_REGION}.amazonaws.com"}}`,
			map[string]interface{}{"aws.endpoint": "https://secretsmanager.eu-west-1.amazonaws.com"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetViper(t)
			for k, v := range tt.envs {
				t.Setenv(k, v)
			}

			require.NoError(t, Read(tt.config))
			for k, v := range tt.expected {
				value := viper.Get(k)
				if !cmp.Equal(value, v) {
					t.Errorf("expected %s to be %v, got %v", k, v, value)
				}
			}
		})
	}
}

func TestReadMissingMandatoryEnv(t *testing.T) {
	resetViper(t)

	err := Read(`{"redshift": {"domain": "${env.TEST_UNDEFINED_REDSHIFT_DOMAIN}"}}`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "TEST_UNDEFINED_REDSHIFT_DOMAIN")
}

func TestReadConfigLocationOverride(t *testing.T) {
	resetViper(t)
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"redshift": {"port": 5440}}`), 0644))
	t.Setenv("CONFIG_LOCATION", path)

	require.NoError(t, Read("test_data/config.yaml"))
	require.Equal(t, 5440, viper.GetInt("redshift.port"))
	require.Equal(t, "", viper.GetString("credentials.source"))
}

func TestReadHTTP(t *testing.T) {
	resetViper(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("redshift:\n  physical_resource_id: EnergyTables\n"))
	}))
	defer server.Close()

	require.NoError(t, Read(server.URL+"/config.yml"))
	require.Equal(t, "EnergyTables", viper.GetString("redshift.physical_resource_id"))
}

func TestReadNotFound(t *testing.T) {
	resetViper(t)

	require.Error(t, Read("test_data/absent.yaml"))
}

func TestValidateCollectsAllErrors(t *testing.T) {
	resetViper(t)
	t.Setenv("REDSHIFT_DOMAIN", "")
	t.Setenv("REDSHIFT_SSL_MODE", "sometimes")
	t.Setenv("CREDENTIALS_SOURCE", "vault")

	require.NoError(t, Read(""))
	viper.Set("redshift.domain", "")
	err := Init()
	require.Error(t, err)
	require.Contains(t, err.Error(), "redshift.ssl_mode")
	require.Contains(t, err.Error(), "domain is required")
	require.Contains(t, err.Error(), "vault")
	require.Nil(t, Instance)
}
