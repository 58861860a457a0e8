package adapters

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDataSourceConfigValidate(t *testing.T) {
	tests := []struct {
		name        string
		config      *DataSourceConfig
		expectedErr string
	}{
		{"nil", nil, "Datasource config is required"},
		{"no host", &DataSourceConfig{Db: "energy_db", Username: "etl_user"}, "Datasource host is required parameter"},
		{"no db", &DataSourceConfig{Host: "analytics-1.redshift.amazonaws.com", Username: "etl_user"}, "Datasource db is required parameter"},
		{"no user", &DataSourceConfig{Host: "analytics-1.redshift.amazonaws.com", Db: "energy_db"}, "Datasource username is required parameter"},
		{"bad ssl", &DataSourceConfig{Host: "analytics-1.redshift.amazonaws.com", Db: "energy_db", Username: "etl_user", SSLConfiguration: &SSLConfig{Mode: "strict"}}, "'ssl.mode' must be one of"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.expectedErr)
		})
	}
}

func TestDataSourceConfigDefaults(t *testing.T) {
	config := &DataSourceConfig{
		Host:             "analytics-1.redshift.amazonaws.com",
		Db:               "energy_db",
		Username:         "etl_user",
		Password:         "secret",
		SSLConfiguration: &SSLConfig{Mode: SSLModeVerifyFull, ServerCA: "/opt/redshift-ca-bundle.crt"},
	}
	require.NoError(t, config.Validate())

	require.Equal(t, RedshiftDefaultPort, config.Port)
	require.Equal(t, "analytics-1.redshift.amazonaws.com:5439", config.Address())
	require.Equal(t, map[string]string{"sslmode": "verify-full", "sslrootcert": "/opt/redshift-ca-bundle.crt"}, config.Parameters)
}

func TestConnectionString(t *testing.T) {
	config := &DataSourceConfig{
		Host:       "analytics-1.redshift.amazonaws.com",
		Port:       5439,
		Db:         "energy_db",
		Username:   "etl_user",
		Password:   `it's a \secret`,
		Parameters: map[string]string{ConnectTimeoutParameter: "10", "sslmode": "require"},
	}

	require.Equal(t, `host='analytics-1.redshift.amazonaws.com' port=5439 dbname='energy_db' user='etl_user' password='it\'s a \\secret' connect_timeout='10' sslmode='require'`,
		config.connectionString())
}

func TestSSLModeFromString(t *testing.T) {
	require.Equal(t, SSLModeRequire, FromString("require"))
	require.Equal(t, SSLModeDisable, FromString(" DISABLE "))
	require.Equal(t, SSLModeVerifyCA, FromString("verify-ca"))
	require.Equal(t, SSLModeVerifyFull, FromString("verify-full"))
	require.Equal(t, Unknown, FromString("prefer"))
}

func TestSSLDisableSkipsRootCert(t *testing.T) {
	parameters := map[string]string{}
	(&SSLConfig{Mode: SSLModeDisable, ServerCA: "/opt/ca.crt"}).apply(parameters)
	require.Equal(t, map[string]string{"sslmode": "disable"}, parameters)
}
