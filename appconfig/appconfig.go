package appconfig

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/jitsucom/redshift-table-setup/adapters"
	"github.com/jitsucom/redshift-table-setup/credentials"
	"github.com/jitsucom/redshift-table-setup/logging"
	"github.com/jitsucom/redshift-table-setup/provisioning"
	"github.com/spf13/viper"
)

//AppConfig is a configuration of one process. Built once at start and shared by all invocations
type AppConfig struct {
	ServiceName string

	Provisioning  *provisioning.Config
	Credentials   *credentials.Config
	DDLLogsWriter io.Writer
	//ResponseTimeout limits delivery of the response envelope
	ResponseTimeout time.Duration

	closeMe []io.Closer
}

var (
	Instance   *AppConfig
	RawVersion = "dev"
)

func setDefaultParams() {
	viper.SetDefault("service.name", "redshift-table-setup")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.rotation_min", 1440)
	viper.SetDefault("redshift.domain", "redshift.amazonaws.com")
	viper.SetDefault("redshift.port", adapters.RedshiftDefaultPort)
	viper.SetDefault("redshift.ssl_mode", string(adapters.SSLModeRequire))
	viper.SetDefault("redshift.connect_timeout_sec", 10)
	viper.SetDefault("redshift.idempotency", string(provisioning.IdempotencyNone))
	viper.SetDefault("redshift.physical_resource_id", provisioning.DefaultPhysicalResourceID)
	viper.SetDefault("credentials.source", credentials.SecretsManagerSource)
	viper.SetDefault("credentials.secret_id_template", credentials.DefaultSecretIDTemplate)
	viper.SetDefault("credentials.duration_sec", credentials.DefaultDurationSec)
	viper.SetDefault("response.timeout_sec", 30)
	viper.SetDefault("sql_debug_log.ddl.rotation_min", 1440)
}

//Init builds the global logger and AppConfig from viper values
func Init() error {
	setDefaultParams()

	serviceName := viper.GetString("service.name")
	globalLoggerConfig := logging.Config{
		FileName:      serviceName + "-main",
		FileDir:       viper.GetString("log.path"),
		RotationMin:   viper.GetInt64("log.rotation_min"),
		MaxBackups:    viper.GetInt("log.max_backups"),
		MaxFileSizeMb: viper.GetInt("log.max_file_size_mb"),
		Compress:      viper.GetBool("log.compress")}

	var appConfig AppConfig
	appConfig.ServiceName = serviceName

	//   configured file logger            no file logger configured
	//     /             \                            |
	// os.Stdout      FileWriter                  os.Stdout
	if globalLoggerConfig.FileDir != "" {
		if err := globalLoggerConfig.Validate(); err != nil {
			return err
		}
		fileWriter := logging.NewRollingWriter(globalLoggerConfig)
		appConfig.ScheduleClosing(fileWriter)
		logging.GlobalLogsWriter = io.MultiWriter(os.Stdout, fileWriter)
	} else {
		logging.GlobalLogsWriter = os.Stdout
	}
	if err := logging.InitGlobalLogger(logging.GlobalLogsWriter, viper.GetString("log.level")); err != nil {
		return err
	}

	logWelcomeBanner(RawVersion)

	//SQL DDL debug writer
	if viper.GetString("sql_debug_log.ddl.path") != "" {
		appConfig.DDLLogsWriter = appConfig.getSqlWriter("sql_debug_log.ddl", serviceName, logging.DDLLogerType)
	}

	appConfig.Provisioning = &provisioning.Config{
		Domain:             viper.GetString("redshift.domain"),
		Port:               viper.GetInt("redshift.port"),
		SSLMode:            adapters.FromString(viper.GetString("redshift.ssl_mode")),
		ServerCA:           viper.GetString("redshift.server_ca"),
		ConnectTimeoutSec:  viper.GetInt("redshift.connect_timeout_sec"),
		Idempotency:        provisioning.IdempotencyMode(viper.GetString("redshift.idempotency")),
		PhysicalResourceID: viper.GetString("redshift.physical_resource_id"),
	}

	appConfig.Credentials = &credentials.Config{
		Source:           viper.GetString("credentials.source"),
		SecretIDTemplate: viper.GetString("credentials.secret_id_template"),
		DurationSec:      viper.GetInt64("credentials.duration_sec"),
		Region:           viper.GetString("aws.region"),
		Endpoint:         viper.GetString("aws.endpoint"),
	}

	appConfig.ResponseTimeout = time.Duration(viper.GetInt("response.timeout_sec")) * time.Second

	if err := appConfig.Validate(); err != nil {
		appConfig.Close()
		return err
	}

	logging.Infof("Warehouse: *.%s:%d ssl: %s idempotency: %s", appConfig.Provisioning.Domain, appConfig.Provisioning.Port,
		appConfig.Provisioning.SSLMode, appConfig.Provisioning.Idempotency)
	logging.Infof("Credentials source: %s", appConfig.Credentials.Source)

	Instance = &appConfig
	return nil
}

//Validate returns all configuration errors at once
func (a *AppConfig) Validate() error {
	var multiErr error
	if sslMode := viper.GetString("redshift.ssl_mode"); sslMode != "" && adapters.FromString(sslMode) == adapters.Unknown {
		multiErr = multierror.Append(multiErr, fmt.Errorf("Unknown redshift.ssl_mode: %q", sslMode))
	}
	if err := a.Provisioning.Validate(); err != nil {
		multiErr = multierror.Append(multiErr, err)
	}
	if err := a.Credentials.Validate(); err != nil {
		multiErr = multierror.Append(multiErr, err)
	}
	if a.ResponseTimeout <= 0 {
		multiErr = multierror.Append(multiErr, fmt.Errorf("response.timeout_sec must be positive. Got: %v", a.ResponseTimeout))
	}

	return multiErr
}

//getSqlWriter reads writer settings under the key prefix including env overrides
func (a *AppConfig) getSqlWriter(prefix string, serviceName string, logType string) io.Writer {
	if viper.GetString(prefix+".path") == logging.GlobalType {
		return logging.GlobalLogsWriter
	}

	writer := logging.NewRollingWriter(logging.Config{
		FileName:    serviceName + "-" + logType,
		FileDir:     viper.GetString(prefix + ".path"),
		RotationMin: viper.GetInt64(prefix + ".rotation_min"),
		MaxBackups:  viper.GetInt(prefix + ".max_backups")})
	a.ScheduleClosing(writer)
	return writer
}

func (a *AppConfig) ScheduleClosing(c io.Closer) {
	a.closeMe = append(a.closeMe, c)
}

func (a *AppConfig) Close() {
	for _, cl := range a.closeMe {
		if err := cl.Close(); err != nil {
			logging.Error(err)
		}
	}
	a.closeMe = nil
}
