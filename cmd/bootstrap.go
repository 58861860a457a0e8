package cmd

import (
	"github.com/jitsucom/redshift-table-setup/adapters"
	"github.com/jitsucom/redshift-table-setup/appconfig"
	"github.com/jitsucom/redshift-table-setup/cfn"
	"github.com/jitsucom/redshift-table-setup/credentials"
	"github.com/jitsucom/redshift-table-setup/logging"
	"github.com/jitsucom/redshift-table-setup/provisioning"
)

//BuildDispatcher reads configuration and wires warehouse connector, credentials provider and response sender
func BuildDispatcher(configSource string) (*cfn.Dispatcher, error) {
	if err := appconfig.Read(configSource); err != nil {
		return nil, err
	}
	if err := appconfig.Init(); err != nil {
		return nil, err
	}

	config := appconfig.Instance
	credentialsProvider, err := credentials.NewProvider(config.Credentials)
	if err != nil {
		return nil, err
	}

	queryLogger := logging.NewQueryLogger(config.ServiceName, config.DDLLogsWriter)
	handler, err := provisioning.NewHandler(config.Provisioning, adapters.NewRedshiftConnector(queryLogger), credentialsProvider)
	if err != nil {
		return nil, err
	}

	return cfn.NewDispatcher(handler, cfn.NewSender(nil, config.ResponseTimeout)), nil
}
