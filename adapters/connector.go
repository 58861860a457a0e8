package adapters

import (
	"context"

	"github.com/jitsucom/redshift-table-setup/logging"
)

//Session is a warehouse session protocol: statements are executed in order and committed once
type Session interface {
	Execute(statement string) error
	Commit() error
	Close() error
}

//Connector opens a new Session. Every call creates a new connection, connections are never reused
type Connector interface {
	Connect(ctx context.Context, config *DataSourceConfig) (Session, error)
}

//RedshiftConnector creates Redshift sessions
type RedshiftConnector struct {
	queryLogger *logging.QueryLogger
}

//NewRedshiftConnector returns connector which writes DDL statements into queryLogger
func NewRedshiftConnector(queryLogger *logging.QueryLogger) *RedshiftConnector {
	return &RedshiftConnector{queryLogger: queryLogger}
}

//Connect opens Redshift session
func (rc *RedshiftConnector) Connect(ctx context.Context, config *DataSourceConfig) (Session, error) {
	redshift, err := NewRedshift(ctx, config, rc.queryLogger)
	if err != nil {
		return nil, err
	}

	return redshift, nil
}
