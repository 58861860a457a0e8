package adapters

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jitsucom/redshift-table-setup/logging"
	"github.com/lib/pq"
)

const redshiftType = "Redshift"

var errSessionClosed = errors.New("Redshift session is already closed")

//Redshift is a single warehouse session: one connection with one open transaction.
//Aws Redshift uses Postgres fork under the hood so lib/pq driver is used
type Redshift struct {
	ctx         context.Context
	config      *DataSourceConfig
	dataSource  *sql.DB
	transaction *Transaction
	queryLogger *logging.QueryLogger

	committed bool
	closed    bool
}

//NewRedshift opens connection to the cluster and begins a transaction
//returns err if the cluster is unreachable or credentials are rejected
func NewRedshift(ctx context.Context, config *DataSourceConfig, queryLogger *logging.QueryLogger) (*Redshift, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	dataSource, err := sql.Open("postgres", config.connectionString())
	if err != nil {
		return nil, err
	}
	//the session is exclusive: the transaction must stay on a single connection
	dataSource.SetMaxOpenConns(1)

	if err := dataSource.PingContext(ctx); err != nil {
		dataSource.Close()
		return nil, checkErr(err)
	}

	tx, err := dataSource.BeginTx(ctx, nil)
	if err != nil {
		dataSource.Close()
		return nil, checkErr(err)
	}

	return &Redshift{
		ctx:         ctx,
		config:      config,
		dataSource:  dataSource,
		transaction: &Transaction{tx: tx, dbType: redshiftType},
		queryLogger: queryLogger,
	}, nil
}

//Execute runs DDL statement in the session transaction
func (r *Redshift) Execute(statement string) error {
	if r.closed || r.committed {
		return errSessionClosed
	}

	r.queryLogger.LogDDL(statement)
	if _, err := r.transaction.tx.ExecContext(r.ctx, statement); err != nil {
		return checkErr(err)
	}

	return nil
}

//Commit finishes the session transaction. Subsequent Execute calls return error
func (r *Redshift) Commit() error {
	if r.closed || r.committed {
		return errSessionClosed
	}

	r.committed = true
	return r.transaction.DirectCommit()
}

//Close rolls back uncommitted transaction and closes underlying sql.DB. Safe to call multiple times
func (r *Redshift) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true

	if !r.committed {
		r.transaction.Rollback(errors.New("session closed without commit"))
	}

	if err := r.dataSource.Close(); err != nil {
		return fmt.Errorf("Error closing Redshift connection to %s: %v", r.config.Address(), err)
	}

	return nil
}

//checkErr enriches lib/pq error with code, detail and position
func checkErr(err error) error {
	if err == nil {
		return nil
	}

	pgErr, ok := err.(*pq.Error)
	if !ok {
		return err
	}

	msgParts := []string{"pq:"}
	if pgErr.Code != "" {
		msgParts = append(msgParts, string(pgErr.Code))
	}
	if pgErr.Message != "" {
		msgParts = append(msgParts, pgErr.Message)
	}
	if pgErr.Detail != "" {
		msgParts = append(msgParts, pgErr.Detail)
	}
	if pgErr.Schema != "" {
		msgParts = append(msgParts, "schema:"+pgErr.Schema)
	}
	if pgErr.Table != "" {
		msgParts = append(msgParts, "table:"+pgErr.Table)
	}
	if pgErr.Column != "" {
		msgParts = append(msgParts, "column:"+pgErr.Column)
	}
	if pgErr.Position != "" {
		msgParts = append(msgParts, "position:"+pgErr.Position)
	}
	if pgErr.Hint != "" {
		msgParts = append(msgParts, "hint:"+pgErr.Hint)
	}

	return errors.New(strings.Join(msgParts, " "))
}
