package adapters

import (
	"database/sql"
	"fmt"

	"github.com/jitsucom/redshift-table-setup/logging"
)

//Transaction is sql transaction wrapper. Used for handling and log errors with db type
//on Commit() and Rollback() calls
type Transaction struct {
	dbType string
	tx     *sql.Tx
}

//DirectCommit commits underlying transaction and returns err if occurred
func (t *Transaction) DirectCommit() error {
	if err := t.tx.Commit(); err != nil {
		err = checkErr(err)
		return fmt.Errorf("Unable to commit %s transaction: %v", t.dbType, err)
	}

	return nil
}

//Rollback cancels underlying transaction and logs err if occurred
func (t *Transaction) Rollback(cause error) {
	if err := t.tx.Rollback(); err != nil && err != sql.ErrTxDone {
		err = checkErr(err)
		logging.Errorf("Unable to rollback %s transaction: %v cause: %v", t.dbType, err, cause)
	}
}
