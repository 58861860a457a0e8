package errorj

import (
	"github.com/joomcode/errorx"
)

var (
	// provisioningErrors is an error namespace for all errors which are reported back to the orchestrator.
	provisioningErrors = errorx.NewNamespace("provisioning")

	MalformedRequestError = provisioningErrors.NewType("malformed_request")
	ConnectionError       = provisioningErrors.NewType("connection")
	CredentialError       = ConnectionError.NewSubtype("credential")
	StatementError        = provisioningErrors.NewType("statement")
	CommitError           = provisioningErrors.NewType("commit")
	ResponseError         = provisioningErrors.NewType("response")

	Cluster        = errorx.RegisterPrintableProperty("cluster")
	Database       = errorx.RegisterPrintableProperty("database")
	Table          = errorx.RegisterPrintableProperty("table")
	StatementIndex = errorx.RegisterPrintableProperty("statement_index")
	ExecutedTables = errorx.RegisterPrintableProperty("executed_tables")
)

//Group multiple errors where first one is a main error
func Group(errs ...error) error {
	if len(errs) == 0 {
		return nil
	}

	if len(errs) == 1 {
		return errs[0]
	}

	mainErr := errorx.Cast(errs[0])
	if mainErr == nil {
		mainErr = errorx.Decorate(errs[0], "")
	}

	return mainErr.WithUnderlyingErrors(errs[1:]...)
}

//Property returns property value of errorx error or nil
func Property(err error, key errorx.Property) interface{} {
	xErr := errorx.Cast(err)
	if xErr == nil {
		return nil
	}

	value, ok := xErr.Property(key)
	if !ok {
		return nil
	}

	return value
}

//IsMalformedRequest returns true if err is caused by invalid request payload
func IsMalformedRequest(err error) bool {
	return errorx.IsOfType(err, MalformedRequestError)
}
