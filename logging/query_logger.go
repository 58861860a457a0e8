package logging

import (
	"io"
	"log"
)

const DDLLogerType = "ddl-debug"

//QueryLogger writes every executed DDL statement into a separate debug writer (if configured)
type QueryLogger struct {
	ddlLogger  *log.Logger
	identifier string
}

func NewQueryLogger(identifier string, ddlWriter io.Writer) *QueryLogger {
	var ddlLogger *log.Logger
	if ddlWriter != nil {
		ddlLogger = log.New(DateTimeWriterProxy{writer: ddlWriter}, "", 0)
	}
	return &QueryLogger{identifier: identifier, ddlLogger: ddlLogger}
}

func (l *QueryLogger) LogDDL(query string) {
	if l != nil && l.ddlLogger != nil {
		l.ddlLogger.Printf("%s [%s] %s\n", debugPrefix, l.identifier, query)
	}
}
