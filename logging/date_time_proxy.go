package logging

import (
	"io"
	"time"
)

//LogsLayout is a date time representation for log records prefixes
const LogsLayout = "2006-01-02 15:04:05"

type DateTimeWriterProxy struct {
	writer io.Writer
}

func (wp DateTimeWriterProxy) Write(bytes []byte) (int, error) {
	return wp.writer.Write([]byte(time.Now().UTC().Format(LogsLayout) + " " + string(bytes)))
}
