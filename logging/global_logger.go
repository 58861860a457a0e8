package logging

import (
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/gookit/color"
)

const (
	errPrefix   = "[ERROR]:"
	warnPrefix  = "[WARN]:"
	infoPrefix  = "[INFO]:"
	debugPrefix = "[DEBUG]:"

	GlobalType = "global"
)

var (
	//GlobalLogsWriter is the main log destination. DDL debug logs might be written there with 'global' path
	GlobalLogsWriter io.Writer
	LogLevel         = UNKNOWN
)

// InitGlobalLogger initializes main logger: every record gets UTC date time prefix and records below levelStr are skipped
func InitGlobalLogger(writer io.Writer, levelStr string) error {
	if writer == nil {
		return fmt.Errorf("Global logs writer is required")
	}

	GlobalLogsWriter = writer
	log.SetOutput(DateTimeWriterProxy{writer: writer})
	log.SetFlags(0)

	LogLevel = ToLevel(levelStr)
	return nil
}

//SystemErrorf is used for errors that must never happen (broken state machine, programming errors)
func SystemErrorf(format string, v ...interface{}) {
	Errorf("System error: "+format, v...)
}

func Errorf(format string, v ...interface{}) {
	Error(fmt.Sprintf(format, v...))
}

func Error(v ...interface{}) {
	if enabled(ERROR) {
		log.Println(errMsg(v...))
	}
}

func Warnf(format string, v ...interface{}) {
	Warn(fmt.Sprintf(format, v...))
}

func Warn(v ...interface{}) {
	write(WARN, warnPrefix, v)
}

func Infof(format string, v ...interface{}) {
	Info(fmt.Sprintf(format, v...))
}

func Info(v ...interface{}) {
	write(INFO, infoPrefix, v)
}

func Debugf(format string, v ...interface{}) {
	Debug(fmt.Sprintf(format, v...))
}

func Debug(v ...interface{}) {
	write(DEBUG, debugPrefix, v)
}

func Fatal(v ...interface{}) {
	log.Fatal(errMsg(v...))
}

func Fatalf(format string, v ...interface{}) {
	log.Fatal(errMsg(fmt.Sprintf(format, v...)))
}

//PrefixedLogger writes records of a single invocation as: [LEVEL]: [prefix] message
type PrefixedLogger struct {
	prefix string
}

//WithPrefix returns logger which marks every record with the prefix (e.g. request id)
func WithPrefix(prefix string) *PrefixedLogger {
	return &PrefixedLogger{prefix: "[" + prefix + "]"}
}

func (pl *PrefixedLogger) Errorf(format string, v ...interface{}) {
	Error(pl.prefix, fmt.Sprintf(format, v...))
}

func (pl *PrefixedLogger) Warnf(format string, v ...interface{}) {
	Warn(pl.prefix, fmt.Sprintf(format, v...))
}

func (pl *PrefixedLogger) Infof(format string, v ...interface{}) {
	Info(pl.prefix, fmt.Sprintf(format, v...))
}

func (pl *PrefixedLogger) Debugf(format string, v ...interface{}) {
	Debug(pl.prefix, fmt.Sprintf(format, v...))
}

func enabled(level Level) bool {
	return LogLevel <= level
}

func write(level Level, prefix string, v []interface{}) {
	if enabled(level) {
		log.Println(append([]interface{}{prefix}, v...)...)
	}
}

func errMsg(values ...interface{}) string {
	valuesStr := []string{errPrefix}
	for _, v := range values {
		valuesStr = append(valuesStr, fmt.Sprint(v))
	}
	return color.Red.Sprint(strings.Join(valuesStr, " "))
}
