package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToLevel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Level
	}{
		{"debug", "debug", DEBUG},
		{"upper case", "WARN", WARN},
		{"alias", "warning", WARN},
		{"spaces", " error ", ERROR},
		{"empty", "", INFO},
		{"unknown", "verbose", INFO},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, ToLevel(tt.input))
		})
	}
}

func TestLevelFilter(t *testing.T) {
	writer := NewStringWriter()
	require.NoError(t, InitGlobalLogger(writer, "warn"))
	defer func() { LogLevel = UNKNOWN }()

	Debugf("hidden %s", "debug")
	Infof("hidden %s", "info")
	Warnf("visible %s", "warn")
	Errorf("visible %s", "error")

	output := writer.String()
	require.NotContains(t, output, "hidden")
	require.Contains(t, output, "[WARN]: visible warn")
	require.Contains(t, output, "visible error")
	require.Equal(t, 2, strings.Count(output, "\n"))
}

func TestQueryLogger(t *testing.T) {
	writer := NewStringWriter()
	queryLogger := NewQueryLogger("analytics-1", writer)
	queryLogger.LogDDL("CREATE TABLE readings (id INT)")

	require.Contains(t, writer.String(), "[DEBUG]: [analytics-1] CREATE TABLE readings (id INT)")

	//no writer configured - no output and no panic
	NewQueryLogger("analytics-1", nil).LogDDL("CREATE TABLE readings (id INT)")
	var nilLogger *QueryLogger
	nilLogger.LogDDL("CREATE TABLE readings (id INT)")
}

func TestPrefixedLogger(t *testing.T) {
	writer := NewStringWriter()
	require.NoError(t, InitGlobalLogger(writer, "info"))
	defer func() { LogLevel = UNKNOWN }()

	logger := WithPrefix("5a7e3b3e")
	logger.Infof("Create request for [%s]", "RedshiftTables")
	logger.Debugf("skipped")
	logger.Errorf("failed: %v", "pq: 42601")

	output := writer.String()
	require.Contains(t, output, "[INFO]: [5a7e3b3e] Create request for [RedshiftTables]")
	require.Contains(t, output, "[5a7e3b3e] failed: pq: 42601")
	require.NotContains(t, output, "skipped")
}

func TestInitGlobalLoggerWithoutWriter(t *testing.T) {
	require.Error(t, InitGlobalLogger(nil, "info"))
}

func TestRollingWriterClose(t *testing.T) {
	dir := t.TempDir()
	writer := NewRollingWriter(Config{FileName: "tablesetup-main", FileDir: dir, RotationMin: 1})
	rolling, ok := writer.(*rollingWriter)
	require.True(t, ok)

	_, err := writer.Write([]byte("CREATE TABLE readings (id INT)\n"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	require.NoError(t, writer.Close())

	select {
	case <-rolling.done:
	default:
		t.Fatal("rotation must be stopped on Close")
	}

	content, err := os.ReadFile(filepath.Join(dir, "tablesetup-main.log"))
	require.NoError(t, err)
	require.Contains(t, string(content), "CREATE TABLE readings")
}

func TestRollingWriterWithoutRotation(t *testing.T) {
	writer := NewRollingWriter(Config{FileName: "tablesetup-main", FileDir: t.TempDir()})
	_, ok := writer.(*rollingWriter)
	require.False(t, ok)
	require.NoError(t, writer.Close())
}
