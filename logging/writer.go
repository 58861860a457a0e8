package logging

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

const logFileMaxSizeMB = 100

//Config is a rolling file writer configuration
type Config struct {
	FileName      string
	FileDir       string
	RotationMin   int64
	MaxBackups    int
	MaxFileSizeMb int
	Compress      bool
}

func (c Config) Validate() error {
	if c.FileName == "" {
		return errors.New("Logger file name can't be empty")
	}
	if c.FileDir == "" {
		return errors.New("Logger file dir can't be empty")
	}

	return nil
}

//rollingWriter stops periodic rotation on Close
type rollingWriter struct {
	*lumberjack.Logger

	ticker    *time.Ticker
	done      chan struct{}
	closeOnce sync.Once
}

func (rw *rollingWriter) rotate(fileNamePath string) {
	for {
		select {
		case <-rw.done:
			return
		case <-rw.ticker.C:
			if err := rw.Rotate(); err != nil {
				Errorf("Error rotating log file [%s]: %v", fileNamePath, err)
			}
		}
	}
}

func (rw *rollingWriter) Close() error {
	rw.closeOnce.Do(func() {
		rw.ticker.Stop()
		close(rw.done)
	})

	return rw.Logger.Close()
}

//NewRollingWriter returns lumberjack file writer rotated every RotationMin minutes (if set)
func NewRollingWriter(config Config) io.WriteCloser {
	fileNamePath := filepath.Join(config.FileDir, fmt.Sprintf("%s.log", config.FileName))
	maxFileSize := logFileMaxSizeMB
	if config.MaxFileSizeMb > 0 {
		maxFileSize = config.MaxFileSizeMb
	}
	lWriter := &lumberjack.Logger{
		Filename: fileNamePath,
		MaxSize:  maxFileSize,
		Compress: config.Compress,
	}
	if config.MaxBackups > 0 {
		lWriter.MaxBackups = config.MaxBackups
	}

	if config.RotationMin <= 0 {
		return lWriter
	}

	writer := &rollingWriter{
		Logger: lWriter,
		ticker: time.NewTicker(time.Duration(config.RotationMin) * time.Minute),
		done:   make(chan struct{}),
	}
	go writer.rotate(fileNamePath)

	return writer
}
