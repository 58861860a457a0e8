package logging

import (
	"bytes"
	"sync"
)

//StringWriter is an in-memory io.WriteCloser. Used for capturing DDL debug logs and log output in tests
type StringWriter struct {
	mutex sync.Mutex
	buff  bytes.Buffer
}

func NewStringWriter() *StringWriter {
	return &StringWriter{}
}

func (sw *StringWriter) String() string {
	sw.mutex.Lock()
	defer sw.mutex.Unlock()

	return sw.buff.String()
}

func (sw *StringWriter) Write(p []byte) (int, error) {
	sw.mutex.Lock()
	defer sw.mutex.Unlock()

	return sw.buff.Write(p)
}

func (sw *StringWriter) Close() error {
	return nil
}
