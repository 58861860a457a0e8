package provisioning

import (
	"context"
	"errors"

	"github.com/jitsucom/redshift-table-setup/adapters"
	"github.com/jitsucom/redshift-table-setup/credentials"
)

//callsRecorder keeps all session protocol calls of one test in order
type callsRecorder struct {
	calls   []string
	configs []*adapters.DataSourceConfig

	connectErr error
	commitErr  error
	closeErr   error
	//statement -> error
	executeErrs map[string]error
	//panics on the statement
	panicOn string
}

func (cr *callsRecorder) Connect(_ context.Context, config *adapters.DataSourceConfig) (adapters.Session, error) {
	cr.calls = append(cr.calls, "connect")
	cr.configs = append(cr.configs, config)
	if cr.connectErr != nil {
		return nil, cr.connectErr
	}

	return &sessionMock{recorder: cr}, nil
}

func (cr *callsRecorder) count(call string) int {
	count := 0
	for _, c := range cr.calls {
		if c == call {
			count++
		}
	}

	return count
}

func (cr *callsRecorder) executed() []string {
	var statements []string
	for _, c := range cr.calls {
		if len(c) > len("execute: ") && c[:len("execute: ")] == "execute: " {
			statements = append(statements, c[len("execute: "):])
		}
	}

	return statements
}

type sessionMock struct {
	recorder *callsRecorder
}

func (sm *sessionMock) Execute(statement string) error {
	sm.recorder.calls = append(sm.recorder.calls, "execute: "+statement)
	if sm.recorder.panicOn == statement {
		panic("unexpected driver fault")
	}

	return sm.recorder.executeErrs[statement]
}

func (sm *sessionMock) Commit() error {
	sm.recorder.calls = append(sm.recorder.calls, "commit")
	return sm.recorder.commitErr
}

func (sm *sessionMock) Close() error {
	sm.recorder.calls = append(sm.recorder.calls, "close")
	return sm.recorder.closeErr
}

type credentialsMock struct {
	requests int
	err      error
}

func (cm *credentialsMock) GetCredential(_ context.Context, _, dbUser string) (*credentials.Credential, error) {
	cm.requests++
	if cm.err != nil {
		return nil, cm.err
	}

	return &credentials.Credential{Username: dbUser, Password: "resolved-secret"}, nil
}

var errSyntax = errors.New(`pq: 42601 syntax error at or near "TABLEE"`)
