package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jitsucom/redshift-table-setup/cfn"
	"github.com/jitsucom/redshift-table-setup/errorj"
	"github.com/jitsucom/redshift-table-setup/provisioning"
	"github.com/stretchr/testify/require"
)

type dispatcherMock struct {
	events []cfn.Event
	err    error
}

func (dm *dispatcherMock) Dispatch(_ context.Context, event cfn.Event) (*cfn.Response, error) {
	dm.events = append(dm.events, event)
	var result *provisioning.Result
	if dm.err == nil {
		result = &provisioning.Result{Status: provisioning.SUCCESS, PhysicalResourceID: provisioning.DefaultPhysicalResourceID}
	}
	return cfn.NewResponse(&event, result, dm.err), dm.err
}

const bareProperties = `{
  "ClusterIdentifier": "analytics-1",
  "DatabaseName": "energy_db",
  "DbUser": "etl_user",
  "Tables": [{"Name": "readings", "Schema": "CREATE TABLE readings (id INT, ts TIMESTAMP)"}]
}`

func TestDecodeEvent(t *testing.T) {
	event, err := decodeEvent([]byte(bareProperties))
	require.NoError(t, err)
	require.Equal(t, cfn.Create, event.RequestType)
	require.Equal(t, "analytics-1", event.ResourceProperties["ClusterIdentifier"])
	require.Empty(t, event.ResponseURL)

	event, err = decodeEvent([]byte(`{"RequestType": "Delete", "RequestId": "r-1", "PhysicalResourceId": "RedshiftTableSetup", "ResourceProperties": {}}`))
	require.NoError(t, err)
	require.Equal(t, cfn.Delete, event.RequestType)
	require.Equal(t, "r-1", event.RequestID)
	require.Equal(t, "RedshiftTableSetup", event.PhysicalResourceID)

	event, err = decodeEvent([]byte(`{"ResourceProperties": {"DbUser": "etl_user"}}`))
	require.NoError(t, err)
	require.Equal(t, cfn.Create, event.RequestType)

	_, err = decodeEvent([]byte(`[1, 2]`))
	require.Error(t, err)
}

func TestApplyFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "request.json")
	require.NoError(t, os.WriteFile(path, []byte(bareProperties), 0644))

	dispatcher := &dispatcherMock{}
	out := &bytes.Buffer{}
	require.NoError(t, apply(context.Background(), dispatcher, path, "", nil, out))
	require.Len(t, dispatcher.events, 1)

	response := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(out.Bytes(), &response))
	require.Equal(t, "SUCCESS", response["Status"])
	require.Equal(t, "RedshiftTableSetup", response["PhysicalResourceId"])
	require.Equal(t, map[string]interface{}{}, response["Data"])
}

func TestApplyFromStdinWithOverride(t *testing.T) {
	dispatcher := &dispatcherMock{}
	out := &bytes.Buffer{}
	require.NoError(t, apply(context.Background(), dispatcher, "-", "Update", strings.NewReader(bareProperties), out))
	require.Equal(t, cfn.Update, dispatcher.events[0].RequestType)
}

func TestApplyFailurePrintsEnvelope(t *testing.T) {
	dispatcher := &dispatcherMock{err: errorj.MalformedRequestError.New("ResourceProperties.Tables is required")}
	out := &bytes.Buffer{}
	err := apply(context.Background(), dispatcher, "-", "", strings.NewReader(`{"DbUser": "etl_user"}`), out)
	require.True(t, errorj.IsMalformedRequest(err))
	require.Contains(t, out.String(), `"Status": "FAILED"`)
	require.Contains(t, out.String(), "Tables is required")
}

func TestApplyMissingFile(t *testing.T) {
	err := apply(context.Background(), &dispatcherMock{}, filepath.Join(t.TempDir(), "absent.json"), "", nil, &bytes.Buffer{})
	require.Error(t, err)
}
