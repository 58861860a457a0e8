package cfn

import (
	"fmt"
	"unicode/utf8"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/jitsucom/redshift-table-setup/provisioning"
)

//orchestrator rejects response bodies over 4096 bytes
const maxReasonLength = 2048

//Response is a custom resource response envelope
type Response struct {
	Status             provisioning.Status    `json:"Status"`
	Reason             string                 `json:"Reason,omitempty"`
	PhysicalResourceID string                 `json:"PhysicalResourceId"`
	StackID            string                 `json:"StackId"`
	RequestID          string                 `json:"RequestId"`
	LogicalResourceID  string                 `json:"LogicalResourceId"`
	NoEcho             bool                   `json:"NoEcho,omitempty"`
	Data               map[string]interface{} `json:"Data"`
}

//NewResponse returns SUCCESS envelope with the result data or FAILED envelope with the error message as Reason
//PhysicalResourceId falls back to the event's one and then to provisioning.DefaultPhysicalResourceID
func NewResponse(event *Event, result *provisioning.Result, err error) *Response {
	response := &Response{
		StackID:            event.StackID,
		RequestID:          event.RequestID,
		LogicalResourceID:  event.LogicalResourceID,
		PhysicalResourceID: event.PhysicalResourceID,
		Data:               map[string]interface{}{},
	}

	if err != nil || result == nil {
		response.Status = provisioning.FAILED
		response.Reason = failureReason(err)
	} else {
		response.Status = result.Status
		if result.PhysicalResourceID != "" {
			response.PhysicalResourceID = result.PhysicalResourceID
		}
		if result.Data != nil {
			response.Data = result.Data
		}
	}

	if response.PhysicalResourceID == "" {
		response.PhysicalResourceID = provisioning.DefaultPhysicalResourceID
	}

	return response
}

func failureReason(err error) string {
	reason := "Unknown error"
	if err != nil {
		reason = err.Error()
	}
	if len(reason) > maxReasonLength {
		cut := maxReasonLength
		for cut > 0 && !utf8.RuneStart(reason[cut]) {
			cut--
		}
		reason = reason[:cut] + "..."
	}
	if lambdacontext.LogStreamName != "" {
		reason = fmt.Sprintf("%s. See the details in CloudWatch Log Stream: %s", reason, lambdacontext.LogStreamName)
	}

	return reason
}
