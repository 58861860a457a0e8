package cfn

import (
	"context"

	"github.com/jitsucom/redshift-table-setup/errorj"
	"github.com/jitsucom/redshift-table-setup/logging"
	"github.com/jitsucom/redshift-table-setup/provisioning"
	"github.com/jitsucom/redshift-table-setup/uuid"
)

//Provisioner is a provisioning.Handler abstraction
type Provisioner interface {
	HandleProperties(ctx context.Context, properties map[string]interface{}) (*provisioning.Result, error)
	PhysicalResourceID() string
}

//Dispatcher routes custom resource events to the Provisioner and reports outcomes to ResponseURL
type Dispatcher struct {
	provisioner Provisioner
	sender      *Sender
}

//NewDispatcher returns configured Dispatcher
func NewDispatcher(provisioner Provisioner, sender *Sender) *Dispatcher {
	return &Dispatcher{provisioner: provisioner, sender: sender}
}

//Dispatch handles Create and Update by provisioning tables. Delete leaves tables in place.
//Envelope is sent if ResponseURL is set. A delivered envelope is the only outcome report: nil error is returned
//so the async invocation isn't retried. Provisioning error is returned only without ResponseURL or on delivery failure
func (d *Dispatcher) Dispatch(ctx context.Context, event Event) (*Response, error) {
	requestID := event.RequestID
	if requestID == "" {
		requestID = uuid.New()
	}
	logger := logging.WithPrefix(requestID)
	logger.Infof("%s request for [%s] in stack [%s]", event.RequestType, event.LogicalResourceID, event.StackID)

	result, err := d.route(ctx, &event)
	if err != nil {
		logger.Errorf("%s request failed: %v", event.RequestType, err)
		if event.PhysicalResourceID == "" {
			event.PhysicalResourceID = d.provisioner.PhysicalResourceID()
		}
	}

	response := NewResponse(&event, result, err)
	if event.ResponseURL == "" {
		logger.Debugf("ResponseURL is empty. Response won't be sent")
		return response, err
	}

	if sendErr := d.sender.Send(ctx, event.ResponseURL, response); sendErr != nil {
		logger.Errorf("%v", sendErr)
		if err != nil {
			return response, errorj.Group(err, sendErr)
		}
		return response, sendErr
	}

	logger.Infof("%s response has been sent", response.Status)
	return response, nil
}

func (d *Dispatcher) route(ctx context.Context, event *Event) (*provisioning.Result, error) {
	switch event.RequestType {
	case Create, Update:
		return d.provisioner.HandleProperties(ctx, event.ResourceProperties)
	case Delete:
		physicalResourceID := event.PhysicalResourceID
		if physicalResourceID == "" {
			physicalResourceID = d.provisioner.PhysicalResourceID()
		}
		return &provisioning.Result{Status: provisioning.SUCCESS, PhysicalResourceID: physicalResourceID, Data: map[string]interface{}{}}, nil
	default:
		return nil, errorj.MalformedRequestError.New("Unknown RequestType: %q", event.RequestType)
	}
}
