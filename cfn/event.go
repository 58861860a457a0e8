package cfn

//RequestType is a custom resource lifecycle action
type RequestType string

const (
	Create RequestType = "Create"
	Update RequestType = "Update"
	Delete RequestType = "Delete"
)

//Event is a CloudFormation custom resource request
type Event struct {
	RequestType           RequestType            `json:"RequestType"`
	ResponseURL           string                 `json:"ResponseURL"`
	StackID               string                 `json:"StackId"`
	RequestID             string                 `json:"RequestId"`
	ResourceType          string                 `json:"ResourceType"`
	LogicalResourceID     string                 `json:"LogicalResourceId"`
	PhysicalResourceID    string                 `json:"PhysicalResourceId,omitempty"`
	ResourceProperties    map[string]interface{} `json:"ResourceProperties"`
	OldResourceProperties map[string]interface{} `json:"OldResourceProperties,omitempty"`
}
