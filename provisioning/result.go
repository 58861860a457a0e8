package provisioning

//Status is a provisioning outcome understood by the orchestrator
type Status string

const (
	SUCCESS Status = "SUCCESS"
	FAILED  Status = "FAILED"

	//DefaultPhysicalResourceID is a stable id of the provisioned resource
	DefaultPhysicalResourceID = "RedshiftTableSetup"
)

//Result is produced exactly once per successful invocation. Failures are returned as errors
type Result struct {
	Status             Status                 `json:"Status"`
	PhysicalResourceID string                 `json:"PhysicalResourceId"`
	Data               map[string]interface{} `json:"Data"`
}

func successResult(physicalResourceID string) *Result {
	return &Result{Status: SUCCESS, PhysicalResourceID: physicalResourceID, Data: map[string]interface{}{}}
}
