package main

import (
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/jitsucom/redshift-table-setup/appconfig"
	"github.com/jitsucom/redshift-table-setup/cmd"
	"github.com/jitsucom/redshift-table-setup/logging"
)

//set by ldflags
var tag string

func main() {
	if tag != "" {
		appconfig.RawVersion = tag
	}

	//Lambda runtime sets the variable for every function process
	if os.Getenv("AWS_LAMBDA_RUNTIME_API") == "" {
		cmd.Execute()
		return
	}

	dispatcher, err := cmd.BuildDispatcher("")
	if err != nil {
		logging.Fatal(err)
	}
	defer appconfig.Instance.Close()

	lambda.Start(dispatcher.Dispatch)
}
