package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jitsucom/redshift-table-setup/appconfig"
	"github.com/jitsucom/redshift-table-setup/cfn"
	"github.com/spf13/cobra"
)

var (
	//command flags
	requestFile, requestType string
)

//Dispatcher is a cfn.Dispatcher abstraction
type Dispatcher interface {
	Dispatch(ctx context.Context, event cfn.Event) (*cfn.Response, error)
}

// applyCmd runs one custom resource request locally
var applyCmd = &cobra.Command{
	Use:   "apply --file <request.json>",
	Short: "Applies a custom resource request from a JSON file and prints the response envelope",
	Long: `Applies a custom resource request from a JSON file and prints the response envelope.
The file contains either a complete CloudFormation event or bare ResourceProperties. '-' reads stdin`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if requestFile == "" {
			return errors.New("--file option is required")
		}

		dispatcher, err := BuildDispatcher(configSource)
		if err != nil {
			return err
		}
		defer appconfig.Instance.Close()

		return apply(cmd.Context(), dispatcher, requestFile, requestType, cmd.InOrStdin(), cmd.OutOrStdout())
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(applyCmd)

	applyCmd.Flags().StringVar(&requestFile, "file", "", "path to the request JSON file or '-' for stdin")
	applyCmd.Flags().StringVar(&requestType, "request-type", "", "(optional) overrides RequestType: Create, Update or Delete. Default: value from the file or Create")
}

func apply(ctx context.Context, dispatcher Dispatcher, file, requestTypeOverride string, stdin io.Reader, out io.Writer) error {
	var payload []byte
	var err error
	if file == "-" {
		payload, err = io.ReadAll(stdin)
	} else {
		payload, err = os.ReadFile(file)
	}
	if err != nil {
		return fmt.Errorf("Error reading request %s: %v", file, err)
	}

	event, err := decodeEvent(payload)
	if err != nil {
		return err
	}
	if requestTypeOverride != "" {
		event.RequestType = cfn.RequestType(requestTypeOverride)
	}

	if ctx == nil {
		ctx = context.Background()
	}
	response, dispatchErr := dispatcher.Dispatch(ctx, *event)
	if response != nil {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(response); err != nil {
			return fmt.Errorf("Error writing response: %v", err)
		}
	}

	return dispatchErr
}

//decodeEvent accepts a CloudFormation event or bare ResourceProperties (treated as Create)
func decodeEvent(payload []byte) (*cfn.Event, error) {
	raw := map[string]interface{}{}
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, fmt.Errorf("Error parsing request JSON: %v", err)
	}

	if _, ok := raw["ResourceProperties"]; !ok {
		return &cfn.Event{RequestType: cfn.Create, ResourceProperties: raw}, nil
	}

	event := &cfn.Event{}
	if err := json.Unmarshal(payload, event); err != nil {
		return nil, fmt.Errorf("Error parsing CloudFormation event: %v", err)
	}
	if event.RequestType == "" {
		event.RequestType = cfn.Create
	}

	return event, nil
}
