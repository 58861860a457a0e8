package cmd

import (
	"fmt"
	"os"

	"github.com/gookit/color"
	"github.com/jitsucom/redshift-table-setup/appconfig"
	"github.com/spf13/cobra"
)

//config source flag shared by all commands
var configSource string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tablesetup",
	Short: "Creates Redshift tables described by a CloudFormation custom resource request",
	Long:  `Creates Redshift tables described by a CloudFormation custom resource request. Runs as a Lambda function when AWS_LAMBDA_RUNTIME_API is set, otherwise as a CLI`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.Version = appconfig.RawVersion
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.Red.Sprintf("Error: %v", err))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configSource, "config", "", "(optional) path to YAML/JSON config file, HTTP URL or plain JSON string. Might be overridden by CONFIG_LOCATION env variable")
}
