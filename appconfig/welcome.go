package appconfig

import "github.com/jitsucom/redshift-table-setup/logging"

func logWelcomeBanner(version string) {
	logging.Infof("Redshift table setup %s", version)
}
