package credentials

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/redshift"
	"github.com/aws/aws-sdk-go/service/redshift/redshiftiface"
)

//ClusterCredentials issues temporary database credentials with Redshift GetClusterCredentials (IAM auth)
type ClusterCredentials struct {
	client      redshiftiface.RedshiftAPI
	durationSec int64
}

func NewClusterCredentials(client redshiftiface.RedshiftAPI, durationSec int64) *ClusterCredentials {
	return &ClusterCredentials{client: client, durationSec: durationSec}
}

//GetCredential returns temporary credential. Redshift returns user name with IAM: prefix which must be used for login
func (cc *ClusterCredentials) GetCredential(ctx context.Context, clusterIdentifier, dbUser string) (*Credential, error) {
	output, err := cc.client.GetClusterCredentialsWithContext(ctx, &redshift.GetClusterCredentialsInput{
		ClusterIdentifier: aws.String(clusterIdentifier),
		DbUser:            aws.String(dbUser),
		DurationSeconds:   aws.Int64(cc.durationSec),
		AutoCreate:        aws.Bool(false),
	})
	if err != nil {
		return nil, fmt.Errorf("Error getting cluster [%s] credentials for user [%s]: %v", clusterIdentifier, dbUser, err)
	}

	if output.DbPassword == nil {
		return nil, fmt.Errorf("Cluster [%s] returned empty password for user [%s]", clusterIdentifier, dbUser)
	}

	username := dbUser
	if output.DbUser != nil && *output.DbUser != "" {
		username = *output.DbUser
	}

	return &Credential{Username: username, Password: *output.DbPassword}, nil
}
