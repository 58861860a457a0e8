package credentials

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/secretsmanager"
	"github.com/aws/aws-sdk-go/service/secretsmanager/secretsmanageriface"
	"github.com/jitsucom/redshift-table-setup/logging"
)

//rotatedSecret is a JSON secret layout written by Redshift/RDS managed secrets and rotation lambdas
type rotatedSecret struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

//SecretsManager reads database password from AWS Secrets Manager
type SecretsManager struct {
	client           secretsmanageriface.SecretsManagerAPI
	secretIDTemplate string
}

func NewSecretsManager(client secretsmanageriface.SecretsManagerAPI, secretIDTemplate string) *SecretsManager {
	return &SecretsManager{client: client, secretIDTemplate: secretIDTemplate}
}

//GetCredential returns password of dbUser from the secret. The secret might be a plain password or
//a JSON document with "password" field
func (sm *SecretsManager) GetCredential(ctx context.Context, clusterIdentifier, dbUser string) (*Credential, error) {
	id := secretID(sm.secretIDTemplate, clusterIdentifier, dbUser)
	output, err := sm.client.GetSecretValueWithContext(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(id),
	})
	if err != nil {
		return nil, fmt.Errorf("Error getting secret [%s]: %v", id, err)
	}

	if output.SecretString == nil {
		return nil, fmt.Errorf("Secret [%s] has no string value (binary secrets aren't supported)", id)
	}

	password, err := parseSecret(id, dbUser, *output.SecretString)
	if err != nil {
		return nil, err
	}

	return &Credential{Username: dbUser, Password: password}, nil
}

func parseSecret(id, dbUser, secretString string) (string, error) {
	trimmed := strings.TrimSpace(secretString)
	if !strings.HasPrefix(trimmed, "{") {
		if trimmed == "" {
			return "", fmt.Errorf("Secret [%s] is empty", id)
		}
		return secretString, nil
	}

	secret := &rotatedSecret{}
	if err := json.Unmarshal([]byte(trimmed), secret); err != nil {
		return "", fmt.Errorf("Error parsing JSON secret [%s]: %v", id, err)
	}
	if secret.Password == "" {
		return "", fmt.Errorf("JSON secret [%s] doesn't contain 'password' field", id)
	}
	if secret.Username != "" && secret.Username != dbUser {
		logging.Warnf("Secret [%s] belongs to user [%s] but [%s] was requested. The password will be used for [%s]", id, secret.Username, dbUser, dbUser)
	}

	return secret.Password, nil
}
