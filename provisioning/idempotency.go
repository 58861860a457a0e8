package provisioning

import (
	"fmt"
	"regexp"
	"strings"
)

//IdempotencyMode defines how table statements behave on re-invocation when tables already exist
type IdempotencyMode string

const (
	//IdempotencyNone executes statements as is
	IdempotencyNone IdempotencyMode = "none"
	//IdempotencyIfNotExists rewrites CREATE TABLE x into CREATE TABLE IF NOT EXISTS x
	IdempotencyIfNotExists IdempotencyMode = "if_not_exists"
	//IdempotencyDropAndRecreate executes DROP TABLE IF EXISTS before every statement
	IdempotencyDropAndRecreate IdempotencyMode = "drop_and_recreate"

	dropTableIfExistsTemplate = `DROP TABLE IF EXISTS %s`
)

var (
	createTablePattern       = regexp.MustCompile(`(?i)^\s*CREATE\s+TABLE\s+`)
	createTableIfNotExistsRe = regexp.MustCompile(`(?i)^\s*CREATE\s+TABLE\s+IF\s+NOT\s+EXISTS\s`)
)

//ParseIdempotencyMode returns mode from string (case insensitive). Empty string is IdempotencyNone
func ParseIdempotencyMode(value string) (IdempotencyMode, error) {
	switch IdempotencyMode(strings.TrimSpace(strings.ToLower(value))) {
	case "", IdempotencyNone:
		return IdempotencyNone, nil
	case IdempotencyIfNotExists:
		return IdempotencyIfNotExists, nil
	case IdempotencyDropAndRecreate:
		return IdempotencyDropAndRecreate, nil
	default:
		return "", fmt.Errorf("Unknown idempotency mode: %q. Supported: [%s, %s, %s]", value, IdempotencyNone, IdempotencyIfNotExists, IdempotencyDropAndRecreate)
	}
}

//statements returns statements which should be executed in order for the table
func (m IdempotencyMode) statements(table TableSpec) []string {
	switch m {
	case IdempotencyIfNotExists:
		return []string{withIfNotExists(table.Schema)}
	case IdempotencyDropAndRecreate:
		return []string{fmt.Sprintf(dropTableIfExistsTemplate, quoteIdentifier(table.Name)), table.Schema}
	default:
		return []string{table.Schema}
	}
}

//withIfNotExists adds IF NOT EXISTS to a CREATE TABLE statement. Other statements are returned as is
func withIfNotExists(statement string) string {
	if createTableIfNotExistsRe.MatchString(statement) {
		return statement
	}

	loc := createTablePattern.FindStringIndex(statement)
	if loc == nil {
		return statement
	}

	return statement[:loc[1]] + "IF NOT EXISTS " + statement[loc[1]:]
}

//quoteIdentifier quotes every part of schema qualified name: public.readings -> "public"."readings"
func quoteIdentifier(name string) string {
	parts := strings.Split(name, ".")
	for i, part := range parts {
		parts[i] = `"` + strings.ReplaceAll(part, `"`, `""`) + `"`
	}

	return strings.Join(parts, ".")
}
