package provisioning

import (
	"strings"

	"github.com/jitsucom/redshift-table-setup/errorj"
	"github.com/mitchellh/mapstructure"
)

const (
	clusterIdentifierKey = "ClusterIdentifier"
	databaseNameKey      = "DatabaseName"
	dbUserKey            = "DbUser"
	tablesKey            = "Tables"
)

//TableSpec is a table definition. Schema is a complete DDL statement
type TableSpec struct {
	Name   string `mapstructure:"Name" json:"Name" yaml:"Name"`
	Schema string `mapstructure:"Schema" json:"Schema" yaml:"Schema"`
}

//Request is a provisioning request: which tables must be created in which cluster database.
//Tables order is an execution order
type Request struct {
	ClusterIdentifier string      `mapstructure:"ClusterIdentifier" json:"ClusterIdentifier" yaml:"ClusterIdentifier"`
	DatabaseName      string      `mapstructure:"DatabaseName" json:"DatabaseName" yaml:"DatabaseName"`
	DbUser            string      `mapstructure:"DbUser" json:"DbUser" yaml:"DbUser"`
	Tables            []TableSpec `mapstructure:"Tables" json:"Tables" yaml:"Tables"`
}

//ParseRequest decodes custom resource properties into Request and validates it
//returns MalformedRequestError if a required field is absent or has a wrong type
func ParseRequest(properties map[string]interface{}) (*Request, error) {
	if properties == nil {
		return nil, errorj.MalformedRequestError.New("ResourceProperties are required")
	}

	for _, key := range []string{clusterIdentifierKey, databaseNameKey, dbUserKey, tablesKey} {
		if value, ok := properties[key]; !ok || value == nil {
			return nil, errorj.MalformedRequestError.New("ResourceProperties.%s is required", key)
		}
	}

	request := &Request{}
	if err := mapstructure.Decode(properties, request); err != nil {
		return nil, errorj.MalformedRequestError.Wrap(err, "Error decoding ResourceProperties")
	}
	//Tables: [] decodes into nil slice
	if request.Tables == nil {
		request.Tables = []TableSpec{}
	}

	if err := request.Validate(); err != nil {
		return nil, err
	}

	return request, nil
}

//Validate returns MalformedRequestError if required fields are empty
func (r *Request) Validate() error {
	if r == nil {
		return errorj.MalformedRequestError.New("Provisioning request is required")
	}
	if strings.TrimSpace(r.ClusterIdentifier) == "" {
		return errorj.MalformedRequestError.New("ResourceProperties.%s is required", clusterIdentifierKey)
	}
	if strings.TrimSpace(r.DatabaseName) == "" {
		return errorj.MalformedRequestError.New("ResourceProperties.%s is required", databaseNameKey)
	}
	if strings.TrimSpace(r.DbUser) == "" {
		return errorj.MalformedRequestError.New("ResourceProperties.%s is required", dbUserKey)
	}
	if r.Tables == nil {
		return errorj.MalformedRequestError.New("ResourceProperties.%s is required", tablesKey)
	}

	for i, table := range r.Tables {
		if strings.TrimSpace(table.Name) == "" {
			return errorj.MalformedRequestError.New("ResourceProperties.%s[%d].Name is required", tablesKey, i)
		}
		if strings.TrimSpace(table.Schema) == "" {
			return errorj.MalformedRequestError.New("ResourceProperties.%s[%d].Schema is required", tablesKey, i).
				WithProperty(errorj.Table, table.Name)
		}
	}

	return nil
}

//TableNames returns names of all requested tables in execution order
func (r *Request) TableNames() []string {
	names := make([]string, 0, len(r.Tables))
	for _, table := range r.Tables {
		names = append(names, table.Name)
	}

	return names
}
