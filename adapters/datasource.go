package adapters

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

const (
	//RedshiftDefaultPort is a default Amazon Redshift cluster port
	RedshiftDefaultPort = 5439

	//ConnectTimeoutParameter is a lib/pq parameter: maximum wait for connection in seconds
	ConnectTimeoutParameter = "connect_timeout"
)

//DataSourceConfig dto for a warehouse session config. Built per invocation from the provisioning request
type DataSourceConfig struct {
	Host             string            `mapstructure:"host,omitempty" json:"host,omitempty" yaml:"host,omitempty"`
	Port             int               `mapstructure:"port,omitempty" json:"port,omitempty" yaml:"port,omitempty"`
	Db               string            `mapstructure:"db,omitempty" json:"db,omitempty" yaml:"db,omitempty"`
	Username         string            `mapstructure:"username,omitempty" json:"username,omitempty" yaml:"username,omitempty"`
	Password         string            `mapstructure:"password,omitempty" json:"-" yaml:"-"`
	Parameters       map[string]string `mapstructure:"parameters,omitempty" json:"parameters,omitempty" yaml:"parameters,omitempty"`
	SSLConfiguration *SSLConfig        `mapstructure:"ssl,omitempty" json:"ssl,omitempty" yaml:"ssl,omitempty"`
}

//Validate required fields in DataSourceConfig
func (dsc *DataSourceConfig) Validate() error {
	if dsc == nil {
		return errors.New("Datasource config is required")
	}
	if dsc.Host == "" {
		return errors.New("Datasource host is required parameter")
	}
	if dsc.Db == "" {
		return errors.New("Datasource db is required parameter")
	}
	if dsc.Username == "" {
		return errors.New("Datasource username is required parameter")
	}
	if dsc.Port == 0 {
		dsc.Port = RedshiftDefaultPort
	}

	if dsc.Parameters == nil {
		dsc.Parameters = map[string]string{}
	}

	if dsc.SSLConfiguration != nil {
		if err := dsc.SSLConfiguration.Validate(); err != nil {
			return err
		}
		dsc.SSLConfiguration.apply(dsc.Parameters)
	}
	return nil
}

//Address returns host:port string. Used in logs and errors
func (dsc *DataSourceConfig) Address() string {
	return fmt.Sprintf("%s:%d", dsc.Host, dsc.Port)
}

//connectionString returns lib/pq key/value connection string
//parameters are sorted for stable output
func (dsc *DataSourceConfig) connectionString() string {
	parts := []string{
		"host=" + quoteParameter(dsc.Host),
		fmt.Sprintf("port=%d", dsc.Port),
		"dbname=" + quoteParameter(dsc.Db),
		"user=" + quoteParameter(dsc.Username),
		"password=" + quoteParameter(dsc.Password),
	}

	keys := make([]string, 0, len(dsc.Parameters))
	for k := range dsc.Parameters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	//concat provided connection parameters
	for _, k := range keys {
		parts = append(parts, k+"="+quoteParameter(dsc.Parameters[k]))
	}

	return strings.Join(parts, " ")
}

//quoteParameter wraps value in single quotes and escapes backslashes and quotes (lib/pq key/value format)
func quoteParameter(value string) string {
	value = strings.ReplaceAll(value, `\`, `\\`)
	value = strings.ReplaceAll(value, `'`, `\'`)
	return "'" + value + "'"
}
