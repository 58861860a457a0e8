package provisioning

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jitsucom/redshift-table-setup/adapters"
	"github.com/jitsucom/redshift-table-setup/credentials"
	"github.com/jitsucom/redshift-table-setup/errorj"
	"github.com/jitsucom/redshift-table-setup/logging"
)

//Config is a dto for Handler configuration
type Config struct {
	//Domain is appended to ClusterIdentifier: <ClusterIdentifier>.<Domain>
	Domain             string
	Port               int
	SSLMode            adapters.SSLMode
	ServerCA           string
	ConnectTimeoutSec  int
	Idempotency        IdempotencyMode
	PhysicalResourceID string
}

//Validate returns err if invalid and sets default values
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("Provisioning config is required")
	}
	if c.Domain == "" {
		return errors.New("Warehouse domain is required parameter")
	}
	if c.Port == 0 {
		c.Port = adapters.RedshiftDefaultPort
	}
	if c.SSLMode == adapters.Unknown {
		c.SSLMode = adapters.SSLModeRequire
	}
	if c.Idempotency == "" {
		c.Idempotency = IdempotencyNone
	}
	if _, err := ParseIdempotencyMode(string(c.Idempotency)); err != nil {
		return err
	}
	if c.PhysicalResourceID == "" {
		c.PhysicalResourceID = DefaultPhysicalResourceID
	}

	return nil
}

//Handler applies table statements from provisioning requests. Handler is stateless: every Handle call
//opens and closes its own warehouse session
type Handler struct {
	config      *Config
	connector   adapters.Connector
	credentials credentials.Provider
}

//NewHandler returns configured Handler
func NewHandler(config *Config, connector adapters.Connector, credentialsProvider credentials.Provider) (*Handler, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if connector == nil {
		return nil, errors.New("Warehouse connector is required")
	}
	if credentialsProvider == nil {
		return nil, errors.New("Credentials provider is required")
	}

	return &Handler{config: config, connector: connector, credentials: credentialsProvider}, nil
}

//PhysicalResourceID returns stable id of the provisioned resource
func (h *Handler) PhysicalResourceID() string {
	return h.config.PhysicalResourceID
}

//HandleProperties parses custom resource properties and runs Handle
func (h *Handler) HandleProperties(ctx context.Context, properties map[string]interface{}) (*Result, error) {
	request, err := ParseRequest(properties)
	if err != nil {
		return nil, err
	}

	return h.Handle(ctx, request)
}

//Handle connects to the cluster, executes every table statement in order, commits and closes the connection.
//The first failed statement aborts the sequence. The connection is closed on every exit path
func (h *Handler) Handle(ctx context.Context, request *Request) (*Result, error) {
	if err := request.Validate(); err != nil {
		return nil, err
	}

	return newRun(h, request).execute(ctx)
}

//dataSourceConfig builds session config: host is derived from cluster identifier
func (h *Handler) dataSourceConfig(request *Request, credential *credentials.Credential) *adapters.DataSourceConfig {
	parameters := map[string]string{}
	if h.config.ConnectTimeoutSec > 0 {
		parameters[adapters.ConnectTimeoutParameter] = strconv.Itoa(h.config.ConnectTimeoutSec)
	}

	return &adapters.DataSourceConfig{
		Host:             fmt.Sprintf("%s.%s", request.ClusterIdentifier, h.config.Domain),
		Port:             h.config.Port,
		Db:               request.DatabaseName,
		Username:         credential.Username,
		Password:         credential.Password,
		Parameters:       parameters,
		SSLConfiguration: &adapters.SSLConfig{Mode: h.config.SSLMode, ServerCA: h.config.ServerCA},
	}
}

//run is a single invocation. It owns the session exclusively
type run struct {
	handler *Handler
	request *Request
	session adapters.Session
	logger  *logging.PrefixedLogger

	state    state
	executed []string
}

func newRun(handler *Handler, request *Request) *run {
	return &run{
		handler:  handler,
		request:  request,
		logger:   logging.WithPrefix(request.ClusterIdentifier + "/" + request.DatabaseName),
		state:    stateInit,
		executed: []string{},
	}
}

func (r *run) transit(to state) {
	if !r.state.canTransit(to) {
		logging.SystemErrorf("Invalid provisioning state transition of %s/%s: %s -> %s", r.request.ClusterIdentifier, r.request.DatabaseName, r.state, to)
		return
	}

	r.logger.Debugf("%s -> %s", r.state, to)
	r.state = to
}

func (r *run) execute(ctx context.Context) (result *Result, err error) {
	if err := r.connect(ctx); err != nil {
		r.transit(stateClosedFailed)
		return nil, err
	}

	//release the session on every exit path including panics
	defer func() {
		closeErr := r.release()
		if err == nil && (r.state == stateCommitted || r.state == stateConnected) {
			if closeErr != nil {
				r.logger.Warnf("%v", closeErr)
			}
			r.transit(stateClosedSuccess)
			return
		}

		if err != nil && closeErr != nil {
			err = errorj.Group(err, closeErr)
		}
		r.transit(stateClosedFailed)
	}()

	if len(r.request.Tables) == 0 {
		r.logger.Infof("No tables requested")
		return successResult(r.handler.config.PhysicalResourceID), nil
	}

	if err := r.apply(); err != nil {
		return nil, err
	}

	if err := r.commit(); err != nil {
		return nil, err
	}

	r.logger.Infof("%d table(s) have been created: %v", len(r.executed), r.request.TableNames())
	return successResult(r.handler.config.PhysicalResourceID), nil
}

func (r *run) connect(ctx context.Context) error {
	credential, err := r.handler.credentials.GetCredential(ctx, r.request.ClusterIdentifier, r.request.DbUser)
	if err != nil {
		return errorj.CredentialError.Wrap(err, "Error resolving credential for user [%s]", r.request.DbUser).
			WithProperty(errorj.Cluster, r.request.ClusterIdentifier).
			WithProperty(errorj.Database, r.request.DatabaseName)
	}

	config := r.handler.dataSourceConfig(r.request, credential)
	r.logger.Infof("Connecting to %s as [%s]", config.Address(), config.Username)
	session, err := r.handler.connector.Connect(ctx, config)
	if err != nil {
		return errorj.ConnectionError.Wrap(err, "Error connecting to %s", config.Address()).
			WithProperty(errorj.Cluster, r.request.ClusterIdentifier).
			WithProperty(errorj.Database, r.request.DatabaseName)
	}

	r.session = session
	r.transit(stateConnected)
	return nil
}

func (r *run) apply() error {
	for i, table := range r.request.Tables {
		r.transit(stateApplying)
		r.logger.Infof("Creating table: %s", table.Name)
		for _, statement := range r.handler.config.Idempotency.statements(table) {
			if err := r.session.Execute(statement); err != nil {
				return errorj.StatementError.Wrap(err, "Error creating table [%s]", table.Name).
					WithProperty(errorj.Cluster, r.request.ClusterIdentifier).
					WithProperty(errorj.Database, r.request.DatabaseName).
					WithProperty(errorj.Table, table.Name).
					WithProperty(errorj.StatementIndex, i).
					WithProperty(errorj.ExecutedTables, r.executedTables())
			}
		}
		r.executed = append(r.executed, table.Name)
	}

	return nil
}

func (r *run) commit() error {
	if err := r.session.Commit(); err != nil {
		return errorj.CommitError.Wrap(err, "Error committing %d table(s)", len(r.executed)).
			WithProperty(errorj.Cluster, r.request.ClusterIdentifier).
			WithProperty(errorj.Database, r.request.DatabaseName).
			WithProperty(errorj.ExecutedTables, r.executedTables())
	}

	r.transit(stateCommitted)
	return nil
}

func (r *run) release() error {
	if r.session == nil {
		return nil
	}

	session := r.session
	r.session = nil
	if err := session.Close(); err != nil {
		return fmt.Errorf("Error closing warehouse session: %v", err)
	}

	return nil
}

func (r *run) executedTables() []string {
	executed := make([]string, len(r.executed))
	copy(executed, r.executed)
	return executed
}
