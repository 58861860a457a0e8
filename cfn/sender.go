package cfn

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/carlmjohnson/requests"
	"github.com/jitsucom/redshift-table-setup/errorj"
)

const defaultSendTimeout = 30 * time.Second

//Sender delivers response envelopes to pre-signed ResponseURL
type Sender struct {
	client  *http.Client
	timeout time.Duration
}

//NewSender returns Sender. Nil client means http.DefaultClient
func NewSender(client *http.Client, timeout time.Duration) *Sender {
	if client == nil {
		client = http.DefaultClient
	}
	if timeout <= 0 {
		timeout = defaultSendTimeout
	}

	return &Sender{client: client, timeout: timeout}
}

//Send PUTs the JSON envelope. The pre-signed URL is signed with an empty content type
func (s *Sender) Send(ctx context.Context, url string, response *Response) error {
	body, err := json.Marshal(response)
	if err != nil {
		return errorj.ResponseError.Wrap(err, "Error serializing response")
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := requests.URL(url).
		Client(s.client).
		Method(http.MethodPut).
		ContentType("").
		BodyBytes(body).
		CheckStatus(http.StatusOK, http.StatusCreated, http.StatusAccepted, http.StatusNoContent).
		Fetch(ctx); err != nil {
		return errorj.ResponseError.Wrap(err, "Error sending %s response", response.Status)
	}

	return nil
}
