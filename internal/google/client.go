// ABOUTME: Connector turns the stored credential into ready API clients
// ABOUTME: Called once per automate request
package google

import (
	"context"

	"google.golang.org/api/option"
)

// Clients are the authenticated API clients for one request
type Clients struct {
	Events EventInserter
	Mail   MailSender
}

// Connector builds Clients from a CredentialStore
type Connector struct {
	creds *CredentialStore
	opts  []option.ClientOption
}

// NewConnector creates a connector. opts are passed to every API client.
func NewConnector(creds *CredentialStore, opts ...option.ClientOption) *Connector {
	return &Connector{creds: creds, opts: opts}
}

// Connect validates the credential and returns API clients. It fails with
// ErrNoCredentials when there is no usable token.
func (c *Connector) Connect(ctx context.Context) (*Clients, error) {
	ts, err := c.creds.TokenSource(ctx)
	if err != nil {
		return nil, err
	}
	events, err := NewEventInserter(ctx, ts, c.opts...)
	if err != nil {
		return nil, err
	}
	mail, err := NewMailSender(ctx, ts, c.opts...)
	if err != nil {
		return nil, err
	}
	return &Clients{Events: events, Mail: mail}, nil
}
