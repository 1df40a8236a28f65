// ABOUTME: OAuth2 client configuration for the Google calendar and mail APIs
// ABOUTME: Reads the downloaded client secrets file and drives the consent flow
package google

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	goauth "golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/gmail/v1"
)

// Scopes requested during consent and expected on the stored credential
var Scopes = []string{
	calendar.CalendarScope,
	gmail.GmailSendScope,
}

// LoadOAuthConfig builds an oauth2 config from a client secrets file
func LoadOAuthConfig(path string) (*oauth2.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read client secrets %s: %w", path, err)
	}
	cfg, err := goauth.ConfigFromJSON(data, Scopes...)
	if err != nil {
		return nil, fmt.Errorf("parse client secrets %s: %w", path, err)
	}
	return cfg, nil
}

// ConsentURL returns the URL the user visits to grant offline access
func ConsentURL(cfg *oauth2.Config, state string) string {
	return cfg.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

// Exchange trades an authorization code for a token
func Exchange(ctx context.Context, cfg *oauth2.Config, code string) (*oauth2.Token, error) {
	tok, err := cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}
	return tok, nil
}
