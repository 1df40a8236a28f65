// ABOUTME: CredentialStore loads, refreshes and persists the OAuth token file
// ABOUTME: Refresh is serialized so at most one refresh is in flight
package google

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/harper/actionbrief/internal/logging"
	"github.com/harper/actionbrief/internal/models"
	"golang.org/x/oauth2"
)

// ErrNoCredentials means no usable credential exists. The caller stays
// unauthenticated.
var ErrNoCredentials = errors.New("no valid Google credentials")

// CredentialStore owns the token file
type CredentialStore struct {
	mu     sync.Mutex
	path   string
	oauth  *oauth2.Config
	logger logging.Logger
}

// NewCredentialStore creates a store for the token file at path. oauth may be
// nil, in which case expired tokens cannot be refreshed.
func NewCredentialStore(path string, oauth *oauth2.Config, logger logging.Logger) *CredentialStore {
	if logger == nil {
		logger = logging.Nop()
	}
	return &CredentialStore{path: path, oauth: oauth, logger: logger}
}

// Path returns the token file location
func (s *CredentialStore) Path() string {
	return s.path
}

func (s *CredentialStore) load() (*models.Credential, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}
	var cred models.Credential
	if err := json.Unmarshal(data, &cred); err != nil {
		return nil, fmt.Errorf("parse token file: %w", err)
	}
	return &cred, nil
}

// Save writes tok to the token file with the configured scopes
func (s *CredentialStore) Save(tok *oauth2.Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(tok)
}

func (s *CredentialStore) save(tok *oauth2.Token) error {
	data, err := json.MarshalIndent(models.CredentialFromToken(tok, Scopes), "", "  ")
	if err != nil {
		return fmt.Errorf("encode token: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create token directory: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write token file: %w", err)
	}
	return nil
}

// Token returns a valid token, refreshing and persisting it when expired.
// Any failure along the way yields ErrNoCredentials.
func (s *CredentialStore) Token(ctx context.Context) (*oauth2.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cred, err := s.load()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoCredentials, err)
	}
	if !cred.HasScopes(Scopes) {
		s.logger.Warnf("Stored credential is missing scopes, re-run the auth command")
	}

	tok := cred.Token()
	if tok.Valid() {
		return tok, nil
	}

	if tok.RefreshToken == "" || s.oauth == nil {
		return nil, fmt.Errorf("%w: token expired and cannot be refreshed", ErrNoCredentials)
	}

	fresh, err := s.oauth.TokenSource(ctx, tok).Token()
	if err != nil {
		return nil, fmt.Errorf("%w: refresh failed: %v", ErrNoCredentials, err)
	}
	if fresh.RefreshToken == "" {
		fresh.RefreshToken = tok.RefreshToken
	}

	if err := s.save(fresh); err != nil {
		s.logger.Warnf("Could not persist refreshed token: %v", err)
	}
	s.logger.Debugf("Refreshed Google access token, expires %s", fresh.Expiry)
	return fresh, nil
}

// TokenSource returns a static source over a freshly validated token
func (s *CredentialStore) TokenSource(ctx context.Context) (oauth2.TokenSource, error) {
	tok, err := s.Token(ctx)
	if err != nil {
		return nil, err
	}
	return oauth2.StaticTokenSource(tok), nil
}
