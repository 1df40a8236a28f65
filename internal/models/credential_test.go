package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/oauth2"
)

func TestCredential_TokenRoundTrip(t *testing.T) {
	expiry := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
	tok := &oauth2.Token{
		AccessToken:  "access",
		RefreshToken: "refresh",
		TokenType:    "Bearer",
		Expiry:       expiry,
	}

	cred := CredentialFromToken(tok, []string{"a", "b"})
	assert.Equal(t, []string{"a", "b"}, cred.Scopes)

	back := cred.Token()
	assert.Equal(t, "access", back.AccessToken)
	assert.Equal(t, "refresh", back.RefreshToken)
	assert.Equal(t, "Bearer", back.TokenType)
	assert.True(t, back.Expiry.Equal(expiry))
}

func TestCredential_HasScopes(t *testing.T) {
	cred := &Credential{Scopes: []string{"calendar", "gmail.send"}}

	assert.True(t, cred.HasScopes([]string{"calendar"}))
	assert.True(t, cred.HasScopes([]string{"calendar", "gmail.send"}))
	assert.True(t, cred.HasScopes(nil))
	assert.False(t, cred.HasScopes([]string{"drive"}))
	assert.False(t, (&Credential{}).HasScopes([]string{"calendar"}))
}
