// ABOUTME: Tests for the auth command
// ABOUTME: Code parsing and missing client file handling
package commands

import (
	"bytes"
	"path/filepath"
	"testing"
)

func TestParseAuthCode(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"bare code", "4/0AbCdEf", "4/0AbCdEf"},
		{"trailing newline", "4/0AbCdEf\n", "4/0AbCdEf"},
		{"redirect url", "http://localhost/?state=s&code=4%2F0AbC&scope=x", "4/0AbC"},
		{"url without code", "http://localhost/?error=access_denied", ""},
		{"empty", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseAuthCode(tt.input); got != tt.want {
				t.Errorf("parseAuthCode(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestAuthCmd_MissingCredentialsFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CREDENTIALS_FILE", filepath.Join(dir, "credentials.json"))
	t.Setenv("TOKEN_FILE", filepath.Join(dir, "token.json"))
	t.Setenv("DATA_DIR", dir)

	cmd := NewRootCmd()
	var output bytes.Buffer
	cmd.SetOut(&output)
	cmd.SetErr(&output)
	cmd.SetArgs([]string{"auth", "--code", "abc"})

	if err := cmd.Execute(); err == nil {
		t.Error("auth should fail without a client secrets file")
	}
}
