// ABOUTME: Auth command runs the Google OAuth consent flow
// ABOUTME: Writes the token file the web app reads for calendar and mail access
package commands

import (
	"bufio"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/harper/actionbrief/internal/google"
	"github.com/harper/actionbrief/internal/logging"
	"github.com/spf13/cobra"
)

var authCode string

// NewAuthCmd creates the auth command
func NewAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authorize Google Calendar and Gmail access",
		Long: `Authorize Google Calendar and Gmail access.

Reads the OAuth client from credentials.json (CREDENTIALS_FILE), prints a
consent URL, and exchanges the returned authorization code for a token
saved to token.json (TOKEN_FILE). Paste either the bare code or the whole
URL the browser was redirected to.`,
		Example: `  actionbrief auth
  actionbrief auth --code 4/0AbC...`,
		RunE: runAuth,
	}

	cmd.Flags().StringVar(&authCode, "code", "", "Authorization code (skips the prompt)")

	return cmd
}

func runAuth(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	oauth, err := google.LoadOAuthConfig(cfg.CredentialsFile)
	if err != nil {
		return err
	}

	code := authCode
	if code == "" {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Open this URL in your browser and grant access:\n\n%s\n\n", google.ConsentURL(oauth, uuid.New().String()))
		fmt.Fprint(out, "Paste the authorization code or redirect URL: ")

		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("reading authorization code: %w", err)
		}
		code = line
	}

	code = parseAuthCode(code)
	if code == "" {
		return fmt.Errorf("no authorization code given")
	}

	tok, err := google.Exchange(context.Background(), oauth, code)
	if err != nil {
		return err
	}

	store := google.NewCredentialStore(cfg.TokenFile, oauth, logging.Default)
	if err := store.Save(tok); err != nil {
		return err
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Token saved to %s\n", store.Path())
	}
	return nil
}

// parseAuthCode accepts a bare code or a redirect URL carrying ?code=
func parseAuthCode(input string) string {
	input = strings.TrimSpace(input)
	if u, err := url.Parse(input); err == nil && u.Scheme != "" {
		return u.Query().Get("code")
	}
	return input
}
