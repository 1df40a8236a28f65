// ABOUTME: Tests for summary mails
// ABOUTME: Decodes the raw message and drives a fake Gmail endpoint
package google

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

type fakeMail struct {
	sent []*gmail.Message
	err  error
}

func (f *fakeMail) Send(_ context.Context, msg *gmail.Message) (*gmail.Message, error) {
	f.sent = append(f.sent, msg)
	return msg, f.err
}

func decodeRaw(t *testing.T, msg *gmail.Message) string {
	t.Helper()
	raw, err := base64.URLEncoding.DecodeString(msg.Raw)
	require.NoError(t, err)
	return string(raw)
}

func TestBuildMessage(t *testing.T) {
	raw := decodeRaw(t, BuildMessage("team@example.com", "Document summary", "Line one\nLine two"))

	headers, body, ok := strings.Cut(raw, "\r\n\r\n")
	require.True(t, ok)
	assert.Contains(t, headers, "To: team@example.com")
	assert.Contains(t, headers, "Subject: Document summary")
	assert.Contains(t, headers, `Content-Type: text/plain; charset="UTF-8"`)
	assert.Equal(t, "Line one\nLine two", body)
}

func TestSendSummary(t *testing.T) {
	ctx := context.Background()

	t.Run("no recipient", func(t *testing.T) {
		mail := &fakeMail{}
		assert.ErrorIs(t, SendSummary(ctx, mail, "", "s"), ErrNoRecipient)
		assert.Empty(t, mail.sent)
	})

	t.Run("sent", func(t *testing.T) {
		mail := &fakeMail{}
		require.NoError(t, SendSummary(ctx, mail, "a@example.com", "the summary"))
		require.Len(t, mail.sent, 1)
		raw := decodeRaw(t, mail.sent[0])
		assert.Contains(t, raw, "Subject: "+DefaultSubject)
		assert.True(t, strings.HasSuffix(raw, "the summary"))
	})

	t.Run("api failure", func(t *testing.T) {
		mail := &fakeMail{err: errors.New("insufficient permission")}
		err := SendSummary(ctx, mail, "a@example.com", "s")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "insufficient permission")
	})
}

func TestMailSender_GmailAPI(t *testing.T) {
	var got gmail.Message
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/users/me/messages/send"), r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"msg-1"}`))
	}))
	defer srv.Close()

	ctx := context.Background()
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "x"})
	mail, err := NewMailSender(ctx, ts, option.WithHTTPClient(srv.Client()), option.WithEndpoint(srv.URL+"/"))
	require.NoError(t, err)

	require.NoError(t, SendSummary(ctx, mail, "a@example.com", "hello"))
	assert.Contains(t, decodeRaw(t, &got), "To: a@example.com")
}
