// ABOUTME: Builds the shared services from configuration
// ABOUTME: Used by serve and mcp so both run the same pipeline
package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/harper/actionbrief/internal/config"
	"github.com/harper/actionbrief/internal/core"
	"github.com/harper/actionbrief/internal/dates"
	"github.com/harper/actionbrief/internal/google"
	"github.com/harper/actionbrief/internal/llm"
	"github.com/harper/actionbrief/internal/logging"
	"github.com/harper/actionbrief/internal/models"
	"github.com/harper/actionbrief/internal/session"
	"github.com/harper/actionbrief/internal/storage/sqlite"
	"github.com/harper/actionbrief/internal/web"
	"github.com/robfig/cron/v3"
)

// sweepSchedule is how often expired sessions are purged
const sweepSchedule = "@every 5m"

// buildService assembles the summarization pipeline. When the model cannot
// be set up the service is still returned, unavailable, along with the cause.
func buildService(cfg *config.Config, logger logging.Logger) (*core.Service, error) {
	actions := core.NewActionItemExtractor(dates.NewFinder(cfg.Location()))

	tok, err := core.NewTiktokenTokenizer(cfg.SummaryModel)
	if err != nil {
		return core.NewService(nil, nil, actions, logger), fmt.Errorf("load tokenizer: %w", err)
	}
	chunker := core.NewChunker(tok, cfg.ChunkTokens)

	client, err := llm.NewOpenAIClientWithConfig(&llm.ClientConfig{
		APIKey:    cfg.OpenAIKey,
		BaseURL:   cfg.OpenAIBaseURL,
		ChatModel: cfg.SummaryModel,
		Timeout:   cfg.SummaryTimeout,
		Seed:      llm.DefaultSeed,
	})
	if err != nil {
		return core.NewService(chunker, nil, actions, logger), fmt.Errorf("load summarization model: %w", err)
	}

	return core.NewService(chunker, client, actions, logger), nil
}

// buildCredentialStore reads the OAuth client file when present. Without it
// stored tokens still work until they expire.
func buildCredentialStore(cfg *config.Config, logger logging.Logger) *google.CredentialStore {
	oauth, err := google.LoadOAuthConfig(cfg.CredentialsFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Warnf("No %s found, expired Google tokens cannot be refreshed", cfg.CredentialsFile)
		} else {
			logger.Warnf("Could not load OAuth client: %v", err)
		}
		oauth = nil
	}
	return google.NewCredentialStore(cfg.TokenFile, oauth, logger)
}

// app is everything serve needs, owned for the process lifetime
type app struct {
	db       *sqlite.DB
	logs     *sqlite.LogStore
	sessions *session.Store
	server   *web.Server
	cron     *cron.Cron
}

func newApp(cfg *config.Config, logger logging.Logger) (*app, error) {
	if cfg.SecretKey == "" {
		return nil, fmt.Errorf("SECRET_KEY must be set to sign session cookies")
	}

	db, err := sqlite.Open(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("opening log database: %w", err)
	}
	logs := sqlite.NewLogStore(db, logger)

	svc, err := buildService(cfg, logger)
	if err != nil {
		logger.Errorf("Failed to load model/tokenizer: %v", err)
		logs.Record(context.Background(), models.LevelError, fmt.Sprintf("Failed to load model/tokenizer: %v", err))
	} else {
		logger.Infof("Summarization model %s ready", cfg.SummaryModel)
	}

	creds := buildCredentialStore(cfg, logger)
	sessions := session.NewStore(cfg.SessionTTL)

	server, err := web.New(web.Options{
		Summarizer:     svc,
		Scheduler:      google.NewScheduler(dates.NewFinder(cfg.Location()), cfg.Location()),
		Google:         google.NewConnector(creds),
		Audit:          logs,
		Sessions:       sessions,
		Signer:         session.NewSigner(cfg.SecretKey),
		AdminUsername:  cfg.AdminUsername,
		AdminPassword:  cfg.AdminPassword,
		RecipientEmail: cfg.RecipientEmail,
		SecureCookies:  cfg.SecureCookies,
		Logger:         logger,
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("building web server: %w", err)
	}

	c := cron.New()
	if _, err := c.AddFunc(sweepSchedule, func() {
		if n := sessions.Sweep(); n > 0 {
			logger.Debugf("Swept %d expired session(s)", n)
		}
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("scheduling session sweeper: %w", err)
	}

	return &app{db: db, logs: logs, sessions: sessions, server: server, cron: c}, nil
}

// start begins background jobs
func (a *app) start() {
	a.cron.Start()
}

// close stops background jobs and closes the database
func (a *app) close(timeout time.Duration) error {
	ctx := a.cron.Stop()
	select {
	case <-ctx.Done():
	case <-time.After(timeout):
	}
	return a.db.Close()
}
