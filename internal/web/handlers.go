// ABOUTME: Request handlers for the summarize and automate steps
// ABOUTME: Failures become flash messages; nothing here fails the process
package web

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/harper/actionbrief/internal/core"
	"github.com/harper/actionbrief/internal/extract"
	"github.com/harper/actionbrief/internal/google"
	"github.com/harper/actionbrief/internal/models"
	"github.com/harper/actionbrief/internal/storage/sqlite"
)

// User-facing messages
const (
	msgNoText         = "No text was provided or extracted from the document."
	msgUnavailable    = "Summarization service is unavailable."
	msgTooShort       = "Summarization failed. The text may be too short."
	msgBadLengths     = "Minimum summary length must not exceed the maximum."
	msgNoCredentials  = "Could not connect to Google Services. Check credentials."
	msgCredentialsLog = "Could not obtain valid Google credentials."
	msgNoFutureDate   = "Could not find a future date in the text for the event."
	msgNoRecipient    = "No recipient email is configured."
	eventTimeLayout   = "2006-01-02 03:04 PM"
)

func (s *Server) handleIndex(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"Flashes":   s.popFlashes(c),
		"MinLength": core.DefaultMinLength,
		"MaxLength": core.DefaultMaxLength,
	})
}

func (s *Server) redirectHome(c *gin.Context, category models.FlashCategory, message string) {
	s.flash(c, category, message)
	c.Redirect(http.StatusFound, "/")
}

func (s *Server) handleSummarize(c *gin.Context) {
	ctx := c.Request.Context()
	text := c.PostForm("input_text")

	if fh, err := c.FormFile("document_file"); err == nil && fh.Filename != "" {
		uploaded, err := readUpload(fh)
		if err != nil {
			s.redirectHome(c, models.FlashDanger, fmt.Sprintf("Error reading file: %v", err))
			return
		}
		text = extract.Combine(text, uploaded)
	}

	if strings.TrimSpace(text) == "" {
		s.redirectHome(c, models.FlashWarning, msgNoText)
		return
	}

	lengths, err := core.ParseLengths(c.PostForm("min_length"), c.PostForm("max_length"))
	if err != nil {
		s.redirectHome(c, models.FlashWarning, msgBadLengths)
		return
	}

	brief, err := s.opts.Summarizer.Brief(ctx, text, lengths)
	switch {
	case err == nil:
	case errors.Is(err, core.ErrEmptyText):
		s.redirectHome(c, models.FlashWarning, msgNoText)
		return
	case errors.Is(err, core.ErrSummarizerUnavailable):
		s.logger.Errorf("%s", msgUnavailable)
		s.opts.Audit.Record(ctx, models.LevelError, msgUnavailable)
		s.redirectHome(c, models.FlashDanger, msgUnavailable)
		return
	case errors.Is(err, core.ErrEmptySummary):
		s.redirectHome(c, models.FlashWarning, msgTooShort)
		return
	default:
		s.logger.Errorf("Summarization Error: %v", err)
		s.opts.Audit.Record(ctx, models.LevelError, fmt.Sprintf("Summarization Error: %v", err))
		s.redirectHome(c, models.FlashDanger, fmt.Sprintf("Summarization error: %v", err))
		return
	}

	id := s.ensureSession(c)
	s.opts.Sessions.SetSummary(id, brief.Rendered(), brief.OriginalText)
	s.logger.Infof("Summarized %d chunk(s), %d action item(s)", brief.ChunkCount, len(brief.ActionItems))

	c.Redirect(http.StatusFound, "/automate")
}

func readUpload(fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", err
	}
	return extract.Extract(fh.Filename, data)
}

func (s *Server) renderAutomate(c *gin.Context, summary, originalText string) {
	c.HTML(http.StatusOK, "automate.html", gin.H{
		"Flashes":      s.popFlashes(c),
		"Summary":      summary,
		"OriginalText": originalText,
		"CanEmail":     s.opts.RecipientEmail != "",
	})
}

func (s *Server) handleAutomate(c *gin.Context) {
	id, ok := s.currentSession(c)
	if !ok {
		c.Redirect(http.StatusFound, "/")
		return
	}
	st, ok := s.opts.Sessions.Get(id)
	if !ok || !st.HasSummary() {
		c.Redirect(http.StatusFound, "/")
		return
	}
	s.renderAutomate(c, st.Summary, st.OriginalText)
}

func (s *Server) handleAutomateAction(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := s.currentSession(c)
	if !ok {
		c.Redirect(http.StatusFound, "/")
		return
	}
	st, ok := s.opts.Sessions.Get(id)
	if !ok || !st.HasSummary() {
		c.Redirect(http.StatusFound, "/")
		return
	}

	clients, err := s.opts.Google.Connect(ctx)
	if err != nil {
		s.logger.Errorf("%s %v", msgCredentialsLog, err)
		s.opts.Audit.Record(ctx, models.LevelError, msgCredentialsLog)
		s.flash(c, models.FlashDanger, msgNoCredentials)
		s.renderAutomate(c, st.Summary, st.OriginalText)
		return
	}

	if _, ok := c.GetPostForm("create_event"); ok {
		start, err := s.opts.Scheduler.Schedule(ctx, clients.Events, google.EventRequest{
			Title:        c.PostForm("event_title"),
			Summary:      st.Summary,
			OriginalText: st.OriginalText,
		})
		switch {
		case errors.Is(err, google.ErrNoFutureDate):
			s.flash(c, models.FlashWarning, msgNoFutureDate)
		case err != nil:
			s.flash(c, models.FlashDanger, fmt.Sprintf("Failed to create calendar event: %v", err))
		default:
			s.flash(c, models.FlashSuccess, fmt.Sprintf("Calendar event created for %s!", start.Format(eventTimeLayout)))
		}
	}

	if _, ok := c.GetPostForm("send_email"); ok {
		err := google.SendSummary(ctx, clients.Mail, s.opts.RecipientEmail, st.Summary)
		switch {
		case errors.Is(err, google.ErrNoRecipient):
			s.flash(c, models.FlashWarning, msgNoRecipient)
		case err != nil:
			s.flash(c, models.FlashDanger, fmt.Sprintf("Failed to send email: %v", err))
		default:
			s.flash(c, models.FlashSuccess, fmt.Sprintf("Summary emailed to %s!", s.opts.RecipientEmail))
		}
	}

	s.renderAutomate(c, st.Summary, st.OriginalText)
}

func (s *Server) handleAdmin(c *gin.Context) {
	entries, err := s.opts.Audit.Recent(c.Request.Context(), sqlite.DefaultRecentLimit)
	if err != nil {
		s.logger.Errorf("Database error: %v", err)
		c.String(http.StatusInternalServerError, "Could not read logs.")
		return
	}
	c.HTML(http.StatusOK, "admin.html", gin.H{"Logs": entries})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
