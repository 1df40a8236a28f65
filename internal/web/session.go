package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/harper/actionbrief/internal/models"
	"github.com/harper/actionbrief/internal/session"
)

// currentSession returns the id of a live session named by a correctly
// signed cookie.
func (s *Server) currentSession(c *gin.Context) (string, bool) {
	value, err := c.Cookie(session.CookieName)
	if err != nil {
		return "", false
	}
	id, ok := s.opts.Signer.Verify(value)
	if !ok || !s.opts.Sessions.Exists(id) {
		return "", false
	}
	return id, true
}

// ensureSession returns the current session id, starting one if needed
func (s *Server) ensureSession(c *gin.Context) string {
	if id, ok := s.currentSession(c); ok {
		return id
	}
	id := s.opts.Sessions.Create()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		session.CookieName,
		s.opts.Signer.Sign(id),
		int(s.opts.Sessions.TTL().Seconds()),
		"/",
		"",
		s.opts.SecureCookies || c.Request.TLS != nil,
		true,
	)
	return id
}

func (s *Server) flash(c *gin.Context, category models.FlashCategory, message string) {
	s.opts.Sessions.AddFlash(s.ensureSession(c), category, message)
}

func (s *Server) popFlashes(c *gin.Context) []models.Flash {
	id, ok := s.currentSession(c)
	if !ok {
		return nil
	}
	return s.opts.Sessions.PopFlashes(id)
}
