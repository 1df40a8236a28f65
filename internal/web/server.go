// ABOUTME: HTTP surface: summarize form, automate page, admin log view
// ABOUTME: gin engine with embedded templates and basic auth on /admin
package web

import (
	"context"
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/harper/actionbrief/internal/core"
	"github.com/harper/actionbrief/internal/google"
	"github.com/harper/actionbrief/internal/logging"
	"github.com/harper/actionbrief/internal/models"
	"github.com/harper/actionbrief/internal/session"
)

//go:embed templates/*.html
var templatesFS embed.FS

// DefaultMaxUploadBytes bounds multipart form memory
const DefaultMaxUploadBytes = 32 << 20

// AdminRealm is the basic auth realm of the admin page
const AdminRealm = "Login Required"

// Connector yields authenticated Google API clients
type Connector interface {
	Connect(ctx context.Context) (*google.Clients, error)
}

// AuditLog is the append-only log shown on the admin page
type AuditLog interface {
	Record(ctx context.Context, level models.LogLevel, message string)
	Recent(ctx context.Context, limit int) ([]models.LogEntry, error)
}

// Options wires the server's dependencies
type Options struct {
	Summarizer     *core.Service
	Scheduler      *google.Scheduler
	Google         Connector
	Audit          AuditLog
	Sessions       *session.Store
	Signer         *session.Signer
	AdminUsername  string
	AdminPassword  string
	RecipientEmail string
	SecureCookies  bool
	MaxUploadBytes int64
	Logger         logging.Logger
}

// Server holds the gin engine and the shared services
type Server struct {
	opts   Options
	engine *gin.Engine
	logger logging.Logger
}

// New builds the engine and registers every route
func New(opts Options) (*Server, error) {
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = DefaultMaxUploadBytes
	}

	tmpl, err := template.New("").Funcs(templateFuncs).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger(opts.Logger))
	engine.MaxMultipartMemory = opts.MaxUploadBytes
	engine.SetHTMLTemplate(tmpl)

	s := &Server{opts: opts, engine: engine, logger: opts.Logger}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	s.engine.GET("/", s.handleIndex)
	s.engine.POST("/", s.handleSummarize)
	s.engine.GET("/automate", s.handleAutomate)
	s.engine.POST("/automate", s.handleAutomateAction)
	s.engine.GET("/healthz", s.handleHealth)

	admin := s.engine.Group("/admin", gin.BasicAuthForRealm(gin.Accounts{
		s.opts.AdminUsername: s.opts.AdminPassword,
	}, AdminRealm))
	admin.GET("", s.handleAdmin)
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.engine
}

func requestLogger(l logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		l.Infof("%s %s %d %s", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start).Round(time.Millisecond))
	}
}

var templateFuncs = template.FuncMap{
	"alertClass": func(cat models.FlashCategory) string {
		return "alert-" + string(cat)
	},
	"formatTime": func(t time.Time) string {
		return t.Format("2006-01-02 15:04:05 MST")
	},
}
