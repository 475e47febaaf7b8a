// Package httpserver serves the subdomain checker as a server-rendered web
// page. Each form submission runs one controller cycle on the request
// goroutine and renders the resulting state.
package httpserver

import (
	"context"
	"embed"
	"html/template"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fosscu/subdomain-checker/internal/checker"
	"github.com/fosscu/subdomain-checker/internal/model"
	"github.com/fosscu/subdomain-checker/internal/render"
)

//go:embed templates/*.html
var templateFS embed.FS

// Config holds web server settings.
type Config struct {
	Addr         string
	ParentDomain string
	Endpoint     string // shown by /api/health
	Policy       checker.StalePolicy
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Logger       *slog.Logger
}

// Server provides the checker page over HTTP.
type Server struct {
	cfg       Config
	client    model.AvailabilityClient
	server    *http.Server
	listener  net.Listener
	ctx       context.Context
	cancel    context.CancelFunc
	startTime time.Time
	logger    *slog.Logger
}

// NewServer creates a new web server backed by client.
func NewServer(cfg Config, client model.AvailabilityClient) *Server {
	if cfg.Addr == "" {
		cfg.Addr = model.DefaultWebAddr
	}
	if cfg.ParentDomain == "" {
		cfg.ParentDomain = model.DefaultParentDomain
	}
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = 30 * time.Second
	}
	if cfg.WriteTimeout < 0 {
		cfg.WriteTimeout = 0
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		cfg:       cfg,
		client:    client,
		ctx:       ctx,
		cancel:    cancel,
		startTime: time.Now(),
		logger:    logger,
	}
}

// Handler builds the gin engine with all routes registered.
func (s *Server) Handler() (*gin.Engine, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())
	r.SetHTMLTemplate(tmpl)

	r.GET("/", s.handleIndex)
	r.POST("/check", s.handleCheck)
	r.GET("/api/health", s.handleHealth)
	return r, nil
}

// Start begins serving HTTP requests in the background.
func (s *Server) Start() error {
	gin.SetMode(gin.ReleaseMode)
	h, err := s.Handler()
	if err != nil {
		return err
	}

	s.server = &http.Server{
		Handler:           h,
		BaseContext:       func(_ net.Listener) context.Context { return s.ctx },
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       s.cfg.ReadTimeout,
		WriteTimeout:      s.cfg.WriteTimeout,
	}

	listener, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	s.listener = listener
	s.startTime = time.Now()

	go func() {
		if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.logger.Error("web server stopped", "error", err)
		}
	}()
	return nil
}

// Addr returns the bound listen address, useful when Config.Addr used port 0.
func (s *Server) Addr() string {
	if s.listener == nil {
		return s.cfg.Addr
	}
	return s.listener.Addr().String()
}

// Stop gracefully shuts down the HTTP server. In-flight checks see their
// request context cancelled.
func (s *Server) Stop() error {
	s.cancel()
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

type pageData struct {
	View   render.View
	Banner string
}

func (s *Server) renderPage(c *gin.Context, st model.CheckState) {
	v := render.Render(st, s.cfg.ParentDomain)
	c.HTML(http.StatusOK, "index.html", pageData{View: v, Banner: v.Banner.String()})
}

func (s *Server) handleIndex(c *gin.Context) {
	s.renderPage(c, model.CheckState{})
}

func (s *Server) handleCheck(c *gin.Context) {
	ctrl := checker.New(c.Request.Context(), s.client, checker.WithStalePolicy(s.cfg.Policy))
	defer ctrl.Close()

	ctrl.OnTextChanged(c.PostForm("subdomain"))
	if err := ctrl.SubmitCheck(c.Request.Context()); err != nil && !model.IsValidation(err) {
		s.logger.Warn("availability check failed", "error", err)
	}
	s.renderPage(c, ctrl.Snapshot())
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":        "ok",
		"uptime":        time.Since(s.startTime).String(),
		"endpoint":      s.cfg.Endpoint,
		"parent_domain": s.cfg.ParentDomain,
	})
}

// requestLogger logs one debug record per request.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"elapsed", time.Since(start),
		)
	}
}
