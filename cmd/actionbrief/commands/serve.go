// ABOUTME: Serve command runs the web app
// ABOUTME: Uses TLS on :443 when cert.pem and key.pem are present, else :5001
package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/harper/actionbrief/internal/logging"
	"github.com/spf13/cobra"
)

const (
	defaultAddr    = ":5001"
	defaultTLSAddr = ":443"
	certFile       = "cert.pem"
	keyFile        = "key.pem"
	shutdownWait   = 10 * time.Second
)

var serveAddr string

// NewServeCmd creates the serve command
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web app",
		Long: `Start the actionbrief web app.

Serves HTTPS on :443 when cert.pem and key.pem exist in the working
directory, otherwise plain HTTP on :5001. --addr overrides the port.`,
		Example: `  actionbrief serve
  actionbrief serve --addr 127.0.0.1:8080`,
		RunE: runServe,
	}

	cmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default :5001, or :443 with TLS)")

	return cmd
}

// listenPlan decides where and how to listen
type listenPlan struct {
	Addr     string
	CertFile string
	KeyFile  string
}

// TLS reports whether the plan serves HTTPS
func (p listenPlan) TLS() bool {
	return p.CertFile != ""
}

func planListen(addr, dir string) listenPlan {
	cert := filepath.Join(dir, certFile)
	key := filepath.Join(dir, keyFile)

	var plan listenPlan
	if fileExists(cert) && fileExists(key) {
		plan = listenPlan{Addr: defaultTLSAddr, CertFile: cert, KeyFile: key}
	} else {
		plan = listenPlan{Addr: defaultAddr}
	}
	if addr != "" {
		plan.Addr = addr
	}
	return plan
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := logging.Default

	if !verbose {
		gin.SetMode(gin.ReleaseMode)
	}

	plan := planListen(serveAddr, ".")
	if plan.TLS() {
		cfg.SecureCookies = true
	}

	a, err := newApp(cfg, logger)
	if err != nil {
		return err
	}
	a.start()

	srv := &http.Server{
		Addr:              plan.Addr,
		Handler:           a.server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		if plan.TLS() {
			logger.Infof("actionbrief listening on https://%s", plan.Addr)
			serverErr <- srv.ListenAndServeTLS(plan.CertFile, plan.KeyFile)
		} else {
			logger.Infof("actionbrief listening on http://%s", plan.Addr)
			serverErr <- srv.ListenAndServe()
		}
	}()

	select {
	case <-ctx.Done():
		logger.Infof("Shutdown signal received, gracefully shutting down...")
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			_ = a.close(shutdownWait)
			return fmt.Errorf("server error: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownWait)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("Error during shutdown: %v", err)
	}
	if err := a.close(shutdownWait); err != nil {
		logger.Warnf("Error closing log database: %v", err)
	}

	logger.Infof("Shutdown complete")
	return nil
}
