// Package services contains the server lifecycle
// Core layer depends only on ports, never on concrete adapters
package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"hpc-timeline/internal/config"
	"hpc-timeline/internal/core/ports"
)

var (
	// ErrAddressInUse is returned by Start when the port is already bound
	ErrAddressInUse = errors.New("address already in use")

	// ErrAlreadyStarted is returned by Start or Serve when called a second time
	ErrAlreadyStarted = errors.New("server already started")

	// ErrNotStarted is returned by Serve when Start has not succeeded
	ErrNotStarted = errors.New("server not started")
)

// readHeaderTimeout bounds slow clients that never finish sending headers
const readHeaderTimeout = 10 * time.Second

// Server owns the listening socket and the serve loop
// Lifecycle: Start (bind) -> Serve (blocks until ctx is done); no restart
type Server struct {
	cfg       *config.Config
	handler   http.Handler
	inspector ports.PortInspector // optional, explains bind failures
	browser   ports.BrowserOpener // optional, used when cfg.Browser.Open is set

	mu         sync.Mutex
	listener   net.Listener
	httpServer *http.Server
}

// NewServer creates a server; inspector and browser may be nil
func NewServer(cfg *config.Config, handler http.Handler, inspector ports.PortInspector, browser ports.BrowserOpener) *Server {
	return &Server{
		cfg:       cfg,
		handler:   handler,
		inspector: inspector,
		browser:   browser,
	}
}

// Run binds the port, prints the banner to out and serves until ctx is cancelled
func (s *Server) Run(ctx context.Context, out io.Writer) error {
	if err := s.Start(ctx); err != nil {
		return err
	}

	port := s.Port()
	if err := WriteBanner(out, s.cfg.Banner, port); err != nil {
		s.closeListener()
		return fmt.Errorf("write banner: %w", err)
	}

	if s.cfg.Browser.Open && s.browser != nil {
		url := s.cfg.Banner.URL(port)
		if err := s.browser.OpenURL(url); err != nil {
			slog.Warn("Failed to open browser", "url", url, "error", err)
		}
	}

	return s.Serve(ctx)
}

// Start binds the TCP listener on all interfaces at the configured port
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener != nil {
		return ErrAlreadyStarted
	}

	addr := net.JoinHostPort("", strconv.Itoa(s.cfg.App.Port))

	var lc net.ListenConfig
	l, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return s.bindError(ctx, err)
	}

	s.listener = l
	return nil
}

// Port returns the bound port, or 0 before Start
func (s *Server) Port() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener == nil {
		return 0
	}
	if addr, ok := s.listener.Addr().(*net.TCPAddr); ok {
		return addr.Port
	}
	return 0
}

// Serve accepts connections until ctx is cancelled
// Connections are closed abruptly on cancellation; in-flight requests are not drained
func (s *Server) Serve(ctx context.Context) error {
	s.mu.Lock()
	l := s.listener
	if l == nil {
		s.mu.Unlock()
		return ErrNotStarted
	}
	if s.httpServer != nil {
		s.mu.Unlock()
		return ErrAlreadyStarted
	}
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: readHeaderTimeout,
		ErrorLog:          slog.NewLogLogger(slog.Default().Handler(), slog.LevelDebug),
	}
	s.httpServer = srv
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		// Stop the watcher if the loop ends on its own
		defer cancel()

		if err := srv.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		srv.Close()
		return nil
	})

	return g.Wait()
}

// bindError wraps a listen failure, naming the port owner when it can be found
func (s *Server) bindError(ctx context.Context, err error) error {
	port := s.cfg.App.Port

	if !errors.Is(err, syscall.EADDRINUSE) {
		return fmt.Errorf("listen on port %d: %w", port, err)
	}

	if s.inspector != nil {
		owner, inspectErr := s.inspector.FindListener(ctx, port)
		if inspectErr != nil {
			slog.Debug("Port owner lookup failed", "port", port, "error", inspectErr)
		} else if owner != nil {
			return fmt.Errorf("%w: port %d is held by %s: %w", ErrAddressInUse, port, owner, err)
		}
	}

	return fmt.Errorf("%w: port %d: %w", ErrAddressInUse, port, err)
}

func (s *Server) closeListener() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener != nil {
		s.listener.Close()
	}
}
