package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"
	"github.com/lox/bubblejar/internal/randutil"
	"github.com/lox/bubblejar/internal/session"
	"github.com/lox/bubblejar/internal/sessionid"
	"github.com/lox/bubblejar/jar"
)

// Server serves one game session per WebSocket connection
type Server struct {
	addr        string
	upgrader    websocket.Upgrader
	logger      *log.Logger
	clock       quartz.Clock
	ids         *sessionid.Generator
	rules       jar.Rules
	seed        int64
	mu          sync.RWMutex
	connections map[*Connection]struct{}
	sessions    int
}

// Option configures a Server
type Option func(*Server)

// WithRules sets the move policy for new sessions
func WithRules(rules jar.Rules) Option {
	return func(s *Server) { s.rules = rules }
}

// WithSeed makes session deals reproducible: the n-th session is seeded
// from seed and n. Zero seeds every session from the clock.
func WithSeed(seed int64) Option {
	return func(s *Server) { s.seed = seed }
}

// WithClock replaces the real clock, for tests
func WithClock(clock quartz.Clock) Option {
	return func(s *Server) { s.clock = clock }
}

// NewServer creates a new WebSocket server
func NewServer(addr string, logger *log.Logger, opts ...Option) *Server {
	s := &Server{
		addr: addr,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// Any browser frontend may connect; sessions are not shared.
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger:      logger.WithPrefix("server"),
		clock:       quartz.NewReal(),
		connections: make(map[*Connection]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.ids = sessionid.NewGenerator(s.clock, nil)
	return s
}

// Handler returns the HTTP routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

// Start serves until ctx is cancelled, then closes every connection
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting WebSocket server", "addr", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down")
	s.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}

// Stop closes all connections
func (s *Server) Stop() {
	s.mu.Lock()
	conns := make([]*Connection, 0, len(s.connections))
	for conn := range s.connections {
		conns = append(conns, conn)
	}
	s.mu.Unlock()

	for _, conn := range conns {
		_ = conn.Close() // Ignore close errors during shutdown
	}
}

// ConnectionCount returns the number of open connections
func (s *Server) ConnectionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.connections)
}

// newSession creates the session for the next connection
func (s *Server) newSession() *session.Session {
	s.mu.Lock()
	n := s.sessions
	s.sessions++
	s.mu.Unlock()

	seed := s.seed
	if seed != 0 {
		seed = randutil.Derive(seed, n)
	}
	return session.New(session.Options{
		Rules:  s.rules,
		Seed:   seed,
		Clock:  s.clock,
		Logger: s.logger,
		IDs:    s.ids,
	})
}

// handleWebSocket handles WebSocket upgrade requests
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	client := NewConnection(conn, s.newSession(), s.logger, s.clock)

	s.mu.Lock()
	s.connections[client] = struct{}{}
	total := len(s.connections)
	s.mu.Unlock()
	s.logger.Info("Client connected", "session", client.SessionID(), "total", total)

	client.Start()

	go func() {
		<-client.Done()
		s.mu.Lock()
		delete(s.connections, client)
		total := len(s.connections)
		s.mu.Unlock()
		s.logger.Info("Client disconnected", "session", client.SessionID(), "total", total)
	}()
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK") // Ignore write errors for health check
}
