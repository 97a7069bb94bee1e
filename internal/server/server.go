package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"rate_relay/internal/domain"
	"rate_relay/internal/infra"
	"rate_relay/internal/service"

	"github.com/gorilla/websocket"
)

// Aggregator resolves one exchange query into per-day results.
type Aggregator interface {
	Aggregate(ctx context.Context, days int, currencies domain.CurrencySet) []service.DayResult
}

// Server accepts websocket sessions and routes their messages: exchange
// queries are answered to the originating session only, anything else
// is broadcast to every registered session as an unknown command.
type Server struct {
	cfg      *infra.Config
	registry *Registry
	agg      Aggregator
	metrics  *infra.Metrics
	logger   *slog.Logger

	upgrader websocket.Upgrader
	httpSrv  *http.Server

	// Base context for in-flight aggregates; set by Start.
	ctx context.Context
}

// New creates a broadcast server.
func New(cfg *infra.Config, agg Aggregator, metrics *infra.Metrics) *Server {
	s := &Server{
		cfg:      cfg,
		registry: NewRegistry(),
		agg:      agg,
		metrics:  metrics,
		logger:   slog.Default().With("module", "server"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		ctx: context.Background(),
	}
	return s
}

// Handler exposes the route table (also used by tests).
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/healthz", s.handleHealth)
	return mux
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	s.ctx = ctx
	s.httpSrv = &http.Server{
		Addr:    s.cfg.Addr(),
		Handler: s.Handler(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.httpSrv.Shutdown(shutdownCtx)
	}()

	s.logger.Info("Listening", slog.String("addr", s.cfg.Addr()))
	if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Registry exposes the session registry.
func (s *Server) Registry() *Registry {
	return s.registry
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("Failed to upgrade websocket", slog.Any("error", err))
		return
	}

	sess := newSession(conn)
	s.registry.Add(sess)
	if s.metrics != nil {
		s.metrics.SessionConnected()
	}
	s.logger.Info("Client connects",
		slog.String("remote", sess.RemoteAddr()),
		slog.String("name", sess.Name))

	// The handler goroutine is the session's receive loop.
	s.serve(sess)
}

// serve runs the per-session receive loop. Every exit path removes the
// session from the registry; none of them panics.
func (s *Server) serve(sess *Session) {
	defer func() {
		s.registry.Remove(sess)
		sess.Close()
		if s.metrics != nil {
			s.metrics.SessionDisconnected()
		}
		s.logger.Info("Client disconnects",
			slog.String("remote", sess.RemoteAddr()),
			slog.String("name", sess.Name))
	}()

	for {
		msgType, data, err := sess.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				// Protocol violation or abnormal close: recoverable,
				// the session is simply dropped.
				s.logger.Warn("Session closed unexpectedly",
					slog.String("remote", sess.RemoteAddr()),
					slog.Any("error", err))
			}
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}
		s.handleMessage(sess, string(data))
	}
}

func (s *Server) handleMessage(sess *Session, msg string) {
	if s.metrics != nil {
		s.metrics.RecordMessage()
	}

	if domain.IsExchangeCommand(msg) {
		s.handleExchange(sess, msg)
		return
	}

	s.broadcast("Unknown command: " + msg)
}

// handleExchange answers the originating session only.
func (s *Server) handleExchange(sess *Session, msg string) {
	days := domain.ClampDays(domain.DaysFromMessage(msg), s.cfg.API.MaxDays)
	currencies := domain.NewCurrencySet(s.cfg.API.DefaultCurrencies...).
		Merge(domain.DefaultCurrencies())

	if s.metrics != nil {
		s.metrics.RecordQuery()
	}

	results := s.agg.Aggregate(s.ctx, days, currencies)
	reply := service.FormatResults(results)

	if err := sess.Send(reply); err != nil {
		// The client may have disconnected while the aggregate was in
		// flight; the read loop handles removal.
		s.logger.Warn("Reply send failed",
			slog.String("name", sess.Name), slog.Any("error", err))
	}
}

// broadcast delivers text to every session in a point-in-time snapshot.
// A failed send removes that session; the broadcast continues.
func (s *Server) broadcast(text string) {
	if s.metrics != nil {
		s.metrics.RecordBroadcast()
	}

	for _, sess := range s.registry.Snapshot() {
		if err := sess.Send(text); err != nil {
			s.logger.Warn("Broadcast send failed, dropping session",
				slog.String("name", sess.Name), slog.Any("error", err))
			s.registry.Remove(sess)
			sess.Close()
		}
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	resp := map[string]any{
		"status":      "ok",
		"connections": s.registry.Len(),
	}
	if s.metrics != nil {
		resp["metrics"] = s.metrics.Snapshot()
	}
	json.NewEncoder(w).Encode(resp)
}
