package httpapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/jinford/integral-rag/internal/module/retrieval/application"
)

const shutdownTimeout = 10 * time.Second

// Querier は /query が利用する検索ユースケースです
type Querier interface {
	Query(ctx context.Context, prompt string, networkID int64) (*application.QueryResult, error)
}

// Ingester は /embed が利用する取り込みユースケースです
type Ingester interface {
	Ingest(ctx context.Context) (*application.IngestStats, error)
}

// Server はHTTP APIサーバーです
type Server struct {
	querier  Querier
	ingester Ingester
	log      *slog.Logger
}

// ServerOption は Server 構築時のオプション
type ServerOption func(*Server)

// WithServerLogger はロガーを差し替える
func WithServerLogger(logger *slog.Logger) ServerOption {
	return func(s *Server) {
		if logger != nil {
			s.log = logger
		}
	}
}

// NewServer は新しいServerを作成します
func NewServer(querier Querier, ingester Ingester, opts ...ServerOption) *Server {
	s := &Server{
		querier:  querier,
		ingester: ingester,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler はルーティング済みの http.Handler を返します
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /embed", s.handleEmbed)
	mux.HandleFunc("POST /query", s.handleQuery)
	mux.HandleFunc("GET /health", s.handleHealth)

	return requestID(accessLog(s.log, mux))
}

// ListenAndServe は addr で待ち受け、ctx がキャンセルされるとグレースフルに停止します
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve は ln で待ち受けます
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("Server is running",
			"addr", ln.Addr().String(),
			"endpoints", []string{"POST /embed", "POST /query", "GET /health"},
		)
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	s.log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}
