package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jinford/integral-rag/internal/module/retrieval/adapter/embedder"
	"github.com/jinford/integral-rag/internal/module/retrieval/application"
	"github.com/jinford/integral-rag/internal/module/retrieval/domain"
	rtesting "github.com/jinford/integral-rag/internal/module/retrieval/testing"
)

type querierFunc func(ctx context.Context, prompt string, networkID int64) (*application.QueryResult, error)

func (f querierFunc) Query(ctx context.Context, prompt string, networkID int64) (*application.QueryResult, error) {
	return f(ctx, prompt, networkID)
}

type ingesterFunc func(ctx context.Context) (*application.IngestStats, error)

func (f ingesterFunc) Ingest(ctx context.Context) (*application.IngestStats, error) {
	return f(ctx)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServer(q Querier, i Ingester) http.Handler {
	return NewServer(q, i, WithServerLogger(discardLogger())).Handler()
}

func do(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded), rec.Body.String())
	return rec, decoded
}

func TestHealth(t *testing.T) {
	rec, body := do(t, newTestServer(nil, nil), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]any{"status": "ok"}, body)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
}

func TestRequestIDIsPropagated(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()

	newTestServer(nil, nil).ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}

func TestEmbed(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		ingester := ingesterFunc(func(ctx context.Context) (*application.IngestStats, error) {
			return &application.IngestStats{Networks: 2, Profiles: 3, Posts: 4, Members: 5}, nil
		})

		rec, body := do(t, newTestServer(nil, ingester), http.MethodPost, "/embed", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, "Successfully embedded and stored all data", body["message"])
		assert.Equal(t, map[string]any{
			"networks": float64(2), "profiles": float64(3), "posts": float64(4), "members": float64(5), "failed": float64(0),
		}, body["stats"])
	})

	t.Run("failure", func(t *testing.T) {
		ingester := ingesterFunc(func(ctx context.Context) (*application.IngestStats, error) {
			return nil, errors.New("Networks.csv: no such file")
		})

		rec, body := do(t, newTestServer(nil, ingester), http.MethodPost, "/embed", "")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "Failed to embed and store data", body["message"])
		assert.Equal(t, "Networks.csv: no such file", body["error"])
	})
}

func TestQuery_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{name: "empty prompt", body: `{"prompt":"","networkId":1}`, err: domain.ErrEmptyPrompt, wantStatus: 400, wantMsg: "Prompt is required"},
		{name: "invalid network", body: `{"prompt":"hi","networkId":0}`, err: domain.ErrInvalidNetworkID, wantStatus: 400, wantMsg: "Valid networkId is required"},
		{name: "unknown network", body: `{"prompt":"hi","networkId":7}`, err: fmt.Errorf("%w: 7", domain.ErrNetworkNotFound), wantStatus: 404, wantMsg: "Network with ID 7 not found"},
		{name: "storage failure", body: `{"prompt":"hi","networkId":1}`, err: errors.New("connection refused"), wantStatus: 500, wantMsg: "Failed to process query"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			querier := querierFunc(func(ctx context.Context, prompt string, networkID int64) (*application.QueryResult, error) {
				return nil, tt.err
			})

			rec, body := do(t, newTestServer(querier, nil), http.MethodPost, "/query", tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tt.wantMsg, body["message"])
		})
	}
}

func TestQuery_NetworkIDMustBeInteger(t *testing.T) {
	var got []int64
	querier := querierFunc(func(ctx context.Context, prompt string, networkID int64) (*application.QueryResult, error) {
		got = append(got, networkID)
		return nil, domain.ErrInvalidNetworkID
	})
	h := newTestServer(querier, nil)

	for _, body := range []string{`{"prompt":"hi","networkId":"3"}`, `{"prompt":"hi","networkId":1.5}`, `{"prompt":"hi"}`} {
		rec, _ := do(t, h, http.MethodPost, "/query", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
	assert.Equal(t, []int64{0, 0, 0}, got)
}

func TestQuery_MalformedBody(t *testing.T) {
	rec, body := do(t, newTestServer(nil, nil), http.MethodPost, "/query", `{"prompt":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid JSON body", body["message"])
}

func TestQuery_EndToEnd(t *testing.T) {
	emb := embedder.NewCharSignalEmbedder(embedder.DefaultDimensions)
	store := rtesting.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Transact(ctx, func(w *domain.WriteSet) error {
		require.NoError(t, w.Networks.Upsert(ctx, &domain.Network{ID: 1, Name: "Integral"}))
		require.NoError(t, w.Profiles.Upsert(ctx, &domain.Profile{ID: 10, Name: "Ada", Bio: "systems engineer", BioEmbedding: emb.Embed("systems engineer")}))
		require.NoError(t, w.Members.Upsert(ctx, &domain.Member{ID: 1, ProfileID: 10, NetworkID: 1}))
		require.NoError(t, w.Posts.Upsert(ctx, &domain.Post{ID: 20, NetworkID: 1, Author: "Ada", Content: "integral RAG", ContentEmbedding: emb.Embed("integral RAG")}))
		return nil
	}))

	retriever := application.NewRetriever(emb, store.Posts(), store.Profiles(), application.WithRetrieverLogger(discardLogger()))
	svc := application.NewQueryService(store.Networks(), retriever, application.WithQueryLogger(discardLogger()))

	rec, body := do(t, newTestServer(svc, nil), http.MethodPost, "/query", `{"prompt":"integral RAG","networkId":1}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Integral", body["network"])
	assert.Equal(t, "integral RAG", body["prompt"])

	results, ok := body["results"].([]any)
	require.True(t, ok)
	require.Len(t, results, 2)

	first := results[0].(map[string]any)
	assert.Equal(t, "post", first["type"])
	assert.InDelta(t, 1.0, first["score"], 1e-6)
	assert.Equal(t, map[string]any{"id": float64(20), "networkId": float64(1), "author": "Ada", "content": "integral RAG"}, first["item"])

	second := results[1].(map[string]any)
	assert.Equal(t, "profile", second["type"])
	assert.Equal(t, map[string]any{"id": float64(10), "name": "Ada", "bio": "systems engineer"}, second["item"])
}

func TestQuery_NoRelevantContent(t *testing.T) {
	emb := embedder.NewCharSignalEmbedder(embedder.DefaultDimensions)
	ctx := context.Background()

	newService := func(t *testing.T, post *domain.Post) *application.QueryService {
		t.Helper()
		store := rtesting.NewMemoryStore()
		require.NoError(t, store.Transact(ctx, func(w *domain.WriteSet) error {
			require.NoError(t, w.Networks.Upsert(ctx, &domain.Network{ID: 1, Name: "Integral"}))
			if post != nil {
				require.NoError(t, w.Posts.Upsert(ctx, post))
			}
			return nil
		}))
		retriever := application.NewRetriever(emb, store.Posts(), store.Profiles(), application.WithRetrieverLogger(discardLogger()))
		return application.NewQueryService(store.Networks(), retriever, application.WithQueryLogger(discardLogger()))
	}

	t.Run("dimension mismatch", func(t *testing.T) {
		stale := embedder.NewCharSignalEmbedder(8).Embed("integral RAG")
		svc := newService(t, &domain.Post{ID: 20, NetworkID: 1, Author: "Ada", Content: "integral RAG", ContentEmbedding: stale})

		rec, body := do(t, newTestServer(svc, nil), http.MethodPost, "/query", `{"prompt":"integral RAG","networkId":1}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, "No relevant content found", body["message"])
		assert.Equal(t, []any{}, body["results"])
	})

	t.Run("empty network", func(t *testing.T) {
		rec, body := do(t, newTestServer(newService(t, nil), nil), http.MethodPost, "/query", `{"prompt":"integral RAG","networkId":1}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, "Integral", body["network"])
		assert.Equal(t, "No relevant content found", body["message"])
		assert.Equal(t, []any{}, body["results"])
	})
}

func TestServe_GracefulShutdown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- NewServer(nil, nil, WithServerLogger(discardLogger())).Serve(ctx, ln)
	}()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String() + "/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
