package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jinford/integral-rag/internal/module/retrieval/domain"
)

const (
	defaultQueryLimit   = 5
	defaultQueryTimeout = 10 * time.Second
)

// QueryService は検索のユースケースを提供します
type QueryService struct {
	networks  domain.NetworkReader
	retriever *Retriever
	limit     int
	timeout   time.Duration
	log       *slog.Logger
}

// QueryOption は QueryService 構築時のオプション
type QueryOption func(*QueryService)

// WithQueryLimit は返す結果の最大件数を設定する
func WithQueryLimit(limit int) QueryOption {
	return func(s *QueryService) {
		if limit > 0 {
			s.limit = limit
		}
	}
}

// WithQueryTimeout はストレージ問い合わせのタイムアウトを設定する
func WithQueryTimeout(timeout time.Duration) QueryOption {
	return func(s *QueryService) {
		if timeout > 0 {
			s.timeout = timeout
		}
	}
}

// WithQueryLogger はロガーを差し替える
func WithQueryLogger(logger *slog.Logger) QueryOption {
	return func(s *QueryService) {
		if logger != nil {
			s.log = logger
		}
	}
}

// NewQueryService は新しいQueryServiceを作成します
func NewQueryService(networks domain.NetworkReader, retriever *Retriever, opts ...QueryOption) *QueryService {
	s := &QueryService{
		networks:  networks,
		retriever: retriever,
		limit:     defaultQueryLimit,
		timeout:   defaultQueryTimeout,
		log:       slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// QueryResult は検索結果
type QueryResult struct {
	Network *domain.Network
	Prompt  string
	Results []domain.RankedResult
}

// Query はプロンプトを検証し、ネットワーク内の関連コンテンツを検索します
func (s *QueryService) Query(ctx context.Context, prompt string, networkID int64) (*QueryResult, error) {
	// バリデーション
	if strings.TrimSpace(prompt) == "" {
		return nil, domain.ErrEmptyPrompt
	}
	if networkID <= 0 {
		return nil, domain.ErrInvalidNetworkID
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	network, err := s.Network(ctx, networkID)
	if err != nil {
		return nil, err
	}

	s.log.Info("Processing query",
		"prompt", prompt,
		"network", network.Name,
		"networkID", networkID,
	)

	results, err := s.retriever.RetrieveRelevantContent(ctx, prompt, networkID, s.limit)
	if err != nil {
		s.log.Error("Query failed",
			"prompt", prompt,
			"networkID", networkID,
			"error", err,
		)
		return nil, fmt.Errorf("failed to retrieve relevant content: %w", err)
	}

	s.log.Info("Query completed",
		"networkID", networkID,
		"results", len(results),
	)

	return &QueryResult{
		Network: network,
		Prompt:  prompt,
		Results: results,
	}, nil
}

// Network はIDでネットワークを取得します
// 存在しない場合は ErrNetworkNotFound を返します
func (s *QueryService) Network(ctx context.Context, networkID int64) (*domain.Network, error) {
	found, err := s.networks.FindByID(ctx, networkID)
	if err != nil {
		return nil, fmt.Errorf("failed to get network: %w", err)
	}
	network, ok := found.Get()
	if !ok {
		return nil, fmt.Errorf("%w: %d", domain.ErrNetworkNotFound, networkID)
	}
	return network, nil
}

// Networks はすべてのネットワークを返します
func (s *QueryService) Networks(ctx context.Context) ([]*domain.Network, error) {
	networks, err := s.networks.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list networks: %w", err)
	}
	return networks, nil
}
