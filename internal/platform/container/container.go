package container

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jinford/integral-rag/internal/module/retrieval/adapter/csvloader"
	"github.com/jinford/integral-rag/internal/module/retrieval/adapter/embedder"
	retrievalpg "github.com/jinford/integral-rag/internal/module/retrieval/adapter/pg"
	retrievalsqlc "github.com/jinford/integral-rag/internal/module/retrieval/adapter/pg/sqlc"
	"github.com/jinford/integral-rag/internal/module/retrieval/application"
	"github.com/jinford/integral-rag/internal/module/retrieval/domain"
	"github.com/jinford/integral-rag/internal/platform/database"
	"github.com/jinford/integral-rag/pkg/config"
	"github.com/jinford/integral-rag/pkg/db"
)

// Container は検索・取り込みに必要な依存関係を保持します
type Container struct {
	QueryService  *application.QueryService
	IngestService *application.IngestService
	Embedder      domain.Embedder

	logger   *slog.Logger
	database *db.DB
}

type containerOptions struct {
	logger   *slog.Logger
	embedder domain.Embedder
	loader   domain.DatasetLoader
}

// ContainerOption は Container 構築時のオプション
type ContainerOption func(*containerOptions)

// WithContainerLogger はロガーを差し替える
func WithContainerLogger(logger *slog.Logger) ContainerOption {
	return func(opts *containerOptions) {
		opts.logger = logger
	}
}

// WithContainerEmbedder はカスタム Embedder を注入する
func WithContainerEmbedder(e domain.Embedder) ContainerOption {
	return func(opts *containerOptions) {
		opts.embedder = e
	}
}

// WithContainerDatasetLoader は取り込み元のローダーを差し替える
func WithContainerDatasetLoader(loader domain.DatasetLoader) ContainerOption {
	return func(opts *containerOptions) {
		opts.loader = loader
	}
}

// NewContainer は設定からデータベースへ接続し、コンテナを生成する。
func NewContainer(ctx context.Context, cfg *config.Config, opts ...ContainerOption) (*Container, error) {
	conn, err := db.New(ctx, db.ConnectionParams{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		return nil, fmt.Errorf("データベース初期化に失敗しました: %w", err)
	}

	return NewContainerWithDB(cfg, conn, opts...), nil
}

// NewContainerWithDB は既存の DB を受け取りコンテナを生成する。
func NewContainerWithDB(cfg *config.Config, conn *db.DB, opts ...ContainerOption) *Container {
	options := containerOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(&options)
	}
	if options.logger == nil {
		options.logger = slog.Default()
	}

	// Embedder
	emb := options.embedder
	if emb == nil {
		emb = embedder.NewCharSignalEmbedder(cfg.Embedding.Dimensions)
	}

	// DatasetLoader (CSV)
	loader := options.loader
	if loader == nil {
		loader = csvloader.New(cfg.Ingest.DataDir)
	}

	// Repository (PostgreSQL)
	queries := retrievalsqlc.New(conn.Pool)
	networks := retrievalpg.NewNetworkRepository(queries)
	posts := retrievalpg.NewPostRepository(queries)
	profiles := retrievalpg.NewProfileRepository(queries)

	retriever := application.NewRetriever(emb, posts, profiles,
		application.WithRetrieverLogger(options.logger),
	)

	queryService := application.NewQueryService(networks, retriever,
		application.WithQueryLimit(cfg.Query.Limit),
		application.WithQueryTimeout(cfg.Query.Timeout),
		application.WithQueryLogger(options.logger),
	)

	ingestService := application.NewIngestService(
		loader,
		emb,
		database.NewTransactionProvider(conn.Pool),
		posts,
		profiles,
		application.WithIngestBatchSize(cfg.Ingest.BatchSize),
		application.WithIngestWorkers(cfg.Ingest.Workers),
		application.WithIngestLogger(options.logger),
	)

	return &Container{
		QueryService:  queryService,
		IngestService: ingestService,
		Embedder:      emb,
		logger:        options.logger,
		database:      conn,
	}
}

// Close は内部リソースを解放する。
func (c *Container) Close() {
	if c != nil && c.database != nil {
		c.database.Close()
	}
}

// Logger はロガーを返す。
func (c *Container) Logger() *slog.Logger {
	if c == nil || c.logger == nil {
		return slog.Default()
	}
	return c.logger
}

// Database はデータベースを返す。
func (c *Container) Database() *db.DB {
	if c == nil {
		return nil
	}
	return c.database
}
