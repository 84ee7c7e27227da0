package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/jinford/integral-rag/internal/module/retrieval/domain"
)

const defaultBatchSize = 25

// IngestStats は取り込み結果の件数
type IngestStats struct {
	Networks int `json:"networks"`
	Profiles int `json:"profiles"`
	Posts    int `json:"posts"`
	Members  int `json:"members"`
	Failed   int `json:"failed"`
}

// IngestService はフラットファイルのレコードに埋め込みを付けて保存します
type IngestService struct {
	loader    domain.DatasetLoader
	embedder  domain.Embedder
	tx        domain.Transactor
	posts     domain.PostReader
	profiles  domain.ProfileReader
	batchSize int
	workers   int
	log       *slog.Logger
}

// IngestOption は IngestService 構築時のオプション
type IngestOption func(*IngestService)

// WithIngestBatchSize は1トランザクションあたりの件数を設定する
func WithIngestBatchSize(size int) IngestOption {
	return func(s *IngestService) {
		if size > 0 {
			s.batchSize = size
		}
	}
}

// WithIngestWorkers は埋め込み計算のワーカー数を設定する
func WithIngestWorkers(workers int) IngestOption {
	return func(s *IngestService) {
		if workers > 0 {
			s.workers = workers
		}
	}
}

// WithIngestLogger はロガーを差し替える
func WithIngestLogger(logger *slog.Logger) IngestOption {
	return func(s *IngestService) {
		if logger != nil {
			s.log = logger
		}
	}
}

// NewIngestService は新しいIngestServiceを作成します
func NewIngestService(
	loader domain.DatasetLoader,
	embedder domain.Embedder,
	tx domain.Transactor,
	posts domain.PostReader,
	profiles domain.ProfileReader,
	opts ...IngestOption,
) *IngestService {
	workers := runtime.NumCPU() / 2
	if workers < 1 {
		workers = 1
	}

	s := &IngestService{
		loader:    loader,
		embedder:  embedder,
		tx:        tx,
		posts:     posts,
		profiles:  profiles,
		batchSize: defaultBatchSize,
		workers:   workers,
		log:       slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ingest はすべてのレコードを読み込み、埋め込みを計算して保存します
// 外部キーの順序（ネットワーク、プロフィール、メンバー、投稿）で書き込みます
func (s *IngestService) Ingest(ctx context.Context) (*IngestStats, error) {
	s.log.Info("Starting data embedding process")

	dataset, err := s.loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}

	s.log.Info("Loaded data",
		"networks", len(dataset.Networks),
		"profiles", len(dataset.Profiles),
		"posts", len(dataset.Posts),
		"members", len(dataset.Members),
	)

	if err := s.embedAll(ctx, dataset.Profiles, dataset.Posts); err != nil {
		return nil, err
	}

	stats := &IngestStats{}
	var failed int

	stats.Networks, failed, err = writeInBatches(ctx, s, "networks", dataset.Networks,
		func(ctx context.Context, w *domain.WriteSet, n *domain.Network) error {
			return w.Networks.Upsert(ctx, n)
		})
	if err != nil {
		return nil, err
	}
	stats.Failed += failed

	stats.Profiles, failed, err = writeInBatches(ctx, s, "profiles", dataset.Profiles,
		func(ctx context.Context, w *domain.WriteSet, p *domain.Profile) error {
			return w.Profiles.Upsert(ctx, p)
		})
	if err != nil {
		return nil, err
	}
	stats.Failed += failed

	stats.Members, failed, err = writeInBatches(ctx, s, "members", dataset.Members,
		func(ctx context.Context, w *domain.WriteSet, m *domain.Member) error {
			return w.Members.Upsert(ctx, m)
		})
	if err != nil {
		return nil, err
	}
	stats.Failed += failed

	stats.Posts, failed, err = writeInBatches(ctx, s, "posts", dataset.Posts,
		func(ctx context.Context, w *domain.WriteSet, p *domain.Post) error {
			return w.Posts.Upsert(ctx, p)
		})
	if err != nil {
		return nil, err
	}
	stats.Failed += failed

	s.log.Info("Finished embedding and storing all data",
		"networks", stats.Networks,
		"profiles", stats.Profiles,
		"members", stats.Members,
		"posts", stats.Posts,
		"failed", stats.Failed,
	)

	return stats, nil
}

// Reembed は保存済みの投稿とプロフィールの埋め込みを本文から再計算します
// 埋め込み次元数を変更した後に使います
func (s *IngestService) Reembed(ctx context.Context) (*IngestStats, error) {
	profiles, err := s.profiles.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	posts, err := s.posts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	s.log.Info("Starting re-embedding", "profiles", len(profiles), "posts", len(posts))

	if err := s.embedAll(ctx, profiles, posts); err != nil {
		return nil, err
	}

	stats := &IngestStats{}
	var failed int

	stats.Profiles, failed, err = writeInBatches(ctx, s, "profile embeddings", profiles,
		func(ctx context.Context, w *domain.WriteSet, p *domain.Profile) error {
			return w.Profiles.UpdateEmbedding(ctx, p.ID, p.BioEmbedding)
		})
	if err != nil {
		return nil, err
	}
	stats.Failed += failed

	stats.Posts, failed, err = writeInBatches(ctx, s, "post embeddings", posts,
		func(ctx context.Context, w *domain.WriteSet, p *domain.Post) error {
			return w.Posts.UpdateEmbedding(ctx, p.ID, p.ContentEmbedding)
		})
	if err != nil {
		return nil, err
	}
	stats.Failed += failed

	s.log.Info("Re-embedding completed",
		"profiles", stats.Profiles,
		"posts", stats.Posts,
		"failed", stats.Failed,
	)

	return stats, nil
}

// embedAll はプロフィールの自己紹介と投稿本文の埋め込みをワーカープールで計算します
func (s *IngestService) embedAll(ctx context.Context, profiles []*domain.Profile, posts []*domain.Post) error {
	pool, err := ants.NewPool(s.workers)
	if err != nil {
		return fmt.Errorf("failed to create embedding pool: %w", err)
	}
	defer pool.Release()

	var wg sync.WaitGroup
	submit := func(task func()) error {
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			task()
		}); err != nil {
			wg.Done()
			return fmt.Errorf("failed to submit embedding task: %w", err)
		}
		return nil
	}

	var submitErr error
	for _, p := range profiles {
		if submitErr = submit(func() { p.BioEmbedding = s.embedder.Embed(p.Bio) }); submitErr != nil {
			break
		}
	}
	if submitErr == nil {
		for _, p := range posts {
			if submitErr = submit(func() { p.ContentEmbedding = s.embedder.Embed(p.Content) }); submitErr != nil {
				break
			}
		}
	}

	wg.Wait()
	if submitErr != nil {
		return submitErr
	}
	return ctx.Err()
}

// writeInBatches は items を batchSize 件ずつトランザクションで書き込みます
// バッチが失敗した場合はそのバッチを1件ずつ書き直し、失敗件数を数えます
func writeInBatches[T any](
	ctx context.Context,
	s *IngestService,
	kind string,
	items []T,
	write func(context.Context, *domain.WriteSet, T) error,
) (succeeded int, failed int, err error) {
	total := (len(items) + s.batchSize - 1) / s.batchSize

	for start := 0; start < len(items); start += s.batchSize {
		end := min(start+s.batchSize, len(items))
		batch := items[start:end]
		batchNo := start/s.batchSize + 1

		batchErr := s.tx.Transact(ctx, func(w *domain.WriteSet) error {
			if err := w.Locks.LockIngestion(ctx); err != nil {
				return err
			}
			for _, item := range batch {
				if err := write(ctx, w, item); err != nil {
					return err
				}
			}
			return nil
		})
		if batchErr == nil {
			succeeded += len(batch)
			s.log.Debug("Processed batch", "kind", kind, "batch", batchNo, "total", total)
			continue
		}
		if errors.Is(batchErr, context.Canceled) || errors.Is(batchErr, context.DeadlineExceeded) {
			return succeeded, failed, batchErr
		}

		s.log.Warn("Batch failed, falling back to individual writes",
			"kind", kind,
			"batch", batchNo,
			"error", batchErr,
		)

		for _, item := range batch {
			itemErr := s.tx.Transact(ctx, func(w *domain.WriteSet) error {
				if err := w.Locks.LockIngestion(ctx); err != nil {
					return err
				}
				return write(ctx, w, item)
			})
			if itemErr != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return succeeded, failed, ctxErr
				}
				s.log.Error("Failed to write record", "kind", kind, "error", itemErr)
				failed++
				continue
			}
			succeeded++
		}
	}

	s.log.Info("Insertion complete", "kind", kind, "succeeded", succeeded, "failed", failed)

	return succeeded, failed, nil
}
