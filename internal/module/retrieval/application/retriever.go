package application

import (
	"cmp"
	"context"
	"log/slog"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/jinford/integral-rag/internal/module/retrieval/domain"
)

// Retriever は投稿とプロフィールを横断して関連コンテンツを検索します
type Retriever struct {
	embedder domain.Embedder
	posts    *TypeRanker[*domain.Post]
	profiles *TypeRanker[*domain.Profile]
	log      *slog.Logger
}

// RetrieverOption は Retriever 構築時のオプション
type RetrieverOption func(*Retriever)

// WithRetrieverLogger はロガーを差し替える
func WithRetrieverLogger(logger *slog.Logger) RetrieverOption {
	return func(r *Retriever) {
		if logger != nil {
			r.log = logger
		}
	}
}

// NewRetriever は新しいRetrieverを作成します
func NewRetriever(
	embedder domain.Embedder,
	posts domain.CandidateSource[*domain.Post],
	profiles domain.CandidateSource[*domain.Profile],
	opts ...RetrieverOption,
) *Retriever {
	r := &Retriever{
		embedder: embedder,
		posts:    NewTypeRanker(posts),
		profiles: NewTypeRanker(profiles),
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RetrieveRelevantContent はプロンプトに関連する投稿・プロフィールをスコア降順で返します
//
// 種別ごとに上位 limit 件を取得してからマージし、全体でもう一度 limit 件に切り詰めます。
// プロンプトとネットワークの検証は呼び出し側の責務です。
func (r *Retriever) RetrieveRelevantContent(ctx context.Context, prompt string, networkID int64, limit int) ([]domain.RankedResult, error) {
	queryVector := r.embedder.Embed(prompt)

	var (
		posts    []domain.Scored[*domain.Post]
		profiles []domain.Scored[*domain.Profile]
	)

	// 投稿とプロフィールは互いに依存しないので並行に取得する
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		posts, err = r.posts.Rank(gctx, queryVector, networkID, limit)
		return err
	})
	g.Go(func() error {
		var err error
		profiles, err = r.profiles.Rank(gctx, queryVector, networkID, limit)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(posts) == 0 {
		r.log.Debug("No posts with embeddings found", "networkID", networkID)
	}
	if len(profiles) == 0 {
		r.log.Debug("No profiles with embeddings found", "networkID", networkID)
	}

	results := make([]domain.RankedResult, 0, len(posts)+len(profiles))
	for _, p := range posts {
		results = append(results, domain.RankedResult{Item: p.Item, Score: p.Score})
	}
	for _, p := range profiles {
		results = append(results, domain.RankedResult{Item: p.Item, Score: p.Score})
	}

	slices.SortStableFunc(results, func(a, b domain.RankedResult) int {
		return cmp.Compare(b.Score, a.Score)
	})

	if limit >= 0 && len(results) > limit {
		results = results[:limit]
	}

	return results, nil
}
