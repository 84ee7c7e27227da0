package application

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/jinford/integral-rag/internal/module/retrieval/domain"
)

// TypeRanker は1種類の項目をクエリベクトルとの類似度で並べ替えます
type TypeRanker[T domain.Embedded] struct {
	source domain.CandidateSource[T]
}

// NewTypeRanker は新しいTypeRankerを作成します
func NewTypeRanker[T domain.Embedded](source domain.CandidateSource[T]) *TypeRanker[T] {
	return &TypeRanker[T]{source: source}
}

// Rank はネットワーク内の候補をスコア降順に並べ、上位 limit 件を返します
// 候補がない場合は空のスライスを返します
func (r *TypeRanker[T]) Rank(ctx context.Context, queryVector domain.Vector, networkID int64, limit int) ([]domain.Scored[T], error) {
	candidates, err := r.source.ListEmbeddedByNetwork(ctx, networkID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch candidates: %w", err)
	}

	scored := make([]domain.Scored[T], 0, len(candidates))
	for _, c := range candidates {
		// ストレージ側でも除外されるが、空ベクトルは候補にしない
		if c.Embedding().IsEmpty() {
			continue
		}
		score, err := domain.CosineSimilarity(queryVector, c.Embedding())
		if err != nil {
			return nil, err
		}
		scored = append(scored, domain.Scored[T]{Item: c, Score: score})
	}

	slices.SortStableFunc(scored, func(a, b domain.Scored[T]) int {
		return cmp.Compare(b.Score, a.Score)
	})

	if limit >= 0 && len(scored) > limit {
		scored = scored[:limit]
	}

	return scored, nil
}
