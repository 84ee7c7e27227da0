package pg

import (
	"context"
	"fmt"

	"github.com/jinford/integral-rag/internal/module/retrieval/adapter/pg/sqlc"
	"github.com/jinford/integral-rag/internal/module/retrieval/domain"
	"github.com/jinford/integral-rag/pkg/repository"
)

// PostRepository は投稿の永続化アダプターです
type PostRepository struct {
	q sqlc.Querier
}

// NewPostRepository は新しい投稿リポジトリを作成します
func NewPostRepository(q sqlc.Querier) *PostRepository {
	return &PostRepository{q: q}
}

// 読み取り操作の実装

var _ domain.PostReader = (*PostRepository)(nil)

// ListEmbeddedByNetwork はネットワーク内で埋め込みを持つ投稿をID順に取得します
func (r *PostRepository) ListEmbeddedByNetwork(ctx context.Context, networkID int64) ([]*domain.Post, error) {
	posts, err := r.q.ListEmbeddedPostsByNetwork(ctx, networkID)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts for network %d: %w", networkID, err)
	}

	return convertAll(posts, convertSQLCPost), nil
}

// List はすべての投稿を取得します
func (r *PostRepository) List(ctx context.Context) ([]*domain.Post, error) {
	posts, err := r.q.ListPosts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	return convertAll(posts, convertSQLCPost), nil
}

// 書き込み操作の実装

var _ domain.PostWriter = (*PostRepository)(nil)

// Upsert は投稿を作成または更新します
func (r *PostRepository) Upsert(ctx context.Context, post *domain.Post) error {
	err := r.q.UpsertPost(ctx, sqlc.UpsertPostParams{
		ID:               post.ID,
		NetworkID:        post.NetworkID,
		Author:           post.Author,
		Content:          post.Content,
		ContentEmbedding: VectorToPg(post.ContentEmbedding),
	})
	if err != nil {
		if repository.IsForeignKeyViolation(err) {
			return fmt.Errorf("%w: post %d references network %d", domain.ErrDanglingReference, post.ID, post.NetworkID)
		}
		return fmt.Errorf("failed to upsert post %d: %w", post.ID, err)
	}
	return nil
}

// UpdateEmbedding は投稿の埋め込みのみを更新します
func (r *PostRepository) UpdateEmbedding(ctx context.Context, id int64, embedding domain.Vector) error {
	rows, err := r.q.UpdatePostEmbedding(ctx, sqlc.UpdatePostEmbeddingParams{
		ID:               id,
		ContentEmbedding: VectorToPg(embedding),
	})
	if err != nil {
		return fmt.Errorf("failed to update post embedding: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("post not found: %d", id)
	}
	return nil
}
