package pg

import (
	"context"
	"fmt"

	"github.com/jinford/integral-rag/internal/module/retrieval/adapter/pg/sqlc"
	"github.com/jinford/integral-rag/internal/module/retrieval/domain"
)

// ProfileRepository はプロフィールの永続化アダプターです
type ProfileRepository struct {
	q sqlc.Querier
}

// NewProfileRepository は新しいプロフィールリポジトリを作成します
func NewProfileRepository(q sqlc.Querier) *ProfileRepository {
	return &ProfileRepository{q: q}
}

// 読み取り操作の実装

var _ domain.ProfileReader = (*ProfileRepository)(nil)

// ListEmbeddedByNetwork はネットワークのメンバーのうち埋め込みを持つプロフィールを取得します
// 並び順はメンバーID順です
func (r *ProfileRepository) ListEmbeddedByNetwork(ctx context.Context, networkID int64) ([]*domain.Profile, error) {
	profiles, err := r.q.ListEmbeddedProfilesByNetwork(ctx, networkID)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles for network %d: %w", networkID, err)
	}

	return convertAll(profiles, convertSQLCProfile), nil
}

// List はすべてのプロフィールを取得します
func (r *ProfileRepository) List(ctx context.Context) ([]*domain.Profile, error) {
	profiles, err := r.q.ListProfiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}

	return convertAll(profiles, convertSQLCProfile), nil
}

// 書き込み操作の実装

var _ domain.ProfileWriter = (*ProfileRepository)(nil)

// Upsert はプロフィールを作成または更新します
func (r *ProfileRepository) Upsert(ctx context.Context, profile *domain.Profile) error {
	if err := r.q.UpsertProfile(ctx, sqlc.UpsertProfileParams{
		ID:           profile.ID,
		Name:         profile.Name,
		Bio:          profile.Bio,
		BioEmbedding: VectorToPg(profile.BioEmbedding),
	}); err != nil {
		return fmt.Errorf("failed to upsert profile %d: %w", profile.ID, err)
	}
	return nil
}

// UpdateEmbedding はプロフィールの埋め込みのみを更新します
func (r *ProfileRepository) UpdateEmbedding(ctx context.Context, id int64, embedding domain.Vector) error {
	rows, err := r.q.UpdateProfileEmbedding(ctx, sqlc.UpdateProfileEmbeddingParams{
		ID:           id,
		BioEmbedding: VectorToPg(embedding),
	})
	if err != nil {
		return fmt.Errorf("failed to update profile embedding: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("profile not found: %d", id)
	}
	return nil
}
