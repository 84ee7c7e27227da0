package pg

import (
	"context"
	"fmt"

	"github.com/jinford/integral-rag/internal/module/retrieval/adapter/pg/sqlc"
	"github.com/jinford/integral-rag/internal/module/retrieval/domain"
	"github.com/jinford/integral-rag/pkg/repository"
)

// MemberRepository はメンバーの永続化アダプターです
type MemberRepository struct {
	q sqlc.Querier
}

// NewMemberRepository は新しいメンバーリポジトリを作成します
func NewMemberRepository(q sqlc.Querier) *MemberRepository {
	return &MemberRepository{q: q}
}

var _ domain.MemberWriter = (*MemberRepository)(nil)

// Upsert はメンバーを作成または更新します
func (r *MemberRepository) Upsert(ctx context.Context, member *domain.Member) error {
	err := r.q.UpsertMember(ctx, sqlc.UpsertMemberParams{
		ID:        member.ID,
		ProfileID: member.ProfileID,
		NetworkID: member.NetworkID,
	})
	if err != nil {
		if repository.IsForeignKeyViolation(err) {
			return fmt.Errorf("%w: member %d references profile %d / network %d",
				domain.ErrDanglingReference, member.ID, member.ProfileID, member.NetworkID)
		}
		return fmt.Errorf("failed to upsert member %d: %w", member.ID, err)
	}
	return nil
}
