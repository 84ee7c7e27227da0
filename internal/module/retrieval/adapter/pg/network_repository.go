package pg

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/samber/mo"

	"github.com/jinford/integral-rag/internal/module/retrieval/adapter/pg/sqlc"
	"github.com/jinford/integral-rag/internal/module/retrieval/domain"
)

// NetworkRepository はネットワークの永続化アダプターです
type NetworkRepository struct {
	q sqlc.Querier
}

// NewNetworkRepository は新しいネットワークリポジトリを作成します
func NewNetworkRepository(q sqlc.Querier) *NetworkRepository {
	return &NetworkRepository{q: q}
}

// 読み取り操作の実装

var _ domain.NetworkReader = (*NetworkRepository)(nil)

// FindByID はIDでネットワークを取得します
// 存在しない場合は mo.None を返します
func (r *NetworkRepository) FindByID(ctx context.Context, id int64) (mo.Option[*domain.Network], error) {
	network, err := r.q.GetNetwork(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return mo.None[*domain.Network](), nil
		}
		return mo.None[*domain.Network](), fmt.Errorf("failed to get network: %w", err)
	}

	return mo.Some(convertSQLCNetwork(network)), nil
}

// List はすべてのネットワークをID順に取得します
func (r *NetworkRepository) List(ctx context.Context) ([]*domain.Network, error) {
	networks, err := r.q.ListNetworks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list networks: %w", err)
	}

	return convertAll(networks, convertSQLCNetwork), nil
}

// 書き込み操作の実装

var _ domain.NetworkWriter = (*NetworkRepository)(nil)

// Upsert はネットワークを作成または更新します
func (r *NetworkRepository) Upsert(ctx context.Context, network *domain.Network) error {
	if err := r.q.UpsertNetwork(ctx, sqlc.UpsertNetworkParams{
		ID:   network.ID,
		Name: network.Name,
	}); err != nil {
		return fmt.Errorf("failed to upsert network %d: %w", network.ID, err)
	}
	return nil
}
