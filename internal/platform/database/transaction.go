package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	retrievalpg "github.com/jinford/integral-rag/internal/module/retrieval/adapter/pg"
	retrievalsqlc "github.com/jinford/integral-rag/internal/module/retrieval/adapter/pg/sqlc"
	"github.com/jinford/integral-rag/internal/module/retrieval/domain"
	"github.com/jinford/integral-rag/pkg/lock"
)

// TransactionProvider follows the pattern described in https://threedots.tech/post/database-transactions-in-go/
// It hides pgx transactions behind a callback that receives data-access adapters.
type TransactionProvider struct {
	pool *pgxpool.Pool
}

var _ domain.Transactor = (*TransactionProvider)(nil)

// NewTransactionProvider は新しいTransactionProviderを作成します
func NewTransactionProvider(pool *pgxpool.Pool) *TransactionProvider {
	return &TransactionProvider{pool: pool}
}

func newWriteSet(tx pgx.Tx) *domain.WriteSet {
	queries := retrievalsqlc.New(tx)
	return &domain.WriteSet{
		Networks: retrievalpg.NewNetworkRepository(queries),
		Profiles: retrievalpg.NewProfileRepository(queries),
		Posts:    retrievalpg.NewPostRepository(queries),
		Members:  retrievalpg.NewMemberRepository(queries),
		Locks:    lock.NewManager(tx),
	}
}

// Transact は domain.Transactor を実装します
func (p *TransactionProvider) Transact(ctx context.Context, fn func(*domain.WriteSet) error) error {
	_, err := Transact(ctx, p, func(w *domain.WriteSet) (struct{}, error) {
		return struct{}{}, fn(w)
	})
	return err
}

// Transact opens a transaction, builds adapters, and passes them to fn.
func Transact[T any](ctx context.Context, p *TransactionProvider, fn func(*domain.WriteSet) (T, error)) (T, error) {
	var zero T
	tx, err := p.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return zero, fmt.Errorf("failed to begin transaction: %w", err)
	}

	adapters := newWriteSet(tx)

	result, err := fn(adapters)
	if err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return zero, fmt.Errorf("tx rollback failed: %v (original err: %w)", rbErr, err)
		}
		return zero, err
	}

	if err := tx.Commit(ctx); err != nil {
		return zero, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return result, nil
}
