package lock

import (
	"context"
	"crypto/sha256"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// ロックID
var (
	// IngestionLockID は取り込みバッチの書き込みを直列化するロックです
	IngestionLockID = GenerateLockID("integral-rag", "ingestion")

	// MigrationLockID はスキーマ適用を直列化するロックです
	MigrationLockID = GenerateLockID("integral-rag", "migration")
)

// Execer はロック取得に必要な操作です（pgx.Tx が満たします）
type Execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// Manager はトランザクション内でのアドバイザリロックの取得を仲介します
type Manager struct {
	tx Execer
}

// NewManager はトランザクションからロックマネージャーを生成します
func NewManager(tx Execer) *Manager {
	return &Manager{tx: tx}
}

// LockIngestion は取り込み用のロックを取得します
func (m *Manager) LockIngestion(ctx context.Context) error {
	return Acquire(ctx, m.tx, IngestionLockID)
}

// GenerateLockID は文字列からロックIDを生成します
func GenerateLockID(parts ...string) int64 {
	h := sha256.New()
	for _, part := range parts {
		h.Write([]byte(part))
	}
	hash := h.Sum(nil)

	// ハッシュの最初の8バイトをint64として使用
	var id int64
	for i := range 8 {
		id = (id << 8) | int64(hash[i])
	}

	return id
}

// Acquire はPostgreSQLアドバイザリロックを取得します
// トランザクションスコープのロック（pg_advisory_xact_lock）のため、
// コミットまたはロールバック時に自動的に解放されます
func Acquire(ctx context.Context, tx Execer, lockID int64) error {
	if _, err := tx.Exec(ctx, "SELECT pg_advisory_xact_lock($1)", lockID); err != nil {
		return fmt.Errorf("failed to acquire advisory lock: %w", err)
	}
	return nil
}
