package testing

import (
	"context"

	"github.com/samber/mo"

	"github.com/jinford/integral-rag/internal/module/retrieval/domain"
)

// MockPostRepository はテスト用のモック投稿リポジトリです
type MockPostRepository struct {
	ListEmbeddedByNetworkFunc func(ctx context.Context, networkID int64) ([]*domain.Post, error)
	ListFunc                  func(ctx context.Context) ([]*domain.Post, error)
	UpsertFunc                func(ctx context.Context, post *domain.Post) error
	UpdateEmbeddingFunc       func(ctx context.Context, id int64, embedding domain.Vector) error
}

var (
	_ domain.PostReader = (*MockPostRepository)(nil)
	_ domain.PostWriter = (*MockPostRepository)(nil)
)

func (m *MockPostRepository) ListEmbeddedByNetwork(ctx context.Context, networkID int64) ([]*domain.Post, error) {
	if m.ListEmbeddedByNetworkFunc != nil {
		return m.ListEmbeddedByNetworkFunc(ctx, networkID)
	}
	return nil, nil
}

func (m *MockPostRepository) List(ctx context.Context) ([]*domain.Post, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *MockPostRepository) Upsert(ctx context.Context, post *domain.Post) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, post)
	}
	return nil
}

func (m *MockPostRepository) UpdateEmbedding(ctx context.Context, id int64, embedding domain.Vector) error {
	if m.UpdateEmbeddingFunc != nil {
		return m.UpdateEmbeddingFunc(ctx, id, embedding)
	}
	return nil
}

// MockProfileRepository はテスト用のモックプロフィールリポジトリです
type MockProfileRepository struct {
	ListEmbeddedByNetworkFunc func(ctx context.Context, networkID int64) ([]*domain.Profile, error)
	ListFunc                  func(ctx context.Context) ([]*domain.Profile, error)
	UpsertFunc                func(ctx context.Context, profile *domain.Profile) error
	UpdateEmbeddingFunc       func(ctx context.Context, id int64, embedding domain.Vector) error
}

var (
	_ domain.ProfileReader = (*MockProfileRepository)(nil)
	_ domain.ProfileWriter = (*MockProfileRepository)(nil)
)

func (m *MockProfileRepository) ListEmbeddedByNetwork(ctx context.Context, networkID int64) ([]*domain.Profile, error) {
	if m.ListEmbeddedByNetworkFunc != nil {
		return m.ListEmbeddedByNetworkFunc(ctx, networkID)
	}
	return nil, nil
}

func (m *MockProfileRepository) List(ctx context.Context) ([]*domain.Profile, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *MockProfileRepository) Upsert(ctx context.Context, profile *domain.Profile) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, profile)
	}
	return nil
}

func (m *MockProfileRepository) UpdateEmbedding(ctx context.Context, id int64, embedding domain.Vector) error {
	if m.UpdateEmbeddingFunc != nil {
		return m.UpdateEmbeddingFunc(ctx, id, embedding)
	}
	return nil
}

// MockNetworkRepository はテスト用のモックネットワークリポジトリです
type MockNetworkRepository struct {
	FindByIDFunc func(ctx context.Context, id int64) (mo.Option[*domain.Network], error)
	ListFunc     func(ctx context.Context) ([]*domain.Network, error)
	UpsertFunc   func(ctx context.Context, network *domain.Network) error
}

var (
	_ domain.NetworkReader = (*MockNetworkRepository)(nil)
	_ domain.NetworkWriter = (*MockNetworkRepository)(nil)
)

func (m *MockNetworkRepository) FindByID(ctx context.Context, id int64) (mo.Option[*domain.Network], error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return mo.None[*domain.Network](), nil
}

func (m *MockNetworkRepository) List(ctx context.Context) ([]*domain.Network, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *MockNetworkRepository) Upsert(ctx context.Context, network *domain.Network) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, network)
	}
	return nil
}

// MockMemberRepository はテスト用のモックメンバーリポジトリです
type MockMemberRepository struct {
	UpsertFunc func(ctx context.Context, member *domain.Member) error
}

var _ domain.MemberWriter = (*MockMemberRepository)(nil)

func (m *MockMemberRepository) Upsert(ctx context.Context, member *domain.Member) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, member)
	}
	return nil
}

// MockLocker はテスト用のモックロックです
type MockLocker struct {
	LockIngestionFunc func(ctx context.Context) error
}

var _ domain.IngestLocker = (*MockLocker)(nil)

func (m *MockLocker) LockIngestion(ctx context.Context) error {
	if m.LockIngestionFunc != nil {
		return m.LockIngestionFunc(ctx)
	}
	return nil
}

// MockDatasetLoader はテスト用のモックローダーです
type MockDatasetLoader struct {
	LoadFunc func(ctx context.Context) (*domain.Dataset, error)
}

var _ domain.DatasetLoader = (*MockDatasetLoader)(nil)

func (m *MockDatasetLoader) Load(ctx context.Context) (*domain.Dataset, error) {
	if m.LoadFunc != nil {
		return m.LoadFunc(ctx)
	}
	return &domain.Dataset{}, nil
}
