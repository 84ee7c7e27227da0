package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jinford/integral-rag/internal/module/retrieval/domain"
	rtesting "github.com/jinford/integral-rag/internal/module/retrieval/testing"
)

func networksOf(networks ...*domain.Network) *rtesting.MockNetworkRepository {
	return &rtesting.MockNetworkRepository{
		FindByIDFunc: func(ctx context.Context, id int64) (mo.Option[*domain.Network], error) {
			for _, n := range networks {
				if n.ID == id {
					return mo.Some(n), nil
				}
			}
			return mo.None[*domain.Network](), nil
		},
		ListFunc: func(ctx context.Context) ([]*domain.Network, error) {
			return networks, nil
		},
	}
}

func TestQueryService_Validation(t *testing.T) {
	svc := NewQueryService(networksOf(), NewRetriever(&stubEmbedder{vector: unitQuery}, postsOf(), profilesOf()),
		WithQueryLogger(discardLogger()))

	_, err := svc.Query(context.Background(), "   ", 1)
	assert.ErrorIs(t, err, domain.ErrEmptyPrompt)

	_, err = svc.Query(context.Background(), "hello", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidNetworkID)

	_, err = svc.Query(context.Background(), "hello", 9)
	assert.ErrorIs(t, err, domain.ErrNetworkNotFound)
}

func TestQueryService_UsesConfiguredLimit(t *testing.T) {
	var posts []*domain.Post
	for i := range 10 {
		posts = append(posts, &domain.Post{ID: int64(i + 1), ContentEmbedding: withScore(float64(i) / 10)})
	}
	retriever := NewRetriever(&stubEmbedder{vector: unitQuery}, postsOf(posts...), profilesOf())
	network := &domain.Network{ID: 3, Name: "Builders"}

	svc := NewQueryService(networksOf(network), retriever,
		WithQueryLimit(4),
		WithQueryTimeout(time.Second),
		WithQueryLogger(discardLogger()),
	)

	result, err := svc.Query(context.Background(), "hello", 3)
	require.NoError(t, err)
	assert.Equal(t, network, result.Network)
	assert.Equal(t, "hello", result.Prompt)
	require.Len(t, result.Results, 4)
	assert.InDelta(t, 0.9, result.Results[0].Score, 1e-6)
}

func TestQueryService_DefaultLimitIsFive(t *testing.T) {
	var posts []*domain.Post
	for i := range 8 {
		posts = append(posts, &domain.Post{ID: int64(i + 1), ContentEmbedding: withScore(0.1)})
	}
	retriever := NewRetriever(&stubEmbedder{vector: unitQuery}, postsOf(posts...), profilesOf())
	svc := NewQueryService(networksOf(&domain.Network{ID: 1}), retriever, WithQueryLogger(discardLogger()))

	result, err := svc.Query(context.Background(), "hello", 1)
	require.NoError(t, err)
	assert.Len(t, result.Results, 5)
}

func TestQueryService_WrapsRetrievalFailure(t *testing.T) {
	storageErr := errors.New("boom")
	posts := &rtesting.MockPostRepository{
		ListEmbeddedByNetworkFunc: func(ctx context.Context, networkID int64) ([]*domain.Post, error) {
			return nil, storageErr
		},
	}
	retriever := NewRetriever(&stubEmbedder{vector: unitQuery}, posts, profilesOf())
	svc := NewQueryService(networksOf(&domain.Network{ID: 1}), retriever, WithQueryLogger(discardLogger()))

	_, err := svc.Query(context.Background(), "hello", 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, storageErr)
}

func TestQueryService_AppliesTimeoutToStorage(t *testing.T) {
	var deadlineSet bool
	posts := &rtesting.MockPostRepository{
		ListEmbeddedByNetworkFunc: func(ctx context.Context, networkID int64) ([]*domain.Post, error) {
			_, deadlineSet = ctx.Deadline()
			return nil, nil
		},
	}
	retriever := NewRetriever(&stubEmbedder{vector: unitQuery}, posts, profilesOf())
	svc := NewQueryService(networksOf(&domain.Network{ID: 1}), retriever, WithQueryLogger(discardLogger()))

	_, err := svc.Query(context.Background(), "hello", 1)
	require.NoError(t, err)
	assert.True(t, deadlineSet)
}

func TestQueryService_Networks(t *testing.T) {
	svc := NewQueryService(networksOf(&domain.Network{ID: 1, Name: "a"}, &domain.Network{ID: 2, Name: "b"}), nil)

	networks, err := svc.Networks(context.Background())
	require.NoError(t, err)
	assert.Len(t, networks, 2)

	network, err := svc.Network(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "b", network.Name)
}
