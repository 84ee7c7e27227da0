package testing

import (
	"cmp"
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/samber/mo"

	"github.com/jinford/integral-rag/internal/module/retrieval/domain"
)

// MemoryStore はテスト用のインメモリストレージです
// トランザクションは変更をコピーに適用し、成功時のみ反映します
type MemoryStore struct {
	mu    sync.Mutex
	state memoryState

	// FailWrite が非nilの場合、書き込みごとに呼ばれ、エラーを返すとその書き込みが失敗します
	FailWrite func(kind string, id int64) error
}

type memoryState struct {
	networks map[int64]domain.Network
	profiles map[int64]domain.Profile
	posts    map[int64]domain.Post
	members  map[int64]domain.Member
}

func (s memoryState) clone() memoryState {
	return memoryState{
		networks: maps.Clone(s.networks),
		profiles: maps.Clone(s.profiles),
		posts:    maps.Clone(s.posts),
		members:  maps.Clone(s.members),
	}
}

// NewMemoryStore は空のMemoryStoreを作成します
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		state: memoryState{
			networks: map[int64]domain.Network{},
			profiles: map[int64]domain.Profile{},
			posts:    map[int64]domain.Post{},
			members:  map[int64]domain.Member{},
		},
	}
}

var _ domain.Transactor = (*MemoryStore)(nil)

// Transact は fn をコピーした状態に対して実行し、成功時のみ反映します
func (s *MemoryStore) Transact(ctx context.Context, fn func(*domain.WriteSet) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	staged := &memoryWriter{store: s, state: s.state.clone()}
	if err := fn(&domain.WriteSet{
		Networks: staged,
		Profiles: (*memoryProfileWriter)(staged),
		Posts:    (*memoryPostWriter)(staged),
		Members:  (*memoryMemberWriter)(staged),
		Locks:    &MockLocker{},
	}); err != nil {
		return err
	}

	s.state = staged.state
	return nil
}

// Networks はネットワークの読み取りビューを返します
func (s *MemoryStore) Networks() domain.NetworkReader { return (*memoryNetworkReader)(s) }

// Posts は投稿の読み取りビューを返します
func (s *MemoryStore) Posts() domain.PostReader { return (*memoryPostReader)(s) }

// Profiles はプロフィールの読み取りビューを返します
func (s *MemoryStore) Profiles() domain.ProfileReader { return (*memoryProfileReader)(s) }

// === readers ===

type memoryNetworkReader MemoryStore

func (r *memoryNetworkReader) FindByID(ctx context.Context, id int64) (mo.Option[*domain.Network], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.state.networks[id]
	if !ok {
		return mo.None[*domain.Network](), nil
	}
	return mo.Some(&n), nil
}

func (r *memoryNetworkReader) List(ctx context.Context) ([]*domain.Network, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return sortedValues(r.state.networks, func(n domain.Network) int64 { return n.ID }), nil
}

type memoryPostReader MemoryStore

func (r *memoryPostReader) ListEmbeddedByNetwork(ctx context.Context, networkID int64) ([]*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := sortedValues(r.state.posts, func(p domain.Post) int64 { return p.ID })
	return slices.DeleteFunc(all, func(p *domain.Post) bool {
		return p.NetworkID != networkID || p.ContentEmbedding.IsEmpty()
	}), nil
}

func (r *memoryPostReader) List(ctx context.Context) ([]*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return sortedValues(r.state.posts, func(p domain.Post) int64 { return p.ID }), nil
}

type memoryProfileReader MemoryStore

func (r *memoryProfileReader) ListEmbeddedByNetwork(ctx context.Context, networkID int64) ([]*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	members := sortedValues(r.state.members, func(m domain.Member) int64 { return m.ID })
	var result []*domain.Profile
	for _, m := range members {
		if m.NetworkID != networkID {
			continue
		}
		p, ok := r.state.profiles[m.ProfileID]
		if !ok || p.BioEmbedding.IsEmpty() {
			continue
		}
		result = append(result, &p)
	}
	return result, nil
}

func (r *memoryProfileReader) List(ctx context.Context) ([]*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return sortedValues(r.state.profiles, func(p domain.Profile) int64 { return p.ID }), nil
}

// === writers ===

type memoryWriter struct {
	store *MemoryStore
	state memoryState
}

func (w *memoryWriter) check(kind string, id int64) error {
	if w.store.FailWrite != nil {
		return w.store.FailWrite(kind, id)
	}
	return nil
}

func (w *memoryWriter) Upsert(ctx context.Context, network *domain.Network) error {
	if err := w.check("network", network.ID); err != nil {
		return err
	}
	w.state.networks[network.ID] = *network
	return nil
}

type memoryProfileWriter memoryWriter

func (w *memoryProfileWriter) Upsert(ctx context.Context, profile *domain.Profile) error {
	if err := (*memoryWriter)(w).check("profile", profile.ID); err != nil {
		return err
	}
	p := *profile
	p.BioEmbedding = slices.Clone(profile.BioEmbedding)
	w.state.profiles[p.ID] = p
	return nil
}

func (w *memoryProfileWriter) UpdateEmbedding(ctx context.Context, id int64, embedding domain.Vector) error {
	p, ok := w.state.profiles[id]
	if !ok {
		return fmt.Errorf("profile not found: %d", id)
	}
	p.BioEmbedding = slices.Clone(embedding)
	w.state.profiles[id] = p
	return nil
}

type memoryPostWriter memoryWriter

func (w *memoryPostWriter) Upsert(ctx context.Context, post *domain.Post) error {
	if err := (*memoryWriter)(w).check("post", post.ID); err != nil {
		return err
	}
	if _, ok := w.state.networks[post.NetworkID]; !ok {
		return fmt.Errorf("%w: post %d references network %d", domain.ErrDanglingReference, post.ID, post.NetworkID)
	}
	p := *post
	p.ContentEmbedding = slices.Clone(post.ContentEmbedding)
	w.state.posts[p.ID] = p
	return nil
}

func (w *memoryPostWriter) UpdateEmbedding(ctx context.Context, id int64, embedding domain.Vector) error {
	p, ok := w.state.posts[id]
	if !ok {
		return fmt.Errorf("post not found: %d", id)
	}
	p.ContentEmbedding = slices.Clone(embedding)
	w.state.posts[id] = p
	return nil
}

type memoryMemberWriter memoryWriter

func (w *memoryMemberWriter) Upsert(ctx context.Context, member *domain.Member) error {
	if err := (*memoryWriter)(w).check("member", member.ID); err != nil {
		return err
	}
	if _, ok := w.state.networks[member.NetworkID]; !ok {
		return fmt.Errorf("%w: member %d references network %d", domain.ErrDanglingReference, member.ID, member.NetworkID)
	}
	if _, ok := w.state.profiles[member.ProfileID]; !ok {
		return fmt.Errorf("%w: member %d references profile %d", domain.ErrDanglingReference, member.ID, member.ProfileID)
	}
	w.state.members[member.ID] = *member
	return nil
}

func sortedValues[T any](m map[int64]T, id func(T) int64) []*T {
	result := make([]*T, 0, len(m))
	for _, v := range m {
		result = append(result, &v)
	}
	slices.SortFunc(result, func(a, b *T) int { return cmp.Compare(id(*a), id(*b)) })
	return result
}
