package domain

import (
	"context"

	"github.com/samber/mo"
)

// === Repository Ports ===

// CandidateSource はネットワーク内で埋め込みを持つ項目を取得するポートです
// 埋め込みが空の項目は返しません
type CandidateSource[T Embedded] interface {
	ListEmbeddedByNetwork(ctx context.Context, networkID int64) ([]T, error)
}

// NetworkReader はネットワークの読み取り操作を定義します
type NetworkReader interface {
	FindByID(ctx context.Context, id int64) (mo.Option[*Network], error)
	List(ctx context.Context) ([]*Network, error)
}

// NetworkWriter はネットワークの書き込み操作を定義します
type NetworkWriter interface {
	Upsert(ctx context.Context, network *Network) error
}

// PostReader は投稿の読み取り操作を定義します
type PostReader interface {
	CandidateSource[*Post]
	List(ctx context.Context) ([]*Post, error)
}

// PostWriter は投稿の書き込み操作を定義します
type PostWriter interface {
	Upsert(ctx context.Context, post *Post) error
	UpdateEmbedding(ctx context.Context, id int64, embedding Vector) error
}

// ProfileReader はプロフィールの読み取り操作を定義します
type ProfileReader interface {
	CandidateSource[*Profile]
	List(ctx context.Context) ([]*Profile, error)
}

// ProfileWriter はプロフィールの書き込み操作を定義します
type ProfileWriter interface {
	Upsert(ctx context.Context, profile *Profile) error
	UpdateEmbedding(ctx context.Context, id int64, embedding Vector) error
}

// MemberWriter はメンバーの書き込み操作を定義します
type MemberWriter interface {
	Upsert(ctx context.Context, member *Member) error
}

// === Transaction Port ===

// WriteSet は1つのトランザクション内で使う書き込みアダプター群です
type WriteSet struct {
	Networks NetworkWriter
	Profiles ProfileWriter
	Posts    PostWriter
	Members  MemberWriter
	Locks    IngestLocker
}

// IngestLocker は取り込みの書き込みを直列化するロックです
type IngestLocker interface {
	LockIngestion(ctx context.Context) error
}

// Transactor は fn を1つのトランザクションで実行します
// fn がエラーを返した場合はロールバックされます
type Transactor interface {
	Transact(ctx context.Context, fn func(*WriteSet) error) error
}

// === Embedding Port ===

// Embedder はテキストを埋め込みベクトルに変換するポートです
// 取り込み時と検索時で同じ実装を使う必要があります
type Embedder interface {
	Embed(text string) Vector
	Dimensions() int
}

// === Source Port ===

// Dataset はフラットファイルから読み込んだ取り込み対象のレコード群です
type Dataset struct {
	Networks []*Network
	Profiles []*Profile
	Posts    []*Post
	Members  []*Member
}

// DatasetLoader は取り込み対象のレコードを読み込むポートです
type DatasetLoader interface {
	Load(ctx context.Context) (*Dataset, error)
}
