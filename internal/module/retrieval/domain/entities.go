package domain

// Network はコンテンツを束ねるネットワークを表します
type Network struct {
	ID   int64
	Name string
}

// Profile はメンバーのプロフィールを表します
// BioEmbedding が空の場合は検索候補になりません
type Profile struct {
	ID           int64
	Name         string
	Bio          string
	BioEmbedding Vector
}

// Post はネットワーク内の投稿を表します
// ContentEmbedding が空の場合は検索候補になりません
type Post struct {
	ID               int64
	NetworkID        int64
	Author           string
	Content          string
	ContentEmbedding Vector
}

// Member はプロフィールとネットワークの所属関係を表します
type Member struct {
	ID        int64
	ProfileID int64
	NetworkID int64
}

// Embedding はランキング対象のベクトルを返します
func (p *Post) Embedding() Vector {
	return p.ContentEmbedding
}

// Embedding はランキング対象のベクトルを返します
func (p *Profile) Embedding() Vector {
	return p.BioEmbedding
}

// Embedded は埋め込みベクトルを持つランキング候補です
type Embedded interface {
	Embedding() Vector
}
