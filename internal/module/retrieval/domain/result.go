package domain

import "fmt"

// ResultKind はランキング結果の種別です
type ResultKind string

const (
	ResultKindPost    ResultKind = "post"
	ResultKindProfile ResultKind = "profile"
)

// RankedItem はランキング結果に含まれる項目です
// 実装は *Post と *Profile のみです
type RankedItem interface {
	Kind() ResultKind
	rankedItem()
}

func (*Post) Kind() ResultKind    { return ResultKindPost }
func (*Profile) Kind() ResultKind { return ResultKindProfile }

func (*Post) rankedItem()    {}
func (*Profile) rankedItem() {}

// Scored は種別ごとのランキングで使う、スコア付きの項目です
type Scored[T any] struct {
	Item  T
	Score float64
}

// RankedResult は種別をまたいだランキングの1件です
type RankedResult struct {
	Item  RankedItem
	Score float64
}

// Kind は結果の種別を返します
func (r RankedResult) Kind() ResultKind {
	return r.Item.Kind()
}

// MatchResult は結果の種別ごとに処理を振り分けます
// 呼び出し側は両方の種別を必ず処理します
func MatchResult[T any](r RankedResult, onPost func(*Post, float64) T, onProfile func(*Profile, float64) T) (T, error) {
	switch item := r.Item.(type) {
	case *Post:
		return onPost(item, r.Score), nil
	case *Profile:
		return onProfile(item, r.Score), nil
	default:
		var zero T
		return zero, fmt.Errorf("unknown ranked item: %T", r.Item)
	}
}
