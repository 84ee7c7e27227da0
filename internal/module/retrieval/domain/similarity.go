package domain

import "fmt"

// Vector は埋め込みベクトルです
// 同一デプロイ内のベクトルはすべて同じ次元数を持ちます
type Vector []float32

// IsEmpty はベクトルが未設定かどうかを返します
func (v Vector) IsEmpty() bool {
	return len(v) == 0
}

// CosineSimilarity は2つのベクトルの類似度スコアを計算します
//
// 分母は大きさの二乗の積（magA * magB）で、平方根は取りません。
// Embedder の出力は単位ベクトルなので分母は 1 になり、内積と一致します。
// 既存のランキング順序を保つため、この式は変更しないでください。
// どちらかの大きさが 0 の場合は 0 を返します。
func CosineSimilarity(a, b Vector) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrDimensionMismatch, len(a), len(b))
	}

	var dot, magA, magB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		magA += x * x
		magB += y * y
	}

	if magA == 0 || magB == 0 {
		return 0, nil
	}

	return dot / (magA * magB), nil
}
