package embedder

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf16"

	"github.com/jinford/integral-rag/internal/module/retrieval/domain"
)

// DefaultDimensions はデフォルトの埋め込み次元数です
const DefaultDimensions = 384

// CharSignalEmbedder は文字コードから決定的な疑似埋め込みを生成します
// 学習済みモデルではなく、同じテキストからは常に同じベクトルを返します
type CharSignalEmbedder struct {
	dimensions int
}

var _ domain.Embedder = (*CharSignalEmbedder)(nil)

// NewCharSignalEmbedder は新しい CharSignalEmbedder を作成します
// dimensions が 0 以下の場合は DefaultDimensions を使います
func NewCharSignalEmbedder(dimensions int) *CharSignalEmbedder {
	if dimensions <= 0 {
		dimensions = DefaultDimensions
	}
	return &CharSignalEmbedder{dimensions: dimensions}
}

// Dimensions は埋め込みの次元数を返します
func (e *CharSignalEmbedder) Dimensions() int {
	return e.dimensions
}

// Embed はテキストを単位長の埋め込みベクトルに変換します
func (e *CharSignalEmbedder) Embed(text string) domain.Vector {
	acc := make([]float64, e.dimensions)
	normalized := strings.TrimFunc(toLowerFull(text), isECMAScriptSpace)

	// 位置は UTF-16 コードユニット単位で数える（既存の保存済みベクトルと互換）
	for i, unit := range utf16.Encode([]rune(normalized)) {
		acc[i%e.dimensions] += math.Sin(float64(unit)*0.1) * 0.5
	}

	var sum float64
	for _, v := range acc {
		sum += v * v
	}
	magnitude := math.Sqrt(sum)
	if magnitude == 0 {
		magnitude = 1
	}

	vec := make(domain.Vector, e.dimensions)
	for i, v := range acc {
		vec[i] = float32(v / magnitude)
	}

	return vec
}

// toLowerFull は特殊ケースを含む完全な小文字化を行います
// strings.ToLower との差分は U+0130 の展開と語末のシグマです
func toLowerFull(text string) string {
	runes := []rune(text)
	var b strings.Builder
	b.Grow(len(text))
	for i, r := range runes {
		switch r {
		case '\u0130':
			b.WriteString("i\u0307")
		case '\u03a3':
			if isFinalSigma(runes, i) {
				b.WriteRune('\u03c2')
			} else {
				b.WriteRune('\u03c3')
			}
		default:
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// isFinalSigma は runes[i] が語末のシグマかどうかを返します
// 直前に大小文字を持つ文字があり、直後に続かない場合が語末です
func isFinalSigma(runes []rune, i int) bool {
	before := false
	for j := i - 1; j >= 0; j-- {
		if isCaseIgnorable(runes[j]) {
			continue
		}
		before = isCased(runes[j])
		break
	}
	if !before {
		return false
	}
	for j := i + 1; j < len(runes); j++ {
		if isCaseIgnorable(runes[j]) {
			continue
		}
		return !isCased(runes[j])
	}
	return true
}

func isCased(r rune) bool {
	return unicode.In(r, unicode.Lu, unicode.Ll, unicode.Lt, unicode.Other_Lowercase, unicode.Other_Uppercase)
}

func isCaseIgnorable(r rune) bool {
	switch r {
	case '\'', '.', ':', '^', '`', '\u00b7', '\u2018', '\u2019', '\u2024', '\u2027':
		return true
	}
	return unicode.In(r, unicode.Mn, unicode.Me, unicode.Cf, unicode.Lm, unicode.Sk)
}

// isECMAScriptSpace は String.prototype.trim が除去する空白かどうかを返します
// unicode.IsSpace と異なり U+FEFF を含み U+0085 を含みません
func isECMAScriptSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', '\u2028', '\u2029', '\ufeff':
		return true
	}
	return unicode.Is(unicode.Zs, r)
}
