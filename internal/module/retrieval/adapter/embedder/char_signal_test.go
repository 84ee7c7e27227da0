package embedder

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jinford/integral-rag/internal/module/retrieval/domain"
)

func norm(v domain.Vector) float64 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	return math.Sqrt(sum)
}

func TestCharSignalEmbedder_Deterministic(t *testing.T) {
	e := NewCharSignalEmbedder(0)

	first := e.Embed("hello")
	second := e.Embed("hello")

	require.Len(t, first, DefaultDimensions)
	assert.Equal(t, first, second)
	assert.InDelta(t, 1.0, norm(first), 1e-5)
}

func TestCharSignalEmbedder_CaseAndWhitespaceInsensitive(t *testing.T) {
	e := NewCharSignalEmbedder(DefaultDimensions)

	assert.Equal(t, e.Embed("hello"), e.Embed("Hello"))
	assert.Equal(t, e.Embed("Integral RAG"), e.Embed("integral rag"))
	assert.Equal(t, e.Embed("hello"), e.Embed("  hello \n"))
}

func TestCharSignalEmbedder_TrimsECMAScriptWhitespace(t *testing.T) {
	e := NewCharSignalEmbedder(DefaultDimensions)

	assert.Equal(t, e.Embed("hello"), e.Embed("\ufeffhello"))
	assert.Equal(t, e.Embed("hello"), e.Embed("\u00a0hello\u2028"))
	assert.Equal(t, e.Embed("hello"), e.Embed("\u3000hello\v"))
	assert.NotEqual(t, e.Embed("hello"), e.Embed("hello\u0085"))
}

func TestCharSignalEmbedder_FullLowercaseMapping(t *testing.T) {
	e := NewCharSignalEmbedder(DefaultDimensions)

	// U+0130 は2コードユニットに展開される
	assert.Equal(t, e.Embed("i\u0307stanbul"), e.Embed("\u0130stanbul"))
	assert.NotEqual(t, e.Embed("istanbul"), e.Embed("\u0130stanbul"))

	// 語末のシグマは ς、それ以外は σ
	assert.Equal(t, e.Embed("\u03bf\u03b4\u03bf\u03c2"), e.Embed("\u039f\u0394\u039f\u03a3"))
	assert.Equal(t, e.Embed("\u03c3\u03bf\u03c6\u03bf\u03c2"), e.Embed("\u03a3\u039f\u03a6\u039f\u03a3"))
	assert.Equal(t, e.Embed("\u03c3"), e.Embed("\u03a3"))
}

func TestToLowerFull(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "Integral RAG", want: "integral rag"},
		{in: "\u0130", want: "i\u0307"},
		{in: "\u0391\u03a3 \u03a3\u0391", want: "\u03b1\u03c2 \u03c3\u03b1"},
		{in: "\u0391\u03a3.", want: "\u03b1\u03c2."},
		{in: "\u0391\u03a3'\u0391", want: "\u03b1\u03c3'\u03b1"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, toLowerFull(tt.in), tt.in)
	}
}

func TestCharSignalEmbedder_UnitLength(t *testing.T) {
	e := NewCharSignalEmbedder(DefaultDimensions)

	for _, text := range []string{"a", "systems engineer", "integral RAG", strings.Repeat("long text ", 100)} {
		assert.InDelta(t, 1.0, norm(e.Embed(text)), 1e-5, text)
	}
}

func TestCharSignalEmbedder_EmptyTextIsZeroVector(t *testing.T) {
	e := NewCharSignalEmbedder(16)

	vec := e.Embed("   ")
	require.Len(t, vec, 16)
	for _, v := range vec {
		assert.Equal(t, float32(0), v)
	}
}

func TestCharSignalEmbedder_KnownValues(t *testing.T) {
	e := NewCharSignalEmbedder(4)

	// "ab": a=97, b=98 を位置 0, 1 に加算
	a := math.Sin(97*0.1) * 0.5
	b := math.Sin(98*0.1) * 0.5
	mag := math.Sqrt(a*a + b*b)

	vec := e.Embed("AB")
	require.Len(t, vec, 4)
	assert.InDelta(t, a/mag, float64(vec[0]), 1e-6)
	assert.InDelta(t, b/mag, float64(vec[1]), 1e-6)
	assert.Equal(t, float32(0), vec[2])
	assert.Equal(t, float32(0), vec[3])
}

func TestCharSignalEmbedder_PositionsWrapAround(t *testing.T) {
	e := NewCharSignalEmbedder(2)

	// "aaa": 位置 0 に2回、位置 1 に1回加算される
	s := math.Sin(97*0.1) * 0.5
	mag := math.Sqrt(4*s*s + s*s)

	vec := e.Embed("aaa")
	assert.InDelta(t, 2*s/mag, float64(vec[0]), 1e-6)
	assert.InDelta(t, s/mag, float64(vec[1]), 1e-6)
}

func TestCharSignalEmbedder_Dimensions(t *testing.T) {
	assert.Equal(t, DefaultDimensions, NewCharSignalEmbedder(-1).Dimensions())
	assert.Equal(t, 8, NewCharSignalEmbedder(8).Dimensions())
}
