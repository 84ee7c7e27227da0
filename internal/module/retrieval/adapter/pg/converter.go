package pg

import (
	pgvector "github.com/pgvector/pgvector-go"

	"github.com/jinford/integral-rag/internal/module/retrieval/adapter/pg/sqlc"
	"github.com/jinford/integral-rag/internal/module/retrieval/domain"
)

// VectorToPg は domain.Vector を vector 列の値に変換します
// 空のベクトルは NULL として保存します
func VectorToPg(v domain.Vector) *pgvector.Vector {
	if v.IsEmpty() {
		return nil
	}
	pv := pgvector.NewVector(v)
	return &pv
}

// PgToVector は vector 列の値を domain.Vector に変換します
// NULL は空のベクトルになります
func PgToVector(v *pgvector.Vector) domain.Vector {
	if v == nil {
		return nil
	}
	return domain.Vector(v.Slice())
}

func convertSQLCNetwork(n sqlc.Network) *domain.Network {
	return &domain.Network{
		ID:   n.ID,
		Name: n.Name,
	}
}

func convertSQLCPost(p sqlc.Post) *domain.Post {
	return &domain.Post{
		ID:               p.ID,
		NetworkID:        p.NetworkID,
		Author:           p.Author,
		Content:          p.Content,
		ContentEmbedding: PgToVector(p.ContentEmbedding),
	}
}

func convertSQLCProfile(p sqlc.Profile) *domain.Profile {
	return &domain.Profile{
		ID:           p.ID,
		Name:         p.Name,
		Bio:          p.Bio,
		BioEmbedding: PgToVector(p.BioEmbedding),
	}
}

func convertAll[S any, T any](rows []S, convert func(S) T) []T {
	result := make([]T, 0, len(rows))
	for _, row := range rows {
		result = append(result, convert(row))
	}
	return result
}
