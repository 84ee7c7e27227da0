package csvloader

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jinford/integral-rag/internal/module/retrieval/domain"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoader_Load(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, NetworksFile, "id,name\n1,Integral\n2,Builders\n")
	writeFile(t, dir, ProfilesFile, "id,name,bio\n10,Ada,\"systems engineer, retired\"\n")
	writeFile(t, dir, PostsFile, "id,author,networkId,content\n100,Ada,1,integral RAG\n")
	writeFile(t, dir, MembersFile, "id,profileId,networkId\n1,10,1\n")

	dataset, err := New(dir).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []*domain.Network{{ID: 1, Name: "Integral"}, {ID: 2, Name: "Builders"}}, dataset.Networks)
	assert.Equal(t, []*domain.Profile{{ID: 10, Name: "Ada", Bio: "systems engineer, retired"}}, dataset.Profiles)
	assert.Equal(t, []*domain.Post{{ID: 100, NetworkID: 1, Author: "Ada", Content: "integral RAG"}}, dataset.Posts)
	assert.Equal(t, []*domain.Member{{ID: 1, ProfileID: 10, NetworkID: 1}}, dataset.Members)
}

func TestParse_ColumnsByHeaderName(t *testing.T) {
	src := "\ufeffnetworkId,content,id,author\n3,hello,7,bob\n"

	posts, err := parse(context.Background(), strings.NewReader(src), PostsFile,
		[]string{"id", "author", "networkId", "content"},
		func(r row) (*domain.Post, error) {
			id, err := r.integer("id")
			if err != nil {
				return nil, err
			}
			networkID, err := r.integer("networkId")
			if err != nil {
				return nil, err
			}
			return &domain.Post{ID: id, NetworkID: networkID, Author: r.str("author"), Content: r.str("content")}, nil
		})
	require.NoError(t, err)
	assert.Equal(t, []*domain.Post{{ID: 7, NetworkID: 3, Author: "bob", Content: "hello"}}, posts)
}

func TestLoader_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "missing column", content: "id\n1\n", wantErr: `missing required column "name"`},
		{name: "invalid id", content: "id,name\nabc,Integral\n", wantErr: `line 2: invalid id "abc"`},
		{name: "short row", content: "id,name\n1\n", wantErr: `line 2: missing value for "name"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, NetworksFile, tt.content)

			_, err := New(dir).LoadNetworks(context.Background())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoader_MissingFile(t *testing.T) {
	_, err := New(t.TempDir()).Load(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoader_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, MembersFile, "")

	members, err := New(dir).LoadMembers(context.Background())
	require.NoError(t, err)
	assert.Empty(t, members)
}
