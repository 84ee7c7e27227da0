package csvloader

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jinford/integral-rag/internal/module/retrieval/domain"
)

// ファイル名
const (
	NetworksFile = "Networks.csv"
	ProfilesFile = "Profiles.csv"
	PostsFile    = "Posts.csv"
	MembersFile  = "Members.csv"
)

// Loader はデータディレクトリのCSVファイルからレコードを読み込みます
type Loader struct {
	dir string
}

var _ domain.DatasetLoader = (*Loader)(nil)

// New は新しいLoaderを作成します
func New(dir string) *Loader {
	return &Loader{dir: dir}
}

// Load は4種類のCSVファイルをすべて読み込みます
func (l *Loader) Load(ctx context.Context) (*domain.Dataset, error) {
	networks, err := l.LoadNetworks(ctx)
	if err != nil {
		return nil, err
	}
	profiles, err := l.LoadProfiles(ctx)
	if err != nil {
		return nil, err
	}
	posts, err := l.LoadPosts(ctx)
	if err != nil {
		return nil, err
	}
	members, err := l.LoadMembers(ctx)
	if err != nil {
		return nil, err
	}

	return &domain.Dataset{
		Networks: networks,
		Profiles: profiles,
		Posts:    posts,
		Members:  members,
	}, nil
}

// LoadNetworks は Networks.csv (id,name) を読み込みます
func (l *Loader) LoadNetworks(ctx context.Context) ([]*domain.Network, error) {
	return loadFile(ctx, filepath.Join(l.dir, NetworksFile), []string{"id", "name"},
		func(r row) (*domain.Network, error) {
			id, err := r.integer("id")
			if err != nil {
				return nil, err
			}
			return &domain.Network{ID: id, Name: r.str("name")}, nil
		})
}

// LoadProfiles は Profiles.csv (id,name,bio) を読み込みます
func (l *Loader) LoadProfiles(ctx context.Context) ([]*domain.Profile, error) {
	return loadFile(ctx, filepath.Join(l.dir, ProfilesFile), []string{"id", "name", "bio"},
		func(r row) (*domain.Profile, error) {
			id, err := r.integer("id")
			if err != nil {
				return nil, err
			}
			return &domain.Profile{ID: id, Name: r.str("name"), Bio: r.str("bio")}, nil
		})
}

// LoadPosts は Posts.csv (id,author,networkId,content) を読み込みます
func (l *Loader) LoadPosts(ctx context.Context) ([]*domain.Post, error) {
	return loadFile(ctx, filepath.Join(l.dir, PostsFile), []string{"id", "author", "networkId", "content"},
		func(r row) (*domain.Post, error) {
			id, err := r.integer("id")
			if err != nil {
				return nil, err
			}
			networkID, err := r.integer("networkId")
			if err != nil {
				return nil, err
			}
			return &domain.Post{
				ID:        id,
				NetworkID: networkID,
				Author:    r.str("author"),
				Content:   r.str("content"),
			}, nil
		})
}

// LoadMembers は Members.csv (id,profileId,networkId) を読み込みます
func (l *Loader) LoadMembers(ctx context.Context) ([]*domain.Member, error) {
	return loadFile(ctx, filepath.Join(l.dir, MembersFile), []string{"id", "profileId", "networkId"},
		func(r row) (*domain.Member, error) {
			id, err := r.integer("id")
			if err != nil {
				return nil, err
			}
			profileID, err := r.integer("profileId")
			if err != nil {
				return nil, err
			}
			networkID, err := r.integer("networkId")
			if err != nil {
				return nil, err
			}
			return &domain.Member{ID: id, ProfileID: profileID, NetworkID: networkID}, nil
		})
}

// row はヘッダー名で列を参照できる1行です
type row struct {
	index  map[string]int
	record []string
}

func (r row) str(column string) string {
	return r.record[r.index[column]]
}

func (r row) integer(column string) (int64, error) {
	raw := strings.TrimSpace(r.str(column))
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", column, raw)
	}
	return v, nil
}

func loadFile[T any](ctx context.Context, path string, required []string, transform func(row) (T, error)) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return parse(ctx, f, filepath.Base(path), required, transform)
}

func parse[T any](ctx context.Context, src io.Reader, name string, required []string, transform func(row) (T, error)) ([]T, error) {
	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return []T{}, nil
		}
		return nil, fmt.Errorf("%s: failed to read header: %w", name, err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		// 先頭列の BOM を除去
		h = strings.TrimPrefix(strings.TrimSpace(h), "\ufeff")
		index[h] = i
	}
	for _, col := range required {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%s: missing required column %q", name, col)
		}
	}

	var results []T
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}

		line, _ := reader.FieldPos(0)
		for _, col := range required {
			if index[col] >= len(record) {
				return nil, fmt.Errorf("%s line %d: missing value for %q", name, line, col)
			}
		}

		item, err := transform(row{index: index, record: record})
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", name, line, err)
		}
		results = append(results, item)
	}

	if results == nil {
		results = []T{}
	}
	return results, nil
}
