package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/urfave/cli/v3"

	"github.com/jinford/integral-rag/internal/module/retrieval/application"
	"github.com/jinford/integral-rag/internal/module/retrieval/domain"
)

// QueryAction は対話的な検索モードを開始するコマンドのアクション
func QueryAction(ctx context.Context, cmd *cli.Command) error {
	appCtx, err := NewAppContext(ctx, cmd.String("env"))
	if err != nil {
		return err
	}
	defer appCtx.Close()

	svc := appCtx.Container.QueryService

	networks, err := svc.Networks(ctx)
	if err != nil {
		return fmt.Errorf("ネットワーク一覧の取得に失敗: %w", err)
	}
	if len(networks) == 0 {
		return errors.New("no networks found, please run the init command first")
	}

	fmt.Println("\n=== Integral RAG System - Interactive Query Mode ===")

	var network *domain.Network
	if id := cmd.Int64("network"); id != 0 {
		network, err = svc.Network(ctx, id)
		if err != nil {
			return err
		}
	} else {
		network, err = selectNetwork(networks)
		if err != nil {
			return err
		}
	}
	fmt.Printf("\nSelected network: %s\n\n", network.Name)

	for {
		prompt := promptui.Prompt{
			Label: `Enter your query (or "exit" to quit)`,
		}
		input, err := prompt.Run()
		if err != nil {
			if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
				fmt.Println("Goodbye!")
				return nil
			}
			return fmt.Errorf("入力エラー: %w", err)
		}
		if strings.EqualFold(strings.TrimSpace(input), "exit") {
			fmt.Println("Goodbye!")
			return nil
		}

		if err := runQuery(ctx, os.Stdout, svc, appCtx.Logger(), input, network.ID); err != nil {
			return err
		}
	}
}

// querier は対話モードが使う検索の入口
type querier interface {
	Query(ctx context.Context, prompt string, networkID int64) (*application.QueryResult, error)
}

// runQuery は1件のクエリを実行して結果を w に表示します
// 次元数の不一致は一致なしとして表示し、対話を続けます
func runQuery(ctx context.Context, w io.Writer, q querier, log *slog.Logger, input string, networkID int64) error {
	result, err := q.Query(ctx, input, networkID)
	switch {
	case err == nil:
		return renderResults(w, result.Results)
	case errors.Is(err, domain.ErrEmptyPrompt):
		return nil
	case errors.Is(err, domain.ErrDimensionMismatch):
		log.Warn("Embedding dimensions do not match stored vectors", "networkID", networkID, "error", err)
		return renderResults(w, nil)
	default:
		return fmt.Errorf("検索に失敗: %w", err)
	}
}

// selectNetwork はネットワークを対話的に選択させます
func selectNetwork(networks []*domain.Network) (*domain.Network, error) {
	items := make([]string, 0, len(networks))
	for _, n := range networks {
		items = append(items, fmt.Sprintf("%d: %s", n.ID, n.Name))
	}

	sel := promptui.Select{
		Label: "Available networks",
		Items: items,
	}
	idx, _, err := sel.Run()
	if err != nil {
		return nil, fmt.Errorf("入力エラー: %w", err)
	}
	return networks[idx], nil
}

// renderResults はランキング結果を表示します
func renderResults(w io.Writer, results []domain.RankedResult) error {
	fmt.Fprintln(w, "\n=== Results ===")
	fmt.Fprintln(w)

	if len(results) == 0 {
		fmt.Fprintln(w, "No relevant content found.")
		fmt.Fprintln(w)
		return nil
	}

	for i, res := range results {
		body, err := domain.MatchResult(res,
			func(p *domain.Post, _ float64) string {
				return fmt.Sprintf("Author: %s\nContent: %s", p.Author, p.Content)
			},
			func(p *domain.Profile, _ float64) string {
				return fmt.Sprintf("Name: %s\nBio: %s", p.Name, p.Bio)
			},
		)
		if err != nil {
			return err
		}

		fmt.Fprintf(w, "#%d (%s) - Similarity: %.4f\n", i+1, res.Kind(), res.Score)
		fmt.Fprintln(w, body)
		fmt.Fprintln(w)
	}
	return nil
}
