package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v3"

	"github.com/jinford/integral-rag/internal/module/retrieval/application"
)

// InitAction はスキーマを適用し、CSVファイルを取り込むコマンドのアクション
func InitAction(ctx context.Context, cmd *cli.Command) error {
	appCtx, err := NewAppContext(ctx, cmd.String("env"))
	if err != nil {
		return err
	}
	defer appCtx.Close()

	fmt.Println("Initializing database schema...")
	if err := migrate(ctx, appCtx); err != nil {
		return err
	}

	fmt.Printf("Loading data from %s and generating embeddings...\n", appCtx.Config.Ingest.DataDir)
	stats, err := appCtx.Container.IngestService.Ingest(ctx)
	if err != nil {
		return fmt.Errorf("データの取り込みに失敗: %w", err)
	}

	renderIngestStats(os.Stdout, stats)
	fmt.Println("Database initialized and data loaded successfully!")
	return nil
}

// ReembedAction は保存済みの全レコードの埋め込みを再計算するコマンドのアクション
func ReembedAction(ctx context.Context, cmd *cli.Command) error {
	appCtx, err := NewAppContext(ctx, cmd.String("env"))
	if err != nil {
		return err
	}
	defer appCtx.Close()

	fmt.Printf("Recomputing embeddings with %d dimensions...\n", appCtx.Container.Embedder.Dimensions())
	stats, err := appCtx.Container.IngestService.Reembed(ctx)
	if err != nil {
		return fmt.Errorf("埋め込みの再計算に失敗: %w", err)
	}

	renderIngestStats(os.Stdout, stats)
	return nil
}

// renderIngestStats は取り込み件数をテーブル形式で表示します
func renderIngestStats(w io.Writer, stats *application.IngestStats) {
	table := tablewriter.NewWriter(w)
	table.Header("Kind", "Count")
	table.Append("networks", fmt.Sprintf("%d", stats.Networks))
	table.Append("profiles", fmt.Sprintf("%d", stats.Profiles))
	table.Append("members", fmt.Sprintf("%d", stats.Members))
	table.Append("posts", fmt.Sprintf("%d", stats.Posts))
	table.Append("failed", fmt.Sprintf("%d", stats.Failed))
	table.Render()
}
