package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v3"

	"github.com/jinford/integral-rag/internal/module/retrieval/domain"
)

// NetworkListAction はネットワーク一覧を表示するコマンドのアクション
func NetworkListAction(ctx context.Context, cmd *cli.Command) error {
	appCtx, err := NewAppContext(ctx, cmd.String("env"))
	if err != nil {
		return err
	}
	defer appCtx.Close()

	networks, err := appCtx.Container.QueryService.Networks(ctx)
	if err != nil {
		return fmt.Errorf("ネットワーク一覧の取得に失敗: %w", err)
	}

	if len(networks) == 0 {
		fmt.Println("No networks found. Please run the init command first.")
		return nil
	}

	renderNetworksTable(os.Stdout, networks)
	return nil
}

// renderNetworksTable はテーブル形式でネットワーク一覧を表示します
func renderNetworksTable(w io.Writer, networks []*domain.Network) {
	table := tablewriter.NewWriter(w)
	table.Header("ID", "Name")
	for _, n := range networks {
		table.Append(fmt.Sprintf("%d", n.ID), n.Name)
	}
	table.Render()
}
