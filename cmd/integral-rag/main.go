package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/jinford/integral-rag/cmd/integral-rag/commands"
)

func envFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "env",
		Usage: "環境変数ファイルパス",
		Value: ".env",
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &cli.Command{
		Name:    "integral-rag",
		Usage:   "ネットワーク単位で投稿とプロフィールを類似検索する RAG 検索システム",
		Version: "1.0.0",
		Commands: []*cli.Command{
			{
				Name:   "init",
				Usage:  "スキーマを適用し、CSVファイルからデータを取り込む",
				Flags:  []cli.Flag{envFlag()},
				Action: commands.InitAction,
			},
			{
				Name:   "migrate",
				Usage:  "スキーマのみを適用",
				Flags:  []cli.Flag{envFlag()},
				Action: commands.MigrateAction,
			},
			{
				Name:  "query",
				Usage: "対話的な検索モードを開始",
				Flags: []cli.Flag{
					envFlag(),
					&cli.Int64Flag{
						Name:  "network",
						Usage: "ネットワークID（省略時は一覧から選択）",
					},
				},
				Action: commands.QueryAction,
			},
			{
				Name:   "reembed",
				Usage:  "保存済みの投稿とプロフィールの埋め込みを再計算",
				Flags:  []cli.Flag{envFlag()},
				Action: commands.ReembedAction,
			},
			{
				Name:  "network",
				Usage: "ネットワーク管理コマンド",
				Commands: []*cli.Command{
					{
						Name:   "list",
						Usage:  "ネットワーク一覧を表示",
						Flags:  []cli.Flag{envFlag()},
						Action: commands.NetworkListAction,
					},
				},
			},
			{
				Name:  "server",
				Usage: "HTTPサーバコマンド",
				Commands: []*cli.Command{
					{
						Name:  "start",
						Usage: "HTTPサーバを起動",
						Flags: []cli.Flag{
							envFlag(),
							&cli.IntFlag{
								Name:  "port",
								Usage: "待ち受けポート（省略時は PORT）",
							},
						},
						Action: commands.ServerStartAction,
					},
				},
			},
		},
	}

	if err := app.Run(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}
