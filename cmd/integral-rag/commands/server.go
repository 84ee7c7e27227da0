package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/jinford/integral-rag/internal/interface/httpapi"
)

// ServerStartAction はHTTPサーバを起動するコマンドのアクション
func ServerStartAction(ctx context.Context, cmd *cli.Command) error {
	appCtx, err := NewAppContext(ctx, cmd.String("env"))
	if err != nil {
		return err
	}
	defer appCtx.Close()

	port := appCtx.Config.Server.Port
	if cmd.IsSet("port") {
		port = cmd.Int("port")
	}

	server := httpapi.NewServer(
		appCtx.Container.QueryService,
		appCtx.Container.IngestService,
		httpapi.WithServerLogger(appCtx.Logger()),
	)
	return server.ListenAndServe(ctx, fmt.Sprintf(":%d", port))
}
