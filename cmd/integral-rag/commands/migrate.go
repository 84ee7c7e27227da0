package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// MigrateAction はスキーマのみを適用するコマンドのアクション
func MigrateAction(ctx context.Context, cmd *cli.Command) error {
	appCtx, err := NewAppContext(ctx, cmd.String("env"))
	if err != nil {
		return err
	}
	defer appCtx.Close()

	return migrate(ctx, appCtx)
}

func migrate(ctx context.Context, appCtx *AppContext) error {
	applied, err := appCtx.Container.Database().Migrate(ctx)
	if err != nil {
		return fmt.Errorf("スキーマの適用に失敗: %w", err)
	}

	if len(applied) == 0 {
		fmt.Println("Schema is up to date.")
		return nil
	}
	for _, name := range applied {
		fmt.Printf("Applied %s\n", name)
	}
	return nil
}
