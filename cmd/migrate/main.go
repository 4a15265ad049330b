// Command migrate applies the SQL files in migrations/ with the Atlas CLI.
//
//	go run ./cmd/migrate            # apply pending migrations
//	go run ./cmd/migrate -status    # print the current revision
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"lab-seat-reservation/internal/handler/middleware"
	"lab-seat-reservation/internal/pkg/config"
	"lab-seat-reservation/internal/pkg/errs"

	"ariga.io/atlas-go-sdk/atlasexec"
)

func main() {
	dir := flag.String("dir", "migrations", "migration directory")
	bin := flag.String("atlas", "atlas", "path to the atlas binary")
	status := flag.Bool("status", false, "print migration status and exit")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("設定の読み込みに失敗しました", "error", err)
		os.Exit(1)
	}
	logger := middleware.NewLogger(cfg.Log).GetSlogLogger()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := run(ctx, logger, *bin, *dir, cfg.DB.BuildDSN(), *status); err != nil {
		logger.Error("マイグレーションに失敗しました", "error", err.Error())
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, bin, dir, dsn string, statusOnly bool) error {
	workdir, err := atlasexec.NewWorkingDir(atlasexec.WithMigrations(os.DirFS(dir)))
	if err != nil {
		return errs.Wrap(err, "prepare atlas working directory")
	}
	defer workdir.Close()

	client, err := atlasexec.NewClient(workdir.Path(), bin)
	if err != nil {
		return errs.Wrap(err, "create atlas client")
	}

	if statusOnly {
		st, err := client.MigrateStatus(ctx, &atlasexec.MigrateStatusParams{URL: dsn})
		if err != nil {
			return errs.Wrap(err, "migrate status")
		}
		logger.Info("マイグレーション状態",
			"current", st.Current,
			"next", st.Next,
			"pending", len(st.Pending))
		return nil
	}

	res, err := client.MigrateApply(ctx, &atlasexec.MigrateApplyParams{URL: dsn})
	if err != nil {
		return errs.Wrap(err, "migrate apply")
	}
	logger.Info("マイグレーションを適用しました",
		"applied", len(res.Applied),
		"current", res.Current,
		"target", res.Target)
	return nil
}
