package main

import (
	"context"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/mamadbah2/lfs-pipeline/internal/config"
	"github.com/mamadbah2/lfs-pipeline/internal/repository/mongodb"
	"github.com/mamadbah2/lfs-pipeline/internal/repository/postgres"
	"github.com/mamadbah2/lfs-pipeline/internal/repository/sheets"
	supabaserepo "github.com/mamadbah2/lfs-pipeline/internal/repository/supabase"
	loadersvc "github.com/mamadbah2/lfs-pipeline/internal/service/loader"
	pipelinesvc "github.com/mamadbah2/lfs-pipeline/internal/service/pipeline"
	transformsvc "github.com/mamadbah2/lfs-pipeline/internal/service/transform"
	"github.com/mamadbah2/lfs-pipeline/pkg/clients/opendosm"
	supabaseclient "github.com/mamadbah2/lfs-pipeline/pkg/clients/supabase"
	"github.com/mamadbah2/lfs-pipeline/pkg/logger"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.NewWithLevel(cfg.LogLevel))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sinks, closers, err := buildSinks(ctx, cfg, baseLogger)
	defer func() {
		for _, closeFn := range closers {
			closeFn()
		}
	}()
	if err != nil {
		baseLogger.Error("failed to init sinks", zap.Error(err))
		return 1
	}

	fetcher := opendosm.NewClient(cfg.Source, baseLogger.Named("client.opendosm"))
	transformer := transformsvc.NewService(baseLogger.Named("svc.transform"))
	loader := loadersvc.NewService(cfg.Supabase.Table, sinks, baseLogger.Named("svc.loader"))
	pipeline := pipelinesvc.NewService(fetcher, transformer, loader, baseLogger.Named("svc.pipeline"))

	outcome := pipeline.Run(ctx)
	return outcome.ExitCode()
}

func buildSinks(ctx context.Context, cfg *config.Config, base *zap.Logger) ([]loadersvc.Sink, []func(), error) {
	var (
		sinks   []loadersvc.Sink
		closers []func()
	)

	for _, name := range cfg.Sinks {
		switch name {
		case config.SinkSupabase:
			client := supabaseclient.NewClient(cfg.Supabase)
			repo := supabaserepo.NewSupabaseRepository(client, cfg.Supabase.Table, base.Named("repo.supabase"))
			sinks = append(sinks, loadersvc.Sink{Name: name, Repo: repo})

		case config.SinkPostgres:
			db, err := postgres.Open(ctx, cfg.Postgres.DSN)
			if err != nil {
				return nil, closers, err
			}
			repo := postgres.NewPostgresRepository(db, cfg.Postgres.Table)
			closers = append(closers, func() {
				if err := repo.Close(); err != nil {
					base.Error("failed to close postgres connection", zap.Error(err))
				}
			})
			sinks = append(sinks, loadersvc.Sink{Name: name, Repo: repo})

		case config.SinkMongoDB:
			repo, err := mongodb.NewMongoDBRepository(ctx, cfg.MongoDB.URI, cfg.MongoDB.DBName, cfg.MongoDB.Collection)
			if err != nil {
				return nil, closers, err
			}
			closers = append(closers, func() {
				if err := repo.Close(context.Background()); err != nil {
					base.Error("failed to close mongodb connection", zap.Error(err))
				}
			})
			sinks = append(sinks, loadersvc.Sink{Name: name, Repo: repo})

		case config.SinkSheets:
			sheetsRepo, err := sheets.NewGoogleSheetRepository(ctx, cfg.Sheets, base.Named("repo.sheets"))
			if err != nil {
				return nil, closers, err
			}
			sinks = append(sinks, loadersvc.Sink{Name: name, Repo: sheets.NewLabourForceSheet(sheetsRepo, cfg.Sheets.Range)})
		}
	}

	return sinks, closers, nil
}
