package main

import (
	"context"
	"log"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/gitscope-dev/gitscope/internal/config"
	"github.com/gitscope-dev/gitscope/internal/server"
	"github.com/gitscope-dev/gitscope/internal/transport/http/router"
	"github.com/gitscope-dev/gitscope/pkg/logger"
)

func main() {
	cmd := &cli.Command{
		Name:  "gitscope",
		Usage: "A read-only web browser for git repositories",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to the configuration file",
				Sources: cli.EnvVars("GITSCOPE_CONFIG"),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return serve(cmd.String("config"))
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func serve(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logCfg := &logger.Config{
		Level:       cfg.Logging.Level,
		Output:      logger.OutputConsole,
		Format:      cfg.Logging.Format,
		Development: cfg.IsDevelopment(),
		AddCaller:   true,
	}
	if cfg.Logging.OutputPath != "" && cfg.Logging.OutputPath != "stdout" {
		logCfg.Output = logger.OutputFile
		logCfg.FilePath = cfg.Logging.OutputPath
	}
	if err := logger.Init(logCfg); err != nil {
		return err
	}
	defer logger.Close()

	srv, err := server.New(cfg)
	if err != nil {
		return err
	}

	r := router.NewRouter(srv)
	r.RegisterRoutes()

	logger.Info("starting gitscope",
		logger.String("addr", cfg.ServerAddress()),
		logger.String("scan_root", cfg.Scan.Root),
	)

	return srv.Run(cfg.ServerAddress())
}
