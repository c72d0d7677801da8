package main

import (
	"fmt"
	"log"
	"os"

	"github.com/clipfetch/clipfetch/core/bootstrap"
	corecmd "github.com/clipfetch/clipfetch/core/cmd"
	"github.com/clipfetch/clipfetch/internal/app"
)

func main() {
	err := corecmd.Run(corecmd.Options{
		ConfigEnvVar:      "CONFIG_PATH",
		DefaultConfigPath: "configs/config.yaml",
		LoadConfig: func(path string) (corecmd.ConfigCarrier, error) {
			return app.LoadConfig(path)
		},
		Bootstrap: func(carrier corecmd.ConfigCarrier) (corecmd.TelegramApp, error) {
			cfg, ok := carrier.(*app.Config)
			if !ok {
				return nil, fmt.Errorf("unexpected config type %T", carrier)
			}

			opts := bootstrap.Options{Config: cfg.CoreConfig()}
			if cfg.Session.Backend == app.SessionBackendPostgres {
				opts.Database = &cfg.Database
			}
			infra, err := bootstrap.Run(opts)
			if err != nil {
				return nil, err
			}
			return app.New(cfg, infra.DB)
		},
	})
	if err != nil {
		log.Printf("fatal: %v", err)
		os.Exit(1)
	}
}
