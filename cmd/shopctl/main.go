// cmd/shopctl/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"

	"github.com/javajoker/storefront-backend/internal/config"
	"github.com/javajoker/storefront-backend/internal/database"
	"github.com/javajoker/storefront-backend/internal/logger"
	"github.com/javajoker/storefront-backend/internal/server"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newCommand().Run(ctx, os.Args); err != nil {
		logrus.WithError(err).Fatal("Command failed")
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:  "shopctl",
		Usage: "Storefront backend administration",
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Run the HTTP API",
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					return server.Run(ctx, cfg)
				},
			},
			{
				Name:  "migrate",
				Usage: "Run database migrations",
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}

					db, err := database.Initialize(cfg.Database)
					if err != nil {
						return err
					}
					defer database.Close(db)

					return database.RunMigrations(db)
				},
			},
			{
				Name:  "create-admin",
				Usage: "Create an admin account or promote an existing user",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "username",
						Usage:    "admin username",
						Required: true,
						Sources:  cli.EnvVars("ADMIN_USERNAME"),
					},
					&cli.StringFlag{
						Name:     "password",
						Usage:    "admin password",
						Required: true,
						Sources:  cli.EnvVars("ADMIN_PASSWORD"),
					},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}

					db, err := database.Initialize(cfg.Database)
					if err != nil {
						return err
					}
					defer database.Close(db)

					if err := database.RunMigrations(db); err != nil {
						return err
					}

					admin, err := database.EnsureAdmin(db.WithContext(ctx), c.String("username"), c.String("password"))
					if err != nil {
						return err
					}

					logrus.WithFields(logrus.Fields{
						"user_id":  admin.ID,
						"username": admin.Username,
					}).Info("Admin account ready")
					return nil
				},
			},
		},
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger.Configure(cfg.Log.Level, cfg.Log.Format)
	return cfg, nil
}
