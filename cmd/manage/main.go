package main

import (
	"context"
	"log"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/example/solestore/internal/config"
	"github.com/example/solestore/internal/database"
	"github.com/example/solestore/internal/seed"
)

func main() {
	cmd := &cli.Command{
		Name:  "manage",
		Usage: "Management commands for the Sole Store backend",
		Commands: []*cli.Command{
			{
				Name:  "migrate",
				Usage: "Run database migration",
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg := config.Load()
					db := database.Connect(cfg.DatabaseURL)
					if err := database.Migrate(db); err != nil {
						return err
					}
					log.Println("Migration complete")
					return nil
				},
			},
			{
				Name:  "seed",
				Usage: "Populate the database with sample shoe data and public images",
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg := config.Load()
					db := database.Connect(cfg.DatabaseURL)
					if err := database.EnsureAdmin(db, cfg.AdminEmail, cfg.AdminPassword); err != nil {
						return err
					}
					return seed.Run(db, cfg.MediaDir)
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
