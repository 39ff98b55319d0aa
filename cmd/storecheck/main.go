package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	internalcli "github.com/atid-store/storecheck/internal/cli"
	"github.com/atid-store/storecheck/internal/config"
	"github.com/atid-store/storecheck/internal/database"
	"github.com/atid-store/storecheck/internal/repository"
)

var version = "0.1.0"

// AuditCommand returns the audit command
func AuditCommand() *cli.Command {
	return &cli.Command{
		Name:  "audit",
		Usage: "Run a live cart reconciliation audit against a storefront",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "url",
				Usage: "storefront base URL (overrides STORE_BASE_URL)",
			},
			&cli.StringFlag{
				Name:  "product",
				Usage: "search term for the probe product added to the cart",
				Value: "Shoes",
			},
			&cli.BoolFlag{
				Name:  "record",
				Usage: "persist the audit result to the configured PostgreSQL database",
			},
		},
		Action: func(c *cli.Context) error {
			storeConfig, err := config.LoadStoreConfig(func(key string) string {
				if key == "STORE_BASE_URL" && c.String("url") != "" {
					return c.String("url")
				}
				return os.Getenv(key)
			})
			if err != nil {
				return err
			}

			deps := internalcli.AuditDependencies{
				Store:       storeConfig,
				ProductTerm: c.String("product"),
			}

			if c.Bool("record") {
				if err := database.Connect(); err != nil {
					return fmt.Errorf("failed to connect to database: %w", err)
				}
				defer database.Close()
				log.Println("Connected to database successfully")

				if err := database.RunMigrations(); err != nil {
					return fmt.Errorf("failed to run database migrations: %w", err)
				}

				deps.Repo = repository.NewAuditRepository()
			}

			return internalcli.RunAudit(deps)
		},
	}
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	app := &cli.App{
		Name:    "storecheck",
		Usage:   "Storefront reconciliation audit tool",
		Version: version,
		Commands: []*cli.Command{
			AuditCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
