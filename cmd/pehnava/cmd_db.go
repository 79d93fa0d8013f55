package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pehnava/pehnava/config"
	"github.com/pehnava/pehnava/database/indexes"
	"github.com/pehnava/pehnava/database/seeders"
	"github.com/pehnava/pehnava/pkg/database"
)

// bootDB loads config and opens the Mongo connection.
func bootDB() error {
	if err := config.Load(); err != nil {
		return err
	}
	return database.Connect()
}

// pehnava db:index — ensure all Mongo indexes exist.
var dbIndexCmd = &cobra.Command{
	Use:   "db:index",
	Short: "Ensure the Mongo indexes the app depends on",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()
		defer database.Disconnect(ctx) //nolint:errcheck

		fmt.Println("Ensuring indexes…")
		return indexes.Ensure(ctx, database.DB())
	},
}

// pehnava db:seed — run all registered seeders.
var dbSeedCmd = &cobra.Command{
	Use:   "db:seed",
	Short: "Run the registered database seeders",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
		defer cancel()
		defer database.Disconnect(ctx) //nolint:errcheck

		return seeders.Run(ctx, database.DB())
	},
}
