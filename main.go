// foodiego serves the FoodieGo storefront API.
//
// Usage:
//
//	foodiego serve     # migrate and start the HTTP server
//	foodiego migrate   # run the schema migration only
//	foodiego seed      # reset the database to the demo data set
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/yeremiapane/foodiego/config"
	"github.com/yeremiapane/foodiego/database"
	"github.com/yeremiapane/foodiego/utils"
	"gorm.io/gorm"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "foodiego",
		Short: "FoodieGo storefront backend",
		Long: `foodiego runs the FoodieGo food-ordering API: menu browsing,
order placement, the admin dashboard and the payment bridge.

Configuration is read from the environment and an optional .env file.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(seedCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// openDatabase loads the configuration, connects and migrates the schema.
func openDatabase() (config.Config, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, err
	}
	utils.SetLevel(cfg.LogLevel)

	db, err := config.InitDB(cfg)
	if err != nil {
		return cfg, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		return cfg, nil, fmt.Errorf("failed to migrate: %w", err)
	}
	return cfg, db, nil
}

func closeDatabase(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}
