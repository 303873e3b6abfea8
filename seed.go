package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yeremiapane/foodiego/database"
	"github.com/yeremiapane/foodiego/utils"
)

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Replace all data with the demo data set",
		Long: `Delete every user, category, menu item and order, then insert the
demo data set.

Demo accounts:
  admin@foodiego.com / admin123 (ADMIN)
  user@foodiego.com  / user123  (USER)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := openDatabase()
			if err != nil {
				return err
			}
			defer closeDatabase(db)

			if err := database.Seed(db); err != nil {
				return fmt.Errorf("seed: %w", err)
			}
			utils.InfoLogger.Println("Database seeded.")
			return nil
		},
	}
}
