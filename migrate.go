package main

import (
	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := openDatabase()
			if err != nil {
				return err
			}
			closeDatabase(db)
			return nil
		},
	}
}
