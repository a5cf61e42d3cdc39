package api

import (
	// 外部依赖
	cobra "github.com/spf13/cobra"

	// 内部引用
	db "github.com/chemstack/labstock/pkg/middleware/db"
	migrate "github.com/chemstack/labstock/pkg/repo/migrate"
)

func NewMigrate() *cobra.Command {
	return &cobra.Command{
		Use:          "migrate",
		Long:         "Create or update the database schema and seed the bootstrap admin",
		SilenceUsage: true,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			initDB(cmd.Context())
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := migrate.Table(cmd.Root().Context()); err != nil {
				return err
			}
			return migrate.EnsureAdmin(cmd.Root().Context())
		},
		PostRunE: func(cmd *cobra.Command, _ []string) error {
			db.CloseDB(cmd.Context())
			return nil
		},
	}
}
