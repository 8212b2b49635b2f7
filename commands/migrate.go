package commands

import (
	"fmt"

	"leasedesk/config"

	"github.com/spf13/cobra"
)

func MigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Tạo/cập nhật bảng cho mọi model",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			db, err := config.ConnectDB(cfg)
			if err != nil {
				return err
			}
			if err := config.Migrate(db); err != nil {
				return fmt.Errorf("failed to migrate: %v", err)
			}
			fmt.Println("Migration completed.")
			return nil
		},
	}
}
