package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func SeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Sinh dữ liệu mẫu (không chạy khi ENV=prod)",
		RunE: func(cmd *cobra.Command, args []string) error {
			reset, _ := cmd.Flags().GetBool("reset")

			a, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			if reset {
				if err := a.registry.Seed.Reset(cmd.Context()); err != nil {
					return err
				}
				fmt.Println("Đã xóa dữ liệu nghiệp vụ.")
			}
			result, err := a.registry.Seed.Seed(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("Đã tạo %d tòa nhà, %d khách hàng, %d hợp đồng.\n", result.Buildings, result.Customers, result.Contracts)
			return nil
		},
	}
	cmd.Flags().Bool("reset", false, "Xóa dữ liệu cũ trước khi seed")
	return cmd
}
