package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func RootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "leasedesk",
		Short:         "Quản lý tòa nhà, khách hàng và hợp đồng thuê",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(ServeCmd(), MigrateCmd(), SeedCmd(), ReportCmd())
	return root
}

// Execute chạy CLI. Không có subcommand thì mặc định là serve.
func Execute() {
	root := RootCmd()
	if len(os.Args) == 1 {
		root.SetArgs([]string{"serve"})
	}
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
