package commands

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"leasedesk/client"
	"leasedesk/config"
	"leasedesk/constants"
	"leasedesk/dto"
	"leasedesk/services/finance"
	"leasedesk/types"

	"github.com/spf13/cobra"
)

func ReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "In báo cáo từ API đang chạy",
	}
	cmd.PersistentFlags().String("api", "", "Địa chỉ API (mặc định http://localhost:$PORT/api/v1)")
	cmd.PersistentFlags().String("email", "", "Email đăng nhập (mặc định ADMIN_EMAIL)")
	cmd.PersistentFlags().String("password", "", "Mật khẩu (mặc định ADMIN_PASSWORD)")
	cmd.AddCommand(reportExpiryCmd(), reportRevenueCmd())
	return cmd
}

func reportClient(cmd *cobra.Command) (*client.Client, error) {
	cfg := config.Load()
	api, _ := cmd.Flags().GetString("api")
	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")
	if api == "" {
		api = "http://localhost:" + cfg.Port + "/api/v1"
	}
	if email == "" {
		email = cfg.AdminEmail
	}
	if password == "" {
		password = cfg.AdminPassword
	}
	c := client.New(client.Options{BaseURL: api})
	if _, err := c.Login(cmd.Context(), email, password); err != nil {
		return nil, fmt.Errorf("đăng nhập thất bại: %w", err)
	}
	return c, nil
}

func reportExpiryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "expiry",
		Short: "Số hợp đồng active theo số ngày còn lại (<=30, 31-60, 61-90, >90)",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := reportClient(cmd)
			if err != nil {
				return err
			}
			defer c.Logout(context.Background())

			items, err := allActiveContracts(cmd.Context(), c)
			if err != nil {
				return err
			}
			return printExpiry(cmd.OutOrStdout(), items)
		},
	}
}

func allActiveContracts(ctx context.Context, c *client.Client) ([]dto.ContractListItem, error) {
	opts := client.ListOptions{
		Sort:    []string{"daysLeft"},
		Limit:   constants.MaxPageSize,
		Filters: map[string][]string{"status": {constants.ContractStatusActive}},
	}
	var all []dto.ContractListItem
	for {
		page, err := c.ListContracts(ctx, opts)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Items...)
		if opts.Page+1 >= page.Pagination.TotalPages {
			return all, nil
		}
		opts.Page++
	}
}

func printExpiry(out io.Writer, items []dto.ContractListItem) error {
	counts := map[finance.Bucket]int{}
	var urgent []dto.ContractListItem
	for _, it := range items {
		b := finance.BucketFor(it.DaysLeft)
		counts[b]++
		if b == finance.Bucket30 {
			urgent = append(urgent, it)
		}
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NHÓM\tSỐ HỢP ĐỒNG")
	fmt.Fprintf(w, "<= 30 ngày\t%d\n", counts[finance.Bucket30])
	fmt.Fprintf(w, "31-60 ngày\t%d\n", counts[finance.Bucket60])
	fmt.Fprintf(w, "61-90 ngày\t%d\n", counts[finance.Bucket90])
	fmt.Fprintf(w, "> 90 ngày\t%d\n", counts[finance.BucketLater])
	if len(urgent) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "SỐ HĐ\tKHÁCH HÀNG\tNGÀY HẾT HẠN\tCÒN (NGÀY)")
		for _, it := range urgent {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", it.ContractNo, it.CustomerName, it.EndDate, it.DaysLeft)
		}
	}
	return w.Flush()
}

func reportRevenueCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "revenue",
		Short: "Doanh thu theo tháng trong khoảng --from --to",
		RunE: func(cmd *cobra.Command, args []string) error {
			fromStr, _ := cmd.Flags().GetString("from")
			toStr, _ := cmd.Flags().GetString("to")
			var from, to types.Date
			var err error
			if fromStr != "" {
				if from, err = types.ParseDate(fromStr); err != nil {
					return err
				}
			}
			if toStr != "" {
				if to, err = types.ParseDate(toStr); err != nil {
					return err
				}
			}

			c, err := reportClient(cmd)
			if err != nil {
				return err
			}
			defer c.Logout(context.Background())

			stats, err := c.Revenue(cmd.Context(), from, to)
			if err != nil {
				return err
			}
			return printRevenue(cmd.OutOrStdout(), stats)
		},
	}
	cmd.Flags().String("from", "", "YYYY-MM-DD")
	cmd.Flags().String("to", "", "YYYY-MM-DD")
	return cmd
}

func printRevenue(out io.Writer, stats dto.RevenueStats) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "THÁNG\tTIỀN THUÊ\tPHÍ DỊCH VỤ\tHỢP ĐỒNG\t")
	for _, m := range stats.Monthly {
		fmt.Fprintf(w, "%s\t%.0f\t%.0f\t%d\t\n", m.Month, m.Rent, m.ServiceFee, m.ContractCount)
	}
	fmt.Fprintf(w, "%s → %s\t%.0f\t%.0f\t%d\t\n", stats.From, stats.To, stats.TotalRent, stats.TotalServiceFee, stats.ContractCount)
	if stats.UnpricedUnits > 0 {
		fmt.Fprintf(w, "Mặt bằng chưa có bậc giá\t%d\t\t\t\n", stats.UnpricedUnits)
	}
	return w.Flush()
}

