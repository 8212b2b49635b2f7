package services

import (
	"context"
	"fmt"
	"sort"

	"leasedesk/dto"
	"leasedesk/errors"
	"leasedesk/models"
	"leasedesk/services/finance"
	"leasedesk/types"
	"leasedesk/utils"
)

const (
	SeverityCritical = "critical"
	SeverityWarning  = "warning"
	SeverityInfo     = "info"

	// khoảng báo cáo doanh thu tối đa
	maxRevenueYears = 10
)

// StatsService tổng hợp số liệu từ danh sách đã cache, không truy vấn riêng
type StatsService struct {
	buildings *BuildingService
	customers *CustomerService
	contracts *ContractService
	clock     utils.Clock
}

type StatsServiceOptions struct {
	Buildings *BuildingService
	Customers *CustomerService
	Contracts *ContractService
	Clock     utils.Clock
}

func NewStatsService(opts StatsServiceOptions) *StatsService {
	return &StatsService{
		buildings: opts.Buildings,
		customers: opts.Customers,
		contracts: opts.Contracts,
		clock:     opts.Clock,
	}
}

func (s *StatsService) Today() types.Date {
	return utils.Today(s.clock)
}

func (s *StatsService) Dashboard(ctx context.Context) (dto.DashboardStats, error) {
	var stats dto.DashboardStats
	buildings, err := s.buildings.List(ctx)
	if err != nil {
		return stats, err
	}
	customers, err := s.customers.List(ctx)
	if err != nil {
		return stats, err
	}
	contracts, err := s.contracts.ListAll(ctx)
	if err != nil {
		return stats, err
	}

	today := s.Today()
	current := finance.Current(contracts, today)
	expiry := finance.BucketExpiries(today, contracts)

	stats.TotalBuildings = len(buildings)
	stats.TotalCustomers = len(customers)
	stats.TotalContracts = len(contracts)
	for _, c := range contracts {
		if finance.IsActive(c) {
			stats.ActiveContracts++
		}
	}
	stats.ExpiringIn30 = expiry.Within30
	stats.ExpiringIn60 = expiry.Within60
	stats.ExpiringIn90 = expiry.Within90
	stats.CurrentMonthlyRent = current.TotalRent
	stats.CurrentServiceFee = current.TotalServiceFee
	stats.UnpricedUnits = current.UnpricedUnits

	for _, area := range finance.LeasedAreaByBuilding(contracts, today) {
		stats.LeasedArea += area
	}
	for _, b := range buildings {
		stats.RentableArea += b.RentableArea
	}
	stats.OccupancyRate = finance.OccupancyRate(stats.LeasedArea, stats.RentableArea)
	return stats, nil
}

// Revenue tổng hợp doanh thu trên [from, to] và chia theo từng tháng
func (s *StatsService) Revenue(ctx context.Context, from, to types.Date) (dto.RevenueStats, error) {
	if from.IsZero() || to.IsZero() {
		today := s.Today()
		from = types.NewDate(today.Year(), today.Month(), 1)
		to = types.NewDate(today.Year(), today.Month()+1, 1).AddDays(-1)
	}
	if to.Before(from) {
		return dto.RevenueStats{}, errors.NewAppError(errors.ErrCodeInvalidPeriod, "Ngày kết thúc phải sau ngày bắt đầu", nil)
	}
	if to.Time.After(from.AddDate(maxRevenueYears, 0, 0)) {
		return dto.RevenueStats{}, errors.NewAppError(errors.ErrCodeInvalidPeriod,
			fmt.Sprintf("Khoảng thời gian báo cáo không được vượt quá %d năm", maxRevenueYears), nil)
	}
	contracts, err := s.contracts.ListAll(ctx)
	if err != nil {
		return dto.RevenueStats{}, err
	}

	total := finance.Aggregate(contracts, finance.Window{Start: from, End: to})
	stats := dto.RevenueStats{
		From:            from,
		To:              to,
		TotalRent:       total.TotalRent,
		TotalServiceFee: total.TotalServiceFee,
		TotalArea:       total.TotalArea,
		ContractCount:   total.ContractCount,
		UnpricedUnits:   total.UnpricedUnits,
		Monthly:         MonthlyRevenue(contracts, from, to),
	}
	return stats, nil
}

// MonthlyRevenue chia [from, to] thành từng tháng dương lịch và tổng hợp từng tháng
func MonthlyRevenue(contracts []models.Contract, from, to types.Date) []dto.MonthRevenue {
	months := []dto.MonthRevenue{}
	start := from
	for !start.After(to) {
		monthEnd := types.NewDate(start.Year(), start.Month()+1, 1).AddDays(-1)
		if monthEnd.After(to) {
			monthEnd = to
		}
		t := finance.Aggregate(contracts, finance.Window{Start: start, End: monthEnd})
		months = append(months, dto.MonthRevenue{
			Month:         start.Format("2006-01"),
			Rent:          t.TotalRent,
			ServiceFee:    t.TotalServiceFee,
			ContractCount: t.ContractCount,
		})
		start = monthEnd.AddDays(1)
	}
	return months
}

func (s *StatsService) Alerts(ctx context.Context) ([]dto.Alert, error) {
	contracts, err := s.contracts.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return BuildAlerts(s.Today(), contracts), nil
}

// BuildAlerts tạo cảnh báo cho hợp đồng active còn <= 90 ngày, sắp xếp theo số ngày còn lại.
// ID cảnh báo gắn với ngày kết thúc nên giữ nguyên qua các ngày cho đến khi hợp đồng được gia hạn.
func BuildAlerts(today types.Date, contracts []models.Contract) []dto.Alert {
	alerts := []dto.Alert{}
	for _, c := range contracts {
		bucket, days := finance.BucketContract(today, c)
		var severity string
		switch bucket {
		case finance.Bucket30:
			severity = SeverityCritical
		case finance.Bucket60:
			severity = SeverityWarning
		case finance.Bucket90:
			severity = SeverityInfo
		default:
			continue
		}
		a := dto.Alert{
			ID:         fmt.Sprintf("expiry-%d-%s", c.ID, c.EndDate),
			ContractID: c.ID,
			ContractNo: c.ContractNo,
			EndDate:    c.EndDate,
			DaysLeft:   days,
			Severity:   severity,
		}
		if c.Customer != nil {
			a.CustomerName = c.Customer.Name
		}
		if days == 0 {
			a.Message = fmt.Sprintf("Hợp đồng %s hết hạn hôm nay", c.ContractNo)
		} else {
			a.Message = fmt.Sprintf("Hợp đồng %s còn %d ngày đến hạn", c.ContractNo, days)
		}
		alerts = append(alerts, a)
	}
	sort.SliceStable(alerts, func(i, j int) bool {
		if alerts[i].DaysLeft != alerts[j].DaysLeft {
			return alerts[i].DaysLeft < alerts[j].DaysLeft
		}
		return alerts[i].ContractID < alerts[j].ContractID
	})
	return alerts
}

// Buildings trả về tòa nhà kèm diện tích đã thuê và tỉ lệ lấp đầy
func (s *StatsService) Buildings(ctx context.Context) ([]dto.BuildingResponse, error) {
	buildings, err := s.buildings.List(ctx)
	if err != nil {
		return nil, err
	}
	contracts, err := s.contracts.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return DecorateBuildings(buildings, contracts, s.Today()), nil
}

func DecorateBuildings(buildings []models.Building, contracts []models.Contract, today types.Date) []dto.BuildingResponse {
	leased := finance.LeasedAreaByBuilding(contracts, today)
	out := make([]dto.BuildingResponse, 0, len(buildings))
	for _, b := range buildings {
		rented := leased[b.ID]
		out = append(out, dto.NewBuildingResponse(b, rented, finance.OccupancyRate(rented, b.RentableArea)))
	}
	return out
}

func (s *StatsService) BuildingStats(ctx context.Context) (dto.BuildingStats, error) {
	items, err := s.Buildings(ctx)
	if err != nil {
		return dto.BuildingStats{}, err
	}
	stats := dto.BuildingStats{Count: len(items), Buildings: items}
	for _, b := range items {
		stats.TotalRentableArea += b.RentableArea
		stats.TotalRentedArea += b.RentedArea
	}
	stats.OccupancyRate = finance.OccupancyRate(stats.TotalRentedArea, stats.TotalRentableArea)
	return stats, nil
}

// UrgentAlerts là các cảnh báo mức critical, dùng cho thông báo hàng ngày
func (s *StatsService) UrgentAlerts(ctx context.Context) ([]dto.Alert, error) {
	alerts, err := s.Alerts(ctx)
	if err != nil {
		return nil, err
	}
	urgent := alerts[:0]
	for _, a := range alerts {
		if a.Severity == SeverityCritical {
			urgent = append(urgent, a)
		}
	}
	return urgent, nil
}
