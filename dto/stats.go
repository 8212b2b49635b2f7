package dto

import "leasedesk/types"

type DashboardStats struct {
	TotalBuildings     int     `json:"totalBuildings"`
	TotalCustomers     int     `json:"totalCustomers"`
	TotalContracts     int     `json:"totalContracts"`
	ActiveContracts    int     `json:"activeContracts"`
	ExpiringIn30       int     `json:"expiringIn30"`
	ExpiringIn60       int     `json:"expiringIn60"`
	ExpiringIn90       int     `json:"expiringIn90"`
	CurrentMonthlyRent float64 `json:"currentMonthlyRent"`
	CurrentServiceFee  float64 `json:"currentServiceFee"`
	LeasedArea         float64 `json:"leasedArea"`
	RentableArea       float64 `json:"rentableArea"`
	OccupancyRate      float64 `json:"occupancyRate"`
	UnpricedUnits      int     `json:"unpricedUnits"`
}

type MonthRevenue struct {
	Month         string  `json:"month"`
	Rent          float64 `json:"rent"`
	ServiceFee    float64 `json:"serviceFee"`
	ContractCount int     `json:"contractCount"`
}

type RevenueStats struct {
	From            types.Date     `json:"from"`
	To              types.Date     `json:"to"`
	TotalRent       float64        `json:"totalRent"`
	TotalServiceFee float64        `json:"totalServiceFee"`
	TotalArea       float64        `json:"totalArea"`
	ContractCount   int            `json:"contractCount"`
	UnpricedUnits   int            `json:"unpricedUnits"`
	Monthly         []MonthRevenue `json:"monthly"`
}

// Alert được tổng hợp từ hợp đồng sắp hết hạn, không lưu DB
type Alert struct {
	ID           string     `json:"id" validate:"required"`
	ContractID   uint       `json:"contractId" validate:"required"`
	ContractNo   string     `json:"contractNo"`
	CustomerName string     `json:"customerName"`
	EndDate      types.Date `json:"endDate"`
	DaysLeft     int        `json:"daysLeft"`
	Severity     string     `json:"severity" validate:"required"`
	Message      string     `json:"message"`
}
