package dto

import (
	"time"

	"leasedesk/models"
	"leasedesk/types"
)

type RentPeriodRequest struct {
	StartDate  types.Date `json:"startDate"`
	EndDate    types.Date `json:"endDate"`
	RentAmount float64    `json:"rentAmount" binding:"gte=0" validate:"gte=0"`
	ServiceFee float64    `json:"serviceFee" binding:"gte=0" validate:"gte=0"`
}

type ContractUnitRequest struct {
	BuildingID       *uint               `json:"buildingId"`
	DirectBuildingID *uint               `json:"directBuildingId"`
	Floor            string              `json:"floor"`
	AreaSqm          float64             `json:"areaSqm" binding:"gt=0" validate:"gt=0"`
	Periods          []RentPeriodRequest `json:"periods" binding:"dive" validate:"dive"`
}

type CreateContractRequest struct {
	ContractNo    string                `json:"contractNo" binding:"required,max=64" validate:"required,max=64"`
	CustomerID    uint                  `json:"customerId" binding:"required" validate:"required"`
	StartDate     types.Date            `json:"startDate"`
	EndDate       types.Date            `json:"endDate"`
	DepositAmount float64               `json:"depositAmount" binding:"gte=0" validate:"gte=0"`
	Status        string                `json:"status" binding:"omitempty,contractstatus" validate:"omitempty,contractstatus"`
	Notes         string                `json:"notes"`
	Units         []ContractUnitRequest `json:"units" binding:"dive" validate:"dive"`
}

type UpdateContractRequest struct {
	ContractNo    *string                `json:"contractNo" binding:"omitempty,min=1,max=64" validate:"omitempty,min=1,max=64"`
	CustomerID    *uint                  `json:"customerId" binding:"omitempty,gt=0" validate:"omitempty,gt=0"`
	StartDate     *types.Date            `json:"startDate"`
	EndDate       *types.Date            `json:"endDate"`
	DepositAmount *float64               `json:"depositAmount" binding:"omitempty,gte=0" validate:"omitempty,gte=0"`
	Status        *string                `json:"status" binding:"omitempty,contractstatus" validate:"omitempty,contractstatus"`
	Notes         *string                `json:"notes"`
	Units         *[]ContractUnitRequest `json:"units" binding:"omitempty,dive" validate:"omitempty,dive"`
}

// ToUnits chuyển request thành model, giữ thứ tự bậc giá theo ngày bắt đầu
func ToUnits(reqs []ContractUnitRequest) []models.ContractUnit {
	units := make([]models.ContractUnit, 0, len(reqs))
	for _, r := range reqs {
		u := models.ContractUnit{
			BuildingID:       r.BuildingID,
			DirectBuildingID: r.DirectBuildingID,
			Floor:            r.Floor,
			AreaSqm:          r.AreaSqm,
		}
		for _, p := range r.Periods {
			u.Periods = append(u.Periods, models.RentPeriod{
				StartDate:  p.StartDate,
				EndDate:    p.EndDate,
				RentAmount: p.RentAmount,
				ServiceFee: p.ServiceFee,
			})
		}
		units = append(units, u)
	}
	return units
}

// ContractResponse là chi tiết hợp đồng kèm số liệu tính tại ngày hiện tại
type ContractResponse struct {
	models.Contract
	CustomerName      string  `json:"customerName"`
	TotalArea         float64 `json:"totalArea"`
	CurrentRent       float64 `json:"currentRent"`
	CurrentServiceFee float64 `json:"currentServiceFee"`
	DaysLeft          int     `json:"daysLeft"`
}

type ContractListItem struct {
	ID                uint       `json:"id" validate:"required"`
	ContractNo        string     `json:"contractNo" validate:"required"`
	CustomerID        uint       `json:"customerId" validate:"required"`
	CustomerName      string     `json:"customerName"`
	StartDate         types.Date `json:"startDate"`
	EndDate           types.Date `json:"endDate"`
	Status            string     `json:"status" validate:"required"`
	DepositAmount     float64    `json:"depositAmount"`
	TotalArea         float64    `json:"totalArea"`
	CurrentRent       float64    `json:"currentRent"`
	CurrentServiceFee float64    `json:"currentServiceFee"`
	DaysLeft          int        `json:"daysLeft"`
	BuildingIDs       []uint     `json:"buildingIds"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}
