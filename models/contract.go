package models

import (
	"time"

	"leasedesk/types"
)

type Contract struct {
	ID            uint               `json:"id" gorm:"primaryKey" validate:"required"`
	ContractNo    string             `json:"contractNo" gorm:"uniqueIndex;size:64;not null" validate:"required"`
	CustomerID    uint               `json:"customerId" gorm:"index;not null" validate:"required"`
	Customer      *Customer          `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	StartDate     types.Date         `json:"startDate"`
	EndDate       types.Date         `json:"endDate"`
	DepositAmount float64            `json:"depositAmount"`
	Status        string             `json:"status" gorm:"size:16;index;default:draft" validate:"required,contractstatus"`
	Notes         string             `json:"notes"`
	Units         []ContractUnit     `json:"units" gorm:"foreignKey:ContractID"`
	Documents     []ContractDocument `json:"documents" gorm:"foreignKey:ContractID"`
	CreatedAt     time.Time          `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time          `gorm:"autoUpdateTime" json:"updatedAt"`
}

// ContractUnit là một mặt bằng thuê trong hợp đồng.
// BuildingID trỏ tới tòa nhà đã đăng ký, DirectBuildingID dùng khi nhập tay.
type ContractUnit struct {
	ID               uint         `json:"id" gorm:"primaryKey"`
	ContractID       uint         `json:"contractId" gorm:"index;not null"`
	BuildingID       *uint        `json:"buildingId,omitempty" gorm:"index"`
	DirectBuildingID *uint        `json:"directBuildingId,omitempty"`
	Floor            string       `json:"floor"`
	AreaSqm          float64      `json:"areaSqm"`
	Periods          []RentPeriod `json:"periods" gorm:"foreignKey:UnitID"`
}

// ResolvedBuildingID ưu tiên BuildingID
func (u ContractUnit) ResolvedBuildingID() (uint, bool) {
	if u.BuildingID != nil && *u.BuildingID != 0 {
		return *u.BuildingID, true
	}
	if u.DirectBuildingID != nil && *u.DirectBuildingID != 0 {
		return *u.DirectBuildingID, true
	}
	return 0, false
}

// RentPeriod là một khoảng giá thuê (bậc giá) của mặt bằng
type RentPeriod struct {
	ID         uint       `json:"id" gorm:"primaryKey"`
	UnitID     uint       `json:"unitId" gorm:"index;not null"`
	StartDate  types.Date `json:"startDate"`
	EndDate    types.Date `json:"endDate"`
	RentAmount float64    `json:"rentAmount"`
	ServiceFee float64    `json:"serviceFee"`
}

type ContractDocument struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	ContractID uint      `json:"contractId" gorm:"index;not null"`
	FileName   string    `json:"fileName"`
	URL        string    `json:"url"`
	PublicID   string    `json:"publicId"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"createdAt"`
}
