package dto

import (
	"time"

	"leasedesk/models"
)

type CreateBuildingRequest struct {
	Name         string  `json:"name" binding:"required" validate:"required"`
	Code         string  `json:"code" binding:"required,max=32" validate:"required,max=32"`
	Address      string  `json:"address"`
	TotalFloors  int     `json:"totalFloors" binding:"gte=0" validate:"gte=0"`
	RentableArea float64 `json:"rentableArea" binding:"gte=0" validate:"gte=0"`
	Notes        string  `json:"notes"`
}

type UpdateBuildingRequest struct {
	Name         *string  `json:"name" binding:"omitempty,min=1"`
	Code         *string  `json:"code" binding:"omitempty,min=1,max=32"`
	Address      *string  `json:"address"`
	TotalFloors  *int     `json:"totalFloors" binding:"omitempty,gte=0"`
	RentableArea *float64 `json:"rentableArea" binding:"omitempty,gte=0"`
	Notes        *string  `json:"notes"`
}

type BuildingResponse struct {
	ID            uint      `json:"id" validate:"required"`
	Name          string    `json:"name" validate:"required"`
	Code          string    `json:"code" validate:"required"`
	Address       string    `json:"address"`
	TotalFloors   int       `json:"totalFloors"`
	RentableArea  float64   `json:"rentableArea"`
	RentedArea    float64   `json:"rentedArea"`
	OccupancyRate float64   `json:"occupancyRate"`
	Notes         string    `json:"notes"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func NewBuildingResponse(b models.Building, rentedArea, occupancy float64) BuildingResponse {
	return BuildingResponse{
		ID:            b.ID,
		Name:          b.Name,
		Code:          b.Code,
		Address:       b.Address,
		TotalFloors:   b.TotalFloors,
		RentableArea:  b.RentableArea,
		RentedArea:    rentedArea,
		OccupancyRate: occupancy,
		Notes:         b.Notes,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

type BuildingStats struct {
	Count             int                `json:"count"`
	TotalRentableArea float64            `json:"totalRentableArea"`
	TotalRentedArea   float64            `json:"totalRentedArea"`
	OccupancyRate     float64            `json:"occupancyRate"`
	Buildings         []BuildingResponse `json:"buildings"`
}
