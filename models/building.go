package models

import "time"

type Building struct {
	ID           uint      `json:"id" gorm:"primaryKey" validate:"required"`
	Name         string    `json:"name" gorm:"not null" validate:"required"`
	Code         string    `json:"code" gorm:"uniqueIndex;size:32;not null" validate:"required"`
	Address      string    `json:"address"`
	TotalFloors  int       `json:"totalFloors"`
	RentableArea float64   `json:"rentableArea"`
	Notes        string    `json:"notes"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}
