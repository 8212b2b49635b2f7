package models

import "time"

type Customer struct {
	ID           uint      `json:"id" gorm:"primaryKey" validate:"required"`
	Name         string    `json:"name" gorm:"not null" validate:"required"`
	TaxID        string    `json:"taxId" gorm:"index;size:32"`
	Type         string    `json:"type" gorm:"size:16;default:corporate"` // corporate | individual
	ContactName  string    `json:"contactName"`
	ContactPhone string    `json:"contactPhone"`
	ContactEmail string    `json:"contactEmail"`
	Address      string    `json:"address"`
	Notes        string    `json:"notes"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}
