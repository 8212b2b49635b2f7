package models

import "time"

type AuditLog struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Action     string    `json:"action" gorm:"size:16;index"`
	EntityType string    `json:"entityType" gorm:"size:32"`
	EntityID   uint      `json:"entityId"`
	UserID     *uint     `json:"userId,omitempty"`
	Summary    string    `json:"summary"`
	CreatedAt  time.Time `gorm:"autoCreateTime;index" json:"createdAt"`
}
