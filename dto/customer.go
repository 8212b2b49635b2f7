package dto

import "leasedesk/models"

type CreateCustomerRequest struct {
	Name         string `json:"name" binding:"required" validate:"required"`
	TaxID        string `json:"taxId" binding:"max=32" validate:"max=32"`
	Type         string `json:"type" binding:"omitempty,customertype" validate:"omitempty,customertype"`
	ContactName  string `json:"contactName"`
	ContactPhone string `json:"contactPhone"`
	ContactEmail string `json:"contactEmail" binding:"omitempty,email" validate:"omitempty,email"`
	Address      string `json:"address"`
	Notes        string `json:"notes"`
}

type UpdateCustomerRequest struct {
	Name         *string `json:"name" binding:"omitempty,min=1"`
	TaxID        *string `json:"taxId" binding:"omitempty,max=32"`
	Type         *string `json:"type" binding:"omitempty,customertype"`
	ContactName  *string `json:"contactName"`
	ContactPhone *string `json:"contactPhone"`
	ContactEmail *string `json:"contactEmail" binding:"omitempty,email"`
	Address      *string `json:"address"`
	Notes        *string `json:"notes"`
}

// CustomerCreated kèm danh sách khách hàng có tên gần giống để cảnh báo trùng
type CustomerCreated struct {
	Customer models.Customer   `json:"customer"`
	Similar  []models.Customer `json:"similar"`
}
