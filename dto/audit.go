package dto

type AuditQuery struct {
	Action string `form:"action" binding:"omitempty,auditaction"`
	Limit  int    `form:"limit" binding:"omitempty,gt=0"`
}

type SeedResult struct {
	Buildings int `json:"buildings"`
	Customers int `json:"customers"`
	Contracts int `json:"contracts"`
}

type UploadResult struct {
	FileName string `json:"fileName"`
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}
