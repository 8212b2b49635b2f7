package finance

import (
	"sort"

	"leasedesk/constants"
	"leasedesk/models"
	"leasedesk/types"
)

// Bucket là nhóm số ngày còn lại đến khi hết hạn
type Bucket int

const (
	BucketNone Bucket = iota // đã hết hạn hoặc không active
	Bucket30                 // 0..30
	Bucket60                 // 31..60
	Bucket90                 // 61..90
	BucketLater              // > 90
)

func (b Bucket) String() string {
	switch b {
	case Bucket30:
		return "30"
	case Bucket60:
		return "60"
	case Bucket90:
		return "90"
	case BucketLater:
		return "later"
	default:
		return "none"
	}
}

// ExpiringContract là hợp đồng kèm số ngày còn lại
type ExpiringContract struct {
	Contract models.Contract `json:"contract"`
	DaysLeft int             `json:"daysLeft"`
}

// ExpiryReport đếm hợp đồng theo nhóm ngày còn lại
type ExpiryReport struct {
	Within30 int                `json:"within30"`
	Within60 int                `json:"within60"`
	Within90 int                `json:"within90"`
	Later    int                `json:"later"`
	Urgent   []ExpiringContract `json:"urgent"`
}

// DaysUntil là số ngày từ today đến end
func DaysUntil(today, end types.Date) int {
	return end.DaysSince(today)
}

// BucketFor xếp số ngày còn lại vào nhóm. Cận trên tính cả (30 ngày thuộc nhóm 30).
func BucketFor(daysLeft int) Bucket {
	switch {
	case daysLeft < 0:
		return BucketNone
	case daysLeft <= constants.ExpiryBucket30:
		return Bucket30
	case daysLeft <= constants.ExpiryBucket60:
		return Bucket60
	case daysLeft <= constants.ExpiryBucket90:
		return Bucket90
	default:
		return BucketLater
	}
}

// BucketContract trả về nhóm và số ngày còn lại của c
func BucketContract(today types.Date, c models.Contract) (Bucket, int) {
	if !IsActive(c) {
		return BucketNone, 0
	}
	days := DaysUntil(today, c.EndDate)
	return BucketFor(days), days
}

// BucketExpiries phân nhóm các hợp đồng active theo số ngày còn lại.
// Urgent được sắp theo số ngày còn lại tăng dần.
func BucketExpiries(today types.Date, contracts []models.Contract) ExpiryReport {
	report := ExpiryReport{Urgent: []ExpiringContract{}}
	for _, c := range contracts {
		bucket, days := BucketContract(today, c)
		switch bucket {
		case Bucket30:
			report.Within30++
			report.Urgent = append(report.Urgent, ExpiringContract{Contract: c, DaysLeft: days})
		case Bucket60:
			report.Within60++
		case Bucket90:
			report.Within90++
		case BucketLater:
			report.Later++
		}
	}
	sort.SliceStable(report.Urgent, func(i, j int) bool {
		return report.Urgent[i].DaysLeft < report.Urgent[j].DaysLeft
	})
	return report
}
