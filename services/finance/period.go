// Package finance tính giá thuê hiệu lực, tổng hợp doanh thu và phân nhóm
// hợp đồng sắp hết hạn. Mọi hàm đều thuần, không truy cập DB.
package finance

import (
	"leasedesk/models"
	"leasedesk/types"
)

// Window là khoảng ngày đóng [Start, End]
type Window struct {
	Start types.Date
	End   types.Date
}

// PointWindow là khoảng một ngày [d, d]
func PointWindow(d types.Date) Window {
	return Window{Start: d, End: d}
}

// Contains kiểm tra d nằm trong w (tính cả hai đầu)
func (w Window) Contains(d types.Date) bool {
	return !d.Before(w.Start) && !d.After(w.End)
}

// Overlaps kiểm tra hai khoảng giao nhau (tính cả hai đầu). Đối xứng.
func Overlaps(a, b Window) bool {
	return !a.Start.After(b.End) && !a.End.Before(b.Start)
}

func periodWindow(p models.RentPeriod) Window {
	return Window{Start: p.StartDate, End: p.EndDate}
}

// PeriodPolicy chọn tối đa một bậc giá cho một mặt bằng trong khoảng w
type PeriodPolicy func(periods []models.RentPeriod, w Window) (models.RentPeriod, bool)

// FirstContaining chọn bậc giá đầu tiên (theo thứ tự danh sách) chứa ngày w.Start.
// Không có bậc giá nào chứa ngày đó thì trả về false, không lấy bậc gần nhất.
func FirstContaining(periods []models.RentPeriod, w Window) (models.RentPeriod, bool) {
	for _, p := range periods {
		if periodWindow(p).Contains(w.Start) {
			return p, true
		}
	}
	return models.RentPeriod{}, false
}

// FirstOverlapping chọn bậc giá đầu tiên giao với w
func FirstOverlapping(periods []models.RentPeriod, w Window) (models.RentPeriod, bool) {
	for _, p := range periods {
		if Overlaps(periodWindow(p), w) {
			return p, true
		}
	}
	return models.RentPeriod{}, false
}

// ResolveEffectivePeriod trả về bậc giá hiệu lực tại ngày d
func ResolveEffectivePeriod(periods []models.RentPeriod, d types.Date) (models.RentPeriod, bool) {
	return FirstContaining(periods, PointWindow(d))
}

// ContractWindow là thời hạn của hợp đồng
func ContractWindow(c models.Contract) Window {
	return Window{Start: c.StartDate, End: c.EndDate}
}
