package finance

import (
	"leasedesk/constants"
	"leasedesk/models"
	"leasedesk/types"
)

// Totals là kết quả tổng hợp trên các hợp đồng đang hiệu lực
type Totals struct {
	TotalRent       float64 `json:"totalRent"`
	TotalServiceFee float64 `json:"totalServiceFee"`
	TotalArea       float64 `json:"totalArea"`
	ContractCount   int     `json:"contractCount"`
	// UnpricedUnits đếm mặt bằng không có bậc giá nào khớp khoảng thời gian
	UnpricedUnits int `json:"unpricedUnits"`
}

// IsActive chỉ hợp đồng status == active mới được tính
func IsActive(c models.Contract) bool {
	return c.Status == constants.ContractStatusActive
}

// Aggregate cộng tiền thuê, phí dịch vụ và diện tích của các hợp đồng active
// có thời hạn giao với w. Mỗi mặt bằng lấy tối đa một bậc giá giao với w.
func Aggregate(contracts []models.Contract, w Window) Totals {
	return AggregateWith(contracts, w, FirstOverlapping)
}

// Current tổng hợp tại đúng ngày today
func Current(contracts []models.Contract, today types.Date) Totals {
	return AggregateWith(contracts, PointWindow(today), FirstContaining)
}

// AggregateWith giống Aggregate nhưng cho phép chọn chính sách bậc giá
func AggregateWith(contracts []models.Contract, w Window, policy PeriodPolicy) Totals {
	var t Totals
	for _, c := range contracts {
		if !IsActive(c) || !Overlaps(ContractWindow(c), w) {
			continue
		}
		t.ContractCount++
		for _, u := range c.Units {
			t.TotalArea += u.AreaSqm
			p, ok := policy(u.Periods, w)
			if !ok {
				t.UnpricedUnits++
				continue
			}
			t.TotalRent += p.RentAmount
			t.TotalServiceFee += p.ServiceFee
		}
	}
	return t
}

// CurrentRent là tiền thuê và phí dịch vụ hiệu lực của một hợp đồng tại today,
// không xét trạng thái hợp đồng.
func CurrentRent(c models.Contract, today types.Date) (rent, fee float64) {
	for _, u := range c.Units {
		if p, ok := ResolveEffectivePeriod(u.Periods, today); ok {
			rent += p.RentAmount
			fee += p.ServiceFee
		}
	}
	return rent, fee
}

// OccupancyRate = diện tích đã thuê / diện tích cho thuê, tính theo %
func OccupancyRate(leasedArea, rentableArea float64) float64 {
	if rentableArea <= 0 {
		return 0
	}
	return leasedArea / rentableArea * 100
}

// LeasedAreaByBuilding cộng diện tích mặt bằng của các hợp đồng active
// có hiệu lực tại today, theo tòa nhà.
func LeasedAreaByBuilding(contracts []models.Contract, today types.Date) map[uint]float64 {
	leased := make(map[uint]float64)
	for _, c := range contracts {
		if !IsActive(c) || !ContractWindow(c).Contains(today) {
			continue
		}
		for _, u := range c.Units {
			if id, ok := u.ResolvedBuildingID(); ok {
				leased[id] += u.AreaSqm
			}
		}
	}
	return leased
}
