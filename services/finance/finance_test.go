package finance

import (
	"testing"

	"leasedesk/constants"
	"leasedesk/models"
	"leasedesk/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) types.Date { return types.MustParseDate(s) }

func period(start, end string, rent, fee float64) models.RentPeriod {
	return models.RentPeriod{StartDate: d(start), EndDate: d(end), RentAmount: rent, ServiceFee: fee}
}

func contract(status, start, end string, units ...models.ContractUnit) models.Contract {
	return models.Contract{Status: status, StartDate: d(start), EndDate: d(end), Units: units}
}

func unit(area float64, periods ...models.RentPeriod) models.ContractUnit {
	return models.ContractUnit{AreaSqm: area, Periods: periods}
}

func TestResolveEffectivePeriod(t *testing.T) {
	periods := []models.RentPeriod{
		period("2024-01-01", "2024-06-30", 100, 10),
		period("2024-07-01", "2024-12-31", 120, 12),
	}

	tests := []struct {
		name   string
		date   string
		found  bool
		amount float64
	}{
		{"first day of first period", "2024-01-01", true, 100},
		{"last day of first period", "2024-06-30", true, 100},
		{"first day of second period", "2024-07-01", true, 120},
		{"last day of schedule", "2024-12-31", true, 120},
		{"before schedule", "2023-12-31", false, 0},
		{"after schedule", "2025-01-01", false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := ResolveEffectivePeriod(periods, d(tt.date))
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.amount, p.RentAmount)
			if ok {
				assert.True(t, Window{p.StartDate, p.EndDate}.Contains(d(tt.date)))
			}
		})
	}
}

func TestResolveEffectivePeriod_GapHasNoFallback(t *testing.T) {
	periods := []models.RentPeriod{
		period("2024-01-01", "2024-03-31", 100, 10),
		period("2024-05-01", "2024-12-31", 120, 12),
	}
	_, ok := ResolveEffectivePeriod(periods, d("2024-04-15"))
	assert.False(t, ok)
}

func TestResolveEffectivePeriod_OverlapPicksFirstInListOrder(t *testing.T) {
	periods := []models.RentPeriod{
		period("2024-01-01", "2024-12-31", 100, 10),
		period("2024-06-01", "2024-06-30", 999, 99),
	}
	p, ok := ResolveEffectivePeriod(periods, d("2024-06-15"))
	require.True(t, ok)
	assert.Equal(t, 100.0, p.RentAmount)
}

func TestOverlaps_Symmetric(t *testing.T) {
	windows := []Window{
		{d("2024-01-01"), d("2024-01-31")},
		{d("2024-01-31"), d("2024-02-15")},
		{d("2024-02-16"), d("2024-03-01")},
		{d("2023-01-01"), d("2025-01-01")},
		PointWindow(d("2024-02-16")),
	}
	for _, a := range windows {
		for _, b := range windows {
			assert.Equal(t, Overlaps(a, b), Overlaps(b, a), "%v %v", a, b)
		}
	}
	assert.True(t, Overlaps(windows[0], windows[1]), "shared boundary day overlaps")
	assert.False(t, Overlaps(windows[1], windows[2]))
}

func TestAggregate_PeriodCoversWindow(t *testing.T) {
	c := contract(constants.ContractStatusActive, "2024-01-01", "2024-12-31",
		unit(120, period("2024-01-01", "2024-12-31", 50000, 5000)))

	totals := Aggregate([]models.Contract{c}, Window{d("2024-06-01"), d("2024-06-30")})

	assert.Equal(t, 50000.0, totals.TotalRent)
	assert.Equal(t, 5000.0, totals.TotalServiceFee)
	assert.Equal(t, 120.0, totals.TotalArea)
	assert.Equal(t, 1, totals.ContractCount)
	assert.Zero(t, totals.UnpricedUnits)
}

func TestAggregate_NonActiveContributesNothing(t *testing.T) {
	statuses := []string{
		constants.ContractStatusDraft,
		constants.ContractStatusExpiring,
		constants.ContractStatusExpired,
		constants.ContractStatusTerminated,
		constants.ContractStatusCancelled,
	}
	w := Window{d("2024-06-01"), d("2024-06-30")}
	for _, status := range statuses {
		c := contract(status, "2024-01-01", "2024-12-31",
			unit(50, period("2024-01-01", "2024-12-31", 1000, 100)))
		assert.Equal(t, Totals{}, Aggregate([]models.Contract{c}, w), status)
		assert.Equal(t, Totals{}, Current([]models.Contract{c}, d("2024-06-15")), status)
	}
}

func TestAggregate_ContractOutsideWindowIgnored(t *testing.T) {
	c := contract(constants.ContractStatusActive, "2023-01-01", "2023-12-31",
		unit(50, period("2023-01-01", "2023-12-31", 1000, 100)))
	totals := Aggregate([]models.Contract{c}, Window{d("2024-01-01"), d("2024-01-31")})
	assert.Equal(t, Totals{}, totals)
}

func TestAggregate_OnePeriodPerUnit(t *testing.T) {
	c := contract(constants.ContractStatusActive, "2024-01-01", "2024-12-31",
		unit(80,
			period("2024-01-01", "2024-06-30", 100, 10),
			period("2024-07-01", "2024-12-31", 200, 20),
		))
	// cửa sổ cắt qua cả hai bậc giá, chỉ bậc đầu được tính
	totals := Aggregate([]models.Contract{c}, Window{d("2024-06-15"), d("2024-07-15")})
	assert.Equal(t, 100.0, totals.TotalRent)
	assert.Equal(t, 10.0, totals.TotalServiceFee)
}

func TestCurrent_GapCountsAsUnpriced(t *testing.T) {
	c := contract(constants.ContractStatusActive, "2024-01-01", "2024-12-31",
		unit(40, period("2024-01-01", "2024-03-31", 100, 10)),
		unit(60, period("2024-01-01", "2024-12-31", 300, 30)),
	)
	totals := Current([]models.Contract{c}, d("2024-05-01"))
	assert.Equal(t, 300.0, totals.TotalRent)
	assert.Equal(t, 100.0, totals.TotalArea)
	assert.Equal(t, 1, totals.UnpricedUnits)
}

func TestCurrentRent(t *testing.T) {
	c := contract(constants.ContractStatusDraft, "2024-01-01", "2024-12-31",
		unit(40, period("2024-01-01", "2024-12-31", 100, 10)),
		unit(60, period("2024-01-01", "2024-12-31", 300, 30)),
	)
	rent, fee := CurrentRent(c, d("2024-02-01"))
	assert.Equal(t, 400.0, rent)
	assert.Equal(t, 40.0, fee)
}

func TestOccupancyRate(t *testing.T) {
	assert.Equal(t, 50.0, OccupancyRate(500, 1000))
	assert.Equal(t, 0.0, OccupancyRate(500, 0))
}

func TestLeasedAreaByBuilding(t *testing.T) {
	b1, b2 := uint(1), uint(2)
	active := contract(constants.ContractStatusActive, "2024-01-01", "2024-12-31",
		models.ContractUnit{BuildingID: &b1, AreaSqm: 100},
		models.ContractUnit{DirectBuildingID: &b2, AreaSqm: 30},
	)
	draft := contract(constants.ContractStatusDraft, "2024-01-01", "2024-12-31",
		models.ContractUnit{BuildingID: &b1, AreaSqm: 500},
	)
	leased := LeasedAreaByBuilding([]models.Contract{active, draft}, d("2024-03-01"))
	assert.Equal(t, map[uint]float64{1: 100, 2: 30}, leased)
}
