package builders

import (
	"leasedesk/constants"
	"leasedesk/models"
	"leasedesk/types"
)

// ContractBuilder giúp tạo hợp đồng theo từng bước
type ContractBuilder struct {
	contract *models.Contract
}

// NewContractBuilder tạo hợp đồng nháp mới
func NewContractBuilder(contractNo string) *ContractBuilder {
	return &ContractBuilder{
		contract: &models.Contract{ContractNo: contractNo, Status: constants.ContractStatusDraft},
	}
}

// WithCustomer gắn khách hàng
func (b *ContractBuilder) WithCustomer(customerID uint) *ContractBuilder {
	b.contract.CustomerID = customerID
	return b
}

// WithTerm đặt thời hạn hợp đồng
func (b *ContractBuilder) WithTerm(start, end types.Date) *ContractBuilder {
	b.contract.StartDate = start
	b.contract.EndDate = end
	return b
}

func (b *ContractBuilder) WithStatus(status string) *ContractBuilder {
	b.contract.Status = status
	return b
}

func (b *ContractBuilder) WithDeposit(amount float64) *ContractBuilder {
	b.contract.DepositAmount = amount
	return b
}

// AddUnit thêm mặt bằng tại tòa nhà đã đăng ký
func (b *ContractBuilder) AddUnit(buildingID uint, floor string, area float64, periods ...models.RentPeriod) *ContractBuilder {
	id := buildingID
	b.contract.Units = append(b.contract.Units, models.ContractUnit{
		BuildingID: &id,
		Floor:      floor,
		AreaSqm:    area,
		Periods:    periods,
	})
	return b
}

// Period tạo một bậc giá
func Period(start, end types.Date, rent, fee float64) models.RentPeriod {
	return models.RentPeriod{StartDate: start, EndDate: end, RentAmount: rent, ServiceFee: fee}
}

// Build trả về hợp đồng hoàn chỉnh
func (b *ContractBuilder) Build() models.Contract {
	return *b.contract
}
