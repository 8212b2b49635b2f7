package services

import (
	"context"
	"fmt"

	"leasedesk/builders"
	"leasedesk/constants"
	"leasedesk/dto"
	"leasedesk/errors"
	"leasedesk/models"
	"leasedesk/services/logger"
	"leasedesk/types"
	"leasedesk/utils"

	"gorm.io/gorm"
)

// SeedService sinh dữ liệu mẫu cho môi trường dev/qc
type SeedService struct {
	db      *gorm.DB
	cache   Cache
	audit   *AuditService
	clock   utils.Clock
	enabled bool
	logger  logger.Logger
}

type SeedServiceOptions struct {
	DB      *gorm.DB
	Cache   Cache
	Audit   *AuditService
	Clock   utils.Clock
	Enabled bool
	Logger  logger.Logger
}

func NewSeedService(opts SeedServiceOptions) *SeedService {
	return &SeedService{
		db:      opts.DB,
		cache:   opts.Cache,
		audit:   opts.Audit,
		clock:   opts.Clock,
		enabled: opts.Enabled,
		logger:  opts.Logger,
	}
}

var seedBuildings = []models.Building{
	{Name: "Saigon Centre", Code: "SGC", Address: "65 Lê Lợi, Quận 1", TotalFloors: 25, RentableArea: 12000},
	{Name: "Bitexco Tower", Code: "BTX", Address: "2 Hải Triều, Quận 1", TotalFloors: 68, RentableArea: 37000},
	{Name: "Pearl Plaza", Code: "PRL", Address: "561A Điện Biên Phủ, Bình Thạnh", TotalFloors: 32, RentableArea: 15000},
}

var seedCustomers = []models.Customer{
	{Name: "Công ty TNHH Ánh Dương", TaxID: "0301234567", Type: constants.CustomerTypeCorporate, ContactName: "Nguyễn Văn An", ContactPhone: "0901000001"},
	{Name: "Công ty CP Đại Việt", TaxID: "0307654321", Type: constants.CustomerTypeCorporate, ContactName: "Trần Thị Bình", ContactPhone: "0901000002"},
	{Name: "Lê Minh Châu", Type: constants.CustomerTypeIndividual, ContactPhone: "0901000003"},
}

// seedContract mô tả hợp đồng mẫu theo số ngày tương đối với hôm nay
type seedContract struct {
	customer, building int
	startOffset        int
	endOffset          int
	status             string
	area               float64
	rent, fee          float64
}

var seedContracts = []seedContract{
	{customer: 0, building: 0, startOffset: -340, endOffset: 25, status: constants.ContractStatusActive, area: 450, rent: 180000000, fee: 22000000},
	{customer: 1, building: 1, startOffset: -200, endOffset: 55, status: constants.ContractStatusActive, area: 800, rent: 360000000, fee: 40000000},
	{customer: 2, building: 2, startOffset: -100, endOffset: 80, status: constants.ContractStatusActive, area: 120, rent: 42000000, fee: 6000000},
	{customer: 0, building: 2, startOffset: -30, endOffset: 700, status: constants.ContractStatusActive, area: 300, rent: 99000000, fee: 15000000},
	{customer: 1, building: 0, startOffset: 20, endOffset: 385, status: constants.ContractStatusDraft, area: 200, rent: 80000000, fee: 10000000},
	{customer: 2, building: 1, startOffset: -400, endOffset: -35, status: constants.ContractStatusExpired, area: 90, rent: 30000000, fee: 4000000},
}

func (s *SeedService) checkEnabled() error {
	if !s.enabled {
		return errors.NewAppError(errors.ErrCodeDisabled, "Chức năng seed bị tắt trên môi trường này", nil)
	}
	return nil
}

// Seed thêm dữ liệu mẫu. Mỗi hợp đồng có hai bậc giá, bậc sau tăng 5%.
func (s *SeedService) Seed(ctx context.Context) (dto.SeedResult, error) {
	var result dto.SeedResult
	if err := s.checkEnabled(); err != nil {
		return result, err
	}
	today := utils.Today(s.clock)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Contract{}).Where("contract_no LIKE ?", "SEED-%").Count(&count).Error; err != nil {
			return errors.DB("Không thể kiểm tra dữ liệu mẫu", err)
		}
		if count > 0 {
			return errors.NewAppError(errors.ErrCodeDBDuplicate, "Dữ liệu mẫu đã tồn tại, hãy reset trước", nil)
		}

		buildings := make([]models.Building, len(seedBuildings))
		copy(buildings, seedBuildings)
		for i := range buildings {
			if err := tx.Where(models.Building{Code: buildings[i].Code}).FirstOrCreate(&buildings[i]).Error; err != nil {
				return errors.DB("Không thể tạo tòa nhà mẫu", err)
			}
		}
		customers := make([]models.Customer, len(seedCustomers))
		copy(customers, seedCustomers)
		if err := tx.Create(&customers).Error; err != nil {
			return errors.DB("Không thể tạo khách hàng mẫu", err)
		}

		for i, sc := range seedContracts {
			c := buildSeedContract(i, sc, today, customers, buildings)
			if err := tx.Create(&c).Error; err != nil {
				return errors.DB("Không thể tạo hợp đồng mẫu", err)
			}
		}
		result = dto.SeedResult{Buildings: len(buildings), Customers: len(customers), Contracts: len(seedContracts)}
		return s.audit.Record(ctx, tx, constants.AuditActionSeed, constants.EntitySystem, 0,
			"Sinh dữ liệu mẫu: %d tòa nhà, %d khách hàng, %d hợp đồng", result.Buildings, result.Customers, result.Contracts)
	})
	if err != nil {
		return dto.SeedResult{}, err
	}
	s.invalidate(ctx)
	s.logger.Info("Đã sinh dữ liệu mẫu")
	return result, nil
}

func buildSeedContract(i int, sc seedContract, today types.Date, customers []models.Customer, buildings []models.Building) models.Contract {
	start := today.AddDays(sc.startOffset)
	end := today.AddDays(sc.endOffset)
	mid := start.AddDays((sc.endOffset - sc.startOffset) / 2)
	return builders.NewContractBuilder(fmt.Sprintf("SEED-%03d", i+1)).
		WithCustomer(customers[sc.customer].ID).
		WithTerm(start, end).
		WithStatus(sc.status).
		WithDeposit(sc.rent*3).
		AddUnit(buildings[sc.building].ID, fmt.Sprintf("%d", i+3), sc.area,
			builders.Period(start, mid, sc.rent, sc.fee),
			builders.Period(mid.AddDays(1), end, sc.rent*1.05, sc.fee),
		).
		Build()
}

// Reset xóa toàn bộ hợp đồng, khách hàng và tòa nhà. Audit log và user được giữ lại.
func (s *SeedService) Reset(ctx context.Context) error {
	if err := s.checkEnabled(); err != nil {
		return err
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, m := range []interface{}{
			&models.RentPeriod{},
			&models.ContractUnit{},
			&models.ContractDocument{},
			&models.Contract{},
			&models.Customer{},
			&models.Building{},
		} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(m).Error; err != nil {
				return errors.DB("Không thể xóa dữ liệu", err)
			}
		}
		return s.audit.Record(ctx, tx, constants.AuditActionReset, constants.EntitySystem, 0, "Xóa toàn bộ dữ liệu nghiệp vụ")
	})
	if err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *SeedService) invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, cacheKeyBuildings, cacheKeyCustomers, cacheKeyContracts); err != nil {
		s.logger.Error("Lỗi xóa cache: %v", err)
	}
}
