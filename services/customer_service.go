package services

import (
	"context"
	stderrors "errors"
	"strings"

	"leasedesk/constants"
	"leasedesk/dto"
	"leasedesk/errors"
	"leasedesk/models"
	"leasedesk/services/listing"
	"leasedesk/services/logger"
	"leasedesk/validator"

	"gorm.io/gorm"
)

// Ngưỡng tương đồng để cảnh báo trùng tên khách hàng
const similarNameThreshold = 0.8

type CustomerService struct {
	db     *gorm.DB
	cache  Cache
	audit  *AuditService
	logger logger.Logger
}

type CustomerServiceOptions struct {
	DB     *gorm.DB
	Cache  Cache
	Audit  *AuditService
	Logger logger.Logger
}

func NewCustomerService(opts CustomerServiceOptions) *CustomerService {
	return &CustomerService{
		db:     opts.DB,
		cache:  opts.Cache,
		audit:  opts.Audit,
		logger: opts.Logger,
	}
}

func (s *CustomerService) List(ctx context.Context) ([]models.Customer, error) {
	var customers []models.Customer
	if found, err := s.cache.Get(ctx, cacheKeyCustomers, &customers); err == nil && found {
		return customers, nil
	}

	customers = []models.Customer{}
	if err := s.db.WithContext(ctx).Order("name asc").Find(&customers).Error; err != nil {
		return nil, errors.DB("Không thể tải danh sách khách hàng", err)
	}
	if err := s.cache.Set(ctx, cacheKeyCustomers, customers, cacheTTL); err != nil {
		s.logger.Error("Lỗi khi lưu danh sách khách hàng vào cache: %v", err)
	}
	return customers, nil
}

func (s *CustomerService) Get(ctx context.Context, id uint) (models.Customer, error) {
	var c models.Customer
	if err := s.db.WithContext(ctx).First(&c, id).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return c, errors.NotFound("Không tìm thấy khách hàng")
		}
		return c, errors.DB("Không thể tải khách hàng", err)
	}
	return c, nil
}

// Create tạo khách hàng và trả về các khách hàng có tên gần giống hoặc trùng mã số thuế
func (s *CustomerService) Create(ctx context.Context, req dto.CreateCustomerRequest) (dto.CustomerCreated, error) {
	c := models.Customer{
		Name:         strings.TrimSpace(req.Name),
		TaxID:        strings.TrimSpace(req.TaxID),
		Type:         req.Type,
		ContactName:  req.ContactName,
		ContactPhone: req.ContactPhone,
		ContactEmail: req.ContactEmail,
		Address:      req.Address,
		Notes:        req.Notes,
	}
	if c.Type == "" {
		c.Type = constants.CustomerTypeCorporate
	}
	if err := validator.ValidateCustomer(&c); err != nil {
		return dto.CustomerCreated{}, err
	}

	existing, err := s.List(ctx)
	if err != nil {
		return dto.CustomerCreated{}, err
	}
	similar := FindSimilarCustomers(existing, c)

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&c).Error; err != nil {
			return errors.DB("Không thể tạo khách hàng", err)
		}
		return s.audit.Record(ctx, tx, constants.AuditActionCreate, constants.EntityCustomer, c.ID, "Tạo khách hàng %s", c.Name)
	})
	if err != nil {
		return dto.CustomerCreated{}, err
	}
	s.invalidate(ctx)
	if len(similar) > 0 {
		s.logger.Info("Khách hàng %d có %d bản ghi gần giống", c.ID, len(similar))
	}
	return dto.CustomerCreated{Customer: c, Similar: similar}, nil
}

// FindSimilarCustomers tìm khách hàng trùng mã số thuế hoặc tên gần giống
func FindSimilarCustomers(existing []models.Customer, c models.Customer) []models.Customer {
	similar := []models.Customer{}
	for _, e := range existing {
		if e.ID == c.ID {
			continue
		}
		sameTax := c.TaxID != "" && strings.EqualFold(e.TaxID, c.TaxID)
		if sameTax || listing.Similarity(e.Name, c.Name) >= similarNameThreshold {
			similar = append(similar, e)
		}
	}
	return similar
}

func (s *CustomerService) Update(ctx context.Context, id uint, req dto.UpdateCustomerRequest) (models.Customer, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return c, err
	}
	if req.Name != nil {
		c.Name = strings.TrimSpace(*req.Name)
	}
	if req.TaxID != nil {
		c.TaxID = strings.TrimSpace(*req.TaxID)
	}
	if req.Type != nil {
		c.Type = *req.Type
	}
	if req.ContactName != nil {
		c.ContactName = *req.ContactName
	}
	if req.ContactPhone != nil {
		c.ContactPhone = *req.ContactPhone
	}
	if req.ContactEmail != nil {
		c.ContactEmail = *req.ContactEmail
	}
	if req.Address != nil {
		c.Address = *req.Address
	}
	if req.Notes != nil {
		c.Notes = *req.Notes
	}
	if err := validator.ValidateCustomer(&c); err != nil {
		return c, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&c).Error; err != nil {
			return errors.DB("Không thể cập nhật khách hàng", err)
		}
		return s.audit.Record(ctx, tx, constants.AuditActionUpdate, constants.EntityCustomer, c.ID, "Cập nhật khách hàng %s", c.Name)
	})
	if err != nil {
		return c, err
	}
	// tên khách hàng hiển thị trong danh sách hợp đồng
	s.invalidate(ctx, cacheKeyContracts)
	return c, nil
}

// Delete xóa khách hàng khi không còn hợp đồng
func (s *CustomerService) Delete(ctx context.Context, id uint) error {
	c, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var refs int64
		if err := tx.Model(&models.Contract{}).Where("customer_id = ?", id).Count(&refs).Error; err != nil {
			return errors.DB("Không thể kiểm tra hợp đồng của khách hàng", err)
		}
		if refs > 0 {
			return errors.NewAppError(errors.ErrCodeInUse, "Khách hàng đang có hợp đồng", nil)
		}
		if err := tx.Delete(&models.Customer{}, id).Error; err != nil {
			return errors.DB("Không thể xóa khách hàng", err)
		}
		return s.audit.Record(ctx, tx, constants.AuditActionDelete, constants.EntityCustomer, id, "Xóa khách hàng %s", c.Name)
	})
	if err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *CustomerService) invalidate(ctx context.Context, extra ...string) {
	keys := append([]string{cacheKeyCustomers}, extra...)
	if err := s.cache.Delete(ctx, keys...); err != nil {
		s.logger.Error("Lỗi xóa cache khách hàng: %v", err)
	}
}
