package services

import (
	"context"
	stderrors "errors"
	"strings"

	"leasedesk/constants"
	"leasedesk/dto"
	"leasedesk/errors"
	"leasedesk/models"
	"leasedesk/services/logger"
	"leasedesk/validator"

	"gorm.io/gorm"
)

type BuildingService struct {
	db     *gorm.DB
	cache  Cache
	audit  *AuditService
	logger logger.Logger
}

type BuildingServiceOptions struct {
	DB     *gorm.DB
	Cache  Cache
	Audit  *AuditService
	Logger logger.Logger
}

func NewBuildingService(opts BuildingServiceOptions) *BuildingService {
	return &BuildingService{
		db:     opts.DB,
		cache:  opts.Cache,
		audit:  opts.Audit,
		logger: opts.Logger,
	}
}

// List lấy tất cả tòa nhà, ưu tiên cache
func (s *BuildingService) List(ctx context.Context) ([]models.Building, error) {
	var buildings []models.Building
	if found, err := s.cache.Get(ctx, cacheKeyBuildings, &buildings); err == nil && found {
		return buildings, nil
	} else if err != nil {
		s.logger.Error("Lỗi đọc cache tòa nhà: %v", err)
	}

	buildings = []models.Building{}
	if err := s.db.WithContext(ctx).Order("name asc").Find(&buildings).Error; err != nil {
		return nil, errors.DB("Không thể tải danh sách tòa nhà", err)
	}
	if err := s.cache.Set(ctx, cacheKeyBuildings, buildings, cacheTTL); err != nil {
		s.logger.Error("Lỗi khi lưu danh sách tòa nhà vào cache: %v", err)
	}
	return buildings, nil
}

func (s *BuildingService) Get(ctx context.Context, id uint) (models.Building, error) {
	var b models.Building
	if err := s.db.WithContext(ctx).First(&b, id).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return b, errors.NotFound("Không tìm thấy tòa nhà")
		}
		return b, errors.DB("Không thể tải tòa nhà", err)
	}
	return b, nil
}

func (s *BuildingService) Create(ctx context.Context, req dto.CreateBuildingRequest) (models.Building, error) {
	b := models.Building{
		Name:         strings.TrimSpace(req.Name),
		Code:         strings.ToUpper(strings.TrimSpace(req.Code)),
		Address:      req.Address,
		TotalFloors:  req.TotalFloors,
		RentableArea: req.RentableArea,
		Notes:        req.Notes,
	}
	if err := validator.ValidateBuilding(&b); err != nil {
		return b, err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.ensureUniqueCode(tx, b.Code, 0); err != nil {
			return err
		}
		if err := tx.Create(&b).Error; err != nil {
			return errors.DB("Không thể tạo tòa nhà", err)
		}
		return s.audit.Record(ctx, tx, constants.AuditActionCreate, constants.EntityBuilding, b.ID, "Tạo tòa nhà %s (%s)", b.Name, b.Code)
	})
	if err != nil {
		return b, err
	}
	s.invalidate(ctx)
	s.logger.Info("Đã tạo tòa nhà %d %s", b.ID, b.Code)
	return b, nil
}

func (s *BuildingService) Update(ctx context.Context, id uint, req dto.UpdateBuildingRequest) (models.Building, error) {
	b, err := s.Get(ctx, id)
	if err != nil {
		return b, err
	}
	if req.Name != nil {
		b.Name = strings.TrimSpace(*req.Name)
	}
	if req.Code != nil {
		b.Code = strings.ToUpper(strings.TrimSpace(*req.Code))
	}
	if req.Address != nil {
		b.Address = *req.Address
	}
	if req.TotalFloors != nil {
		b.TotalFloors = *req.TotalFloors
	}
	if req.RentableArea != nil {
		b.RentableArea = *req.RentableArea
	}
	if req.Notes != nil {
		b.Notes = *req.Notes
	}
	if err := validator.ValidateBuilding(&b); err != nil {
		return b, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.ensureUniqueCode(tx, b.Code, b.ID); err != nil {
			return err
		}
		if err := tx.Save(&b).Error; err != nil {
			return errors.DB("Không thể cập nhật tòa nhà", err)
		}
		return s.audit.Record(ctx, tx, constants.AuditActionUpdate, constants.EntityBuilding, b.ID, "Cập nhật tòa nhà %s", b.Code)
	})
	if err != nil {
		return b, err
	}
	s.invalidate(ctx)
	return b, nil
}

// Delete xóa tòa nhà khi không còn mặt bằng nào tham chiếu
func (s *BuildingService) Delete(ctx context.Context, id uint) error {
	b, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var refs int64
		if err := tx.Model(&models.ContractUnit{}).
			Where("building_id = ? OR direct_building_id = ?", id, id).
			Count(&refs).Error; err != nil {
			return errors.DB("Không thể kiểm tra tham chiếu", err)
		}
		if refs > 0 {
			return errors.NewAppError(errors.ErrCodeInUse, "Tòa nhà đang có hợp đồng sử dụng", nil)
		}
		if err := tx.Delete(&models.Building{}, id).Error; err != nil {
			return errors.DB("Không thể xóa tòa nhà", err)
		}
		return s.audit.Record(ctx, tx, constants.AuditActionDelete, constants.EntityBuilding, id, "Xóa tòa nhà %s", b.Code)
	})
	if err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *BuildingService) ensureUniqueCode(tx *gorm.DB, code string, exceptID uint) error {
	var count int64
	q := tx.Model(&models.Building{}).Where("code = ?", code)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&count).Error; err != nil {
		return errors.DB("Không thể kiểm tra mã tòa nhà", err)
	}
	if count > 0 {
		return errors.NewAppError(errors.ErrCodeDBDuplicate, "Mã tòa nhà đã tồn tại", nil)
	}
	return nil
}

func (s *BuildingService) invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, cacheKeyBuildings); err != nil {
		s.logger.Error("Lỗi xóa cache tòa nhà: %v", err)
	}
}
