package services

import (
	"context"
	stderrors "errors"
	"strings"

	"leasedesk/constants"
	"leasedesk/dto"
	"leasedesk/errors"
	"leasedesk/models"
	"leasedesk/services/finance"
	"leasedesk/services/logger"
	"leasedesk/types"
	"leasedesk/validator"

	"gorm.io/gorm"
)

const documentFolder = "contracts"

type ContractService struct {
	db       *gorm.DB
	cache    Cache
	audit    *AuditService
	uploader Uploader
	logger   logger.Logger
}

type ContractServiceOptions struct {
	DB       *gorm.DB
	Cache    Cache
	Audit    *AuditService
	Uploader Uploader
	Logger   logger.Logger
}

func NewContractService(opts ContractServiceOptions) *ContractService {
	return &ContractService{
		db:       opts.DB,
		cache:    opts.Cache,
		audit:    opts.Audit,
		uploader: opts.Uploader,
		logger:   opts.Logger,
	}
}

// preload nạp khách hàng, mặt bằng, bậc giá (theo ngày bắt đầu) và tài liệu
func preload(tx *gorm.DB) *gorm.DB {
	return tx.
		Preload("Customer").
		Preload("Units", func(db *gorm.DB) *gorm.DB { return db.Order("id asc") }).
		Preload("Units.Periods", func(db *gorm.DB) *gorm.DB { return db.Order("start_date asc").Order("id asc") }).
		Preload("Documents")
}

// ListAll lấy mọi hợp đồng kèm mặt bằng và bậc giá, ưu tiên cache
func (s *ContractService) ListAll(ctx context.Context) ([]models.Contract, error) {
	var contracts []models.Contract
	if found, err := s.cache.Get(ctx, cacheKeyContracts, &contracts); err == nil && found {
		return contracts, nil
	} else if err != nil {
		s.logger.Error("Lỗi đọc cache hợp đồng: %v", err)
	}

	contracts = []models.Contract{}
	if err := preload(s.db.WithContext(ctx)).Order("id asc").Find(&contracts).Error; err != nil {
		return nil, errors.DB("Không thể tải danh sách hợp đồng", err)
	}
	if err := s.cache.Set(ctx, cacheKeyContracts, contracts, cacheTTL); err != nil {
		s.logger.Error("Lỗi khi lưu danh sách hợp đồng vào cache: %v", err)
	}
	return contracts, nil
}

func (s *ContractService) Get(ctx context.Context, id uint) (models.Contract, error) {
	return s.get(s.db.WithContext(ctx), id)
}

func (s *ContractService) get(tx *gorm.DB, id uint) (models.Contract, error) {
	var c models.Contract
	if err := preload(tx).First(&c, id).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return c, errors.NotFound("Không tìm thấy hợp đồng")
		}
		return c, errors.DB("Không thể tải hợp đồng", err)
	}
	return c, nil
}

// Create tạo hợp đồng cùng mặt bằng, bậc giá và tài liệu đính kèm
func (s *ContractService) Create(ctx context.Context, req dto.CreateContractRequest, files []UploadFile) (models.Contract, error) {
	c := models.Contract{
		ContractNo:    strings.TrimSpace(req.ContractNo),
		CustomerID:    req.CustomerID,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		DepositAmount: req.DepositAmount,
		Status:        req.Status,
		Notes:         req.Notes,
		Units:         dto.ToUnits(req.Units),
	}
	if c.Status == "" {
		c.Status = constants.ContractStatusDraft
	}
	if err := validator.ValidateContract(&c); err != nil {
		return c, err
	}

	docs, err := s.uploadDocuments(ctx, files)
	if err != nil {
		return c, err
	}
	c.Documents = docs

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.checkReferences(tx, &c, 0); err != nil {
			return err
		}
		if err := tx.Create(&c).Error; err != nil {
			return errors.DB("Không thể tạo hợp đồng", err)
		}
		return s.audit.Record(ctx, tx, constants.AuditActionCreate, constants.EntityContract, c.ID,
			"Tạo hợp đồng %s (%d mặt bằng, %d tài liệu)", c.ContractNo, len(c.Units), len(c.Documents))
	})
	if err != nil {
		s.discardDocuments(ctx, docs)
		return c, err
	}
	s.invalidate(ctx)
	s.logger.WithField("contract", c.ID).Info("Đã tạo hợp đồng %s", c.ContractNo)
	return s.Get(ctx, c.ID)
}

// Update cập nhật hợp đồng. Khi req.Units khác nil, toàn bộ mặt bằng và
// bậc giá cũ được thay thế trong cùng transaction. Tài liệu mới được thêm vào.
func (s *ContractService) Update(ctx context.Context, id uint, req dto.UpdateContractRequest, files []UploadFile) (models.Contract, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return c, err
	}
	if req.ContractNo != nil {
		c.ContractNo = strings.TrimSpace(*req.ContractNo)
	}
	if req.CustomerID != nil {
		c.CustomerID = *req.CustomerID
		c.Customer = nil
	}
	if req.StartDate != nil {
		c.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		c.EndDate = *req.EndDate
	}
	if req.DepositAmount != nil {
		c.DepositAmount = *req.DepositAmount
	}
	if req.Status != nil {
		c.Status = *req.Status
	}
	if req.Notes != nil {
		c.Notes = *req.Notes
	}
	replaceUnits := req.Units != nil
	if replaceUnits {
		c.Units = dto.ToUnits(*req.Units)
	}
	if err := validator.ValidateContract(&c); err != nil {
		return c, err
	}

	docs, err := s.uploadDocuments(ctx, files)
	if err != nil {
		return c, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.checkReferences(tx, &c, c.ID); err != nil {
			return err
		}
		if err := tx.Model(&models.Contract{ID: c.ID}).
			Select("contract_no", "customer_id", "start_date", "end_date", "deposit_amount", "status", "notes").
			Updates(&c).Error; err != nil {
			return errors.DB("Không thể cập nhật hợp đồng", err)
		}
		if replaceUnits {
			if err := deleteUnits(tx, c.ID); err != nil {
				return err
			}
			for i := range c.Units {
				c.Units[i].ID = 0
				c.Units[i].ContractID = c.ID
				for j := range c.Units[i].Periods {
					c.Units[i].Periods[j].ID = 0
				}
			}
			if len(c.Units) > 0 {
				if err := tx.Create(&c.Units).Error; err != nil {
					return errors.DB("Không thể lưu mặt bằng", err)
				}
			}
		}
		for i := range docs {
			doc := models.ContractDocument{ContractID: c.ID, FileName: docs[i].FileName, URL: docs[i].URL, PublicID: docs[i].PublicID}
			if err := tx.Create(&doc).Error; err != nil {
				return errors.DB("Không thể lưu tài liệu", err)
			}
		}
		return s.audit.Record(ctx, tx, constants.AuditActionUpdate, constants.EntityContract, c.ID, "Cập nhật hợp đồng %s", c.ContractNo)
	})
	if err != nil {
		s.discardDocuments(ctx, docs)
		return c, err
	}
	s.invalidate(ctx)
	return s.Get(ctx, c.ID)
}

// Delete xóa hợp đồng cùng mặt bằng, bậc giá và tài liệu
func (s *ContractService) Delete(ctx context.Context, id uint) error {
	c, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteUnits(tx, id); err != nil {
			return err
		}
		if err := tx.Where("contract_id = ?", id).Delete(&models.ContractDocument{}).Error; err != nil {
			return errors.DB("Không thể xóa tài liệu", err)
		}
		if err := tx.Delete(&models.Contract{}, id).Error; err != nil {
			return errors.DB("Không thể xóa hợp đồng", err)
		}
		return s.audit.Record(ctx, tx, constants.AuditActionDelete, constants.EntityContract, id, "Xóa hợp đồng %s", c.ContractNo)
	})
	if err != nil {
		return err
	}
	for _, d := range c.Documents {
		if s.uploader == nil || d.PublicID == "" {
			continue
		}
		if err := s.uploader.Delete(ctx, d.PublicID); err != nil {
			s.logger.Error("Không thể xóa tài liệu %s: %v", d.PublicID, err)
		}
	}
	s.invalidate(ctx)
	return nil
}

// ExpireOverdue chuyển các hợp đồng active đã quá ngày kết thúc sang expired
func (s *ContractService) ExpireOverdue(ctx context.Context, today types.Date) (int, error) {
	var active []models.Contract
	if err := s.db.WithContext(ctx).Where("status = ?", constants.ContractStatusActive).Find(&active).Error; err != nil {
		return 0, errors.DB("Không thể tải hợp đồng active", err)
	}
	var overdue []models.Contract
	for _, c := range active {
		if finance.DaysUntil(today, c.EndDate) < 0 {
			overdue = append(overdue, c)
		}
	}
	if len(overdue) == 0 {
		return 0, nil
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, c := range overdue {
			if err := tx.Model(&models.Contract{}).Where("id = ?", c.ID).
				Update("status", constants.ContractStatusExpired).Error; err != nil {
				return errors.DB("Không thể cập nhật trạng thái hợp đồng", err)
			}
			if err := s.audit.Record(ctx, tx, constants.AuditActionStatus, constants.EntityContract, c.ID,
				"Hợp đồng %s hết hạn ngày %s", c.ContractNo, c.EndDate); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	s.invalidate(ctx)
	return len(overdue), nil
}

// checkReferences kiểm tra số hợp đồng duy nhất, khách hàng và tòa nhà tồn tại
func (s *ContractService) checkReferences(tx *gorm.DB, c *models.Contract, exceptID uint) error {
	var count int64
	q := tx.Model(&models.Contract{}).Where("contract_no = ?", c.ContractNo)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&count).Error; err != nil {
		return errors.DB("Không thể kiểm tra số hợp đồng", err)
	}
	if count > 0 {
		return errors.NewAppError(errors.ErrCodeDBDuplicate, "Số hợp đồng đã tồn tại", nil)
	}

	if err := tx.Model(&models.Customer{}).Where("id = ?", c.CustomerID).Count(&count).Error; err != nil {
		return errors.DB("Không thể kiểm tra khách hàng", err)
	}
	if count == 0 {
		return errors.NewAppError(errors.ErrCodeValidation, "Khách hàng không tồn tại", nil)
	}

	ids := map[uint]bool{}
	for _, u := range c.Units {
		if id, ok := u.ResolvedBuildingID(); ok {
			ids[id] = true
		}
	}
	if len(ids) == 0 {
		return nil
	}
	list := make([]uint, 0, len(ids))
	for id := range ids {
		list = append(list, id)
	}
	if err := tx.Model(&models.Building{}).Where("id IN ?", list).Count(&count).Error; err != nil {
		return errors.DB("Không thể kiểm tra tòa nhà", err)
	}
	if int(count) != len(list) {
		return errors.NewAppError(errors.ErrCodeValidation, "Tòa nhà không tồn tại", nil)
	}
	return nil
}

func deleteUnits(tx *gorm.DB, contractID uint) error {
	unitIDs := tx.Model(&models.ContractUnit{}).Select("id").Where("contract_id = ?", contractID)
	if err := tx.Where("unit_id IN (?)", unitIDs).Delete(&models.RentPeriod{}).Error; err != nil {
		return errors.DB("Không thể xóa bậc giá", err)
	}
	if err := tx.Where("contract_id = ?", contractID).Delete(&models.ContractUnit{}).Error; err != nil {
		return errors.DB("Không thể xóa mặt bằng", err)
	}
	return nil
}

func (s *ContractService) uploadDocuments(ctx context.Context, files []UploadFile) ([]models.ContractDocument, error) {
	if len(files) == 0 {
		return nil, nil
	}
	if s.uploader == nil {
		return nil, errors.NewAppError(errors.ErrCodeDisabled, "Chưa cấu hình lưu trữ tài liệu", nil)
	}
	results, err := UploadAll(ctx, s.uploader, files, documentFolder)
	if err != nil {
		return nil, err
	}
	docs := make([]models.ContractDocument, 0, len(results))
	for _, r := range results {
		docs = append(docs, models.ContractDocument{FileName: r.FileName, URL: r.URL, PublicID: r.PublicID})
	}
	return docs, nil
}

func (s *ContractService) discardDocuments(ctx context.Context, docs []models.ContractDocument) {
	if s.uploader == nil {
		return
	}
	for _, d := range docs {
		_ = s.uploader.Delete(ctx, d.PublicID)
	}
}

func (s *ContractService) invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, cacheKeyContracts); err != nil {
		s.logger.Error("Lỗi xóa cache hợp đồng: %v", err)
	}
}

// ToResponse tính các số liệu hiện tại của hợp đồng
func ToResponse(c models.Contract, today types.Date) dto.ContractResponse {
	rent, fee := finance.CurrentRent(c, today)
	resp := dto.ContractResponse{
		Contract:          c,
		CurrentRent:       rent,
		CurrentServiceFee: fee,
		DaysLeft:          finance.DaysUntil(today, c.EndDate),
	}
	if c.Customer != nil {
		resp.CustomerName = c.Customer.Name
	}
	for _, u := range c.Units {
		resp.TotalArea += u.AreaSqm
	}
	return resp
}

// ToListItem rút gọn hợp đồng cho danh sách
func ToListItem(c models.Contract, today types.Date) dto.ContractListItem {
	full := ToResponse(c, today)
	item := dto.ContractListItem{
		ID:                c.ID,
		ContractNo:        c.ContractNo,
		CustomerID:        c.CustomerID,
		CustomerName:      full.CustomerName,
		StartDate:         c.StartDate,
		EndDate:           c.EndDate,
		Status:            c.Status,
		DepositAmount:     c.DepositAmount,
		TotalArea:         full.TotalArea,
		CurrentRent:       full.CurrentRent,
		CurrentServiceFee: full.CurrentServiceFee,
		DaysLeft:          full.DaysLeft,
		BuildingIDs:       []uint{},
		UpdatedAt:         c.UpdatedAt,
	}
	seen := map[uint]bool{}
	for _, u := range c.Units {
		if id, ok := u.ResolvedBuildingID(); ok && !seen[id] {
			seen[id] = true
			item.BuildingIDs = append(item.BuildingIDs, id)
		}
	}
	return item
}
