package services

import (
	"os"
	"path/filepath"
	"testing"

	"leasedesk/constants"
	"leasedesk/dto"
	"leasedesk/errors"
	"leasedesk/models"
	"leasedesk/services/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContractService_CreateAndGet(t *testing.T) {
	f := newFixture(t)
	req := f.contractRequest("HD-001")
	// nhập bậc giá ngược thứ tự, khi lưu phải được sắp theo ngày bắt đầu
	req.Units[0].Periods[0], req.Units[0].Periods[1] = req.Units[0].Periods[1], req.Units[0].Periods[0]

	c := f.createContract(t, req)
	require.NotZero(t, c.ID)
	require.NotNil(t, c.Customer)
	assert.Equal(t, f.customer.Name, c.Customer.Name)
	require.Len(t, c.Units, 1)
	require.Len(t, c.Units[0].Periods, 2)
	assert.Equal(t, d("2024-01-01"), c.Units[0].Periods[0].StartDate)
	assert.Equal(t, d("2024-07-01"), c.Units[0].Periods[1].StartDate)

	resp := ToResponse(c, d("2024-06-15"))
	assert.Equal(t, 100.0, resp.CurrentRent)
	assert.Equal(t, 10.0, resp.CurrentServiceFee)
	assert.Equal(t, 100.0, resp.TotalArea)
	assert.Equal(t, 199, resp.DaysLeft)
	assert.Equal(t, f.customer.Name, resp.CustomerName)

	assert.Contains(t, auditActions(t, f.db), "create:contract")
}

func TestContractService_CreateDefaultsToDraft(t *testing.T) {
	f := newFixture(t)
	req := f.contractRequest("HD-002")
	req.Status = ""
	c := f.createContract(t, req)
	assert.Equal(t, constants.ContractStatusDraft, c.Status)
}

func TestContractService_CreateErrors(t *testing.T) {
	f := newFixture(t)
	f.createContract(t, f.contractRequest("HD-001"))

	missing := uint(9999)
	tests := []struct {
		name   string
		mutate func(r *dto.CreateContractRequest)
		code   errors.ErrorCode
	}{
		{"duplicate number", func(r *dto.CreateContractRequest) { r.ContractNo = "HD-001" }, errors.ErrCodeDBDuplicate},
		{"unknown customer", func(r *dto.CreateContractRequest) { r.CustomerID = missing }, errors.ErrCodeValidation},
		{"unknown building", func(r *dto.CreateContractRequest) { r.Units[0].BuildingID = &missing }, errors.ErrCodeValidation},
		{"end before start", func(r *dto.CreateContractRequest) { r.EndDate = d("2023-12-01") }, errors.ErrCodeValidation},
		{"overlapping periods", func(r *dto.CreateContractRequest) {
			r.Units[0].Periods[1].StartDate = d("2024-06-01")
		}, errors.ErrCodeInvalidPeriod},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := f.contractRequest("HD-NEW")
			tt.mutate(&req)
			_, err := f.reg.Contracts.Create(f.ctx, req, nil)
			require.Error(t, err)
			assert.True(t, errors.HasCode(err, tt.code), "got %v", err)
		})
	}
	assert.EqualValues(t, 1, countRows(t, f.db, &models.Contract{}))
}

func TestContractService_UpdateReplacesUnits(t *testing.T) {
	f := newFixture(t)
	c := f.createContract(t, f.contractRequest("HD-001"))

	units := []dto.ContractUnitRequest{
		f.unitRequest(50, periodReq("2024-01-01", "2024-12-31", 40, 4)),
		f.unitRequest(70, periodReq("2024-01-01", "2024-12-31", 60, 6)),
	}
	notes := "mở rộng"
	updated, err := f.reg.Contracts.Update(f.ctx, c.ID, dto.UpdateContractRequest{Notes: &notes, Units: &units}, nil)
	require.NoError(t, err)

	assert.Equal(t, "mở rộng", updated.Notes)
	require.Len(t, updated.Units, 2)
	assert.Equal(t, 50.0, updated.Units[0].AreaSqm)
	assert.Equal(t, 70.0, updated.Units[1].AreaSqm)
	assert.EqualValues(t, 2, countRows(t, f.db, &models.ContractUnit{}))
	assert.EqualValues(t, 2, countRows(t, f.db, &models.RentPeriod{}))

	resp := ToResponse(updated, d("2024-06-15"))
	assert.Equal(t, 100.0, resp.CurrentRent)
	assert.Equal(t, 10.0, resp.CurrentServiceFee)
}

func TestContractService_UpdateKeepsUnitsWhenOmitted(t *testing.T) {
	f := newFixture(t)
	c := f.createContract(t, f.contractRequest("HD-001"))

	status := constants.ContractStatusTerminated
	updated, err := f.reg.Contracts.Update(f.ctx, c.ID, dto.UpdateContractRequest{Status: &status}, nil)
	require.NoError(t, err)
	assert.Equal(t, constants.ContractStatusTerminated, updated.Status)
	require.Len(t, updated.Units, 1)
	assert.Len(t, updated.Units[0].Periods, 2)
	assert.Contains(t, auditActions(t, f.db), "update:contract")
}

func TestContractService_UpdateDuplicateNumber(t *testing.T) {
	f := newFixture(t)
	f.createContract(t, f.contractRequest("HD-001"))
	second := f.createContract(t, f.contractRequest("HD-002"))

	no := "HD-001"
	_, err := f.reg.Contracts.Update(f.ctx, second.ID, dto.UpdateContractRequest{ContractNo: &no}, nil)
	assert.True(t, errors.HasCode(err, errors.ErrCodeDBDuplicate))

	_, err = f.reg.Contracts.Update(f.ctx, 4242, dto.UpdateContractRequest{ContractNo: &no}, nil)
	assert.True(t, errors.HasCode(err, errors.ErrCodeDBNotFound))
}

func TestContractService_DocumentsLifecycle(t *testing.T) {
	f := newFixture(t)
	c, err := f.reg.Contracts.Create(f.ctx, f.contractRequest("HD-001"), []UploadFile{file("hop-dong.pdf", "pdf")})
	require.NoError(t, err)
	require.Len(t, c.Documents, 1)
	doc := c.Documents[0]
	assert.Equal(t, "hop-dong.pdf", doc.FileName)
	assert.FileExists(t, filepath.Join(f.uploads, filepath.FromSlash(doc.PublicID)))

	c, err = f.reg.Contracts.Update(f.ctx, c.ID, dto.UpdateContractRequest{}, []UploadFile{file("phu-luc.pdf", "annex")})
	require.NoError(t, err)
	assert.Len(t, c.Documents, 2)

	require.NoError(t, f.reg.Contracts.Delete(f.ctx, c.ID))
	_, statErr := os.Stat(filepath.Join(f.uploads, filepath.FromSlash(doc.PublicID)))
	assert.True(t, os.IsNotExist(statErr))
	assert.EqualValues(t, 0, countRows(t, f.db, &models.ContractDocument{}))
}

func TestContractService_DocumentsWithoutUploader(t *testing.T) {
	f := newFixture(t)
	svc := NewContractService(ContractServiceOptions{DB: f.db, Cache: NoopCache{}, Audit: f.reg.Audit, Logger: logger.Discard()})
	_, err := svc.Create(f.ctx, f.contractRequest("HD-001"), []UploadFile{file("a.pdf", "x")})
	assert.True(t, errors.HasCode(err, errors.ErrCodeDisabled))
}

func TestContractService_Delete(t *testing.T) {
	f := newFixture(t)
	c := f.createContract(t, f.contractRequest("HD-001"))

	require.NoError(t, f.reg.Contracts.Delete(f.ctx, c.ID))
	_, err := f.reg.Contracts.Get(f.ctx, c.ID)
	assert.True(t, errors.HasCode(err, errors.ErrCodeDBNotFound))
	assert.EqualValues(t, 0, countRows(t, f.db, &models.ContractUnit{}))
	assert.EqualValues(t, 0, countRows(t, f.db, &models.RentPeriod{}))
	assert.Contains(t, auditActions(t, f.db), "delete:contract")

	assert.True(t, errors.HasCode(f.reg.Contracts.Delete(f.ctx, c.ID), errors.ErrCodeDBNotFound))
}

func TestContractService_ExpireOverdue(t *testing.T) {
	f := newFixture(t)
	overdue := f.contractRequest("HD-OLD")
	overdue.StartDate = d("2023-06-11")
	overdue.EndDate = d("2024-06-10")
	overdue.Units[0].Periods = []dto.RentPeriodRequest{periodReq("2023-06-11", "2024-06-10", 90, 9)}
	old := f.createContract(t, overdue)

	endsToday := f.contractRequest("HD-TODAY")
	endsToday.StartDate = d("2023-06-16")
	endsToday.EndDate = d("2024-06-15")
	endsToday.Units[0].Periods = []dto.RentPeriodRequest{periodReq("2023-06-16", "2024-06-15", 90, 9)}
	today := f.createContract(t, endsToday)

	n, err := f.reg.Contracts.ExpireOverdue(f.ctx, d("2024-06-15"))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := f.reg.Contracts.Get(f.ctx, old.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.ContractStatusExpired, got.Status)
	got, err = f.reg.Contracts.Get(f.ctx, today.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.ContractStatusActive, got.Status)
	assert.Contains(t, auditActions(t, f.db), "status:contract")

	n, err = f.reg.Contracts.ExpireOverdue(f.ctx, d("2024-06-15"))
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestContractService_ListAllUsesCache(t *testing.T) {
	f := newFixture(t)
	cache := newMemCache()
	svc := NewContractService(ContractServiceOptions{DB: f.db, Cache: cache, Audit: f.reg.Audit, Logger: logger.Discard()})

	c, err := svc.Create(f.ctx, f.contractRequest("HD-001"), nil)
	require.NoError(t, err)

	list, err := svc.ListAll(f.ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, cache.has(cacheKeyContracts))

	// đọc lại từ cache vẫn giữ nguyên ngày và bậc giá
	cached, err := svc.ListAll(f.ctx)
	require.NoError(t, err)
	require.Len(t, cached, 1)
	assert.Equal(t, d("2024-12-31"), cached[0].EndDate)
	assert.Len(t, cached[0].Units[0].Periods, 2)

	notes := "x"
	_, err = svc.Update(f.ctx, c.ID, dto.UpdateContractRequest{Notes: &notes}, nil)
	require.NoError(t, err)
	assert.False(t, cache.has(cacheKeyContracts))
}

func TestToListItem_DeduplicatesBuildings(t *testing.T) {
	a, b := uint(1), uint(2)
	c := models.Contract{
		ID:         7,
		ContractNo: "HD-7",
		Status:     constants.ContractStatusActive,
		StartDate:  d("2024-01-01"),
		EndDate:    d("2024-12-31"),
		Customer:   &models.Customer{Name: "Harbor Foods"},
		Units: []models.ContractUnit{
			{BuildingID: &a, AreaSqm: 10},
			{DirectBuildingID: &b, AreaSqm: 20},
			{BuildingID: &a, AreaSqm: 30},
		},
	}
	item := ToListItem(c, d("2024-12-01"))
	assert.Equal(t, []uint{1, 2}, item.BuildingIDs)
	assert.Equal(t, 60.0, item.TotalArea)
	assert.Equal(t, 30, item.DaysLeft)
	assert.Equal(t, "Harbor Foods", item.CustomerName)
	assert.Zero(t, item.CurrentRent)
}
