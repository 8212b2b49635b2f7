package services

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"leasedesk/constants"
	"leasedesk/dto"
	"leasedesk/models"
	"leasedesk/services/logger"
	"leasedesk/types"
	"leasedesk/utils"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var testNow = time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)

func d(s string) types.Date { return types.MustParseDate(s) }

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

// memCache là Cache trong bộ nhớ, mã hóa JSON giống RedisCache
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemCache() *memCache {
	return &memCache{data: map[string][]byte{}}
}

func (c *memCache) Get(_ context.Context, key string, target interface{}) (bool, error) {
	c.mu.Lock()
	raw, ok := c.data[key]
	c.mu.Unlock()
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, target)
}

func (c *memCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.data[key] = raw
	c.mu.Unlock()
	return nil
}

func (c *memCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

func (c *memCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.data[key]
	return ok
}

type fixture struct {
	db       *gorm.DB
	reg      *Registry
	uploads  string
	tokens   *TokenManager
	clock    utils.Clock
	ctx      context.Context
	customer models.Customer
	building models.Building
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)
	dir := t.TempDir()
	tokens := NewTokenManager(TokenManagerOptions{AccessSecret: "access-secret", RefreshSecret: "refresh-secret"})
	clock := utils.FixedClock{At: testNow}
	reg := NewRegistry(RegistryOptions{
		DB:          db,
		Uploader:    NewLocalUploader(dir, "http://localhost/files"),
		Clock:       clock,
		Logger:      logger.Discard(),
		Tokens:      tokens,
		SeedEnabled: true,
	})
	f := &fixture{db: db, reg: reg, uploads: dir, tokens: tokens, clock: clock, ctx: context.Background()}

	b, err := reg.Buildings.Create(f.ctx, dto.CreateBuildingRequest{Name: "Saigon Centre", Code: "sgc", RentableArea: 1000, TotalFloors: 20})
	require.NoError(t, err)
	f.building = b
	created, err := reg.Customers.Create(f.ctx, dto.CreateCustomerRequest{Name: "Công ty Ánh Dương", TaxID: "0301234567"})
	require.NoError(t, err)
	f.customer = created.Customer
	return f
}

func (f *fixture) unitRequest(area float64, periods ...dto.RentPeriodRequest) dto.ContractUnitRequest {
	id := f.building.ID
	return dto.ContractUnitRequest{BuildingID: &id, Floor: "5", AreaSqm: area, Periods: periods}
}

func periodReq(start, end string, rent, fee float64) dto.RentPeriodRequest {
	return dto.RentPeriodRequest{StartDate: d(start), EndDate: d(end), RentAmount: rent, ServiceFee: fee}
}

// contractRequest là hợp đồng cả năm 2024, giá tăng từ tháng 7
func (f *fixture) contractRequest(no string) dto.CreateContractRequest {
	return dto.CreateContractRequest{
		ContractNo:    no,
		CustomerID:    f.customer.ID,
		StartDate:     d("2024-01-01"),
		EndDate:       d("2024-12-31"),
		DepositAmount: 300,
		Status:        constants.ContractStatusActive,
		Units: []dto.ContractUnitRequest{f.unitRequest(100,
			periodReq("2024-01-01", "2024-06-30", 100, 10),
			periodReq("2024-07-01", "2024-12-31", 120, 12),
		)},
	}
}

func (f *fixture) createContract(t *testing.T, req dto.CreateContractRequest) models.Contract {
	t.Helper()
	c, err := f.reg.Contracts.Create(f.ctx, req, nil)
	require.NoError(t, err)
	return c
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func auditActions(t *testing.T, db *gorm.DB) []string {
	t.Helper()
	var logs []models.AuditLog
	require.NoError(t, db.Order("id asc").Find(&logs).Error)
	actions := make([]string, 0, len(logs))
	for _, l := range logs {
		actions = append(actions, l.Action+":"+l.EntityType)
	}
	return actions
}

func file(name, content string) UploadFile {
	return UploadFile{Name: name, Reader: strings.NewReader(content)}
}
