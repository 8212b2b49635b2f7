package client_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"leasedesk/client"
	"leasedesk/constants"
	"leasedesk/dto"
	"leasedesk/models"
	"leasedesk/routes"
	"leasedesk/services"
	"leasedesk/services/logger"
	"leasedesk/types"
	"leasedesk/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func startBackend(t *testing.T, accessTTL time.Duration) string {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(models.All()...))

	dir := t.TempDir()
	reg := services.NewRegistry(services.RegistryOptions{
		DB:       db,
		Uploader: services.NewLocalUploader(dir, "/files"),
		Clock:    utils.FixedClock{At: time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)},
		Logger:   logger.Discard(),
		Tokens: services.NewTokenManager(services.TokenManagerOptions{
			AccessSecret:  "a",
			RefreshSecret: "r",
			AccessTTL:     accessTTL,
		}),
		SeedEnabled: true,
	})
	require.NoError(t, reg.Auth.EnsureAdmin(context.Background(), "admin@example.com", "s3cret"))

	router := gin.New()
	routes.SetupRoutes(router, reg, routes.Options{UploadDir: dir})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv.URL + "/api/v1"
}

func TestClient_AgainstRouter(t *testing.T) {
	base := startBackend(t, 0)
	ctx := context.Background()
	c := client.New(client.Options{BaseURL: base})

	_, err := c.Alerts(ctx)
	assert.ErrorIs(t, err, client.ErrNotLoggedIn)

	_, err = c.Login(ctx, "admin@example.com", "wrong")
	assert.True(t, client.IsStatus(err, http.StatusUnauthorized))

	tokens, err := c.Login(ctx, "admin@example.com", "s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.True(t, c.Session().LoggedIn())

	b, err := c.CreateBuilding(ctx, dto.CreateBuildingRequest{Name: "Saigon Centre", Code: "sgc", RentableArea: 1000})
	require.NoError(t, err)
	assert.Equal(t, "SGC", b.Code)

	_, err = c.CreateBuilding(ctx, dto.CreateBuildingRequest{Name: "Khác", Code: "SGC"})
	assert.True(t, client.IsStatus(err, http.StatusConflict))

	cu, err := c.CreateCustomer(ctx, dto.CreateCustomerRequest{Name: "Công ty Ánh Dương", Type: constants.CustomerTypeCorporate})
	require.NoError(t, err)

	contracts, err := c.ListContracts(ctx, client.ListOptions{})
	require.NoError(t, err)
	assert.Empty(t, contracts.Items)

	req := dto.CreateContractRequest{
		ContractNo: "HD-001",
		CustomerID: cu.Customer.ID,
		StartDate:  types.MustParseDate("2024-01-01"),
		EndDate:    types.MustParseDate("2024-07-01"),
		Status:     constants.ContractStatusActive,
		Units: []dto.ContractUnitRequest{{
			BuildingID: &b.ID,
			AreaSqm:    100,
			Periods: []dto.RentPeriodRequest{
				{StartDate: types.MustParseDate("2024-01-01"), EndDate: types.MustParseDate("2024-07-01"), RentAmount: 100, ServiceFee: 10},
			},
		}},
	}
	created, err := c.CreateContract(ctx, req, client.Document{Name: "hd-001.pdf", Content: []byte("pdf")})
	require.NoError(t, err)
	require.Len(t, created.Documents, 1)
	assert.Equal(t, 16, created.DaysLeft)

	// danh sách đã cache trước đó phải được làm mới sau khi tạo hợp đồng
	contracts, err = c.ListContracts(ctx, client.ListOptions{Filters: map[string][]string{"status": {"active"}}})
	require.NoError(t, err)
	require.Len(t, contracts.Items, 1)
	assert.Equal(t, "HD-001", contracts.Items[0].ContractNo)
	contracts, err = c.ListContracts(ctx, client.ListOptions{})
	require.NoError(t, err)
	require.Len(t, contracts.Items, 1)

	alerts, err := c.Alerts(ctx)
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, services.SeverityCritical, alerts[0].Severity)

	dash, err := c.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, dash.ActiveContracts)
	assert.Equal(t, 10.0, dash.OccupancyRate)

	rev, err := c.Revenue(ctx, types.MustParseDate("2024-06-01"), types.MustParseDate("2024-06-30"))
	require.NoError(t, err)
	assert.Equal(t, 100.0, rev.TotalRent)

	require.NoError(t, c.DeleteContract(ctx, created.ID))
	_, err = c.GetContract(ctx, created.ID)
	assert.True(t, client.IsStatus(err, http.StatusNotFound))

	audit, err := c.ListAudit(ctx, constants.AuditActionDelete, 10)
	require.NoError(t, err)
	require.Len(t, audit, 1)

	require.NoError(t, c.Logout(ctx))
	assert.False(t, c.Session().LoggedIn())
	_, err = c.Alerts(ctx)
	assert.ErrorIs(t, err, client.ErrNotLoggedIn)
}

func TestClient_RefreshAgainstRouter(t *testing.T) {
	base := startBackend(t, time.Second)
	ctx := context.Background()
	c := client.New(client.Options{BaseURL: base})

	first, err := c.Login(ctx, "admin@example.com", "s3cret")
	require.NoError(t, err)

	// access token hết hạn, client tự refresh rồi gọi lại
	time.Sleep(2100 * time.Millisecond)
	_, err = c.ListBuildings(ctx, client.ListOptions{})
	require.NoError(t, err)
	renewed := c.Session().Tokens()
	assert.NotEqual(t, first.AccessToken, renewed.AccessToken)
	assert.NotEqual(t, first.RefreshToken, renewed.RefreshToken)

	// refresh token cũ đã bị thu hồi
	stale := client.New(client.Options{BaseURL: base, Session: client.NewSession(client.Tokens{AccessToken: "x", RefreshToken: first.RefreshToken})})
	_, err = stale.ListBuildings(ctx, client.ListOptions{})
	assert.ErrorIs(t, err, client.ErrSessionExpired)
	assert.False(t, stale.Session().LoggedIn())
}
