package services

import (
	"leasedesk/services/logger"
	"leasedesk/utils"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Registry gom các service dùng chung cho routes, jobs và CLI
type Registry struct {
	Cache     Cache
	Filters   *ListStateStore
	Audit     *AuditService
	Buildings *BuildingService
	Customers *CustomerService
	Contracts *ContractService
	Stats     *StatsService
	Auth      *AuthService
	Seed      *SeedService
	Uploader  Uploader
	Clock     utils.Clock
	Logger    logger.Logger
}

type RegistryOptions struct {
	DB          *gorm.DB
	Redis       *redis.Client
	Uploader    Uploader
	Clock       utils.Clock
	Logger      logger.Logger
	Tokens      *TokenManager
	Google      GoogleVerifier
	SeedEnabled bool
}

func NewRegistry(opts RegistryOptions) *Registry {
	if opts.Logger == nil {
		opts.Logger = logger.Discard()
	}
	if opts.Clock == nil {
		opts.Clock = utils.NewClock("")
	}
	cache := NewCache(opts.Redis)
	audit := NewAuditService(opts.DB)

	r := &Registry{
		Cache:    cache,
		Filters:  NewListStateStore(cache),
		Audit:    audit,
		Uploader: opts.Uploader,
		Clock:    opts.Clock,
		Logger:   opts.Logger,
	}
	r.Buildings = NewBuildingService(BuildingServiceOptions{DB: opts.DB, Cache: cache, Audit: audit, Logger: opts.Logger})
	r.Customers = NewCustomerService(CustomerServiceOptions{DB: opts.DB, Cache: cache, Audit: audit, Logger: opts.Logger})
	r.Contracts = NewContractService(ContractServiceOptions{DB: opts.DB, Cache: cache, Audit: audit, Uploader: opts.Uploader, Logger: opts.Logger})
	r.Stats = NewStatsService(StatsServiceOptions{Buildings: r.Buildings, Customers: r.Customers, Contracts: r.Contracts, Clock: opts.Clock})
	r.Auth = NewAuthService(AuthServiceOptions{
		DB:     opts.DB,
		Tokens: opts.Tokens,
		Store:  NewTokenStore(opts.Redis),
		Audit:  audit,
		Google: opts.Google,
		Logger: opts.Logger,
	})
	r.Seed = NewSeedService(SeedServiceOptions{DB: opts.DB, Cache: cache, Audit: audit, Clock: opts.Clock, Enabled: opts.SeedEnabled, Logger: opts.Logger})
	return r
}
