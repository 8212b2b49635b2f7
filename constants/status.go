package constants

// Trạng thái hợp đồng
const (
	ContractStatusDraft      = "draft"
	ContractStatusActive     = "active"
	ContractStatusExpiring   = "expiring"
	ContractStatusExpired    = "expired"
	ContractStatusTerminated = "terminated"
	ContractStatusCancelled  = "cancelled"
)

var ContractStatuses = []string{
	ContractStatusDraft,
	ContractStatusActive,
	ContractStatusExpiring,
	ContractStatusExpired,
	ContractStatusTerminated,
	ContractStatusCancelled,
}

// Loại khách hàng
const (
	CustomerTypeCorporate  = "corporate"
	CustomerTypeIndividual = "individual"
)

// Hành động audit
const (
	AuditActionCreate = "create"
	AuditActionUpdate = "update"
	AuditActionDelete = "delete"
	AuditActionLogin  = "login"
	AuditActionSeed   = "seed"
	AuditActionReset  = "reset"
	AuditActionStatus = "status"
)

// Loại đối tượng audit
const (
	EntityBuilding = "building"
	EntityCustomer = "customer"
	EntityContract = "contract"
	EntityUser     = "user"
	EntitySystem   = "system"
)

// User role
const (
	RoleAdmin = 1
	RoleStaff = 2
)

// Phân trang
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
	DefaultAudit    = 50
	MaxAudit        = 500
)

// Ngưỡng cảnh báo hết hạn (ngày)
const (
	ExpiryBucket30 = 30
	ExpiryBucket60 = 60
	ExpiryBucket90 = 90
)

const DateLayout = "2006-01-02"
