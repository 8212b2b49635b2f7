package validator

import (
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"

	"leasedesk/constants"
	"leasedesk/errors"
	"leasedesk/models"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
	ginOnce      sync.Once
)

var customRules = map[string]validator.Func{
	"contractstatus": func(fl validator.FieldLevel) bool {
		return slices.Contains(constants.ContractStatuses, fl.Field().String())
	},
	"customertype": func(fl validator.FieldLevel) bool {
		v := fl.Field().String()
		return v == constants.CustomerTypeCorporate || v == constants.CustomerTypeIndividual
	},
	"auditaction": func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case constants.AuditActionCreate, constants.AuditActionUpdate, constants.AuditActionDelete,
			constants.AuditActionLogin, constants.AuditActionSeed, constants.AuditActionReset,
			constants.AuditActionStatus:
			return true
		}
		return false
	},
}

func register(v *validator.Validate) {
	for tag, fn := range customRules {
		_ = v.RegisterValidation(tag, fn)
	}
}

// Instance trả về validator dùng chung có sẵn các rule riêng
func Instance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		register(validate)
	})
	return validate
}

// RegisterGin đăng ký các rule riêng vào validator của gin binding
func RegisterGin() {
	ginOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			register(v)
		}
	})
}

// Struct validate s bằng tag `validate`
func Struct(s interface{}) error {
	if err := Instance().Struct(s); err != nil {
		return errors.NewAppError(errors.ErrCodeValidation, Message(err), err)
	}
	return nil
}

// Message chuyển lỗi validator thành câu dễ đọc
func Message(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return "Dữ liệu không hợp lệ"
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s không hợp lệ (%s)", fe.Field(), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}

// ValidateBuilding validate thông tin tòa nhà
func ValidateBuilding(b *models.Building) error {
	if strings.TrimSpace(b.Name) == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Tên tòa nhà không được để trống", nil)
	}
	if strings.TrimSpace(b.Code) == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Mã tòa nhà không được để trống", nil)
	}
	if b.TotalFloors < 0 {
		return errors.NewAppError(errors.ErrCodeValidation, "Số tầng không được âm", nil)
	}
	if b.RentableArea < 0 {
		return errors.NewAppError(errors.ErrCodeValidation, "Diện tích cho thuê không được âm", nil)
	}
	return nil
}

// ValidateCustomer validate thông tin khách hàng
func ValidateCustomer(c *models.Customer) error {
	if strings.TrimSpace(c.Name) == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Tên khách hàng không được để trống", nil)
	}
	if c.Type != constants.CustomerTypeCorporate && c.Type != constants.CustomerTypeIndividual {
		return errors.NewAppError(errors.ErrCodeValidation, "Loại khách hàng không hợp lệ", nil)
	}
	if c.ContactEmail != "" {
		if err := Instance().Var(c.ContactEmail, "email"); err != nil {
			return errors.NewAppError(errors.ErrCodeValidation, "Email liên hệ không hợp lệ", err)
		}
	}
	return nil
}

// ValidateContract validate hợp đồng cùng các mặt bằng và bậc giá.
// Bậc giá của một mặt bằng được sắp theo ngày bắt đầu và không được chồng lấn.
func ValidateContract(c *models.Contract) error {
	if strings.TrimSpace(c.ContractNo) == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Số hợp đồng không được để trống", nil)
	}
	if c.CustomerID == 0 {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Khách hàng không được để trống", nil)
	}
	if c.StartDate.IsZero() || c.EndDate.IsZero() {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Ngày bắt đầu và ngày kết thúc không được để trống", nil)
	}
	if c.EndDate.Before(c.StartDate) {
		return errors.NewAppError(errors.ErrCodeValidation, "Ngày kết thúc phải sau ngày bắt đầu", nil)
	}
	if !slices.Contains(constants.ContractStatuses, c.Status) {
		return errors.NewAppError(errors.ErrCodeInvalidStatus, "Trạng thái hợp đồng không hợp lệ", nil)
	}
	if c.DepositAmount < 0 {
		return errors.NewAppError(errors.ErrCodeInvalidAmount, "Tiền đặt cọc không được âm", nil)
	}
	for i := range c.Units {
		if err := validateUnit(i, &c.Units[i]); err != nil {
			return err
		}
	}
	return nil
}

func validateUnit(idx int, u *models.ContractUnit) error {
	if _, ok := u.ResolvedBuildingID(); !ok {
		return errors.NewAppError(errors.ErrCodeRequiredField, fmt.Sprintf("Mặt bằng #%d chưa chọn tòa nhà", idx+1), nil)
	}
	if u.AreaSqm <= 0 {
		return errors.NewAppError(errors.ErrCodeValidation, fmt.Sprintf("Diện tích mặt bằng #%d phải lớn hơn 0", idx+1), nil)
	}
	SortPeriods(u.Periods)
	for j, p := range u.Periods {
		if p.StartDate.IsZero() || p.EndDate.IsZero() {
			return errors.NewAppError(errors.ErrCodeInvalidPeriod, fmt.Sprintf("Bậc giá #%d của mặt bằng #%d thiếu ngày", j+1, idx+1), nil)
		}
		if p.EndDate.Before(p.StartDate) {
			return errors.NewAppError(errors.ErrCodeInvalidPeriod, fmt.Sprintf("Bậc giá #%d của mặt bằng #%d có ngày kết thúc trước ngày bắt đầu", j+1, idx+1), nil)
		}
		if p.RentAmount < 0 || p.ServiceFee < 0 {
			return errors.NewAppError(errors.ErrCodeInvalidAmount, fmt.Sprintf("Bậc giá #%d của mặt bằng #%d có số tiền âm", j+1, idx+1), nil)
		}
		if j > 0 && !p.StartDate.After(u.Periods[j-1].EndDate) {
			return errors.NewAppError(errors.ErrCodeInvalidPeriod, fmt.Sprintf("Bậc giá #%d và #%d của mặt bằng #%d bị chồng lấn", j, j+1, idx+1), nil)
		}
	}
	return nil
}

// SortPeriods sắp bậc giá theo ngày bắt đầu, giữ thứ tự khi trùng ngày
func SortPeriods(periods []models.RentPeriod) {
	sort.SliceStable(periods, func(i, j int) bool {
		return periods[i].StartDate.Before(periods[j].StartDate)
	})
}
