package controllers

import (
	"mime/multipart"
	"strconv"
	"strings"

	"leasedesk/dto"
	"leasedesk/response"
	"leasedesk/services"
	"leasedesk/services/listing"
	"leasedesk/validator"

	json "github.com/goccy/go-json"
	"github.com/gin-gonic/gin"
)

func uintStrings(ids ...uint) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, strconv.FormatUint(uint64(id), 10))
	}
	return out
}

var contractListSpec = listing.Spec[dto.ContractListItem]{
	SearchFields: func(ct dto.ContractListItem) []string { return []string{ct.ContractNo, ct.CustomerName} },
	Facets: map[string]func(dto.ContractListItem) []string{
		"status":   func(ct dto.ContractListItem) []string { return []string{ct.Status} },
		"customer": func(ct dto.ContractListItem) []string { return uintStrings(ct.CustomerID) },
		"building": func(ct dto.ContractListItem) []string { return uintStrings(ct.BuildingIDs...) },
	},
	Sorters: map[string]func(a, b dto.ContractListItem) int{
		"contractNo":   func(a, b dto.ContractListItem) int { return listing.CompareStrings(a.ContractNo, b.ContractNo) },
		"customerName": func(a, b dto.ContractListItem) int { return listing.CompareStrings(a.CustomerName, b.CustomerName) },
		"status":       func(a, b dto.ContractListItem) int { return listing.CompareStrings(a.Status, b.Status) },
		"startDate":    func(a, b dto.ContractListItem) int { return a.StartDate.Compare(b.StartDate.Time) },
		"endDate":      func(a, b dto.ContractListItem) int { return a.EndDate.Compare(b.EndDate.Time) },
		"daysLeft":     func(a, b dto.ContractListItem) int { return listing.CompareNumbers(a.DaysLeft, b.DaysLeft) },
		"currentRent":  func(a, b dto.ContractListItem) int { return listing.CompareNumbers(a.CurrentRent, b.CurrentRent) },
		"totalArea":    func(a, b dto.ContractListItem) int { return listing.CompareNumbers(a.TotalArea, b.TotalArea) },
		"id":           func(a, b dto.ContractListItem) int { return listing.CompareNumbers(a.ID, b.ID) },
	},
}

type ContractController struct {
	contracts *services.ContractService
	stats     *services.StatsService
	filters   *services.ListStateStore
}

func NewContractController(contracts *services.ContractService, stats *services.StatsService, filters *services.ListStateStore) ContractController {
	return ContractController{contracts: contracts, stats: stats, filters: filters}
}

// GetContracts godoc
// @Summary Danh sách hợp đồng
// @Tags contracts
// @Param search query string false "Số hợp đồng hoặc tên khách hàng"
// @Param status query string false "active,expiring"
// @Param customer query string false "ID khách hàng"
// @Param building query string false "ID tòa nhà"
// @Param sort query string false "endDate,-currentRent"
// @Param page query int false "Trang (bắt đầu từ 0)"
// @Success 200 {object} response.Response
// @Router /contracts [get]
func (cc ContractController) GetContracts(c *gin.Context) {
	contracts, err := cc.contracts.ListAll(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	today := cc.stats.Today()
	items := make([]dto.ContractListItem, 0, len(contracts))
	for _, ct := range contracts {
		items = append(items, services.ToListItem(ct, today))
	}
	q := listQuery(c, cc.filters, "contracts", "status", "customer", "building")
	respondList(c, listing.Apply(items, contractListSpec, q))
}

// GetContractDetail godoc
// @Summary Chi tiết hợp đồng kèm mặt bằng, bậc giá và tài liệu
// @Tags contracts
// @Param id path int true "ID hợp đồng"
// @Success 200 {object} response.Response
// @Router /contracts/{id} [get]
func (cc ContractController) GetContractDetail(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	ct, err := cc.contracts.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, services.ToResponse(ct, cc.stats.Today()))
}

// CreateContract godoc
// @Summary Tạo hợp đồng
// @Description multipart/form-data: trường data là JSON CreateContractRequest, documents là các file đính kèm. Cũng nhận JSON thuần.
// @Tags contracts
// @Accept json,mpfd
// @Success 201 {object} response.Response
// @Router /contracts [post]
func (cc ContractController) CreateContract(c *gin.Context) {
	var req dto.CreateContractRequest
	files, closeFiles, ok := bindContract(c, &req)
	if !ok {
		return
	}
	defer closeFiles()

	ct, err := cc.contracts.Create(c.Request.Context(), req, files)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, services.ToResponse(ct, cc.stats.Today()))
}

// UpdateContract godoc
// @Summary Cập nhật hợp đồng, thay toàn bộ mặt bằng nếu có units, thêm tài liệu mới
// @Tags contracts
// @Accept json,mpfd
// @Param id path int true "ID hợp đồng"
// @Success 200 {object} response.Response
// @Router /contracts/{id} [patch]
func (cc ContractController) UpdateContract(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.UpdateContractRequest
	files, closeFiles, ok := bindContract(c, &req)
	if !ok {
		return
	}
	defer closeFiles()

	ct, err := cc.contracts.Update(c.Request.Context(), id, req, files)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, services.ToResponse(ct, cc.stats.Today()))
}

func (cc ContractController) DeleteContract(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := cc.contracts.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, nil)
}

// bindContract đọc request dạng multipart (data + documents) hoặc JSON
func bindContract(c *gin.Context, req interface{}) ([]services.UploadFile, func(), bool) {
	noop := func() {}
	if !strings.HasPrefix(c.ContentType(), "multipart/") {
		if err := c.ShouldBindJSON(req); err != nil {
			bindError(c, err)
			return nil, noop, false
		}
		return nil, noop, true
	}

	form, err := c.MultipartForm()
	if err != nil {
		response.BadRequest(c, "Form không hợp lệ")
		return nil, noop, false
	}
	data := ""
	if vals := form.Value["data"]; len(vals) > 0 {
		data = vals[0]
	}
	if strings.TrimSpace(data) == "" {
		response.BadRequest(c, "Thiếu trường data")
		return nil, noop, false
	}
	if err := json.Unmarshal([]byte(data), req); err != nil {
		response.BadRequest(c, "Trường data không phải JSON hợp lệ")
		return nil, noop, false
	}
	if err := validator.Struct(req); err != nil {
		response.FromError(c, err)
		return nil, noop, false
	}
	return openFiles(c, form.File["documents"])
}

func openFiles(c *gin.Context, headers []*multipart.FileHeader) ([]services.UploadFile, func(), bool) {
	var opened []multipart.File
	closeAll := func() {
		for _, f := range opened {
			f.Close()
		}
	}
	files := make([]services.UploadFile, 0, len(headers))
	for _, h := range headers {
		f, err := h.Open()
		if err != nil {
			closeAll()
			response.BadRequest(c, "Không đọc được file "+h.Filename)
			return nil, func() {}, false
		}
		opened = append(opened, f)
		files = append(files, services.UploadFile{Name: h.Filename, Reader: f})
	}
	return files, closeAll, true
}
