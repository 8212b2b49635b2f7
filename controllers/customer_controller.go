package controllers

import (
	"leasedesk/dto"
	"leasedesk/models"
	"leasedesk/response"
	"leasedesk/services"
	"leasedesk/services/listing"

	"github.com/gin-gonic/gin"
)

var customerListSpec = listing.Spec[models.Customer]{
	SearchFields: func(cu models.Customer) []string {
		return []string{cu.Name, cu.TaxID, cu.ContactName, cu.ContactPhone, cu.ContactEmail}
	},
	Facets: map[string]func(models.Customer) []string{
		"type": func(cu models.Customer) []string { return []string{cu.Type} },
	},
	Sorters: map[string]func(a, b models.Customer) int{
		"name":      func(a, b models.Customer) int { return listing.CompareStrings(a.Name, b.Name) },
		"taxId":     func(a, b models.Customer) int { return listing.CompareStrings(a.TaxID, b.TaxID) },
		"type":      func(a, b models.Customer) int { return listing.CompareStrings(a.Type, b.Type) },
		"createdAt": func(a, b models.Customer) int { return a.CreatedAt.Compare(b.CreatedAt) },
		"id":        func(a, b models.Customer) int { return listing.CompareNumbers(a.ID, b.ID) },
	},
}

type CustomerController struct {
	customers *services.CustomerService
	filters   *services.ListStateStore
}

func NewCustomerController(customers *services.CustomerService, filters *services.ListStateStore) CustomerController {
	return CustomerController{customers: customers, filters: filters}
}

// GetCustomers godoc
// @Summary Danh sách khách hàng
// @Tags customers
// @Param search query string false "Từ khóa"
// @Param type query string false "corporate,individual"
// @Success 200 {object} response.Response
// @Router /customers [get]
func (cc CustomerController) GetCustomers(c *gin.Context) {
	customers, err := cc.customers.List(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	q := listQuery(c, cc.filters, "customers", "type")
	respondList(c, listing.Apply(customers, customerListSpec, q))
}

func (cc CustomerController) GetCustomerDetail(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	cu, err := cc.customers.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, cu)
}

// CreateCustomer godoc
// @Summary Tạo khách hàng, kèm cảnh báo khách hàng có tên gần giống
// @Tags customers
// @Param body body dto.CreateCustomerRequest true "Khách hàng"
// @Success 201 {object} response.Response
// @Router /customers [post]
func (cc CustomerController) CreateCustomer(c *gin.Context) {
	var req dto.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	created, err := cc.customers.Create(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, created)
}

func (cc CustomerController) UpdateCustomer(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	cu, err := cc.customers.Update(c.Request.Context(), id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, cu)
}

func (cc CustomerController) DeleteCustomer(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := cc.customers.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, nil)
}
