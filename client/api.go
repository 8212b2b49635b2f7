package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"leasedesk/dto"
	"leasedesk/models"
	"leasedesk/response"
	"leasedesk/types"

	json "github.com/goccy/go-json"
)

// Page là một trang kết quả danh sách
type Page[T any] struct {
	Items      []T
	Pagination response.Pagination
}

// ListOptions là tham số danh sách. Page bắt đầu từ 0.
type ListOptions struct {
	Search string
	// Sort dạng "name" hoặc "-endDate" (giảm dần)
	Sort    []string
	Page    int
	Limit   int
	Filters map[string][]string
}

func (o ListOptions) values() url.Values {
	v := url.Values{}
	if o.Search != "" {
		v.Set("search", o.Search)
	}
	if len(o.Sort) > 0 {
		v.Set("sort", strings.Join(o.Sort, ","))
	}
	if o.Page > 0 {
		v.Set("page", strconv.Itoa(o.Page))
	}
	if o.Limit > 0 {
		v.Set("limit", strconv.Itoa(o.Limit))
	}
	for name, vals := range o.Filters {
		if len(vals) > 0 {
			v.Set(name, strings.Join(vals, ","))
		}
	}
	return v
}

// Document là file đính kèm hợp đồng, đọc sẵn vào bộ nhớ để có thể gửi lại khi retry
type Document struct {
	Name    string
	Content []byte
}

func ReadDocument(name string, r io.Reader) (Document, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return Document{}, err
	}
	return Document{Name: name, Content: b}, nil
}

// Các prefix cache bị ảnh hưởng khi ghi từng loại đối tượng
var (
	buildingDeps = []string{"/buildings", "/stats"}
	customerDeps = []string{"/customers", "/contracts", "/alerts", "/stats"}
	contractDeps = []string{"/contracts", "/buildings", "/alerts", "/stats"}
)

func list[T any](ctx context.Context, c *Client, path string, opts ListOptions) (Page[T], error) {
	var page Page[T]
	pag, err := c.get(ctx, path, opts.values(), &page.Items)
	if err != nil {
		return Page[T]{}, err
	}
	if pag != nil {
		page.Pagination = *pag
	} else {
		page.Pagination = response.Pagination{Total: len(page.Items), Limit: len(page.Items)}
	}
	return page, nil
}

func itemPath(base string, id uint) string {
	return fmt.Sprintf("%s/%d", base, id)
}

// Auth

// Login đăng nhập và lưu token vào session
func (c *Client) Login(ctx context.Context, email, password string) (dto.TokenResponse, error) {
	r, err := jsonRequest(http.MethodPost, "/auth/login", dto.LoginInput{Email: email, Password: password})
	if err != nil {
		return dto.TokenResponse{}, err
	}
	r.auth = false
	body, err := c.send(ctx, r)
	if err != nil {
		return dto.TokenResponse{}, err
	}
	var out dto.TokenResponse
	if err := decode(body, &out); err != nil {
		return dto.TokenResponse{}, err
	}
	c.cache.clear()
	c.session.SetTokens(Tokens{AccessToken: out.AccessToken, RefreshToken: out.RefreshToken})
	return out, nil
}

// Refresh chủ động đổi refresh token lấy cặp token mới
func (c *Client) Refresh(ctx context.Context) error {
	refresh := c.session.Tokens().RefreshToken
	if refresh == "" {
		return ErrNotLoggedIn
	}
	_, err := c.exchange(ctx, refresh)
	return err
}

// Logout thu hồi refresh token phía server rồi xóa session, kể cả khi server lỗi
func (c *Client) Logout(ctx context.Context) error {
	refresh := c.session.Tokens().RefreshToken
	defer c.expire()
	if refresh == "" {
		return nil
	}
	r, err := jsonRequest(http.MethodDelete, "/auth/logout", dto.RefreshInput{RefreshToken: refresh})
	if err != nil {
		return err
	}
	r.auth = false
	_, err = c.send(ctx, r)
	return err
}

// Buildings

func (c *Client) ListBuildings(ctx context.Context, opts ListOptions) (Page[dto.BuildingResponse], error) {
	return list[dto.BuildingResponse](ctx, c, "/buildings", opts)
}

func (c *Client) BuildingStats(ctx context.Context) (dto.BuildingStats, error) {
	var out dto.BuildingStats
	_, err := c.get(ctx, "/buildings/stats", nil, &out)
	return out, err
}

func (c *Client) CreateBuilding(ctx context.Context, req dto.CreateBuildingRequest) (models.Building, error) {
	var out models.Building
	r, err := jsonRequest(http.MethodPost, "/buildings", req)
	if err != nil {
		return out, err
	}
	err = c.mutate(ctx, r, &out, buildingDeps...)
	return out, err
}

func (c *Client) UpdateBuilding(ctx context.Context, id uint, req dto.UpdateBuildingRequest) (models.Building, error) {
	var out models.Building
	r, err := jsonRequest(http.MethodPatch, itemPath("/buildings", id), req)
	if err != nil {
		return out, err
	}
	err = c.mutate(ctx, r, &out, buildingDeps...)
	return out, err
}

func (c *Client) DeleteBuilding(ctx context.Context, id uint) error {
	r, _ := jsonRequest(http.MethodDelete, itemPath("/buildings", id), nil)
	return c.mutate(ctx, r, nil, buildingDeps...)
}

// Customers

func (c *Client) ListCustomers(ctx context.Context, opts ListOptions) (Page[models.Customer], error) {
	return list[models.Customer](ctx, c, "/customers", opts)
}

func (c *Client) CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest) (dto.CustomerCreated, error) {
	var out dto.CustomerCreated
	r, err := jsonRequest(http.MethodPost, "/customers", req)
	if err != nil {
		return out, err
	}
	err = c.mutate(ctx, r, &out, customerDeps...)
	return out, err
}

func (c *Client) UpdateCustomer(ctx context.Context, id uint, req dto.UpdateCustomerRequest) (models.Customer, error) {
	var out models.Customer
	r, err := jsonRequest(http.MethodPatch, itemPath("/customers", id), req)
	if err != nil {
		return out, err
	}
	err = c.mutate(ctx, r, &out, customerDeps...)
	return out, err
}

func (c *Client) DeleteCustomer(ctx context.Context, id uint) error {
	r, _ := jsonRequest(http.MethodDelete, itemPath("/customers", id), nil)
	return c.mutate(ctx, r, nil, customerDeps...)
}

// Contracts

func (c *Client) ListContracts(ctx context.Context, opts ListOptions) (Page[dto.ContractListItem], error) {
	return list[dto.ContractListItem](ctx, c, "/contracts", opts)
}

func (c *Client) GetContract(ctx context.Context, id uint) (dto.ContractResponse, error) {
	var out dto.ContractResponse
	_, err := c.get(ctx, itemPath("/contracts", id), nil, &out)
	return out, err
}

// CreateContract gửi multipart: trường data là JSON của req, documents là các file
func (c *Client) CreateContract(ctx context.Context, req dto.CreateContractRequest, docs ...Document) (dto.ContractResponse, error) {
	var out dto.ContractResponse
	r, err := multipartRequest(http.MethodPost, "/contracts", req, docs)
	if err != nil {
		return out, err
	}
	err = c.mutate(ctx, r, &out, contractDeps...)
	return out, err
}

func (c *Client) UpdateContract(ctx context.Context, id uint, req dto.UpdateContractRequest, docs ...Document) (dto.ContractResponse, error) {
	var out dto.ContractResponse
	r, err := multipartRequest(http.MethodPatch, itemPath("/contracts", id), req, docs)
	if err != nil {
		return out, err
	}
	err = c.mutate(ctx, r, &out, contractDeps...)
	return out, err
}

func (c *Client) DeleteContract(ctx context.Context, id uint) error {
	r, _ := jsonRequest(http.MethodDelete, itemPath("/contracts", id), nil)
	return c.mutate(ctx, r, nil, contractDeps...)
}

func multipartRequest(method, path string, payload interface{}, docs []Document) (request, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return request{}, err
	}
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.WriteField("data", string(data)); err != nil {
		return request{}, err
	}
	for _, d := range docs {
		part, err := w.CreateFormFile("documents", d.Name)
		if err != nil {
			return request{}, err
		}
		if _, err := part.Write(d.Content); err != nil {
			return request{}, err
		}
	}
	if err := w.Close(); err != nil {
		return request{}, err
	}
	return request{method: method, path: path, body: buf.Bytes(), contentType: w.FormDataContentType(), auth: true}, nil
}

// Reports

func (c *Client) ListAudit(ctx context.Context, action string, limit int) ([]models.AuditLog, error) {
	q := url.Values{}
	if action != "" {
		q.Set("action", action)
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var out []models.AuditLog
	_, err := c.get(ctx, "/audit", q, &out)
	return out, err
}

func (c *Client) Alerts(ctx context.Context) ([]dto.Alert, error) {
	var out []dto.Alert
	_, err := c.get(ctx, "/alerts", nil, &out)
	return out, err
}

func (c *Client) Dashboard(ctx context.Context) (dto.DashboardStats, error) {
	var out dto.DashboardStats
	_, err := c.get(ctx, "/stats/dashboard", nil, &out)
	return out, err
}

func (c *Client) Revenue(ctx context.Context, from, to types.Date) (dto.RevenueStats, error) {
	q := url.Values{}
	if !from.IsZero() {
		q.Set("from", from.String())
	}
	if !to.IsZero() {
		q.Set("to", to.String())
	}
	var out dto.RevenueStats
	_, err := c.get(ctx, "/stats/revenue", q, &out)
	return out, err
}

// Seed

func (c *Client) Seed(ctx context.Context) (dto.SeedResult, error) {
	var out dto.SeedResult
	r, _ := jsonRequest(http.MethodPost, "/seed", nil)
	if err := c.mutate(ctx, r, &out); err != nil {
		return out, err
	}
	c.cache.clear()
	return out, nil
}

func (c *Client) ResetSeed(ctx context.Context) error {
	r, _ := jsonRequest(http.MethodPost, "/seed/reset", nil)
	if err := c.mutate(ctx, r, nil); err != nil {
		return err
	}
	c.cache.clear()
	return nil
}
