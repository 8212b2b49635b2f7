// Package client là client Go cho REST API của leasedesk.
//
// Mọi request mang Authorization: Bearer. Khi gặp 401, client refresh đúng
// một lần rồi thử lại request gốc một lần. GET giống nhau chạy đồng thời được
// gộp lại và kết quả được cache đến khi có thao tác ghi liên quan.
package client

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"strings"
	"time"

	"leasedesk/dto"
	"leasedesk/response"
	"leasedesk/validator"

	json "github.com/goccy/go-json"
	"golang.org/x/sync/singleflight"
)

const defaultTimeout = 30 * time.Second

type Client struct {
	baseURL string
	http    *http.Client
	session *Session
	cache   *responseCache
	reads   singleflight.Group
	refresh singleflight.Group
}

type Options struct {
	// BaseURL gồm cả /api/v1, ví dụ http://localhost:8083/api/v1
	BaseURL    string
	HTTPClient *http.Client
	Session    *Session
}

func New(opts Options) *Client {
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: defaultTimeout}
	}
	if opts.Session == nil {
		opts.Session = &Session{}
	}
	return &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		http:    opts.HTTPClient,
		session: opts.Session,
		cache:   newResponseCache(),
	}
}

func (c *Client) Session() *Session {
	return c.session
}

type request struct {
	method      string
	path        string
	query       url.Values
	body        []byte
	contentType string
	auth        bool
}

func jsonRequest(method, path string, payload interface{}) (request, error) {
	r := request{method: method, path: path, auth: true}
	if payload == nil {
		return r, nil
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return r, err
	}
	r.body = body
	r.contentType = "application/json"
	return r, nil
}

// send thực hiện request, refresh và thử lại một lần khi gặp 401
func (c *Client) send(ctx context.Context, r request) ([]byte, error) {
	access := c.session.Tokens().AccessToken
	if r.auth && access == "" && c.session.Tokens().RefreshToken == "" {
		return nil, ErrNotLoggedIn
	}

	body, status, err := c.roundTrip(ctx, r, access)
	if err != nil {
		return nil, err
	}
	if status == http.StatusUnauthorized && r.auth {
		if err := c.refreshOnce(ctx, access); err != nil {
			return nil, err
		}
		body, status, err = c.roundTrip(ctx, r, c.session.Tokens().AccessToken)
		if err != nil {
			return nil, err
		}
		if status == http.StatusUnauthorized {
			c.expire()
			return nil, ErrSessionExpired
		}
	}
	if status < 200 || status >= 300 {
		return nil, &APIError{Status: status, Message: errorMessage(body, status)}
	}
	return body, nil
}

func (c *Client) roundTrip(ctx context.Context, r request, access string) ([]byte, int, error) {
	u := c.baseURL + r.path
	if len(r.query) > 0 {
		u += "?" + r.query.Encode()
	}
	var reader io.Reader
	if r.body != nil {
		reader = bytes.NewReader(r.body)
	}
	req, err := http.NewRequestWithContext(ctx, r.method, u, reader)
	if err != nil {
		return nil, 0, &TransportError{Op: r.method + " " + r.path, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	if r.auth && access != "" {
		req.Header.Set("Authorization", "Bearer "+access)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, &TransportError{Op: r.method + " " + r.path, Err: err}
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, &TransportError{Op: "read " + r.path, Err: err}
	}
	return body, resp.StatusCode, nil
}

// refreshOnce gộp các lần refresh đồng thời. stale là access token đã bị từ chối:
// nếu session đã có token khác thì request khác đã refresh xong.
func (c *Client) refreshOnce(ctx context.Context, stale string) error {
	_, err, _ := c.refresh.Do("refresh", func() (interface{}, error) {
		tokens := c.session.Tokens()
		if tokens.AccessToken != "" && tokens.AccessToken != stale {
			return nil, nil
		}
		if tokens.RefreshToken == "" {
			c.expire()
			return nil, ErrSessionExpired
		}
		_, err := c.exchange(ctx, tokens.RefreshToken)
		return nil, err
	})
	return err
}

// exchange gọi /auth/refresh. Lỗi từ backend xóa session.
func (c *Client) exchange(ctx context.Context, refreshToken string) (Tokens, error) {
	r, err := jsonRequest(http.MethodPost, "/auth/refresh", map[string]string{"refreshToken": refreshToken})
	if err != nil {
		return Tokens{}, err
	}
	r.auth = false
	body, err := c.send(ctx, r)
	if err != nil {
		var te *TransportError
		if errors.As(err, &te) {
			return Tokens{}, err
		}
		c.expire()
		return Tokens{}, ErrSessionExpired
	}
	var out dto.TokenResponse
	if err := decode(body, &out); err != nil {
		c.expire()
		return Tokens{}, ErrSessionExpired
	}
	tokens := Tokens{AccessToken: out.AccessToken, RefreshToken: out.RefreshToken}
	c.session.SetTokens(tokens)
	return tokens, nil
}

func (c *Client) expire() {
	c.session.Clear()
	c.cache.clear()
}

// get đọc qua cache, các GET cùng key đang chạy được gộp thành một
func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) (*response.Pagination, error) {
	key := path
	if q := query.Encode(); q != "" {
		key += "?" + q
	}
	if body, ok := c.cache.get(key); ok {
		return decodePage(body, out)
	}

	gen := c.cache.generation()
	v, err, _ := c.reads.Do(key, func() (interface{}, error) {
		return c.send(ctx, request{method: http.MethodGet, path: path, query: query, auth: true})
	})
	if err != nil {
		return nil, err
	}
	body := v.([]byte)
	pag, err := decodePage(body, out)
	if err != nil {
		return nil, err
	}
	c.cache.put(key, gen, body)
	return pag, nil
}

// mutate gửi request ghi rồi xóa cache theo các prefix
func (c *Client) mutate(ctx context.Context, r request, out interface{}, invalidate ...string) error {
	body, err := c.send(ctx, r)
	if err != nil {
		return err
	}
	c.cache.invalidate(append(invalidate, "/audit")...)
	if out == nil {
		return nil
	}
	return decode(body, out)
}

// unwrap trả về phần data của envelope {code, mess, data, pagination} hoặc cả body nếu không có envelope
func unwrap(body []byte) ([]byte, *response.Pagination, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return trimmed, nil, nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return nil, nil, malformed("invalid json: %v", err)
	}
	data, hasData := fields["data"]
	_, hasMess := fields["mess"]
	if !hasData && !hasMess {
		return trimmed, nil, nil
	}
	var pag *response.Pagination
	if raw, ok := fields["pagination"]; ok && !isNull(raw) {
		pag = &response.Pagination{}
		if err := json.Unmarshal(raw, pag); err != nil {
			return nil, nil, malformed("invalid pagination: %v", err)
		}
	}
	return data, pag, nil
}

func isNull(b []byte) bool {
	b = bytes.TrimSpace(b)
	return len(b) == 0 || string(b) == "null"
}

func decode(body []byte, out interface{}) error {
	_, err := decodePage(body, out)
	return err
}

func decodePage(body []byte, out interface{}) (*response.Pagination, error) {
	data, pag, err := unwrap(body)
	if err != nil {
		return nil, err
	}
	if isNull(data) {
		if !emptySlice(out) {
			return nil, malformed("missing data")
		}
		return pag, nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return nil, malformed("%v", err)
	}
	emptySlice(out)
	if err := validatePayload(reflect.ValueOf(out)); err != nil {
		return nil, err
	}
	return pag, nil
}

// emptySlice đổi slice nil thành slice rỗng: danh sách rỗng không phải lỗi.
// Trả về false nếu out không phải con trỏ tới slice.
func emptySlice(out interface{}) bool {
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return false
	}
	el := rv.Elem()
	if el.Kind() != reflect.Slice {
		return false
	}
	if el.IsNil() {
		el.Set(reflect.MakeSlice(el.Type(), 0, 0))
	}
	return true
}

func validatePayload(rv reflect.Value) error {
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Struct:
		if err := validator.Instance().Struct(rv.Interface()); err != nil {
			return malformed("%s", validator.Message(err))
		}
	case reflect.Slice:
		for i := 0; i < rv.Len(); i++ {
			if err := validatePayload(rv.Index(i)); err != nil {
				return err
			}
		}
	}
	return nil
}

func errorMessage(body []byte, status int) string {
	var env struct {
		Mess string `json:"mess"`
	}
	if err := json.Unmarshal(body, &env); err == nil && env.Mess != "" {
		return env.Mess
	}
	if text := strings.TrimSpace(string(body)); text != "" && len(text) < 200 {
		return text
	}
	return http.StatusText(status)
}
