package services

import (
	"context"
	"sync"
	"time"

	"leasedesk/errors"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

type UserInfo struct {
	UserId uint `json:"userid"`
	Role   int  `json:"role"`
}

type Claims struct {
	UserInfo UserInfo `json:"userinfo"`
	Type     string   `json:"typ"`
	jwt.StandardClaims
}

// TokenManager ký và kiểm tra access/refresh token (HS256)
type TokenManager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

type TokenManagerOptions struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

func NewTokenManager(opts TokenManagerOptions) *TokenManager {
	if opts.AccessTTL <= 0 {
		opts.AccessTTL = 15 * time.Minute
	}
	if opts.RefreshTTL <= 0 {
		opts.RefreshTTL = 7 * 24 * time.Hour
	}
	return &TokenManager{
		accessSecret:  []byte(opts.AccessSecret),
		refreshSecret: []byte(opts.RefreshSecret),
		accessTTL:     opts.AccessTTL,
		refreshTTL:    opts.RefreshTTL,
	}
}

func (m *TokenManager) AccessTTL() time.Duration  { return m.accessTTL }
func (m *TokenManager) RefreshTTL() time.Duration { return m.refreshTTL }

// GenerateToken tạo token, trả về chuỗi token và jti
func (m *TokenManager) GenerateToken(userInfo UserInfo, isAccessToken bool) (string, string, error) {
	ttl, secret, typ := m.refreshTTL, m.refreshSecret, tokenTypeRefresh
	if isAccessToken {
		ttl, secret, typ = m.accessTTL, m.accessSecret, tokenTypeAccess
	}
	now := jwt.TimeFunc()
	claims := &Claims{
		UserInfo: userInfo,
		Type:     typ,
		StandardClaims: jwt.StandardClaims{
			Id:        uuid.NewString(),
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(ttl).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", "", err
	}
	return signed, claims.Id, nil
}

// ParseToken kiểm tra chữ ký, hạn dùng và loại token
func (m *TokenManager) ParseToken(tokenString string, isAccessToken bool) (*Claims, error) {
	secret, typ := m.refreshSecret, tokenTypeRefresh
	if isAccessToken {
		secret, typ = m.accessSecret, tokenTypeAccess
	}
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.NewAppError(errors.ErrCodeInvalidToken, "Thuật toán ký không hợp lệ", nil)
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.NewAppError(errors.ErrCodeInvalidToken, "Token không hợp lệ", err)
	}
	if claims.Type != typ || claims.UserInfo.UserId == 0 {
		return nil, errors.NewAppError(errors.ErrCodeInvalidToken, "Token không hợp lệ", nil)
	}
	return claims, nil
}

// TokenStore giữ các refresh token còn hiệu lực. Consume xóa token để mỗi token chỉ dùng một lần.
type TokenStore interface {
	Save(ctx context.Context, jti string, userID uint, ttl time.Duration) error
	Consume(ctx context.Context, jti string) (bool, error)
	Revoke(ctx context.Context, jti string) error
}

func refreshTokenKey(jti string) string {
	return "refresh_token:" + jti
}

type RedisTokenStore struct {
	rdb *redis.Client
}

// NewTokenStore trả về RedisTokenStore, hoặc MemoryTokenStore khi không có Redis
func NewTokenStore(rdb *redis.Client) TokenStore {
	if rdb == nil {
		return NewMemoryTokenStore()
	}
	return &RedisTokenStore{rdb: rdb}
}

func (s *RedisTokenStore) Save(ctx context.Context, jti string, userID uint, ttl time.Duration) error {
	return s.rdb.Set(ctx, refreshTokenKey(jti), userID, ttl).Err()
}

func (s *RedisTokenStore) Consume(ctx context.Context, jti string) (bool, error) {
	err := s.rdb.GetDel(ctx, refreshTokenKey(jti)).Err()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *RedisTokenStore) Revoke(ctx context.Context, jti string) error {
	return s.rdb.Del(ctx, refreshTokenKey(jti)).Err()
}

type MemoryTokenStore struct {
	mu      sync.Mutex
	entries map[string]time.Time
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{entries: make(map[string]time.Time)}
}

func (s *MemoryTokenStore) Save(_ context.Context, jti string, _ uint, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for k, exp := range s.entries {
		if now.After(exp) {
			delete(s.entries, k)
		}
	}
	s.entries[jti] = now.Add(ttl)
	return nil
}

func (s *MemoryTokenStore) Consume(_ context.Context, jti string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	exp, ok := s.entries[jti]
	if !ok {
		return false, nil
	}
	delete(s.entries, jti)
	return time.Now().Before(exp), nil
}

func (s *MemoryTokenStore) Revoke(_ context.Context, jti string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, jti)
	return nil
}
