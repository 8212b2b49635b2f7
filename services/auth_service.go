package services

import (
	"context"
	stderrors "errors"
	"strings"

	"leasedesk/constants"
	"leasedesk/dto"
	"leasedesk/errors"
	"leasedesk/models"
	"leasedesk/services/logger"

	"golang.org/x/crypto/bcrypt"
	"google.golang.org/api/idtoken"
	"gorm.io/gorm"
)

// GoogleProfile là thông tin lấy từ Google ID token
type GoogleProfile struct {
	Email         string
	Name          string
	EmailVerified bool
}

// GoogleVerifier xác thực ID token từ Google
type GoogleVerifier func(ctx context.Context, idToken string) (GoogleProfile, error)

// NewGoogleVerifier dùng idtoken.Validate với GOOGLE_CLIENT_ID làm audience
func NewGoogleVerifier(clientID string) GoogleVerifier {
	return func(ctx context.Context, token string) (GoogleProfile, error) {
		payload, err := idtoken.Validate(ctx, token, clientID)
		if err != nil {
			return GoogleProfile{}, err
		}
		p := GoogleProfile{}
		p.Email, _ = payload.Claims["email"].(string)
		p.Name, _ = payload.Claims["name"].(string)
		p.EmailVerified, _ = payload.Claims["email_verified"].(bool)
		return p, nil
	}
}

type AuthService struct {
	db     *gorm.DB
	tokens *TokenManager
	store  TokenStore
	audit  *AuditService
	google GoogleVerifier
	logger logger.Logger
}

type AuthServiceOptions struct {
	DB     *gorm.DB
	Tokens *TokenManager
	Store  TokenStore
	Audit  *AuditService
	Google GoogleVerifier
	Logger logger.Logger
}

func NewAuthService(opts AuthServiceOptions) *AuthService {
	if opts.Store == nil {
		opts.Store = NewMemoryTokenStore()
	}
	return &AuthService{
		db:     opts.DB,
		tokens: opts.Tokens,
		store:  opts.Store,
		audit:  opts.Audit,
		google: opts.Google,
		logger: opts.Logger,
	}
}

func HashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedPassword), nil
}

func (s *AuthService) Login(ctx context.Context, input dto.LoginInput) (dto.TokenResponse, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return dto.TokenResponse{}, errors.NewAppError(errors.ErrCodeInvalidPassword, "Email hoặc mật khẩu không hợp lệ", nil)
		}
		return dto.TokenResponse{}, errors.DB("Không thể tải người dùng", err)
	}
	if user.Password == "" || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)) != nil {
		return dto.TokenResponse{}, errors.NewAppError(errors.ErrCodeInvalidPassword, "Email hoặc mật khẩu không hợp lệ", nil)
	}
	return s.issue(ctx, user, true)
}

// Refresh đổi refresh token lấy cặp token mới. Refresh token cũ bị thu hồi.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (dto.TokenResponse, error) {
	claims, err := s.tokens.ParseToken(refreshToken, false)
	if err != nil {
		return dto.TokenResponse{}, err
	}
	ok, err := s.store.Consume(ctx, claims.Id)
	if err != nil {
		return dto.TokenResponse{}, errors.NewAppError(errors.ErrCodeDBError, "Không thể kiểm tra refresh token", err)
	}
	if !ok {
		return dto.TokenResponse{}, errors.NewAppError(errors.ErrCodeInvalidToken, "Refresh token đã bị thu hồi", nil)
	}
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, claims.UserInfo.UserId).Error; err != nil {
		return dto.TokenResponse{}, errors.NewAppError(errors.ErrCodeUserNotFound, "Không tìm thấy người dùng", err)
	}
	return s.issue(ctx, user, false)
}

// Logout thu hồi refresh token. Token không hợp lệ được bỏ qua.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	claims, err := s.tokens.ParseToken(refreshToken, false)
	if err != nil {
		return nil
	}
	return s.store.Revoke(ctx, claims.Id)
}

func (s *AuthService) GoogleLogin(ctx context.Context, idToken string) (dto.TokenResponse, error) {
	if s.google == nil {
		return dto.TokenResponse{}, errors.NewAppError(errors.ErrCodeDisabled, "Chưa cấu hình đăng nhập Google", nil)
	}
	profile, err := s.google(ctx, idToken)
	if err != nil {
		return dto.TokenResponse{}, errors.NewAppError(errors.ErrCodeInvalidToken, "Token Google không hợp lệ", err)
	}
	if !profile.EmailVerified || profile.Email == "" {
		return dto.TokenResponse{}, errors.NewAppError(errors.ErrCodeUnauthorized, "Email chưa được xác thực", nil)
	}

	var user models.User
	err = s.db.WithContext(ctx).Where("email = ?", strings.ToLower(profile.Email)).First(&user).Error
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		// Nếu chưa có tài khoản thì tạo tài khoản mới
		user = models.User{Name: profile.Name, Email: strings.ToLower(profile.Email), Role: constants.RoleStaff}
		if user.Name == "" {
			user.Name = user.Email
		}
		if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
			return dto.TokenResponse{}, errors.DB("Không thể tạo người dùng", err)
		}
	} else if err != nil {
		return dto.TokenResponse{}, errors.DB("Không thể tải người dùng", err)
	}
	return s.issue(ctx, user, true)
}

// Authenticate kiểm tra access token, dùng cho middleware
func (s *AuthService) Authenticate(accessToken string) (UserInfo, error) {
	claims, err := s.tokens.ParseToken(accessToken, true)
	if err != nil {
		return UserInfo{}, err
	}
	return claims.UserInfo, nil
}

// EnsureAdmin tạo tài khoản admin nếu email chưa tồn tại
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil
	}
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return errors.DB("Không thể kiểm tra tài khoản admin", err)
	}
	if count > 0 {
		return nil
	}
	hashed, err := HashPassword(password)
	if err != nil {
		return err
	}
	admin := models.User{Name: "Admin", Email: email, Password: hashed, Role: constants.RoleAdmin}
	if err := s.db.WithContext(ctx).Create(&admin).Error; err != nil {
		return errors.DB("Không thể tạo tài khoản admin", err)
	}
	s.logger.Info("Đã tạo tài khoản admin %s", email)
	return nil
}

func (s *AuthService) issue(ctx context.Context, user models.User, login bool) (dto.TokenResponse, error) {
	info := UserInfo{UserId: user.ID, Role: user.Role}
	accessToken, _, err := s.tokens.GenerateToken(info, true)
	if err != nil {
		return dto.TokenResponse{}, errors.NewAppError(errors.ErrCodeInvalidOperation, "Không thể tạo token", err)
	}
	refreshToken, jti, err := s.tokens.GenerateToken(info, false)
	if err != nil {
		return dto.TokenResponse{}, errors.NewAppError(errors.ErrCodeInvalidOperation, "Không thể tạo token", err)
	}
	if err := s.store.Save(ctx, jti, user.ID, s.tokens.RefreshTTL()); err != nil {
		return dto.TokenResponse{}, errors.NewAppError(errors.ErrCodeDBError, "Không thể lưu refresh token", err)
	}
	if login && s.audit != nil {
		if err := s.audit.Record(WithActor(ctx, user.ID), nil, constants.AuditActionLogin, constants.EntityUser, user.ID, "Đăng nhập %s", user.Email); err != nil {
			s.logger.Error("Lỗi ghi audit đăng nhập: %v", err)
		}
	}
	return dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(s.tokens.AccessTTL().Seconds()),
		User:         dto.UserInfo{ID: user.ID, Name: user.Name, Email: user.Email, Role: user.Role},
	}, nil
}
