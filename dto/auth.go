package dto

type LoginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RefreshInput struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type GoogleLoginInput struct {
	IDToken string `json:"idToken" binding:"required"`
}

type UserInfo struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  int    `json:"role"`
}

type TokenResponse struct {
	AccessToken  string   `json:"accessToken" validate:"required"`
	RefreshToken string   `json:"refreshToken" validate:"required"`
	ExpiresIn    int      `json:"expiresIn"`
	User         UserInfo `json:"user"`
}
