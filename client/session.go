package client

import "sync"

// Tokens là cặp token của một phiên đăng nhập
type Tokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Session giữ token của một phiên. An toàn khi dùng đồng thời.
type Session struct {
	mu     sync.RWMutex
	tokens Tokens
	// OnChange được gọi sau mỗi lần token thay đổi (đăng nhập, refresh, xóa)
	OnChange func(Tokens)
}

func NewSession(tokens Tokens) *Session {
	return &Session{tokens: tokens}
}

func (s *Session) Tokens() Tokens {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tokens
}

func (s *Session) SetTokens(t Tokens) {
	s.mu.Lock()
	s.tokens = t
	fn := s.OnChange
	s.mu.Unlock()
	if fn != nil {
		fn(t)
	}
}

func (s *Session) Clear() {
	s.SetTokens(Tokens{})
}

func (s *Session) LoggedIn() bool {
	return s.Tokens().AccessToken != ""
}
