package inbound

import (
	"net/http"
	"time"

	"github.com/shandysiswandi/gotask/internal/pkg/router"
)

const (
	cookieAccessToken  = router.CookieAccessToken
	cookieRefreshToken = "refresh_token"

	tokenTypeBearer = "bearer"
)

func sessionCookie(name, value string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl / time.Second),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	}
}

func expiredCookie(name string) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	}
}

type CredentialRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type UserResponse struct {
	ID       int64  `json:"id,string"`
	Username string `json:"username"`
}

type RegisterResponse struct {
	Username string `json:"username"`
	ID       int64  `json:"id,string"`
}

func (RegisterResponse) StatusCode() int {
	return http.StatusCreated
}

func (RegisterResponse) Message() string {
	return "Registration successful"
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	RefreshToken string `json:"refresh_token,omitempty"`

	cookies []*http.Cookie
}

func (r TokenResponse) Cookies() []*http.Cookie {
	return r.cookies
}

type LogoutResponse struct {
	Detail string `json:"detail"`
}

func (LogoutResponse) Cookies() []*http.Cookie {
	return []*http.Cookie{expiredCookie(cookieAccessToken), expiredCookie(cookieRefreshToken)}
}
