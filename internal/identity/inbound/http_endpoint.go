package inbound

import (
	"net/http"

	"github.com/shandysiswandi/gotask/internal/identity/usecase"
	"github.com/shandysiswandi/gotask/internal/pkg/router"
)

// HTTPEndpoint exposes HTTP handlers for registration and session workflows.
type HTTPEndpoint struct {
	uc uc
}

// credentials reads username and password from a form or a JSON body.
func credentials(r *router.Request) (CredentialRequest, error) {
	if r.IsForm() {
		return CredentialRequest{
			Username: r.FormString("username"),
			Password: r.FormValue("password"),
		}, nil
	}

	var req CredentialRequest
	if err := r.DecodeBody(&req); err != nil {
		return CredentialRequest{}, err
	}
	return req, nil
}

// refreshTokenFrom reads refresh_token from a form, a JSON body or, when
// neither carries it, the refresh_token cookie.
func refreshTokenFrom(r *router.Request) (string, error) {
	var token string
	if r.IsForm() {
		token = r.FormString("refresh_token")
	} else {
		var req RefreshTokenRequest
		if err := r.DecodeOptionalBody(&req); err != nil {
			return "", err
		}
		token = req.RefreshToken
	}

	if token == "" {
		token = r.GetCookie(cookieRefreshToken)
	}
	return token, nil
}

// Register creates a user account.
func (h *HTTPEndpoint) Register(r *router.Request) (any, error) {
	req, err := credentials(r)
	if err != nil {
		return nil, err
	}

	user, err := h.uc.Register(r.Context(), usecase.RegisterInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		return nil, err
	}

	return RegisterResponse{Username: user.Username, ID: user.ID}, nil
}

// Login verifies credentials and starts a session.
func (h *HTTPEndpoint) Login(r *router.Request) (any, error) {
	req, err := credentials(r)
	if err != nil {
		return nil, err
	}

	out, err := h.uc.Login(r.Context(), usecase.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		return nil, err
	}

	return TokenResponse{
		AccessToken:  out.AccessToken,
		TokenType:    tokenTypeBearer,
		RefreshToken: out.RefreshToken,
		cookies: []*http.Cookie{
			sessionCookie(cookieAccessToken, out.AccessToken, out.AccessTTL),
			sessionCookie(cookieRefreshToken, out.RefreshToken, out.RefreshTTL),
		},
	}, nil
}

// RefreshToken exchanges a refresh token for a new access token.
func (h *HTTPEndpoint) RefreshToken(r *router.Request) (any, error) {
	token, err := refreshTokenFrom(r)
	if err != nil {
		return nil, err
	}

	out, err := h.uc.RefreshToken(r.Context(), usecase.RefreshTokenInput{RefreshToken: token})
	if err != nil {
		return nil, err
	}

	resp := TokenResponse{
		AccessToken:  out.AccessToken,
		TokenType:    tokenTypeBearer,
		RefreshToken: out.RefreshToken,
		cookies:      []*http.Cookie{sessionCookie(cookieAccessToken, out.AccessToken, out.AccessTTL)},
	}
	if out.RefreshToken != "" {
		resp.cookies = append(resp.cookies, sessionCookie(cookieRefreshToken, out.RefreshToken, out.RefreshTTL))
	}

	return resp, nil
}

// Logout ends the session and clears the session cookies.
func (h *HTTPEndpoint) Logout(r *router.Request) (any, error) {
	token, err := refreshTokenFrom(r)
	if err != nil {
		return nil, err
	}

	if err := h.uc.Logout(r.Context(), usecase.LogoutInput{RefreshToken: token}); err != nil {
		return nil, err
	}

	return LogoutResponse{Detail: "Successfully logged out"}, nil
}

// Profile returns the authenticated user.
func (h *HTTPEndpoint) Profile(r *router.Request) (any, error) {
	user, err := h.uc.Profile(r.Context())
	if err != nil {
		return nil, err
	}

	return UserResponse{ID: user.ID, Username: user.Username}, nil
}
