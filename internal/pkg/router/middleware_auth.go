package router

import (
	"context"
	"net/http"
	"strings"

	"github.com/shandysiswandi/gotask/internal/pkg/authn"
)

// CookieAccessToken is the cookie that carries the access token.
const CookieAccessToken = "access_token"

// accessToken returns the token from the access_token cookie, falling back
// to an "Authorization: Bearer" header.
func accessToken(r *http.Request) string {
	if c, err := r.Cookie(CookieAccessToken); err == nil && c.Value != "" {
		return c.Value
	}

	p := strings.Fields(r.Header.Get("Authorization"))
	if len(p) == 2 && strings.EqualFold(p[0], "Bearer") {
		return p[1]
	}

	return ""
}

func middlewareAuthentication(
	authenticator func() authn.Authenticator,
	publicEndpoints map[string]map[string]struct{},
	errorCodec func(ctx context.Context, w http.ResponseWriter, err error),
) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if s, ok := publicEndpoints[r.Method]; ok {
				if _, skip := s[matchedRoutePath(r)]; skip {
					next.ServeHTTP(w, r)
					return
				}
			}

			auth := authenticator()
			token := accessToken(r)
			if token == "" || auth == nil {
				writeJSON(w, errorResponse{Message: "Not authenticated"}, http.StatusUnauthorized)
				return
			}

			id, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				if setter, ok := w.(interface{ SetError(error) }); ok {
					setter.SetError(err)
				}
				errorCodec(r.Context(), w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(authn.SetAuth(r.Context(), id)))
		})
	}
}
