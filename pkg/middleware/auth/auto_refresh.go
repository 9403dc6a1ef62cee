package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Skotchmaster/shop_checkout/pkg/authclient"
	jwthelp "github.com/Skotchmaster/shop_checkout/pkg/jwt"
	"github.com/Skotchmaster/shop_checkout/pkg/tokens"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Refresher exchanges an expired access token for a fresh pair.
type Refresher interface {
	RefreshTokens(ctx context.Context, refreshToken, accessToken string) (*authclient.RefreshResponse, error)
}

type AutoRefreshMiddleware struct {
	JWTSecret  []byte
	AuthClient Refresher
}

func NewAutoRefreshMiddleware(secret []byte, authClient Refresher) *AutoRefreshMiddleware {
	return &AutoRefreshMiddleware{
		JWTSecret:  secret,
		AuthClient: authClient,
	}
}

// RequireAuth accepts a valid access cookie. An expired one is refreshed
// through the auth service and the new cookies are written back.
func (m *AutoRefreshMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		accessCookie, err := c.Cookie(jwthelp.AccessCookie)
		if err != nil || accessCookie.Value == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
		}

		claims, err := tokens.AccessClaimsFromToken(accessCookie.Value, m.JWTSecret)
		if err == nil && claims != nil {
			setUserContext(c, claims)
			return next(c)
		}

		if !errors.Is(err, jwt.ErrTokenExpired) {
			clearAuthCookies(c)
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid access token")
		}

		refreshCookie, rErr := c.Cookie(jwthelp.RefreshCookie)
		if rErr != nil || refreshCookie.Value == "" || m.AuthClient == nil {
			clearAuthCookies(c)
			return echo.NewHTTPError(http.StatusUnauthorized, "refresh token missing")
		}

		refreshResp, refErr := m.AuthClient.RefreshTokens(
			c.Request().Context(),
			refreshCookie.Value,
			accessCookie.Value,
		)
		if refErr != nil {
			clearAuthCookies(c)
			return echo.NewHTTPError(http.StatusUnauthorized, "refresh failed")
		}

		c.SetCookie(jwthelp.CreateCookie(
			jwthelp.AccessCookie,
			refreshResp.AccessToken,
			"/",
			time.Unix(refreshResp.AccessExp, 0),
		))
		c.SetCookie(jwthelp.CreateCookie(
			jwthelp.RefreshCookie,
			refreshResp.RefreshToken,
			"/",
			time.Unix(refreshResp.RefreshExp, 0),
		))

		newClaims, pErr := tokens.AccessClaimsFromToken(refreshResp.AccessToken, m.JWTSecret)
		if pErr != nil || newClaims == nil {
			clearAuthCookies(c)
			return echo.NewHTTPError(http.StatusUnauthorized, "new access token invalid")
		}

		setUserContext(c, newClaims)
		return next(c)
	}
}

func clearAuthCookies(c echo.Context) {
	c.SetCookie(jwthelp.DeleteCookie(jwthelp.AccessCookie, "/"))
	c.SetCookie(jwthelp.DeleteCookie(jwthelp.RefreshCookie, "/"))
}

func setUserContext(c echo.Context, claims *tokens.AccessClaims) {
	c.Set(CtxUserID, claims.Subject)
	c.Set(CtxRole, claims.Role)
}
