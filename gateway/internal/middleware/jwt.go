package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	jwtcookie "github.com/Skotchmaster/shop_checkout/pkg/jwt"
	authmw "github.com/Skotchmaster/shop_checkout/pkg/middleware/auth"
	"github.com/Skotchmaster/shop_checkout/pkg/tokens"
)

// HeaderUserID carries the authenticated subject to upstream services.
const HeaderUserID = "X-User-ID"

// Middleware rejects requests without a valid access cookie. Expired tokens
// are passed through when a refresh cookie is present so the upstream
// service can rotate them.
func Middleware(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			accessCookie, err := c.Cookie(jwtcookie.AccessCookie)
			if err != nil || accessCookie.Value == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
			}

			claims, err := tokens.AccessClaimsFromToken(accessCookie.Value, secret)
			if err != nil || claims == nil {
				if refresh, rerr := c.Cookie(jwtcookie.RefreshCookie); rerr == nil && refresh.Value != "" {
					c.Request().Header.Del(HeaderUserID)
					return next(c)
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			if claims.Subject == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "token has no subject")
			}
			c.Set(authmw.CtxUserID, claims.Subject)
			c.Set(authmw.CtxRole, claims.Role)
			c.Request().Header.Set(HeaderUserID, claims.Subject)

			return next(c)
		}
	}
}
