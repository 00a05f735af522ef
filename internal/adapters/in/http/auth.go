package http

import (
	"strings"

	"shipflow/internal/core/domain/model/kernel"
	"shipflow/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const sessionKey = "session"

// publicRoutes are API routes reachable without a bearer token.
var publicRoutes = map[string]bool{
	BaseURL + "/auth/register": true,
	BaseURL + "/auth/login":    true,
}

// authenticate decodes the bearer token into a kernel.Session and stores it
// on the echo context. Routes outside the API are not checked.
func (s *Server) authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !strings.HasPrefix(c.Path(), BaseURL+"/") || publicRoutes[c.Path()] {
			return next(c)
		}

		scheme, token, ok := strings.Cut(c.Request().Header.Get(echo.HeaderAuthorization), " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			return s.fail(c, errs.ErrUnauthenticated)
		}

		session, err := s.tokens.Parse(strings.TrimSpace(token))
		if err != nil {
			return s.fail(c, err)
		}
		c.Set(sessionKey, session)
		return next(c)
	}
}

func sessionFrom(c echo.Context) (kernel.Session, error) {
	session, ok := c.Get(sessionKey).(kernel.Session)
	if !ok {
		return kernel.Session{}, errs.ErrUnauthenticated
	}
	return session, nil
}
