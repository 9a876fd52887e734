package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Augustwise/fullstack-task-manager/internal/auth"
	apperrors "github.com/Augustwise/fullstack-task-manager/internal/errors"
)

const sessionContextKey = "session"

// SessionCookie describes the cookie carrying the session token.
type SessionCookie struct {
	Name   string
	Secure bool
	MaxAge int
}

func (sc SessionCookie) New(token string) *http.Cookie {
	return &http.Cookie{
		Name:     sc.Name,
		Value:    token,
		Path:     "/",
		MaxAge:   sc.MaxAge,
		HttpOnly: true,
		Secure:   sc.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func (sc SessionCookie) Cleared() *http.Cookie {
	return &http.Cookie{
		Name:     sc.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   sc.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// RequireSession admits requests carrying a valid session cookie. Any
// other request has its cookie cleared and is sent to loginURL when it
// asked for HTML, or answered with 401 otherwise.
func RequireSession(sessions *auth.SessionManager, cookie SessionCookie, loginURL string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session, err := SessionFromRequest(c, sessions, cookie.Name)
			if err != nil {
				c.SetCookie(cookie.Cleared())
				if wantsHTML(c.Request()) {
					return c.Redirect(http.StatusFound, loginURL)
				}
				return apperrors.ErrInvalidSession
			}

			c.Set(sessionContextKey, session)
			return next(c)
		}
	}
}

// SessionFromRequest verifies the session cookie without rejecting the
// request.
func SessionFromRequest(c echo.Context, sessions *auth.SessionManager, cookieName string) (*auth.Session, error) {
	ck, err := c.Cookie(cookieName)
	if err != nil || ck.Value == "" {
		return nil, apperrors.ErrInvalidSession
	}
	return sessions.Verify(ck.Value)
}

// CurrentSession returns the session stored by RequireSession.
func CurrentSession(c echo.Context) (*auth.Session, bool) {
	s, ok := c.Get(sessionContextKey).(*auth.Session)
	return s, ok && s != nil
}

func wantsHTML(r *http.Request) bool {
	return strings.Contains(r.Header.Get(echo.HeaderAccept), echo.MIMETextHTML)
}
