package echoweb

import (
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/migeprof/fehub/core/session"
)

const (
	sessionCookieName = "fehub_session"
	resetCookieName   = "fehub_reset"
	flashCookieName   = "fehub_flash"
	sessionMaxAge     = 12 * time.Hour
	resetMaxAge       = 10 * time.Minute
)

// cookieManager encodes sessions into an authenticated, encrypted cookie.
// Token and role ride in the same cookie so they cannot drift apart.
type cookieManager struct {
	codec *securecookie.SecureCookie
}

func newCookieManager(secret string) *cookieManager {
	hashKey := sha256.Sum256([]byte(secret + "|hash"))
	blockKey := sha256.Sum256([]byte(secret + "|block"))
	codec := securecookie.New(hashKey[:], blockKey[:])
	codec.MaxAge(int(sessionMaxAge.Seconds()))
	return &cookieManager{codec: codec}
}

type sessionPayload struct {
	Token string
	Role  string
}

func (m *cookieManager) read(r *http.Request) (session.Session, bool) {
	c, err := r.Cookie(sessionCookieName)
	if err != nil {
		return session.Session{}, false
	}
	var payload sessionPayload
	if err := m.codec.Decode(sessionCookieName, c.Value, &payload); err != nil {
		return session.Session{}, false
	}
	if payload.Token == "" || payload.Role == "" {
		return session.Session{}, false
	}
	return session.Session{Token: payload.Token, Role: payload.Role}, true
}

func (m *cookieManager) write(w http.ResponseWriter, sess session.Session) error {
	encoded, err := m.codec.Encode(sessionCookieName, sessionPayload{Token: sess.Token, Role: sess.Role})
	if err != nil {
		return errors.Wrap(err, "encoding session cookie")
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    encoded,
		Path:     "/",
		MaxAge:   int(sessionMaxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (m *cookieManager) clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

// The forced-reset cookie holds the credentials of a user who must change
// their password before a session exists. It is short-lived and never
// satisfies the authenticated guard; the session cookie is only written
// after a successful sign-in.

func (m *cookieManager) writeReset(w http.ResponseWriter, sess session.Session) error {
	encoded, err := m.codec.Encode(resetCookieName, sessionPayload{Token: sess.Token, Role: sess.Role})
	if err != nil {
		return errors.Wrap(err, "encoding reset cookie")
	}
	http.SetCookie(w, &http.Cookie{
		Name:     resetCookieName,
		Value:    encoded,
		Path:     "/",
		MaxAge:   int(resetMaxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (m *cookieManager) readReset(r *http.Request) (session.Session, bool) {
	c, err := r.Cookie(resetCookieName)
	if err != nil {
		return session.Session{}, false
	}
	var payload sessionPayload
	if err := m.codec.Decode(resetCookieName, c.Value, &payload); err != nil {
		return session.Session{}, false
	}
	if payload.Token == "" {
		return session.Session{}, false
	}
	return session.Session{Token: payload.Token, Role: payload.Role}, true
}

func (m *cookieManager) clearReset(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     resetCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

// echoStore adapts the cookie manager to a single request/response pair.
type echoStore struct {
	mgr *cookieManager
	ctx echo.Context
}

var _ session.Store = (*echoStore)(nil)

func (s *echoStore) Get() (session.Session, bool) { return s.mgr.read(s.ctx.Request()) }
func (s *echoStore) Save(sess session.Session) error {
	return s.mgr.write(s.ctx.Response(), sess)
}
func (s *echoStore) Clear() { s.mgr.clear(s.ctx.Response()) }

// Flash messages are one-shot: popped on first read.

func setFlash(ctx echo.Context, msg string) {
	http.SetCookie(ctx.Response(), &http.Cookie{
		Name:     flashCookieName,
		Value:    encodeFlash(msg),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
	})
}

func popFlash(ctx echo.Context) string {
	c, err := ctx.Request().Cookie(flashCookieName)
	if err != nil {
		return ""
	}
	http.SetCookie(ctx.Response(), &http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	return decodeFlash(c.Value)
}

func encodeFlash(msg string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(msg))
}

func decodeFlash(val string) string {
	b, err := base64.RawURLEncoding.DecodeString(val)
	if err != nil {
		return ""
	}
	return string(b)
}
