package auth

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/items-api/internal/constants"
)

// Transport is the single configured way a token travels between client and server.
// The auth middleware and the sign-in/sign-out handlers share one instance.
type Transport interface {
	// Middleware prepares the request for Extract/Attach/Clear.
	Middleware() gin.HandlerFunc
	// Extract returns the presented token, if any.
	Extract(c *gin.Context) (string, bool)
	// Attach hands a freshly issued token to the client.
	Attach(c *gin.Context, token string) error
	// Clear removes the client-held credential.
	Clear(c *gin.Context) error
	// ExposeToken reports whether issued tokens belong in the JSON response body.
	ExposeToken() bool
}

// CookieTransport keeps the token in an HttpOnly session cookie named "token".
// The session lives in the cookie itself or, with a Redis store, server-side.
type CookieTransport struct {
	store  sessions.Store
	secure bool
}

// NewCookieTransport wraps a store built by NewCookieStore or NewRedisStore.
// secure must match the flag the store was built with.
func NewCookieTransport(store sessions.Store, secure bool) *CookieTransport {
	return &CookieTransport{store: store, secure: secure}
}

// NewCookieStore signs the whole session into the cookie. Secure cookies are only
// emitted when secure is true (HTTPS deployments).
func NewCookieStore(secret []byte, validity time.Duration, secure bool) sessions.Store {
	store := cookie.NewStore(secret)
	store.Options(sessionOptions(validity, secure))
	return store
}

// NewRedisStore keeps sessions in Redis so signing out deletes them server-side.
func NewRedisStore(addr, password string, secret []byte, validity time.Duration, secure bool) (sessions.Store, error) {
	store, err := redis.NewStore(10, "tcp", addr, password, secret)
	if err != nil {
		return nil, err
	}
	store.Options(sessionOptions(validity, secure))
	return store, nil
}

func sessionOptions(validity time.Duration, secure bool) sessions.Options {
	return sessions.Options{
		Path:     "/",
		MaxAge:   int(validity.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func (t *CookieTransport) Middleware() gin.HandlerFunc {
	return sessions.Sessions(constants.SessionCookieName, t.store)
}

func (t *CookieTransport) Extract(c *gin.Context) (string, bool) {
	token, ok := sessions.Default(c).Get(constants.SessionTokenKey).(string)
	if !ok || token == "" {
		return "", false
	}
	return token, true
}

func (t *CookieTransport) Attach(c *gin.Context, token string) error {
	session := sessions.Default(c)
	session.Set(constants.SessionTokenKey, token)
	return session.Save()
}

func (t *CookieTransport) Clear(c *gin.Context) error {
	session := sessions.Default(c)
	session.Clear()
	options := sessionOptions(0, t.secure)
	options.MaxAge = -1
	session.Options(options)
	return session.Save()
}

func (t *CookieTransport) ExposeToken() bool { return false }

// BearerTransport reads "Authorization: Bearer <token>" and returns issued tokens in the body.
type BearerTransport struct{}

// NewBearerTransport returns the header-based transport.
func NewBearerTransport() *BearerTransport {
	return &BearerTransport{}
}

func (BearerTransport) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) { c.Next() }
}

func (BearerTransport) Extract(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}

func (BearerTransport) Attach(*gin.Context, string) error { return nil }

// Clear is a no-op: the client discards its own copy of the token.
func (BearerTransport) Clear(*gin.Context) error { return nil }

func (BearerTransport) ExposeToken() bool { return true }
