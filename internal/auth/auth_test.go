package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/items-api/internal/constants"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher_HashAndVerify(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	hash, err := h.Hash("longenough1")
	require.NoError(t, err)
	assert.NotEqual(t, "longenough1", hash)

	assert.True(t, h.Verify("longenough1", hash))
	assert.False(t, h.Verify("longenough2", hash))
	assert.False(t, h.Verify("longenough1", "not-a-hash"))

	again, err := h.Hash("longenough1")
	require.NoError(t, err)
	assert.NotEqual(t, hash, again, "hashes must be salted")
}

func TestPasswordHasher_TooLong(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	_, err := h.Hash(strings.Repeat("a", 73))
	assert.ErrorIs(t, err, ErrPasswordTooLong)
}

func TestPasswordHasher_DefaultCost(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewPasswordHasher(0).cost)
}

func TestTokenIssuer_RoundTrip(t *testing.T) {
	t.Parallel()

	issuer := NewTokenIssuer([]byte("super-secret"), constants.TokenValidity)

	tok, err := issuer.Issue(42)
	require.NoError(t, err)

	userID, err := issuer.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), userID)
}

func TestTokenIssuer_DistinctUsers(t *testing.T) {
	t.Parallel()

	issuer := NewTokenIssuer([]byte("super-secret"), time.Hour)

	a, err := issuer.Issue(1)
	require.NoError(t, err)
	b, err := issuer.Issue(2)
	require.NoError(t, err)

	gotA, err := issuer.Verify(a)
	require.NoError(t, err)
	gotB, err := issuer.Verify(b)
	require.NoError(t, err)

	assert.Equal(t, uint64(1), gotA)
	assert.Equal(t, uint64(2), gotB)
}

func TestTokenIssuer_ExpiresAfterSevenDays(t *testing.T) {
	t.Parallel()

	issuer := NewTokenIssuer([]byte("secret"), constants.TokenValidity)
	issued := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	issuer.now = func() time.Time { return issued }

	tok, err := issuer.Issue(7)
	require.NoError(t, err)

	issuer.now = func() time.Time { return issued.Add(constants.TokenValidity - time.Minute) }
	_, err = issuer.Verify(tok)
	require.NoError(t, err)

	issuer.now = func() time.Time { return issued.Add(constants.TokenValidity + time.Minute) }
	_, err = issuer.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenIssuer_Rejects(t *testing.T) {
	t.Parallel()

	secret := []byte("right-secret")
	issuer := NewTokenIssuer(secret, time.Hour)

	valid, err := issuer.Issue(5)
	require.NoError(t, err)

	wrongSecret, err := NewTokenIssuer([]byte("wrong-secret"), time.Hour).Issue(5)
	require.NoError(t, err)

	expired, err := NewTokenIssuer(secret, -time.Second).Issue(5)
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{UserID: 5}).SignedString(secret)
	require.NoError(t, err)

	zeroUser, err := issuer.Issue(0)
	require.NoError(t, err)

	otherAlg, err := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
		UserID:           5,
	}).SignedString(secret)
	require.NoError(t, err)

	parts := strings.Split(valid, ".")
	require.Len(t, parts, 3)
	tamperedPayload := parts[0] + "." + parts[1] + "x." + parts[2]
	tamperedSig := parts[0] + "." + parts[1] + "." + strings.ToUpper(parts[2])

	tests := map[string]string{
		"wrong secret":     wrongSecret,
		"expired":          expired,
		"no expiry":        noExpiry,
		"zero user":        zeroUser,
		"other algorithm":  otherAlg,
		"tampered payload": tamperedPayload,
		"tampered sig":     tamperedSig,
		"malformed":        "not.a.jwt",
		"empty":            "",
	}

	for name, tok := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := issuer.Verify(tok)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidToken))
		})
	}
}

func TestBearerTransport_Extract(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tr := NewBearerTransport()

	tests := []struct {
		header string
		want   string
		ok     bool
	}{
		{header: "Bearer abc.def.ghi", want: "abc.def.ghi", ok: true},
		{header: "bearer abc", want: "abc", ok: true},
		{header: "Bearer ", ok: false},
		{header: "Basic dXNlcjpwYXNz", ok: false},
		{header: "", ok: false},
	}

	for _, tt := range tests {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		if tt.header != "" {
			c.Request.Header.Set("Authorization", tt.header)
		}

		got, ok := tr.Extract(c)
		assert.Equal(t, tt.ok, ok, tt.header)
		assert.Equal(t, tt.want, got, tt.header)
	}

	assert.True(t, tr.ExposeToken())
}

func TestCookieTransport_AttachExtractClear(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tr := NewCookieTransport(NewCookieStore([]byte("cookie-secret"), constants.TokenValidity, true), true)
	assert.False(t, tr.ExposeToken())

	r := gin.New()
	r.Use(tr.Middleware())
	r.POST("/attach", func(c *gin.Context) {
		require.NoError(t, tr.Attach(c, "the-token"))
		c.Status(http.StatusNoContent)
	})
	r.GET("/extract", func(c *gin.Context) {
		tok, ok := tr.Extract(c)
		if !ok {
			c.Status(http.StatusUnauthorized)
			return
		}
		c.String(http.StatusOK, tok)
	})
	r.POST("/clear", func(c *gin.Context) {
		require.NoError(t, tr.Clear(c))
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/attach", nil))
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	sessionCookie := cookies[0]
	assert.Equal(t, constants.SessionCookieName, sessionCookie.Name)
	assert.True(t, sessionCookie.HttpOnly)
	assert.True(t, sessionCookie.Secure)
	assert.Equal(t, http.SameSiteLaxMode, sessionCookie.SameSite)
	assert.Equal(t, int(constants.TokenValidity.Seconds()), sessionCookie.MaxAge)

	req := httptest.NewRequest(http.MethodGet, "/extract", nil)
	req.AddCookie(sessionCookie)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "the-token", w.Body.String())

	// A cookie that fails signature checks is treated as absent.
	forged := *sessionCookie
	forged.Value = "x" + sessionCookie.Value
	req = httptest.NewRequest(http.MethodGet, "/extract", nil)
	req.AddCookie(&forged)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req = httptest.NewRequest(http.MethodPost, "/clear", nil)
	req.AddCookie(sessionCookie)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	cleared := w.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Equal(t, constants.SessionCookieName, cleared[0].Name)
	assert.LessOrEqual(t, cleared[0].MaxAge, 0)
	assert.Equal(t, "/", cleared[0].Path)
	assert.True(t, cleared[0].HttpOnly)
	assert.True(t, cleared[0].Secure)
	assert.Equal(t, http.SameSiteLaxMode, cleared[0].SameSite)
}
