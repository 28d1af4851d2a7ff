package services

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/items-api/internal/auth"
	"github.com/yukikurage/items-api/internal/constants"
	"github.com/yukikurage/items-api/internal/repository"
	"github.com/yukikurage/items-api/internal/testutil"
	"golang.org/x/crypto/bcrypt"
)

func newAuthService(t *testing.T) (*AuthService, *auth.TokenIssuer) {
	t.Helper()

	db := testutil.NewTestDB(t)
	tokens := auth.NewTokenIssuer([]byte("test-secret"), constants.TokenValidity)
	svc := NewAuthService(repository.NewUserRepository(db), auth.NewPasswordHasher(bcrypt.MinCost), tokens)
	return svc, tokens
}

func TestAuthService_SignUpThenSignIn(t *testing.T) {
	svc, tokens := newAuthService(t)
	ctx := context.Background()

	signedUp, err := svc.SignUp(ctx, Credentials{Email: "a@x.io", Password: "longenough1"})
	require.NoError(t, err)
	require.NotZero(t, signedUp.User.ID)
	assert.Equal(t, "a@x.io", signedUp.User.Email)
	assert.NotEqual(t, "longenough1", signedUp.User.PasswordHash)

	signedIn, err := svc.SignIn(ctx, Credentials{Email: "a@x.io", Password: "longenough1"})
	require.NoError(t, err)
	assert.Equal(t, signedUp.User.ID, signedIn.User.ID)

	for _, tok := range []string{signedUp.Token, signedIn.Token} {
		userID, err := tokens.Verify(tok)
		require.NoError(t, err)
		assert.Equal(t, signedUp.User.ID, userID)
	}
}

func TestAuthService_SignUpValidation(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{name: "empty email", email: "", password: "longenough1"},
		{name: "malformed email", email: "not-an-email", password: "longenough1"},
		{name: "short password", email: "a@x.io", password: "short"},
		{name: "seven chars", email: "a@x.io", password: "1234567"},
		{name: "four multi-byte chars", email: "a@x.io", password: "éééé"},
		{name: "too long password", email: "a@x.io", password: strings.Repeat("p", 73)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SignUp(ctx, Credentials{Email: tt.email, Password: tt.password})
			assert.ErrorIs(t, err, ErrValidation)
		})
	}

	_, err := svc.SignUp(ctx, Credentials{Email: "edge@x.io", Password: "12345678"})
	assert.NoError(t, err, "exactly the minimum length is accepted")

	_, err = svc.SignUp(ctx, Credentials{Email: "accents@x.io", Password: "éééééééé"})
	assert.NoError(t, err, "length is counted in characters")
}

func TestAuthService_DuplicateEmail(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.SignUp(ctx, Credentials{Email: "dup@x.io", Password: "longenough1"})
	require.NoError(t, err)

	_, err = svc.SignUp(ctx, Credentials{Email: "dup@x.io", Password: "different-pass"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestAuthService_ConcurrentDuplicateSignUp(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	const attempts = 5
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.SignUp(ctx, Credentials{Email: "race@x.io", Password: "longenough1"})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, ErrDuplicateEmail)
	}
	assert.Equal(t, 1, succeeded)
}

func TestAuthService_SignInFailures(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.SignUp(ctx, Credentials{Email: "a@x.io", Password: "longenough1"})
	require.NoError(t, err)

	_, err = svc.SignIn(ctx, Credentials{Email: "a@x.io", Password: "wrong-password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.SignIn(ctx, Credentials{Email: "nobody@x.io", Password: "longenough1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.SignIn(ctx, Credentials{Email: "A@x.io", Password: "longenough1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials, "email matching is case-sensitive")
}

func TestAuthService_GetUser(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	res, err := svc.SignUp(ctx, Credentials{Email: "me@x.io", Password: "longenough1"})
	require.NoError(t, err)

	user, err := svc.GetUser(ctx, res.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "me@x.io", user.Email)

	_, err = svc.GetUser(ctx, res.User.ID+1)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
