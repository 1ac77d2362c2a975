package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"jobboard/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-that-is-long-enough-32b"

func newAuthService(t *testing.T, rdb *redis.Client) *AuthService {
	t.Helper()
	return NewAuthService(memoryUsers(), rdb, AuthConfig{Secret: testSecret, TTL: time.Hour})
}

func TestAuthService_Register(t *testing.T) {
	svc := newAuthService(t, nil)
	ctx := context.Background()

	res, err := svc.Register(ctx, RegisterInput{Email: "  Ada@Example.com ", Password: "secret1", Name: "  Ada  "})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "ada@example.com", res.User.Email)
	assert.Equal(t, "Ada", res.User.Name)
	assert.Equal(t, models.RoleUser, res.User.Role)
	assert.NotEqual(t, "secret1", res.User.Password)

	claims, err := svc.VerifyToken(ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, claims.UserID)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.Equal(t, models.RoleUser, claims.Role)
	assert.NotEmpty(t, claims.JTI)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt, 5*time.Second)
}

func TestAuthService_RegisterDuplicateEmail(t *testing.T) {
	svc := newAuthService(t, nil)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: "dup@example.com", Password: "secret1", Name: "First"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterInput{Email: "DUP@example.com", Password: "secret2", Name: "Second"})
	assertAppErrorCode(t, err, models.CodeConflict)
	assert.Equal(t, 400, models.StatusFor(err))
}

func TestAuthService_RegisterValidation(t *testing.T) {
	tests := []struct {
		name  string
		in    RegisterInput
		field string
	}{
		{"malformed email", RegisterInput{Email: "not-an-email", Password: "secret1", Name: "Ada"}, "email"},
		{"short password", RegisterInput{Email: "ada@example.com", Password: "12345", Name: "Ada"}, "password"},
		{"password over 72 bytes", RegisterInput{Email: "ada@example.com", Password: strings.Repeat("p", 73), Name: "Ada"}, "password"},
		{"multibyte password over 72 bytes", RegisterInput{Email: "ada@example.com", Password: strings.Repeat("é", 40), Name: "Ada"}, "password"},
		{"short name after trim", RegisterInput{Email: "ada@example.com", Password: "secret1", Name: "  A  "}, "name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newAuthService(t, nil)
			_, err := svc.Register(context.Background(), tt.in)
			assertAppErrorCode(t, err, models.CodeValidation)

			var appErr *models.AppError
			require.ErrorAs(t, err, &appErr)
			require.NotEmpty(t, appErr.Fields)
			assert.Equal(t, tt.field, appErr.Fields[0].Field)
		})
	}
}

func TestAuthService_RegisterLongestPassword(t *testing.T) {
	svc := newAuthService(t, nil)
	password := strings.Repeat("p", 72)

	_, err := svc.Register(context.Background(), RegisterInput{Email: "long@example.com", Password: password, Name: "Long"})
	require.NoError(t, err)

	res, err := svc.Login(context.Background(), LoginInput{Email: "long@example.com", Password: password})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)

	_, err = svc.Register(context.Background(), RegisterInput{Email: "longer@example.com", Password: password + "p", Name: "Longer"})
	assertAppErrorCode(t, err, models.CodeValidation)
	assert.Equal(t, 400, models.StatusFor(err))
}

func TestAuthService_Login(t *testing.T) {
	svc := newAuthService(t, nil)
	ctx := context.Background()
	_, err := svc.Register(ctx, RegisterInput{Email: "ada@example.com", Password: "secret1", Name: "Ada"})
	require.NoError(t, err)

	res, err := svc.Login(ctx, LoginInput{Email: "ADA@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)

	_, err = svc.Login(ctx, LoginInput{Email: "ada@example.com", Password: "wrong-password"})
	assertAppErrorCode(t, err, models.CodeUnauthorized)

	_, err = svc.Login(ctx, LoginInput{Email: "nobody@example.com", Password: "secret1"})
	assertAppErrorCode(t, err, models.CodeUnauthorized)

	_, err = svc.Login(ctx, LoginInput{Email: "ada@example.com"})
	assertAppErrorCode(t, err, models.CodeValidation)
}

func TestAuthService_LoginStorageError(t *testing.T) {
	users := memoryUsers()
	users.getByEmailFn = func(context.Context, string) (*models.User, error) {
		return nil, models.NewInternalError(errStorage)
	}
	svc := NewAuthService(users, nil, AuthConfig{Secret: testSecret})

	_, err := svc.Login(context.Background(), LoginInput{Email: "ada@example.com", Password: "secret1"})
	assertAppErrorCode(t, err, models.CodeInternal)
}

func TestAuthService_VerifyTokenRejects(t *testing.T) {
	svc := newAuthService(t, nil)
	ctx := context.Background()
	user := &models.User{ID: 1, Email: "ada@example.com", Name: "Ada", Role: models.RoleUser}

	valid, err := svc.IssueToken(user)
	require.NoError(t, err)
	other, err := svc.IssueToken(&models.User{ID: 2, Email: "eve@example.com", Name: "Eve", Role: models.RoleAdmin})
	require.NoError(t, err)

	validParts := strings.Split(valid, ".")
	otherParts := strings.Split(other, ".")
	tampered := strings.Join([]string{validParts[0], otherParts[1], validParts[2]}, ".")

	stale := NewAuthService(memoryUsers(), nil, AuthConfig{Secret: testSecret, TTL: time.Hour})
	stale.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, err := stale.IssueToken(user)
	require.NoError(t, err)

	foreign, err := NewAuthService(memoryUsers(), nil, AuthConfig{Secret: "another-secret-entirely-000000000"}).IssueToken(user)
	require.NoError(t, err)

	sign := func(method jwt.SigningMethod, claims jwt.MapClaims) string {
		s, err := jwt.NewWithClaims(method, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)
		return s
	}
	baseClaims := func() jwt.MapClaims {
		return jwt.MapClaims{
			"sub": "1", "iss": TokenIssuer, "aud": TokenAudience,
			"exp": time.Now().Add(time.Hour).Unix(),
		}
	}
	wrongIssuer := baseClaims()
	wrongIssuer["iss"] = "someone-else"
	noExpiry := baseClaims()
	delete(noExpiry, "exp")
	badSubject := baseClaims()
	badSubject["sub"] = "abc"

	tests := map[string]string{
		"empty":          "",
		"garbage":        "not.a.token",
		"tampered":       tampered,
		"expired":        expired,
		"foreign secret": foreign,
		"wrong method":   sign(jwt.SigningMethodHS512, baseClaims()),
		"wrong issuer":   sign(jwt.SigningMethodHS256, wrongIssuer),
		"no expiry":      sign(jwt.SigningMethodHS256, noExpiry),
		"bad subject":    sign(jwt.SigningMethodHS256, badSubject),
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := svc.VerifyToken(ctx, token)
			assertAppErrorCode(t, err, models.CodeUnauthorized)
		})
	}

	claims, err := svc.VerifyToken(ctx, valid)
	require.NoError(t, err)
	assert.Equal(t, uint(1), claims.UserID)
}

func TestAuthService_LogoutRevokesToken(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	svc := newAuthService(t, rdb)
	ctx := context.Background()

	res, err := svc.Register(ctx, RegisterInput{Email: "ada@example.com", Password: "secret1", Name: "Ada"})
	require.NoError(t, err)
	claims, err := svc.VerifyToken(ctx, res.Token)
	require.NoError(t, err)

	revoked, err := svc.Logout(ctx, claims)
	require.NoError(t, err)
	assert.True(t, revoked)

	key := revokedKeyPrefix + claims.JTI
	assert.True(t, mr.Exists(key))
	ttl := mr.TTL(key)
	assert.Greater(t, ttl, 55*time.Minute)
	assert.LessOrEqual(t, ttl, time.Hour)

	_, err = svc.VerifyToken(ctx, res.Token)
	assertAppErrorCode(t, err, models.CodeUnauthorized)

	// A fresh login is unaffected.
	again, err := svc.Login(ctx, LoginInput{Email: "ada@example.com", Password: "secret1"})
	require.NoError(t, err)
	_, err = svc.VerifyToken(ctx, again.Token)
	assert.NoError(t, err)

	mr.FastForward(time.Hour + time.Minute)
	assert.False(t, mr.Exists(key))
}

func TestAuthService_LogoutWithoutRedis(t *testing.T) {
	svc := newAuthService(t, nil)
	ctx := context.Background()

	token, err := svc.IssueToken(&models.User{ID: 3, Email: "ada@example.com", Name: "Ada"})
	require.NoError(t, err)
	claims, err := svc.VerifyToken(ctx, token)
	require.NoError(t, err)

	revoked, err := svc.Logout(ctx, claims)
	require.NoError(t, err)
	assert.False(t, revoked)

	_, err = svc.VerifyToken(ctx, token)
	assert.NoError(t, err)
}

func TestAuthService_IssueTokenRequiresSecret(t *testing.T) {
	svc := NewAuthService(memoryUsers(), nil, AuthConfig{})
	_, err := svc.IssueToken(&models.User{ID: 1})
	assert.Error(t, err)
}
