package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"jobboard/internal/middleware"
	"jobboard/internal/models"
	"jobboard/internal/observability"
	"jobboard/internal/repository"
	"jobboard/internal/validation"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

const (
	TokenIssuer   = "jobboard-api"
	TokenAudience = "jobboard-client"

	revokedKeyPrefix = "blacklist:"
)

// AuthConfig configures token issuing and verification.
type AuthConfig struct {
	Secret string
	TTL    time.Duration
}

// RegisterInput is the payload of a registration request.
type RegisterInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,maxbytes=72"`
	Name     string `json:"name" validate:"required,min=2"`
}

// LoginInput is the payload of a login request.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Claims are the verified contents of an access token.
type Claims struct {
	UserID    uint
	Email     string
	Name      string
	Role      string
	JTI       string
	ExpiresAt time.Time
}

// IsAdmin reports whether the token was issued to an admin.
func (c *Claims) IsAdmin() bool {
	return c != nil && c.Role == models.RoleAdmin
}

type AuthService struct {
	users repository.UserRepository
	redis *redis.Client
	cfg   AuthConfig
	now   func() time.Time
}

// NewAuthService returns an AuthService. redisClient may be nil, in which case
// tokens cannot be revoked before they expire.
func NewAuthService(users repository.UserRepository, redisClient *redis.Client, cfg AuthConfig) *AuthService {
	if cfg.TTL == 0 {
		cfg.TTL = 24 * time.Hour
	}
	return &AuthService{
		users: users,
		redis: redisClient,
		cfg:   cfg,
		now:   time.Now,
	}
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (result *AuthResult, err error) {
	ctx, end := observability.StartSpan(ctx, "auth", "register")
	defer func() {
		end(err)
		observability.AuthEvents.WithLabelValues("register", outcome(err)).Inc()
	}()

	in.Email = validation.NormalizeEmail(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	existing, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewConflictError("Email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Email:    in.Email,
		Password: string(hash),
		Name:     in.Name,
		Role:     models.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &AuthResult{Token: token, User: user}, nil
}

func (s *AuthService) Login(ctx context.Context, in LoginInput) (result *AuthResult, err error) {
	ctx, end := observability.StartSpan(ctx, "auth", "login")
	defer func() {
		end(err)
		observability.AuthEvents.WithLabelValues("login", outcome(err)).Inc()
	}()

	in.Email = validation.NormalizeEmail(in.Email)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}
	if cmpErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); cmpErr != nil {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &AuthResult{Token: token, User: user}, nil
}

// IssueToken signs an HS256 access token for user.
func (s *AuthService) IssueToken(user *models.User) (string, error) {
	if s.cfg.Secret == "" {
		return "", errors.New("JWT secret not configured")
	}

	now := s.now()
	role := user.Role
	if role == "" {
		role = models.RoleUser
	}
	claims := jwt.MapClaims{
		"sub":   strconv.FormatUint(uint64(user.ID), 10),
		"email": user.Email,
		"name":  user.Name,
		"role":  role,
		"iss":   TokenIssuer,
		"aud":   TokenAudience,
		"exp":   now.Add(s.cfg.TTL).Unix(),
		"iat":   now.Unix(),
		"nbf":   now.Unix(),
		"jti":   generateJTI(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.Secret))
}

func generateJTI(now time.Time) string {
	return fmt.Sprintf("%d-%s", now.Unix(), uuid.New().String()[:8])
}

// VerifyToken validates signature, issuer, audience and expiry, then checks
// the revocation list.
func (s *AuthService) VerifyToken(ctx context.Context, tokenString string) (*Claims, error) {
	if strings.TrimSpace(tokenString) == "" {
		return nil, models.NewUnauthorizedError("Authorization required")
	}

	token, err := jwt.Parse(tokenString,
		func(*jwt.Token) (any, error) { return []byte(s.cfg.Secret), nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(TokenIssuer),
		jwt.WithAudience(TokenAudience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return nil, models.NewUnauthorizedError("Invalid or expired token")
	}

	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, models.NewUnauthorizedError("Invalid token claims")
	}

	sub, _ := mc["sub"].(string)
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil || userID == 0 {
		return nil, models.NewUnauthorizedError("Invalid user ID in token")
	}

	claims := &Claims{UserID: uint(userID)}
	claims.Email, _ = mc["email"].(string)
	claims.Name, _ = mc["name"].(string)
	claims.Role, _ = mc["role"].(string)
	claims.JTI, _ = mc["jti"].(string)
	if exp, expErr := mc.GetExpirationTime(); expErr == nil && exp != nil {
		claims.ExpiresAt = exp.Time
	}

	if claims.JTI != "" && s.redis != nil {
		revoked, rerr := s.redis.Exists(ctx, revokedKeyPrefix+claims.JTI).Result()
		if rerr != nil {
			middleware.Logger.WarnContext(ctx, "revocation lookup failed", "error", rerr)
		} else if revoked > 0 {
			return nil, models.NewUnauthorizedError("Token has been revoked")
		}
	}

	return claims, nil
}

// Logout revokes the token described by claims until it would have expired.
// It reports false when no revocation store is configured.
func (s *AuthService) Logout(ctx context.Context, claims *Claims) (bool, error) {
	if s.redis == nil || claims == nil || claims.JTI == "" {
		observability.AuthEvents.WithLabelValues("logout", "stateless").Inc()
		return false, nil
	}

	ttl := claims.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return true, nil
	}
	if err := s.redis.Set(ctx, revokedKeyPrefix+claims.JTI, claims.UserID, ttl).Err(); err != nil {
		observability.AuthEvents.WithLabelValues("logout", "error").Inc()
		return false, models.NewInternalError(err)
	}
	observability.AuthEvents.WithLabelValues("logout", "success").Inc()
	return true, nil
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case models.IsCode(err, models.CodeInternal):
		return "error"
	default:
		return "rejected"
	}
}
