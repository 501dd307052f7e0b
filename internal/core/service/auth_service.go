package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/soyleaf/soyleaf-api/internal/core/domain"
	"github.com/soyleaf/soyleaf-api/internal/core/ports"
)

// AuthService implements registration, login, logout and profile lookup.
//
// Sessions are JWTs whose jti must also be present in the session store: the
// token authenticates the claim, the store makes it revocable. Logout deletes
// the store entry, killing the session before the token's own expiry.
type AuthService struct {
	repo       ports.UserRepository
	sessions   ports.SessionStore
	jwtSecret  string
	sessionTTL time.Duration
	logger     zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, sessions ports.SessionStore, jwtSecret string, sessionTTL time.Duration, logger zerolog.Logger) *AuthService {
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	return &AuthService{
		repo:       repo,
		sessions:   sessions,
		jwtSecret:  jwtSecret,
		sessionTTL: sessionTTL,
		logger:     logger,
	}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if in.Username == "" || in.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Username:     in.Username,
		FullName:     in.FullName,
		Email:        in.Email,
		Phone:        in.Phone,
		DOB:          in.DOB,
		Address:      in.Address,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", created.Username).Msg("user registered")
	return created, nil
}

// Login verifies the credentials and establishes a session. A missing user
// and a wrong password both come back as ErrInvalidCredentials so the
// response never reveals whether the username exists.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, sessionID, err := s.mintToken(user.Username)
	if err != nil {
		return "", nil, fmt.Errorf("mint session token: %w", err)
	}
	if err := s.sessions.Save(ctx, sessionID, user.Username, s.sessionTTL); err != nil {
		return "", nil, fmt.Errorf("establish session: %w", err)
	}

	s.logger.Info().Str("username", user.Username).Msg("login succeeded")
	return token, user, nil
}

// Logout revokes the session carried by the token. Tokens that no longer
// parse cleanly revoke nothing and are not an error: the session is already
// unusable either way.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	sessionID, _, err := s.parseToken(token)
	if err != nil {
		s.logger.Debug().Err(err).Msg("logout with unparseable token")
		return nil
	}
	return s.sessions.Delete(ctx, sessionID)
}

func (s *AuthService) Profile(ctx context.Context, username string) (*domain.Profile, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	p := domain.ProfileOf(user)
	return &p, nil
}

func (s *AuthService) mintToken(username string) (token, sessionID string, err error) {
	sessionID = uuid.NewString()
	claims := jwt.MapClaims{
		"username": username,
		"jti":      sessionID,
		"exp":      time.Now().Add(s.sessionTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", "", err
	}
	return signed, sessionID, nil
}

func (s *AuthService) parseToken(token string) (sessionID, username string, err error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return "", "", fmt.Errorf("parse session token: %w", err)
	}
	sessionID, _ = claims["jti"].(string)
	username, _ = claims["username"].(string)
	if sessionID == "" {
		return "", "", errors.New("session token missing jti")
	}
	return sessionID, username, nil
}
