package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/platform/apierr"
	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/platform/logger"
)

const adminTokenIssuer = "gmb-lite-system"

var ErrInvalidCredentials = errors.New("invalid credentials")

type AdminClaims struct {
	jwt.RegisteredClaims
}

type AdminToken struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

type AdminAuthConfig struct {
	Username     string
	PasswordHash string // bcrypt
	JWTSecret    string
	AccessTTL    time.Duration
}

type AdminAuthService interface {
	// Enabled reports whether admin routes require a token.
	Enabled() bool
	Login(ctx context.Context, username, password string) (*AdminToken, error)
	// Verify returns the admin subject of a valid access token.
	Verify(ctx context.Context, token string) (string, error)
}

type adminAuthService struct {
	log *logger.Logger
	cfg AdminAuthConfig
	now func() time.Time
}

func NewAdminAuthService(log *logger.Logger, cfg AdminAuthConfig) AdminAuthService {
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = 12 * time.Hour
	}
	if strings.TrimSpace(cfg.Username) == "" {
		cfg.Username = "admin"
	}
	return &adminAuthService{
		log: log.With("service", "AdminAuthService"),
		cfg: cfg,
		now: time.Now,
	}
}

func (s *adminAuthService) Enabled() bool {
	return s.cfg.JWTSecret != "" && s.cfg.PasswordHash != ""
}

func (s *adminAuthService) Login(ctx context.Context, username, password string) (*AdminToken, error) {
	if !s.Enabled() {
		return nil, apierr.New(http.StatusNotFound, "auth_disabled", errors.New("admin login is not configured"))
	}
	userOK := subtle.ConstantTimeCompare([]byte(strings.TrimSpace(username)), []byte(s.cfg.Username)) == 1
	passErr := bcrypt.CompareHashAndPassword([]byte(s.cfg.PasswordHash), []byte(password))
	if !userOK || passErr != nil {
		s.log.Warn("admin login rejected", "username", username)
		return nil, apierr.New(http.StatusUnauthorized, "invalid_credentials", ErrInvalidCredentials)
	}

	now := s.now()
	claims := AdminClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   s.cfg.Username,
			Issuer:    adminTokenIssuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.AccessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, fmt.Errorf("sign admin token: %w", err)
	}
	return &AdminToken{
		AccessToken: signed,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.cfg.AccessTTL.Seconds()),
	}, nil
}

func (s *adminAuthService) Verify(ctx context.Context, token string) (string, error) {
	if strings.TrimSpace(token) == "" {
		return "", ErrInvalidCredentials
	}
	parsed, err := jwt.ParseWithClaims(token, &AdminClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWTSecret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(adminTokenIssuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return "", fmt.Errorf("parse admin token: %w", err)
	}
	claims, ok := parsed.Claims.(*AdminClaims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return "", ErrInvalidCredentials
	}
	return claims.Subject, nil
}
