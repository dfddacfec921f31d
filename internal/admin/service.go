// Package admin authenticates the back office.
package admin

import (
	"context"
	"strings"
	"time"

	pkgAuth "github.com/tailorline/storefront/pkg/auth"
	"github.com/tailorline/storefront/pkg/config"
	pkgerrors "github.com/tailorline/storefront/pkg/errors"
	"github.com/tailorline/storefront/pkg/logger"
	"github.com/tailorline/storefront/pkg/security"
)

const (
	MsgInvalidCredentials = "Invalid credentials"
	MsgPasswordRequired   = "The password field is required."
)

// LoginRequest is the body of POST /api/admin/login.
type LoginRequest struct {
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the bearer token for later admin calls.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	Authenticate(token string) (*pkgAuth.AdminClaims, error)
}

type service struct {
	cfg  config.AdminConfig
	logg *logger.Logger
	now  func() time.Time
}

type ServiceParams struct {
	Config config.AdminConfig
	Logger *logger.Logger
	Clock  func() time.Time
}

func NewService(params ServiceParams) (Service, error) {
	if strings.TrimSpace(params.Config.PasswordHash) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "admin password hash is required")
	}
	if params.Config.JWTSecret == "" {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "admin jwt secret is required")
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	clock := params.Clock
	if clock == nil {
		clock = time.Now
	}
	return &service{cfg: params.Config, logg: logg, now: clock}, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	if req.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, MsgPasswordRequired).
			WithDetails(map[string][]string{"password": {MsgPasswordRequired}})
	}

	ok, err := security.VerifyPassword(req.Password, strings.TrimSpace(s.cfg.PasswordHash))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify admin password")
	}
	if !ok {
		s.logg.Warn(ctx, "admin.login_rejected")
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, MsgInvalidCredentials)
	}

	token, expiresAt, err := pkgAuth.MintAdminToken(s.cfg, s.now().UTC())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint admin token")
	}
	s.logg.Info(ctx, "admin.login")
	return &LoginResponse{Token: token, ExpiresAt: expiresAt}, nil
}

// Authenticate validates a bearer token minted by Login.
func (s *service) Authenticate(token string) (*pkgAuth.AdminClaims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing admin token")
	}
	claims, err := pkgAuth.ParseAdminToken(s.cfg, token)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid admin token")
	}
	return claims, nil
}
