package service

import (
	"context"
	"fmt"
	"time"

	"github.com/vibast-solutions/ms-go-accounts/app/dto"
	"github.com/vibast-solutions/ms-go-accounts/app/entity"
	"github.com/vibast-solutions/ms-go-accounts/config"
)

type userRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByID(ctx context.Context, id uint64) (*entity.User, error)
}

type AuthService struct {
	userRepo userRepository
	tokens   *TokenService
	cfg      *config.Config
}

func NewAuthService(userRepo userRepository, tokens *TokenService, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
		cfg:      cfg,
	}
}

func (s *AuthService) Register(ctx context.Context, email, password string) (*entity.User, error) {
	if !s.cfg.Features.Registration {
		return nil, ErrFeatureDisabled
	}

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailAlreadyRegistered
	}

	if err := s.cfg.ValidatePassword(password); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrWeakPassword, err.Error())
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &entity.User{
		Email:        email,
		PasswordHash: hash,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login checks the password before the active flag, so a disabled account
// with the right password is distinguishable from a wrong password. That
// matches the rest of the API surface but is a known enumeration leak; see
// DESIGN.md before changing either branch.
func (s *AuthService) Login(ctx context.Context, email, password string) (*dto.LoginResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || !CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, ErrAccountDisabled
	}

	accessToken, err := s.tokens.IssueAccess(user.ID)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.tokens.IssueRefresh(user.ID)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}

// Refresh mints a new access token from a refresh token. Refresh tokens are
// stateless and are not rotated here; they stay valid until natural expiry.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.tokens.Verify(refreshToken)
	if err != nil {
		return "", ErrInvalidOrExpiredToken
	}

	if claims.TokenType != TokenTypeRefresh {
		return "", ErrInvalidTokenType
	}

	userID, err := claims.UserID()
	if err != nil {
		return "", ErrInvalidOrExpiredToken
	}

	return s.tokens.IssueAccess(userID)
}

// CurrentUser resolves an access token to its user record. An inactive user
// still resolves; activity gating belongs to login, not to session checks.
func (s *AuthService) CurrentUser(ctx context.Context, accessToken string) (*entity.User, error) {
	claims, err := s.tokens.Verify(accessToken)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	userID, err := claims.UserID()
	if err != nil {
		return nil, ErrUnauthenticated
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUnauthenticated
	}
	return user, nil
}
