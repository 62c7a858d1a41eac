package service

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/vibast-solutions/ms-go-accounts/app/entity"
	"github.com/vibast-solutions/ms-go-accounts/app/repository"
	"github.com/vibast-solutions/ms-go-accounts/config"

	"github.com/sirupsen/logrus"
)

// resetTokenBytes gives 256 bits of entropy per token.
const resetTokenBytes = 32

type PasswordResetService struct {
	db        *sql.DB
	userRepo  *repository.UserRepository
	tokenRepo *repository.ResetTokenRepository
	sender    Sender
	cfg       *config.Config
}

func NewPasswordResetService(
	db *sql.DB,
	userRepo *repository.UserRepository,
	tokenRepo *repository.ResetTokenRepository,
	sender Sender,
	cfg *config.Config,
) *PasswordResetService {
	return &PasswordResetService{
		db:        db,
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		sender:    sender,
		cfg:       cfg,
	}
}

// Request creates and delivers a reset token. It returns nil whether or not
// the email belongs to a user; only storage failures surface. A user may hold
// several outstanding tokens, a new request does not invalidate earlier ones.
func (s *PasswordResetService) Request(ctx context.Context, email string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}

	tokenString, err := generateResetToken()
	if err != nil {
		return err
	}

	now := time.Now()
	token := &entity.PasswordResetToken{
		UserID:    user.ID,
		Token:     tokenString,
		ExpiresAt: now.Add(s.cfg.ResetTokenTTL),
		Used:      false,
		Active:    true,
		CreatedAt: now,
	}
	if err := s.tokenRepo.Create(ctx, token); err != nil {
		return err
	}

	// Delivery failure does not roll back the token; the user can request
	// again and an undelivered token expires on its own.
	if !s.sender.SendPasswordReset(user.Email, tokenString) {
		logrus.WithField("user_id", user.ID).Warn("failed to deliver password reset email")
	}
	return nil
}

// Confirm consumes a reset token and sets the new password. Not-found,
// inactive, used and expired all collapse into ErrInvalidOrExpiredToken so the
// response does not reveal which check failed. The password update and the
// token consumption commit in one transaction.
func (s *PasswordResetService) Confirm(ctx context.Context, tokenString, newPassword string) error {
	if err := s.cfg.ValidatePassword(newPassword); err != nil {
		return fmt.Errorf("%w: %s", ErrWeakPassword, err.Error())
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	txTokens := s.tokenRepo.WithTx(tx)
	token, err := txTokens.FindByToken(ctx, tokenString)
	if err != nil {
		return err
	}
	if token == nil || !token.Active || token.Used || !token.ExpiresAt.After(time.Now()) {
		return ErrInvalidOrExpiredToken
	}

	txUsers := s.userRepo.WithTx(tx)
	user, err := txUsers.FindByID(ctx, token.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrInvalidOrExpiredToken
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := txUsers.UpdatePassword(ctx, user.ID, hash); err != nil {
		return err
	}

	consumed, err := txTokens.Consume(ctx, token.ID)
	if err != nil {
		return err
	}
	if consumed == 0 {
		// A concurrent confirmation won the conditional update.
		return ErrInvalidOrExpiredToken
	}

	return tx.Commit()
}

func generateResetToken() (string, error) {
	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
