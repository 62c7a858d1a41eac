package jobs

import (
	"context"
	"time"

	"github.com/vibast-solutions/ms-go-accounts/app/repository"

	"github.com/sirupsen/logrus"
)

// TokenSweepJob deactivates lapsed password reset tokens. It is hygiene only;
// confirmation re-checks expiry itself, so a skipped or delayed run is safe.
type TokenSweepJob struct {
	tokenRepo *repository.ResetTokenRepository
}

func NewTokenSweepJob(tokenRepo *repository.ResetTokenRepository) *TokenSweepJob {
	return &TokenSweepJob{tokenRepo: tokenRepo}
}

func (j *TokenSweepJob) Run() {
	defer logPanic("token_sweep")

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	count, err := j.tokenRepo.DeactivateExpired(ctx, time.Now())
	if err != nil {
		logrus.WithError(err).Error("reset token sweep failed")
		return
	}
	if count > 0 {
		logrus.WithField("count", count).Info("deactivated expired reset tokens")
	}
}

func logPanic(job string) {
	if r := recover(); r != nil {
		logrus.WithFields(logrus.Fields{"job": job, "panic": r}).Error("background job panicked")
	}
}
