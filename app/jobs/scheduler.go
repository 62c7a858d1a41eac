package jobs

import (
	"github.com/vibast-solutions/ms-go-accounts/app/repository"
	appconfig "github.com/vibast-solutions/ms-go-accounts/config"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Start schedules the background loops and returns the running scheduler.
// Jobs never share memory with request handlers; they only meet in the store.
func Start(cfg *appconfig.Config, tokenRepo *repository.ResetTokenRepository) *cron.Cron {
	c := cron.New()

	if _, err := c.AddJob("@hourly", NewTokenSweepJob(tokenRepo)); err != nil {
		logrus.WithError(err).Fatal("Failed to schedule reset token sweep")
	}

	if cfg.Features.Backups {
		if _, err := c.AddJob("@daily", NewBackupJob(cfg)); err != nil {
			logrus.WithError(err).Fatal("Failed to schedule database backup")
		}
	}

	c.Start()
	return c
}
