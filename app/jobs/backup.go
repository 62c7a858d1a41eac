package jobs

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	appconfig "github.com/vibast-solutions/ms-go-accounts/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sirupsen/logrus"
)

// BackupJob copies the database file into the backups directory and
// optionally uploads the copy to Cloudflare R2 over the S3 API. File-copy
// backups only make sense for the sqlite driver; other drivers get a log line
// and no work.
type BackupJob struct {
	cfg *appconfig.Config
}

func NewBackupJob(cfg *appconfig.Config) *BackupJob {
	return &BackupJob{cfg: cfg}
}

func (j *BackupJob) Run() {
	defer logPanic("backup")

	if j.cfg.DatabaseDriver != "sqlite3" {
		logrus.WithField("driver", j.cfg.DatabaseDriver).Info("skipping file backup for non-sqlite driver")
		return
	}

	dest, err := j.localBackup()
	if err != nil {
		logrus.WithError(err).Error("database backup failed")
		return
	}
	logrus.WithField("path", dest).Info("created database backup")

	if j.cfg.Backup.R2Enabled {
		if err := j.uploadToR2(dest); err != nil {
			logrus.WithError(err).Error("R2 backup upload failed")
		}
	}
}

func (j *BackupJob) localBackup() (string, error) {
	if err := os.MkdirAll(j.cfg.Backup.Dir, 0o755); err != nil {
		return "", err
	}

	src, err := os.Open(j.cfg.DatabaseDSN)
	if err != nil {
		return "", err
	}
	defer src.Close()

	ts := time.Now().UTC().Format("20060102-150405")
	dest := filepath.Join(j.cfg.Backup.Dir, fmt.Sprintf("service-%s.db", ts))

	out, err := os.Create(dest)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		return "", err
	}
	return dest, nil
}

func (j *BackupJob) uploadToR2(path string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion("auto"),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			j.cfg.Backup.R2AccessKeyID,
			j.cfg.Backup.R2SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return err
	}

	endpoint := fmt.Sprintf("https://%s.r2.cloudflarestorage.com", j.cfg.Backup.R2AccountID)
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
	})

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(j.cfg.Backup.R2Bucket),
		Key:    aws.String(filepath.Base(path)),
		Body:   f,
	})
	return err
}
