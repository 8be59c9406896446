package initializers

import (
	"context"

	log "github.com/sirupsen/logrus"

	s3client "fleet-tools-backend/s3"
)

func InitS3(ctx context.Context) {
	client, err := s3client.NewClient()
	if err != nil {
		log.WithError(err).Error("S3 client initialization failed")
		return
	}
	if err := client.MakeBucket(ctx); err != nil {
		log.WithError(err).Error("S3 bucket check failed")
		return
	}
	s3client.Instance = client
	log.Info("S3 client initialized")
}
