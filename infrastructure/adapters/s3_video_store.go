package adapters

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"

	"github.com/sagarghai/growth-tools-api/application/ports/outbound"
	"github.com/sagarghai/growth-tools-api/config"
)

type s3VideoStore struct {
	logger      outbound.LoggerPort
	s3Svc       *s3.S3
	storeConfig *config.StoreConfig
}

// NewS3VideoStore uploads finished videos to the configured bucket.
func NewS3VideoStore(storeConfig *config.StoreConfig, logger outbound.LoggerPort) (outbound.VideoStorePort, error) {
	sess, err := session.NewSession(&aws.Config{Region: aws.String(storeConfig.S3Region)})
	if err != nil {
		return nil, fmt.Errorf("failed to create aws session: %w", err)
	}
	return &s3VideoStore{
		logger:      logger,
		s3Svc:       s3.New(sess),
		storeConfig: storeConfig,
	}, nil
}

func (s *s3VideoStore) Store(ctx context.Context, name string, videoFileName string) (string, error) {
	file, err := os.Open(videoFileName)
	if err != nil {
		return "", fmt.Errorf("failed to open video file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			s.logger.Error(closeErr, "Failed to close video file")
		}
	}()

	key := fmt.Sprintf("videos/%s/%s", time.Now().UTC().Format("2006-01-02"), name)
	_, err = s.s3Svc.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.storeConfig.S3Bucket),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String("video/mp4"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload video to s3: %w", err)
	}

	return key, nil
}
