package s3

import (
	"bytes"
	"context"
	"fmt"

	"github.com/Abdurahmanit/GroupProject/property-service/internal/platform/logger"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// S3Storage is the blob-store adapter, backed by a MinIO/S3-compatible
// endpoint. Object keys are chosen by the caller; the returned location is
// the public URL of the uploaded object.
type S3Storage struct {
	client *minio.Client
	bucket string
	logger *logger.Logger
}

func NewS3Storage(ctx context.Context, endpoint, accessKey, secretKey, bucketName string, useSSL bool, log *logger.Logger) (*S3Storage, error) {
	log.Info("initializing blob storage",
		zap.String("endpoint", endpoint),
		zap.String("bucket", bucketName),
		zap.Bool("use_ssl", useSSL))

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client for endpoint %s: %w", endpoint, err)
	}

	// Create the bucket if it doesn't exist yet.
	if err := client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{}); err != nil {
		exists, errBucketExists := client.BucketExists(ctx, bucketName)
		if errBucketExists != nil || !exists {
			return nil, fmt.Errorf("failed to make/verify bucket %s: (make: %v / exists_check: %v)", bucketName, err, errBucketExists)
		}
		log.Info("bucket already exists", zap.String("bucket", bucketName))
	}

	return &S3Storage{
		client: client,
		bucket: bucketName,
		logger: log.Named("S3Storage"),
	}, nil
}

// Upload writes data under objectKey, tagging the object with contentType,
// and returns the object's URL.
func (s *S3Storage) Upload(ctx context.Context, objectKey string, data []byte, contentType string) (string, error) {
	s.logger.Debug("uploading object",
		zap.String("bucket", s.bucket),
		zap.String("object_key", objectKey),
		zap.Int("size_bytes", len(data)))

	uploadInfo, err := s.client.PutObject(ctx, s.bucket, objectKey, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		s.logger.Error("PutObject failed", zap.String("object_key", objectKey), zap.Error(err))
		return "", fmt.Errorf("failed to upload object %s to bucket %s: %w", objectKey, s.bucket, err)
	}

	fileURL := fmt.Sprintf("%s/%s/%s", s.client.EndpointURL().String(), s.bucket, uploadInfo.Key)
	s.logger.Info("object uploaded",
		zap.String("bucket", uploadInfo.Bucket),
		zap.String("key", uploadInfo.Key),
		zap.String("url", fileURL))
	return fileURL, nil
}
