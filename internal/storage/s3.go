package storage

import (
	"context"
	"healthdash/config"
	"healthdash/internal/logger"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsCfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type s3Storage struct {
	client        *s3.Client
	presignClient *s3.PresignClient
	bucketName    string
	log           logger.Logger
}

// NewS3Storage builds a FileStorage over S3 or any S3-compatible endpoint
// (MinIO and friends need path-style addressing, hence UsePathStyle).
func NewS3Storage(cfg config.Config) (FileStorage, error) {
	log := logger.New("storage").Function("NewS3Storage")

	customResolver := aws.EndpointResolverWithOptionsFunc(
		func(service, region string, options ...interface{}) (aws.Endpoint, error) {
			if cfg.S3Endpoint != "" {
				return aws.Endpoint{
					PartitionID:   "aws",
					URL:           cfg.S3Endpoint,
					SigningRegion: cfg.S3Region,
				}, nil
			}
			return aws.Endpoint{}, &aws.EndpointNotFoundError{}
		})

	awsSDKConfig, err := awsCfg.LoadDefaultConfig(context.Background(),
		awsCfg.WithRegion(cfg.S3Region),
		awsCfg.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKeyID, cfg.S3SecretAccessKey, "")),
		awsCfg.WithEndpointResolverWithOptions(customResolver),
	)
	if err != nil {
		return nil, log.Err("failed to load AWS SDK config", err)
	}

	s3Client := s3.NewFromConfig(awsSDKConfig, func(o *s3.Options) {
		o.UsePathStyle = true
	})

	log.Info("S3 storage initialized", "endpoint", cfg.S3Endpoint, "bucket", cfg.S3Bucket)

	return &s3Storage{
		client:        s3Client,
		presignClient: s3.NewPresignClient(s3Client),
		bucketName:    cfg.S3Bucket,
		log:           logger.New("storage"),
	}, nil
}

func (s *s3Storage) GeneratePresignedUploadURL(
	ctx context.Context,
	objectKey, contentType string,
	expires time.Duration,
) (string, error) {
	log := s.log.Function("GeneratePresignedUploadURL")

	if expires <= 0 {
		expires = DefaultPresignedURLExpiry
	}

	req, err := s.presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucketName),
		Key:         aws.String(objectKey),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(expires))
	if err != nil {
		return "", log.Err("failed to presign upload URL", err, "objectKey", objectKey)
	}

	return req.URL, nil
}

func (s *s3Storage) GeneratePresignedDownloadURL(
	ctx context.Context,
	objectKey string,
	expires time.Duration,
) (string, error) {
	log := s.log.Function("GeneratePresignedDownloadURL")

	if expires <= 0 {
		expires = DefaultPresignedURLExpiry
	}

	req, err := s.presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(objectKey),
	}, s3.WithPresignExpires(expires))
	if err != nil {
		return "", log.Err("failed to presign download URL", err, "objectKey", objectKey)
	}

	return req.URL, nil
}

func (s *s3Storage) DeleteObject(ctx context.Context, objectKey string) error {
	log := s.log.Function("DeleteObject")

	if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(objectKey),
	}); err != nil {
		return log.Err("failed to delete object", err, "objectKey", objectKey)
	}

	return nil
}
