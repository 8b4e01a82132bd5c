package services

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"linkup/internal/config"
)

// UploadService stores image blobs in S3-compatible object storage and
// returns their public URL.
type UploadService interface {
	Upload(ctx context.Context, folder, filename, contentType string, data []byte) (string, error)
}

// s3PutAPI is the slice of the S3 client the service needs; tests substitute it.
type s3PutAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type uploadService struct {
	client    s3PutAPI
	bucket    string
	publicURL string
}

func NewUploadService(cfg config.S3Config) (UploadService, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			// MinIO / S3-совместимый endpoint
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &uploadService{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: strings.TrimRight(cfg.PublicURL, "/"),
	}, nil
}

func storageKey(folder, filename string) string {
	return fmt.Sprintf("%s/%s%s", folder, uuid.New(), strings.ToLower(path.Ext(filename)))
}

func (s *uploadService) Upload(ctx context.Context, folder, filename, contentType string, data []byte) (string, error) {
	key := storageKey(folder, filename)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("s3 put object: %w", err)
	}

	return fmt.Sprintf("%s/%s", s.publicURL, key), nil
}
