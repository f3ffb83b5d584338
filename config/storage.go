package config

import (
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// StorageConfig points at the S3-compatible bucket holding report evidence.
type StorageConfig struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	PublicURL       string
	Region          string
}

func GetStorageConfig() *StorageConfig {
	region := os.Getenv("STORAGE_REGION")
	if region == "" {
		region = "auto"
	}
	return &StorageConfig{
		AccountID:       os.Getenv("STORAGE_ACCOUNT_ID"),
		AccessKeyID:     os.Getenv("STORAGE_ACCESS_KEY_ID"),
		SecretAccessKey: os.Getenv("STORAGE_SECRET_ACCESS_KEY"),
		BucketName:      os.Getenv("STORAGE_BUCKET_NAME"),
		PublicURL:       os.Getenv("STORAGE_PUBLIC_URL"),
		Region:          region,
	}
}

// NewStorageClient builds an S3 client for the configured bucket endpoint.
func NewStorageClient(cfg *StorageConfig) *s3.Client {
	opts := s3.Options{
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		),
		Region: cfg.Region,
	}
	if endpoint := os.Getenv("STORAGE_ENDPOINT"); endpoint != "" {
		opts.BaseEndpoint = aws.String(endpoint)
	} else if cfg.AccountID != "" {
		opts.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.AccountID))
	}
	return s3.New(opts)
}
