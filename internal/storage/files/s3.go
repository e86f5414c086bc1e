package files

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/GestionTG-25-26/tg-backend/internal/proyectos/service"
)

// S3Storage stores uploads in an S3 bucket and returns the object key as the
// opaque path kept by the aggregate.
type S3Storage struct {
	client *s3.Client
	bucket string
}

// NewS3Storage loads the default AWS config for the region and returns a
// storage bound to the bucket.
func NewS3Storage(ctx context.Context, region, bucket string) (*S3Storage, error) {
	cfg, err := awscfg.LoadDefaultConfig(ctx, awscfg.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &S3Storage{client: s3.NewFromConfig(cfg), bucket: bucket}, nil
}

// Store uploads the file under folder/ with a unique key.
func (s *S3Storage) Store(ctx context.Context, folder string, upload service.Upload) (string, error) {
	key := folder + "/" + uuid.New().String() + filepath.Ext(upload.Filename)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        upload.Content,
		ContentType: aws.String("application/pdf"),
	})
	if err != nil {
		return "", fmt.Errorf("put s3 object %s: %w", key, err)
	}
	return key, nil
}
