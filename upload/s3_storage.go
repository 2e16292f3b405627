package upload

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Storage stores files in an S3-compatible bucket (AWS S3, Cloudflare R2).
type S3Storage struct {
	client     *s3.Client
	presigner  *s3.PresignClient
	bucketName string
}

// NewS3Storage creates an S3-backed file storage instance pointed at an
// R2-style account endpoint.
func NewS3Storage(accountID, bucketName, accessKeyID, secretAccessKey string) (*S3Storage, error) {
	endpoint := fmt.Sprintf("https://%s.r2.cloudflarestorage.com", accountID)

	client := s3.New(s3.Options{
		Region:       "auto",
		BaseEndpoint: &endpoint,
		Credentials:  credentials.NewStaticCredentialsProvider(accessKeyID, secretAccessKey, ""),
	})

	return &S3Storage{
		client:     client,
		presigner:  s3.NewPresignClient(client),
		bucketName: bucketName,
	}, nil
}

// Save uploads a file to the bucket.
func (s *S3Storage) Save(ctx context.Context, path string, reader io.Reader, size int64) error {
	if err := validateKey(path); err != nil {
		return err
	}
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: &s.bucketName,
		Key:    &path,
		Body:   reader,
	})
	if err != nil {
		return fmt.Errorf("s3 put object failed: %w", err)
	}
	return nil
}

// Delete removes a file from the bucket.
func (s *S3Storage) Delete(ctx context.Context, path string) error {
	if err := validateKey(path); err != nil {
		return err
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: &s.bucketName,
		Key:    &path,
	})
	if err != nil {
		return fmt.Errorf("s3 delete object failed: %w", err)
	}
	return nil
}

// GetURL returns a presigned download URL. Guestbook images are long-lived
// public assets, so the expiry is generous.
func (s *S3Storage) GetURL(ctx context.Context, path string) (string, error) {
	if err := validateKey(path); err != nil {
		return "", err
	}
	result, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: &s.bucketName,
		Key:    &path,
	}, s3.WithPresignExpires(365*24*time.Hour))
	if err != nil {
		return "", fmt.Errorf("s3 presign failed: %w", err)
	}
	return result.URL, nil
}
