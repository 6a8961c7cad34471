// Package storage persists uploaded resume files in S3. Only the object URL
// is stored alongside the profile; extraction works on the raw bytes before
// they are uploaded.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// PresignTTL is how long download links stay valid.
const PresignTTL = time.Hour

// BlobStore uploads user files and mints download links. Implemented by
// S3Store; handlers depend on the interface so tests can stub it.
type BlobStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	PresignedURL(key string) (string, error)
}

// S3Store stores blobs in a single S3 bucket.
type S3Store struct {
	client *s3.S3
	bucket string
	region string
}

// NewS3Store builds a store from AWS_* environment variables.
func NewS3Store() (*S3Store, error) {
	accessKey := os.Getenv("AWS_ACCESS_KEY_ID")
	secretKey := os.Getenv("AWS_SECRET_ACCESS_KEY")
	region := os.Getenv("AWS_REGION")
	bucket := os.Getenv("AWS_S3_BUCKET")

	if accessKey == "" || secretKey == "" || region == "" || bucket == "" {
		return nil, fmt.Errorf("AWS credentials not configured")
	}

	sess, err := session.NewSession(&aws.Config{
		Region:      aws.String(region),
		Credentials: credentials.NewStaticCredentials(accessKey, secretKey, ""),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &S3Store{client: s3.New(sess), bucket: bucket, region: region}, nil
}

// Upload writes a blob under the given key and returns its object URL.
func (s *S3Store) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := s.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key), nil
}

// PresignedURL mints a time-limited download link for a stored blob.
func (s *S3Store) PresignedURL(key string) (string, error) {
	req, _ := s.client.GetObjectRequest(&s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})

	url, err := req.Presign(PresignTTL)
	if err != nil {
		return "", fmt.Errorf("failed to presign URL: %w", err)
	}
	return url, nil
}

// ObjectKey builds the canonical key for a user's uploaded resume.
func ObjectKey(userID, filename string) string {
	return fmt.Sprintf("resumes/%s/%d-%s", userID, time.Now().Unix(), filename)
}
