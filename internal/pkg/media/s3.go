package media

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/folio-space/core/internal/config"
)

type s3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Store writes objects to a bucket fronted by a public base URL.
type S3Store struct {
	client     s3API
	bucket     string
	publicBase string
}

func NewS3Store(cfg config.S3Config, publicBase string) *S3Store {
	opts := s3.Options{
		Region:       cfg.Region,
		UsePathStyle: cfg.PathStyle,
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts.Credentials = aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		)
	}
	if endpoint := strings.TrimSpace(cfg.Endpoint); endpoint != "" {
		if !strings.Contains(endpoint, "://") {
			endpoint = "https://" + endpoint
		}
		opts.BaseEndpoint = aws.String(strings.TrimRight(endpoint, "/"))
		opts.UsePathStyle = true
	}
	return newS3Store(s3.New(opts), cfg.Bucket, publicBase)
}

func newS3Store(client s3API, bucket, publicBase string) *S3Store {
	return &S3Store{
		client:     client,
		bucket:     bucket,
		publicBase: strings.TrimRight(publicBase, "/"),
	}
}

func (s *S3Store) Name() string { return "s3" }

func (s *S3Store) Save(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	key = normalizeKey(key)
	if key == "" {
		return "", fmt.Errorf("empty media key")
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	in := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        r,
		ContentType: aws.String(contentType),
	}
	if size > 0 {
		in.ContentLength = aws.Int64(size)
	}
	if _, err := s.client.PutObject(ctx, in); err != nil {
		return "", fmt.Errorf("s3 put %s: %w", key, err)
	}
	return s.publicBase + "/" + key, nil
}

func (s *S3Store) Owns(publicPath string) bool {
	return s.keyOf(publicPath) != ""
}

func (s *S3Store) Remove(ctx context.Context, publicPath string) error {
	key := s.keyOf(publicPath)
	if key == "" {
		return fmt.Errorf("path %q is not in bucket %s", publicPath, s.bucket)
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}

func (s *S3Store) Open(context.Context, string) (io.ReadCloser, error) {
	return nil, ErrRemote
}

func (s *S3Store) keyOf(publicPath string) string {
	prefix := s.publicBase + "/"
	if s.publicBase == "" || !strings.HasPrefix(publicPath, prefix) {
		return ""
	}
	return normalizeKey(strings.TrimPrefix(publicPath, prefix))
}
