package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

type (
	s3API interface {
		PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
		GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	}

	AwsS3Config struct {
		Bucket    string
		Region    string
		Prefix    string
		AccessKey string
		SecretKey string
	}

	awsS3 struct {
		client s3API
		bucket string
		prefix string
	}
)

// NewAwsS3 keeps sample photos in an S3 bucket. Static credentials are used
// when an access key is configured, otherwise the default AWS chain applies.
func NewAwsS3(ctx context.Context, cfg AwsS3Config) (FileStorage, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("AWS_S3_BUCKET is not configured")
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("could not load aws config: %w", err)
	}

	return newAwsS3(s3.NewFromConfig(awsCfg), cfg.Bucket, cfg.Prefix), nil
}

func newAwsS3(client s3API, bucket, prefix string) *awsS3 {
	return &awsS3{client: client, bucket: bucket, prefix: prefix}
}

func (s *awsS3) objectKey(storedName string) string {
	if s.prefix == "" {
		return storedName
	}
	return path.Join(s.prefix, storedName)
}

func (s *awsS3) Store(ctx context.Context, src io.Reader, originalName string, contentType string) (string, error) {
	data, err := io.ReadAll(src)
	if err != nil {
		return "", fmt.Errorf("%w %s: %v", ErrStoreFile, originalName, err)
	}

	name := GenerateFileName(originalName)
	input := &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(s.objectKey(name)),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("%w %s: %v", ErrStoreFile, originalName, err)
	}
	return name, nil
}

func (s *awsS3) Open(ctx context.Context, storedName string) (io.ReadCloser, error) {
	if !isSafeName(storedName) {
		return nil, ErrFileNotFound
	}
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.objectKey(storedName)),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, ErrFileNotFound
		}
		return nil, err
	}
	return out.Body, nil
}
