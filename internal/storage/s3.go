// internal/storage/s3.go
package storage

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/autovilla/dealership-backend/internal/config"
)

// S3Store is the S3-backed ImageStore used in production.
type S3Store struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

func NewS3Store(ctx context.Context, cfg config.S3Config) (*S3Store, error) {
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
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}

	return &S3Store{
		client:  s3.NewFromConfig(awsCfg),
		bucket:  cfg.Bucket,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// Upload decodes a data URI and puts the object under folder/<uuid>.<ext>.
func (s *S3Store) Upload(ctx context.Context, folder string, dataURI string) (string, error) {
	contentType, data, err := decodeDataURI(dataURI)
	if err != nil {
		return "", err
	}

	ext := "bin"
	if i := strings.LastIndex(contentType, "/"); i >= 0 {
		ext = contentType[i+1:]
	}
	key := fmt.Sprintf("%s/%s.%s", folder, uuid.NewString(), ext)

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("putting object to S3: %w", err)
	}

	return s.baseURL + "/" + key, nil
}

// Delete removes the object behind a public URL. URLs outside our base are
// ignored so records pointing at external images delete cleanly.
func (s *S3Store) Delete(ctx context.Context, publicURL string) error {
	if !strings.HasPrefix(publicURL, s.baseURL+"/") {
		return nil
	}
	key := strings.TrimPrefix(publicURL, s.baseURL+"/")

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("deleting object from S3: %w", err)
	}
	return nil
}

// decodeDataURI splits "data:image/png;base64,AAAA" into content type and
// raw bytes.
func decodeDataURI(dataURI string) (string, []byte, error) {
	if !IsDataURI(dataURI) {
		return "", nil, fmt.Errorf("not an inline image data URI")
	}

	rest := strings.TrimPrefix(dataURI, "data:")
	semi := strings.Index(rest, ";base64,")
	if semi < 0 {
		return "", nil, fmt.Errorf("unsupported data URI encoding")
	}
	contentType := rest[:semi]

	data, err := base64.StdEncoding.DecodeString(rest[semi+len(";base64,"):])
	if err != nil {
		return "", nil, fmt.Errorf("decoding image data: %w", err)
	}
	return contentType, data, nil
}

var _ ImageStore = (*S3Store)(nil)
