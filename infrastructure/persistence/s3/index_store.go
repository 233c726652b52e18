// Package s3 stores the per-user index blobs in an S3 bucket.
package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"wikicollector-backend/application/ports"
	"wikicollector-backend/domain/article"
	appErrors "wikicollector-backend/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"go.uber.org/zap"
)

// ObjectAPI is the subset of the S3 client used for index blobs.
type ObjectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// IndexStore implements ports.IndexStore on S3.
type IndexStore struct {
	client ObjectAPI
	bucket string
	logger *zap.Logger
}

// NewIndexStore creates a new S3-backed index store
func NewIndexStore(client ObjectAPI, bucket string, logger *zap.Logger) *IndexStore {
	return &IndexStore{
		client: client,
		bucket: bucket,
		logger: logger,
	}
}

// Load fetches the whole blob. A missing object maps to ports.ErrIndexNotFound.
func (s *IndexStore) Load(ctx context.Context, kind article.Kind, userID string) ([]byte, error) {
	key := kind.Key(userID)

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, ports.ErrIndexNotFound
		}
		return nil, appErrors.NewExternalError("s3", fmt.Errorf("get %s: %w", key, err))
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, appErrors.NewExternalError("s3", fmt.Errorf("read %s: %w", key, err))
	}
	return data, nil
}

// Save overwrites the whole blob
func (s *IndexStore) Save(ctx context.Context, kind article.Kind, userID string, data []byte) error {
	key := kind.Key(userID)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(article.ContentType),
	})
	if err != nil {
		return appErrors.NewExternalError("s3", fmt.Errorf("put %s: %w", key, err))
	}

	s.logger.Debug("Index blob written",
		zap.String("bucket", s.bucket),
		zap.String("key", key),
		zap.Int("bytes", len(data)),
	)
	return nil
}

func isNotFound(err error) bool {
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return true
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return true
		}
	}

	var respErr *awshttp.ResponseError
	if errors.As(err, &respErr) && respErr.HTTPStatusCode() == http.StatusNotFound {
		return true
	}
	return false
}
