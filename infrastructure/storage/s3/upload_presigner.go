// Package s3 issues presigned upload URLs for the image bucket.
package s3

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// PresignAPI is the subset of s3.PresignClient used for uploads.
type PresignAPI interface {
	PresignPutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// UploadPresigner implements ports.UploadSigner
type UploadPresigner struct {
	client PresignAPI
	bucket string
}

// NewUploadPresigner creates a presigner for bucket
func NewUploadPresigner(client PresignAPI, bucket string) *UploadPresigner {
	return &UploadPresigner{
		client: client,
		bucket: bucket,
	}
}

// PresignUpload returns a PUT URL bound to key and contentType, valid for ttl.
func (p *UploadPresigner) PresignUpload(ctx context.Context, key, contentType string, ttl time.Duration) (string, error) {
	req, err := p.client.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = ttl
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}
	return req.URL, nil
}
