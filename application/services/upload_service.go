package services

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"wikicollector-backend/application/ports"
	"wikicollector-backend/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultUploadTTL is how long an issued upload URL stays valid
const DefaultUploadTTL = 300 * time.Second

// UploadRequest asks for a URL to upload one image
type UploadRequest struct {
	UserID   string `json:"userId" validate:"required"`
	FileName string `json:"fileName" validate:"required"`
	FileType string `json:"fileType" validate:"required"`
}

// UploadURL is the issued URL and the object key it writes to
type UploadURL struct {
	UploadURL string `json:"uploadUrl"`
	ObjectKey string `json:"objectKey"`
}

// UploadService issues presigned image upload URLs
type UploadService struct {
	signer ports.UploadSigner
	ttl    time.Duration
	logger *zap.Logger

	newID func() string
}

// NewUploadService creates a new upload service. A non-positive ttl falls
// back to DefaultUploadTTL.
func NewUploadService(signer ports.UploadSigner, ttl time.Duration, logger *zap.Logger) *UploadService {
	if ttl <= 0 {
		ttl = DefaultUploadTTL
	}
	return &UploadService{
		signer: signer,
		ttl:    ttl,
		logger: logger,
		newID:  uuid.NewString,
	}
}

// IssueUploadURL signs a PUT for users/{userId}/images/{id}{ext} bound to
// the requested content type.
func (s *UploadService) IssueUploadURL(ctx context.Context, req UploadRequest) (*UploadURL, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("users/%s/images/%s%s", req.UserID, s.newID(), fileExtension(req.FileName))

	url, err := s.signer.PresignUpload(ctx, key, req.FileType, s.ttl)
	if err != nil {
		s.logger.Error("Failed to presign upload",
			zap.String("userID", req.UserID),
			zap.String("key", key),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("Upload URL issued",
		zap.String("userID", req.UserID),
		zap.String("key", key),
		zap.Duration("ttl", s.ttl),
	)
	return &UploadURL{UploadURL: url, ObjectKey: key}, nil
}

// fileExtension returns the extension with its dot. Leading dots of the base
// name do not start an extension, so ".env" has none.
func fileExtension(name string) string {
	base := path.Base(name)
	return path.Ext(strings.TrimLeft(base, "."))
}
