package services

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"chat-history/internal/metrics"
	"chat-history/internal/storage"
	chaterrors "chat-history/pkg/errors"

	"github.com/google/uuid"
)

// Presigner issues direct-to-bucket upload URLs.
type Presigner interface {
	PresignPut(ctx context.Context, key, contentType string, sizeBytes int64) (string, map[string]string, error)
	FileURL(key string) string
	ValidateContentType(contentType string) error
	PresignTTL() time.Duration
}

type UploadService struct {
	signer  *storage.ImageKitSigner
	storage Presigner
}

func NewUploadService(signer *storage.ImageKitSigner, presigner Presigner) *UploadService {
	return &UploadService{signer: signer, storage: presigner}
}

type PresignInput struct {
	UploaderID  string
	FileName    string
	ContentType string
	FileSize    int64
}

type PresignResult struct {
	UploadURL string            `json:"upload_url"`
	UploadKey string            `json:"upload_key"`
	Headers   map[string]string `json:"headers"`
	FileURL   string            `json:"file_url,omitempty"`
	ExpiresIn int64             `json:"expires_in"`
}

// GetUploadAuthParams returns a fresh, uncached credential set for a
// client-side ImageKit upload.
func (s *UploadService) GetUploadAuthParams(ctx context.Context) (storage.AuthParams, error) {
	if !s.signer.Configured() {
		metrics.RecordUploadAuth("imagekit", "unavailable")
		return storage.AuthParams{}, fmt.Errorf("imagekit signer: %w", chaterrors.ErrServiceUnavailable)
	}
	params, err := s.signer.AuthenticationParameters("", 0)
	if err != nil {
		metrics.RecordUploadAuth("imagekit", "error")
		return storage.AuthParams{}, fmt.Errorf("imagekit signer: %v: %w", err, chaterrors.ErrServiceUnavailable)
	}
	metrics.RecordUploadAuth("imagekit", "ok")
	return params, nil
}

// PresignUpload returns a presigned PUT for an image the caller uploads directly to S3.
func (s *UploadService) PresignUpload(ctx context.Context, input PresignInput) (PresignResult, error) {
	if s.storage == nil {
		metrics.RecordUploadAuth("s3", "unavailable")
		return PresignResult{}, fmt.Errorf("s3 storage is not configured: %w", chaterrors.ErrServiceUnavailable)
	}
	if input.UploaderID == "" || input.FileName == "" || input.FileSize <= 0 {
		return PresignResult{}, chaterrors.ErrInvalidInput
	}
	if err := s.storage.ValidateContentType(input.ContentType); err != nil {
		return PresignResult{}, fmt.Errorf("%v: %w", err, chaterrors.ErrInvalidInput)
	}

	key := buildObjectKey(input.UploaderID, uuid.New(), input.FileName)
	url, headers, err := s.storage.PresignPut(ctx, key, input.ContentType, input.FileSize)
	if err != nil {
		metrics.RecordUploadAuth("s3", "error")
		return PresignResult{}, fmt.Errorf("presign upload: %v: %w", err, chaterrors.ErrServiceUnavailable)
	}

	metrics.RecordUploadAuth("s3", "ok")
	return PresignResult{
		UploadURL: url,
		UploadKey: key,
		Headers:   headers,
		FileURL:   s.storage.FileURL(key),
		ExpiresIn: int64(s.storage.PresignTTL().Seconds()),
	}, nil
}

func buildObjectKey(uploaderID string, id uuid.UUID, fileName string) string {
	ext := strings.ToLower(path.Ext(fileName))
	base := fmt.Sprintf("uploads/%s/%s", strings.ReplaceAll(uploaderID, "/", "_"), id.String())
	if ext == "" {
		return base
	}
	return base + ext
}
