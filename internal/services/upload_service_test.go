package services

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"chat-history/internal/storage"
	chaterrors "chat-history/pkg/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePresigner struct {
	key string
	err error
}

func (f *fakePresigner) PresignPut(ctx context.Context, key, contentType string, sizeBytes int64) (string, map[string]string, error) {
	if f.err != nil {
		return "", nil, f.err
	}
	f.key = key
	return "https://bucket.s3.amazonaws.com/" + key + "?X-Amz-Signature=abc", map[string]string{"Content-Type": contentType}, nil
}

func (f *fakePresigner) FileURL(key string) string {
	return "https://cdn.example.com/" + key
}

func (f *fakePresigner) ValidateContentType(contentType string) error {
	return storage.ValidateImageContentType(contentType)
}

func (f *fakePresigner) PresignTTL() time.Duration {
	return 15 * time.Minute
}

func TestGetUploadAuthParams(t *testing.T) {
	svc := NewUploadService(storage.NewImageKitSigner(storage.ImageKitConfig{PrivateKey: "secret"}), nil)

	params, err := svc.GetUploadAuthParams(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, params.Token)
	assert.Greater(t, params.Expire, time.Now().Unix())
	assert.Len(t, params.Signature, 40)
}

func TestGetUploadAuthParamsUnavailable(t *testing.T) {
	svc := NewUploadService(storage.NewImageKitSigner(storage.ImageKitConfig{}), nil)

	_, err := svc.GetUploadAuthParams(context.Background())
	assert.ErrorIs(t, err, chaterrors.ErrServiceUnavailable)
	assert.Equal(t, http.StatusServiceUnavailable, HTTPStatus(err))
}

func TestPresignUpload(t *testing.T) {
	presigner := &fakePresigner{}
	svc := NewUploadService(storage.NewImageKitSigner(storage.ImageKitConfig{}), presigner)

	res, err := svc.PresignUpload(context.Background(), PresignInput{
		UploaderID:  "u1",
		FileName:    "Cat.PNG",
		ContentType: "image/png",
		FileSize:    1024,
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(res.UploadKey, "uploads/u1/"))
	assert.True(t, strings.HasSuffix(res.UploadKey, ".png"))
	assert.Equal(t, presigner.key, res.UploadKey)
	assert.Equal(t, "https://cdn.example.com/"+res.UploadKey, res.FileURL)
	assert.Equal(t, int64(900), res.ExpiresIn)
}

func TestPresignUploadErrors(t *testing.T) {
	valid := PresignInput{UploaderID: "u1", FileName: "a.png", ContentType: "image/png", FileSize: 10}

	t.Run("not configured", func(t *testing.T) {
		svc := NewUploadService(nil, nil)
		_, err := svc.PresignUpload(context.Background(), valid)
		assert.ErrorIs(t, err, chaterrors.ErrServiceUnavailable)
	})

	t.Run("bad content type", func(t *testing.T) {
		svc := NewUploadService(nil, &fakePresigner{})
		in := valid
		in.ContentType = "application/zip"
		_, err := svc.PresignUpload(context.Background(), in)
		assert.ErrorIs(t, err, chaterrors.ErrInvalidInput)
	})

	t.Run("missing size", func(t *testing.T) {
		svc := NewUploadService(nil, &fakePresigner{})
		in := valid
		in.FileSize = 0
		_, err := svc.PresignUpload(context.Background(), in)
		assert.ErrorIs(t, err, chaterrors.ErrInvalidInput)
	})

	t.Run("presign fails", func(t *testing.T) {
		svc := NewUploadService(nil, &fakePresigner{err: errors.New("no credentials")})
		_, err := svc.PresignUpload(context.Background(), valid)
		assert.ErrorIs(t, err, chaterrors.ErrServiceUnavailable)
	})
}

func TestBuildObjectKey(t *testing.T) {
	key := buildObjectKey("org/u1", uuid.Nil, "photo.JPG")
	assert.Equal(t, "uploads/org_u1/00000000-0000-0000-0000-000000000000.jpg", key)
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(chaterrors.ErrInvalidInput))
	assert.Equal(t, http.StatusUnauthorized, HTTPStatus(chaterrors.ErrUnauthorized))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(errors.Join(errors.New("get chat"), chaterrors.ErrNotFound)))
	assert.Equal(t, http.StatusConflict, HTTPStatus(chaterrors.ErrAlreadyExists))
	assert.Equal(t, http.StatusTooManyRequests, HTTPStatus(chaterrors.ErrRateLimited))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("boom")))
}
