package storage

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/imagekit-developer/imagekit-go"
)

// DefaultTokenTTL matches the lifetime ImageKit's own SDKs use.
const DefaultTokenTTL = 30 * time.Minute

type ImageKitConfig struct {
	URLEndpoint string
	PublicKey   string
	PrivateKey  string
	TokenTTL    time.Duration
}

// AuthParams is what a browser needs for a signed client-side upload.
type AuthParams struct {
	Token     string `json:"token"`
	Expire    int64  `json:"expire"`
	Signature string `json:"signature"`
}

// ImageKitSigner produces client-side upload credentials through the ImageKit SDK.
type ImageKitSigner struct {
	cfg      ImageKitConfig
	client   *imagekit.ImageKit
	now      func() time.Time
	newToken func() string
}

func NewImageKitSigner(cfg ImageKitConfig) *ImageKitSigner {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = DefaultTokenTTL
	}
	s := &ImageKitSigner{
		cfg:      cfg,
		now:      time.Now,
		newToken: func() string { return uuid.NewString() },
	}
	if cfg.PrivateKey != "" {
		s.client = imagekit.NewFromParams(imagekit.NewParams{
			PrivateKey:  cfg.PrivateKey,
			PublicKey:   cfg.PublicKey,
			UrlEndpoint: cfg.URLEndpoint,
		})
	}
	return s
}

func (s *ImageKitSigner) Configured() bool {
	return s != nil && s.client != nil
}

func (s *ImageKitSigner) PublicKey() string {
	return s.cfg.PublicKey
}

func (s *ImageKitSigner) URLEndpoint() string {
	return s.cfg.URLEndpoint
}

// AuthenticationParameters signs token+expire with the private key. Empty
// token and zero expire are replaced by a fresh UUID and now+TokenTTL, so
// the configured TTL applies rather than the SDK default.
func (s *ImageKitSigner) AuthenticationParameters(token string, expire int64) (AuthParams, error) {
	if !s.Configured() {
		return AuthParams{}, errors.New("imagekit private key is not configured")
	}
	if token == "" {
		token = s.newToken()
	}
	if expire == 0 {
		expire = s.now().Add(s.cfg.TokenTTL).Unix()
	}

	signed := s.client.SignToken(imagekit.SignTokenParam{
		Token:   token,
		Expires: expire,
	})
	return AuthParams{
		Token:     signed.Token,
		Expire:    signed.Expires,
		Signature: signed.Signature,
	}, nil
}
